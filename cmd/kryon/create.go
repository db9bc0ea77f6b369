package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kryonlabs/kryon/cmd/kryon/internal/scaffold"
	"github.com/kryonlabs/kryon/cmd/kryon/internal/ui"
)

func newCreateCommand() *cobra.Command {
	var (
		template      string
		interactive   bool
		noInteractive bool
		gitInit       bool
		port          int
	)

	cmd := &cobra.Command{
		Use:   "create [project-name]",
		Short: "Create a new Kryon project",
		Long:  `Creates a new Kryon project with kryon.json and a starter .kry source.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectName := ""
			if len(args) > 0 {
				projectName = args[0]
			}

			isTerminal := false
			if fileInfo, _ := os.Stdout.Stat(); (fileInfo.Mode() & os.ModeCharDevice) != 0 {
				isTerminal = true
			}

			useInteractive := !noInteractive && isTerminal && (interactive || projectName == "")

			if useInteractive {
				config, err := ui.RunCreateTUI(projectName)
				if err != nil {
					return err
				}
				printNextSteps(config.Name, config.Directory)
				return nil
			}

			if projectName == "" {
				return fmt.Errorf("project name required in non-interactive mode")
			}

			config := &scaffold.ProjectConfig{
				Name:     projectName,
				Template: template,
				Port:     port,
				GitInit:  gitInit,
			}
			if err := scaffold.Generate(config); err != nil {
				return err
			}

			if config.GitInit {
				if err := ui.InitGitRepo(config.Directory); err != nil {
					fmt.Printf("⚠️  Failed to initialize git: %v\n", err)
				}
			}

			printNextSteps(config.Name, config.Directory)
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "hello", "Template to use (hello, counter)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Force interactive wizard")
	cmd.Flags().BoolVar(&noInteractive, "no-interactive", false, "Force non-interactive mode")
	cmd.Flags().BoolVar(&gitInit, "git-init", true, "Initialize git repository and initial commit")
	cmd.Flags().IntVar(&port, "port", 5173, "Preview server port")

	return cmd
}

func printNextSteps(name, dir string) {
	fmt.Printf("\n✨ Project '%s' created successfully!\n", name)
	fmt.Printf("\n📚 Next steps:\n")
	fmt.Printf("   cd %s\n", dir)
	fmt.Printf("   kryon serve\n")
}
