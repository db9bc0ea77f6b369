package main

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/kryonlabs/kryon/cmd/kryon/internal/config"
	"github.com/kryonlabs/kryon/pkg/kry"
)

func newGenCommand() *cobra.Command {
	var (
		pkgName  string
		funcName string
		watch    bool
	)

	cmd := &cobra.Command{
		Use:   "gen [files...]",
		Short: "Generate Go construction code from .kry sources",
		Long: `Generate Go source files from .kry files.

Each source file app.kry produces app.kry.go next to it, containing a
function that assembles the component tree through the builder API. Unlike
'kryon compile', expressions in property values are carried into the
generated Go code, so they are type checked by the Go compiler and evaluated
at runtime against reactive signals.

Examples:
  kryon gen                       # Generate for all .kry files
  kryon gen ui/app.kry            # Generate for a specific file
  kryon gen --package views       # Override the generated package name`,
		RunE: func(cmd *cobra.Command, args []string) error {
			startTime := time.Now()

			cfg, err := config.Load(".")
			if err != nil {
				log.Printf("⚠️  Failed to load kryon.json: %v (using defaults)", err)
				cfg = config.DefaultConfig()
			}
			if pkgName == "" {
				pkgName = cfg.GenPackage
			}

			files, err := resolveSources(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Println("ℹ️  No .kry files found")
				return nil
			}

			var variables []kry.ReactiveVar
			for _, v := range cfg.Variables {
				variables = append(variables, kry.ReactiveVar{Name: v.Name, Type: v.Type})
			}

			generateAll := func() error {
				for _, file := range files {
					opts := kry.CodegenOptions{Package: pkgName, FuncName: funcName, Variables: variables}
					out, err := kry.GenerateGoFile(file, opts)
					if err != nil {
						if watch {
							log.Printf("⚠️  %v", err)
							continue
						}
						return err
					}
					fmt.Printf("✅ Generated %s from %s\n", out, file)
				}
				return nil
			}

			if err := generateAll(); err != nil {
				return err
			}
			fmt.Printf("\n✨ Generated %d files in %v\n", len(files), time.Since(startTime))

			if watch {
				fmt.Println("\n👀 Watching for changes... (Press Ctrl+C to stop)")
				return watchSources(files, func(string) {
					if err := generateAll(); err != nil {
						log.Printf("⚠️  %v", err)
					}
				})
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pkgName, "package", "p", "", "Package name for generated code (default: from kryon.json)")
	cmd.Flags().StringVar(&funcName, "func", "", "Function name for generated code (default: derived from the file name)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Watch for file changes and regenerate")

	return cmd
}
