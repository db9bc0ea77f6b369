package ui

import (
	"fmt"
	"os"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kryonlabs/kryon/cmd/kryon/internal/scaffold"
)

// RunCreateTUI starts the interactive wizard and generates the project.
func RunCreateTUI(projectName string) (scaffold.ProjectConfig, error) {
	if !isatty() {
		return scaffold.ProjectConfig{}, fmt.Errorf("not running in a terminal, use --no-interactive flag")
	}

	p := tea.NewProgram(NewModel(projectName))
	finalModel, err := p.Run()
	if err != nil {
		return scaffold.ProjectConfig{}, fmt.Errorf("TUI error: %w", err)
	}

	m := finalModel.(Model)
	if m.Cancelled() {
		return scaffold.ProjectConfig{}, fmt.Errorf("project creation cancelled")
	}

	config := m.GetConfig()
	if config.Directory == "" {
		config.Directory = config.Name
	}

	if err := scaffold.Generate(&config); err != nil {
		return config, err
	}

	if config.GitInit {
		if err := InitGitRepo(config.Directory); err != nil {
			fmt.Printf("Warning: Failed to initialize git repository: %v\n", err)
		}
	}

	return config, nil
}

// InitGitRepo initializes a git repository with an initial commit.
func InitGitRepo(projectPath string) error {
	cmd := exec.Command("git", "init")
	cmd.Dir = projectPath
	if err := cmd.Run(); err != nil {
		return err
	}

	cmd = exec.Command("git", "add", ".")
	cmd.Dir = projectPath
	if err := cmd.Run(); err != nil {
		return err
	}

	cmd = exec.Command("git", "commit", "-m", "Initial commit")
	cmd.Dir = projectPath
	return cmd.Run()
}

// isatty checks if we're running in a terminal.
func isatty() bool {
	fileInfo, _ := os.Stdout.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
