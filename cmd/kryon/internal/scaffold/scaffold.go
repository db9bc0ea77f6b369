// Package scaffold generates new kryon project directories.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kryonlabs/kryon/cmd/kryon/internal/config"
)

// ProjectConfig holds all configuration for a new project.
type ProjectConfig struct {
	Name      string
	Directory string
	Template  string
	Port      int
	GitInit   bool
}

// Templates lists the available project templates.
var Templates = []string{"hello", "counter"}

// Generate creates the project directory, kryon.json and a starter source.
func Generate(cfg *ProjectConfig) error {
	if cfg.Directory == "" {
		cfg.Directory = cfg.Name
	}
	source, ok := templateSources[cfg.Template]
	if !ok {
		return fmt.Errorf("unknown template %q (available: hello, counter)", cfg.Template)
	}
	if _, err := os.Stat(cfg.Directory); err == nil {
		return fmt.Errorf("directory %s already exists", cfg.Directory)
	}

	srcDir := filepath.Join(cfg.Directory, "ui")
	if err := os.MkdirAll(srcDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", srcDir, err)
	}

	projectConfig := config.DefaultConfig()
	if cfg.Port != 0 {
		projectConfig.Dev.Port = cfg.Port
	}
	if cfg.Template == "counter" {
		projectConfig.Variables = []config.Variable{{Name: "count", Type: "int"}}
	}
	if err := config.Save(projectConfig, cfg.Directory); err != nil {
		return fmt.Errorf("failed to write kryon.json: %w", err)
	}

	appPath := filepath.Join(srcDir, "app.kry")
	if err := os.WriteFile(appPath, []byte(source), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", appPath, err)
	}

	gitignore := "*.kry.go\nui/*.json\n"
	if err := os.WriteFile(filepath.Join(cfg.Directory, ".gitignore"), []byte(gitignore), 0644); err != nil {
		return fmt.Errorf("failed to write .gitignore: %w", err)
	}

	return nil
}

var templateSources = map[string]string{
	"hello": `App {
    windowTitle: "Hello"
    windowWidth: 800
    windowHeight: 600

    Center {
        Text {
            content: "Hello, Kryon!"
            fontSize: 32
            color: "#333333"
        }
    }
}
`,
	"counter": `App {
    windowTitle: "Counter"
    windowWidth: 800
    windowHeight: 600

    Center {
        Column {
            gap: 20
            alignItems: center

            Text {
                content: "Count: " + fmt.Sprint(count.get())
                fontSize: 24
            }

            Row {
                gap: 10

                Button {
                    text: "-"
                    onClick: decrement
                }
                Button {
                    text: "+"
                    onClick: increment
                }
            }
        }
    }
}
`,
}
