package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/kryonlabs/kryon/cmd/kryon/internal/config"
	"github.com/kryonlabs/kryon/pkg/kry"
)

func newCompileCommand() *cobra.Command {
	var (
		watch    bool
		toStdout bool
		outDir   string
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "compile [files...]",
		Short: "Compile .kry sources into IR documents",
		Long: `Compile .kry files into versioned IR JSON documents.

If no files are specified, searches the project source directory from
kryon.json (default: ui/).

Examples:
  kryon compile                  # Compile all .kry files
  kryon compile ui/app.kry       # Compile a specific file
  kryon compile --stdout app.kry # Print the document instead of writing it
  kryon compile --watch          # Watch and recompile on changes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			startTime := time.Now()

			files, err := resolveSources(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Println("ℹ️  No .kry files found")
				return nil
			}

			compileAll := func() error {
				for _, file := range files {
					if err := compileOne(file, outDir, toStdout, verbose); err != nil {
						if watch {
							// Watch mode keeps running through compile errors.
							log.Printf("⚠️  %v", err)
							continue
						}
						return err
					}
				}
				return nil
			}

			if err := compileAll(); err != nil {
				return err
			}
			if verbose && !toStdout {
				fmt.Printf("\n✨ Compiled %d files in %v\n", len(files), time.Since(startTime))
			}

			if watch {
				fmt.Println("\n👀 Watching for changes... (Press Ctrl+C to stop)")
				return watchSources(files, func(string) {
					if err := compileAll(); err != nil {
						log.Printf("⚠️  %v", err)
					}
				})
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Watch for file changes and recompile")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Write documents to stdout instead of files")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default: next to each source)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", true, "Verbose output")

	return cmd
}

func compileOne(file, outDir string, toStdout, verbose bool) error {
	if toStdout {
		source, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		doc, err := kry.Compile(file, string(source))
		if err != nil {
			return err
		}
		if err := doc.Encode(os.Stdout); err != nil {
			return err
		}
		fmt.Println()
		return nil
	}

	out, err := kry.CompileFile(file)
	if err != nil {
		return err
	}
	if outDir != "" {
		moved := filepath.Join(outDir, filepath.Base(out))
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", outDir, err)
		}
		if err := os.Rename(out, moved); err != nil {
			return fmt.Errorf("failed to move %s: %w", out, err)
		}
		out = moved
	}
	if verbose {
		fmt.Printf("✅ Generated %s from %s\n", out, file)
	}
	return nil
}

// resolveSources expands explicit arguments or falls back to the project
// source directory.
func resolveSources(args []string) ([]string, error) {
	if len(args) > 0 {
		for _, f := range args {
			if !strings.HasSuffix(f, ".kry") {
				return nil, fmt.Errorf("%s is not a .kry file", f)
			}
		}
		return args, nil
	}

	cfg, err := config.Load(".")
	if err != nil {
		log.Printf("⚠️  Failed to load kryon.json: %v (using defaults)", err)
		cfg = config.DefaultConfig()
	}

	searchDirs := []string{cfg.SourceDir, "."}
	for _, dir := range searchDirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		files, err := kry.FindSources(dir)
		if err != nil {
			return nil, err
		}
		if len(files) > 0 {
			return files, nil
		}
	}
	return nil, nil
}

// watchSources blocks, invoking onChange (debounced) whenever a watched
// source is written.
func watchSources(files []string, onChange func(string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dirs := make(map[string]bool)
	for _, f := range files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	var lastEvent time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".kry") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// Editors fire bursts of events per save; debounce them.
			if time.Since(lastEvent) < 100*time.Millisecond {
				continue
			}
			lastEvent = time.Now()
			fmt.Printf("📝 %s changed, recompiling...\n", event.Name)
			onChange(event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("⚠️  Watcher error: %v", err)
		}
	}
}
