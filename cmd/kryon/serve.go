package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/kryonlabs/kryon/cmd/kryon/internal/config"
	"github.com/kryonlabs/kryon/pkg/kry"
	"github.com/kryonlabs/kryon/pkg/preview"
)

func newServeCommand() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Preview a compiled document with live reload",
		Long: `Start a local preview server for a .kry file.

The server renders the compiled document as HTML, watches the source for
changes, and pushes recompiled documents to the browser over a WebSocket.

Examples:
  kryon serve                    # Serve the first .kry file found
  kryon serve ui/app.kry         # Serve a specific file
  kryon serve --port 8080        # Use a custom port`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				log.Printf("⚠️  Failed to load kryon.json: %v (using defaults)", err)
				cfg = config.DefaultConfig()
			}
			if port == 0 {
				port = cfg.Dev.Port
			}
			if host == "" {
				host = cfg.Dev.Host
			}

			files, err := resolveSources(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no .kry files found; run 'kryon create' to start a project")
			}
			file := files[0]

			source, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			doc, err := kry.Compile(file, string(source))
			if err != nil {
				return err
			}

			server := preview.NewServer(doc)
			addr := fmt.Sprintf("%s:%d", host, port)

			go func() {
				if err := watchSources([]string{file}, func(string) {
					source, err := os.ReadFile(file)
					if err != nil {
						log.Printf("⚠️  Failed to read %s: %v", file, err)
						return
					}
					doc, err := kry.Compile(file, string(source))
					if err != nil {
						log.Printf("⚠️  %v", err)
						return
					}
					server.Update(doc)
					fmt.Printf("🔄 Reloaded %d clients\n", server.ClientCount())
				}); err != nil {
					log.Printf("⚠️  Watcher stopped: %v", err)
				}
			}()

			fmt.Printf("🚀 Preview server running at http://%s\n", addr)
			fmt.Printf("📄 Serving %s\n", file)
			fmt.Println("👀 Watching for changes... (Press Ctrl+C to stop)")

			return http.ListenAndServe(addr, server.Handler())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to serve on (default: from kryon.json)")
	cmd.Flags().StringVar(&host, "host", "", "Host to bind to (default: from kryon.json)")

	return cmd
}
