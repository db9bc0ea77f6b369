package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.3.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "kryon",
		Short: "Kryon - declarative UI compiler",
		Long: `Kryon compiles declarative .kry component trees into versioned IR
documents that renderers consume, or into Go construction code built on the
fluent builder API.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	rootCmd.AddCommand(newCompileCommand())
	rootCmd.AddCommand(newGenCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newCreateCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
