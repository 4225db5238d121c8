// Package main provides the entry point for the compbench CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/compbench/cmd/compbench/commands"
	"github.com/Sumatoshi-tech/compbench/pkg/version"
)

var quiet bool

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "compbench",
		Short: "Compbench - compression method comparator",
		Long: `Compbench benchmarks external compression utilities against a corpus
of files, reporting throughput, compression ratio, and block-rounded
size overhead per method.

Commands:
  run       Benchmark selected methods against files or directories
  list      List supported compression methods`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")

	// Add commands.
	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "compbench %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
