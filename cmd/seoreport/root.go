// Package main provides the entry point for the seoreport CLI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/seoreport/internal/log"
)

// NewRootCmd creates the root command for seoreport.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seoreport",
		Short: "Render SEO analysis results as paginated reports",
		Long: `seoreport turns the result of an SEO analysis into a paginated report.

The analysis result is a JSON or YAML document with the overall score,
category scores, critical issues, improvement suggestions and quick wins.
The report is laid out on A4 pages by default and written as PDF.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewRenderCmd())
	cmd.AddCommand(NewInspectCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger that masks API keys and tokens.
// Logs go to w, which is stderr outside of tests, so they never mix with a
// document written to stdout.
func setupLogger(w io.Writer, verbose bool) *slog.Logger {
	return log.NewSecureLogger(w, verbose)
}
