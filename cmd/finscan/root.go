package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for finscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finscan",
		Short: "Extract tables from scanned financial statements",
		Long: `finscan reads balance sheets, profit and loss statements and cash flow
statements from scanned PDFs, page images or OCR text and writes the tables
it finds to a spreadsheet, JSON, CSV, Markdown or HTML.

Scanned pages are rendered with pdftoppm and read with Tesseract. PDFs that
carry a text layer are read directly.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "", "Config file (default: .finscan.yaml or $XDG_CONFIG_HOME/finscan/finscan.yaml)")

	cmd.AddCommand(NewConvertCmd())
	cmd.AddCommand(NewExtractCmd())
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

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if getVerboseFlag(cmd) {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
