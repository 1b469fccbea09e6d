package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/finscan"
	"github.com/tsawler/finscan/export"
)

// NewExtractCmd creates the extract command.
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [file|-]",
		Short: "Detect tables in OCR text",
		Long: `Extract runs table detection on text that has already been through OCR.
Pages are separated by form feeds. With no argument or "-", text is read
from standard input. Output goes to standard output unless -o is given.

Examples:
  tesseract page.png - --psm 6 | finscan extract
  finscan extract ocr.txt --format markdown`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExtractCmd,
	}

	addOutputFlags(cmd, export.FormatJSON.String())

	return cmd
}

func runExtractCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	source := "-"
	if len(args) == 1 {
		source = args[0]
	}
	text, err := readInput(cmd.InOrStdin(), source)
	if err != nil {
		return err
	}

	ext, err := cfg.Apply(finscan.FromText(text).Logger(logger))
	if err != nil {
		return err
	}
	doc, err := convert(cmd.Context(), ext, logger)
	if err != nil {
		return err
	}
	if source != "-" {
		doc.Source = source
	}

	output, _ := cmd.Flags().GetString("output")
	opts, err := outputOptions(cmd, cfg, output)
	if err != nil {
		return err
	}
	if output != "" {
		return export.WriteFile(output, doc, opts)
	}
	// A configured workbook default does not apply to standard output.
	if opts.Format == export.FormatXLSX && !cmd.Flags().Changed("format") {
		opts.Format = export.FormatJSON
	}
	if opts.Format == export.FormatXLSX {
		return fmt.Errorf("refusing to write a workbook to standard output; use -o")
	}
	return export.Write(cmd.OutOrStdout(), doc, opts)
}

func readInput(stdin io.Reader, source string) (string, error) {
	if source == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", source, err)
	}
	return string(data), nil
}
