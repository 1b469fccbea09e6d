package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tsawler/finscan"
	"github.com/tsawler/finscan/config"
	"github.com/tsawler/finscan/export"
	"github.com/tsawler/finscan/model"
)

// NewConvertCmd creates the convert command.
func NewConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert a scanned statement into a spreadsheet",
		Long: `Convert reads a PDF, page image (PNG, JPEG, TIFF, BMP) or OCR text file,
detects the financial statement tables on each page and writes them out.

The output defaults to the input path with the format's extension, so
statement.pdf becomes statement.xlsx.

Examples:
  # Convert every page to an Excel workbook
  finscan convert statement.pdf

  # Only pages 3 to 5, as Markdown
  finscan convert statement.pdf --pages 3-5 -o report.md

  # Higher resolution and a Hindi + English scan
  finscan convert scan.pdf --dpi 400 --lang eng+hin`,
		Args: cobra.ExactArgs(1),
		RunE: runConvertCmd,
	}

	addPipelineFlags(cmd)
	addOutputFlags(cmd, config.NewConfig().Format)

	return cmd
}

func runConvertCmd(cmd *cobra.Command, args []string) error {
	input := args[0]
	logger := setupLogger(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	opts, err := outputOptions(cmd, cfg, output)
	if err != nil {
		return err
	}
	if output == "" {
		output = export.OutputPath(input, opts.Format)
	}

	ext, err := cfg.Apply(finscan.Open(input).Logger(logger))
	if err != nil {
		return err
	}
	if spec, _ := cmd.Flags().GetString("pages"); spec != "" {
		ranges, err := parsePageSpec(spec)
		if err != nil {
			return err
		}
		for _, r := range ranges {
			ext = ext.PageRange(r.start, r.end)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("converting", "input", input, "output", output, "format", opts.Format)
	doc, err := convert(ctx, ext, logger)
	if err != nil {
		return err
	}

	if err := export.WriteFile(output, doc, opts); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d tables (%d rows) from %d pages to %s\n",
		len(doc.Tables), doc.RowCount(), doc.Pages, output)
	return nil
}

// convert runs the extractor and logs each page warning.
func convert(ctx context.Context, ext *finscan.Extractor, logger *slog.Logger) (*model.Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	doc, warnings, err := ext.Document(ctx)
	for _, w := range warnings {
		logger.Warn("page skipped", "page", w.Page, "reason", w.Message)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// outputOptions picks the export format. An explicit --format wins, then the
// extension of --output, then the configured default.
func outputOptions(cmd *cobra.Command, cfg *config.Config, output string) (export.Options, error) {
	opts, err := cfg.ExportOptions()
	if err != nil {
		return opts, err
	}
	if output != "" && !cmd.Flags().Changed("format") {
		if f, err := export.FromExtension(output); err == nil {
			opts.Format = f
		}
	}
	return opts, nil
}
