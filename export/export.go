package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tsawler/finscan/model"
)

// DefaultLocale formats Markdown and HTML figures with Indian digit grouping.
const DefaultLocale = "en-IN"

// Options holds configuration options for export
type Options struct {
	// Format selects the writer
	Format Format

	// Styles is applied to xlsx output
	Styles StyleSet

	// Locale controls number formatting in Markdown and HTML output
	Locale string

	// Title heads Markdown and HTML output; the document source when empty
	Title string
}

// DefaultOptions returns an xlsx export with the default styles.
func DefaultOptions() Options {
	return Options{
		Format: FormatXLSX,
		Styles: DefaultStyleSet(),
		Locale: DefaultLocale,
	}
}

func (o Options) title(doc *model.Document) string {
	if o.Title != "" {
		return o.Title
	}
	if doc.Source != "" {
		return filepath.Base(doc.Source)
	}
	return "Financial Statements"
}

// Write writes doc to w in opts.Format.
func Write(w io.Writer, doc *model.Document, opts Options) error {
	if doc == nil {
		doc = model.NewDocument("")
	}

	switch opts.Format {
	case FormatXLSX:
		return writeXLSX(w, doc, opts.Styles)
	case FormatJSON:
		return writeJSON(w, doc)
	case FormatCSV:
		return writeCSV(w, doc)
	case FormatMarkdown:
		return writeMarkdown(w, doc, opts)
	case FormatHTML:
		return writeHTML(w, doc, opts)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownFormat, int(opts.Format))
	}
}

// WriteFile writes doc to path, creating parent directories as needed.
// The file is removed again if writing fails.
func WriteFile(path string, doc *model.Document, opts Options) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	return Write(f, doc, opts)
}
