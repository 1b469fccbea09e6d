package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned for a format name or extension that has no
// writer.
var ErrUnknownFormat = errors.New("export: unknown format")

// Format defines the available export formats
type Format int

const (
	// FormatXLSX writes an Excel workbook
	FormatXLSX Format = iota
	// FormatJSON writes the document as indented JSON
	FormatJSON
	// FormatCSV writes one record per figure
	FormatCSV
	// FormatMarkdown writes a Markdown report
	FormatMarkdown
	// FormatHTML writes a standalone HTML page
	FormatHTML
)

// Formats lists every supported format.
var Formats = []Format{FormatXLSX, FormatJSON, FormatCSV, FormatMarkdown, FormatHTML}

// String returns the format name accepted by ParseFormat
func (f Format) String() string {
	switch f {
	case FormatXLSX:
		return "xlsx"
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	case FormatMarkdown:
		return "markdown"
	case FormatHTML:
		return "html"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format
func (f Format) FileExtension() string {
	switch f {
	case FormatXLSX:
		return ".xlsx"
	case FormatJSON:
		return ".json"
	case FormatCSV:
		return ".csv"
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	default:
		return ""
	}
}

// ParseFormat converts a format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	default:
		return FormatXLSX, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FromExtension returns the format implied by path's extension.
func FromExtension(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return FormatXLSX, fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// OutputPath replaces input's extension with the extension of f.
//
//	OutputPath("scans/fy24.pdf", FormatXLSX) // "scans/fy24.xlsx"
func OutputPath(input string, f Format) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + f.FileExtension()
}
