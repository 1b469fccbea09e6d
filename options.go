package finscan

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/tsawler/finscan/ocr"
	"github.com/tsawler/finscan/raster"
	"github.com/tsawler/finscan/tables"
)

// Source selects where page text comes from for PDF input.
type Source int

const (
	// SourceAuto uses the embedded text layer when a page has one and OCR
	// otherwise.
	SourceAuto Source = iota
	// SourceOCR always rasterises and recognises the page.
	SourceOCR
	// SourceText only reads the embedded text layer.
	SourceText
)

func (s Source) String() string {
	switch s {
	case SourceAuto:
		return "auto"
	case SourceOCR:
		return "ocr"
	case SourceText:
		return "text"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// ParseSource converts "auto", "ocr" or "text" to a Source.
func ParseSource(s string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return SourceAuto, nil
	case "ocr":
		return SourceOCR, nil
	case "text":
		return SourceText, nil
	default:
		return SourceAuto, fmt.Errorf("%w: %q", ErrUnknownSource, s)
	}
}

// pageSpan is an inclusive, 1-indexed page range.
type pageSpan struct {
	first, last int
}

// ExtractOptions holds configuration for extraction.
type ExtractOptions struct {
	// Page selection (1-indexed); nil means all pages
	pages []pageSpan

	dpi        int
	workers    int
	source     Source
	ocr        ocr.Options
	preprocess ocr.PreprocessOptions

	detector   tables.Detector
	logger     *slog.Logger
	rasterizer raster.Rasterizer
	recognizer ocr.Recognizer
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		dpi:        raster.DefaultDPI,
		workers:    runtime.NumCPU(),
		source:     SourceAuto,
		ocr:        ocr.DefaultOptions(),
		preprocess: ocr.DefaultPreprocessOptions(),
	}
}

// clone creates a deep copy of ExtractOptions. Collaborators are shared.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o
	if o.pages != nil {
		newOpts.pages = make([]pageSpan, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	return newOpts
}

func (o ExtractOptions) validate() error {
	if o.dpi < raster.MinDPI || o.dpi > raster.MaxDPI {
		return fmt.Errorf("%w: %d", raster.ErrInvalidDPI, o.dpi)
	}
	if o.workers < 1 {
		return fmt.Errorf("finscan: workers must be at least 1, got %d", o.workers)
	}
	if err := o.ocr.Validate(); err != nil {
		return err
	}
	return o.preprocess.Validate()
}

func (o ExtractOptions) log() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.logger
}

func (o ExtractOptions) tableDetector() tables.Detector {
	if o.detector == nil {
		return tables.GetDetector(tables.DefaultDetector)
	}
	return o.detector
}
