// Package finscan extracts financial-statement tables from scanned PDFs,
// page images and OCR text through a fluent API.
//
// Basic usage:
//
//	doc, warnings, err := finscan.Open("annual-report.pdf").Document(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", finscan.FormatWarnings(warnings))
//	}
//
// With options:
//
//	tables, _, err := finscan.Open("annual-report.pdf").
//	    PageRange(3, 5).
//	    DPI(400).
//	    Workers(2).
//	    Tables(ctx)
//
// Text that was already recognised can skip rasterisation and OCR:
//
//	tables, _, err := finscan.FromText(ocrOutput).Tables(ctx)
//
// The lower-level tables, ocr, raster and reader packages are also available.
package finscan

import (
	"errors"
)

// Errors returned by the terminal operations. Per-page failures are reported
// as warnings instead.
var (
	ErrNoInput           = errors.New("finscan: no input file or text")
	ErrUnsupportedFormat = errors.New("finscan: unsupported input format")
	ErrNoPages           = errors.New("finscan: document has no pages")
	ErrInvalidPage       = errors.New("finscan: invalid page number")
	ErrUnknownSource     = errors.New("finscan: unknown text source")
)

// Open returns an Extractor for the PDF, image or text file at filename.
// Nothing is read until a terminal operation such as Tables is called.
//
// Example:
//
//	tables, warnings, err := finscan.Open("statement.pdf").Tables(ctx)
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromText returns an Extractor over OCR text already in memory. Pages are
// separated by form feeds, as Tesseract writes them.
//
// Example:
//
//	tables, _, err := finscan.FromText(string(data)).Tables(ctx)
func FromText(text string) *Extractor {
	return &Extractor{
		text:     text,
		fromText: true,
		options:  defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := finscan.Must(finscan.Open("statement.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustTables is a helper that wraps a terminal operation and panics if the
// error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	tables := finscan.MustTables(finscan.FromText(text).Tables(ctx))
func MustTables[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
