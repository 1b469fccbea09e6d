package ocr

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Recognizer turns a page image into text.
type Recognizer interface {
	RecognizeImage(imageData []byte) (string, error)
	Close() error
}

var _ Recognizer = (*Client)(nil)

// DefaultLanguage is the Tesseract language used when none is configured.
const DefaultLanguage = "eng"

// PageSegMode represents page segmentation modes for OCR.
// These control how Tesseract analyzes the page layout.
type PageSegMode int

// Page segmentation modes, numbered as Tesseract numbers them.
const (
	PSM_OSD_ONLY               PageSegMode = 0  // Orientation and script detection only
	PSM_AUTO_OSD               PageSegMode = 1  // Automatic with OSD
	PSM_AUTO_ONLY              PageSegMode = 2  // Automatic, no OSD or OCR
	PSM_AUTO                   PageSegMode = 3  // Fully automatic
	PSM_SINGLE_COLUMN          PageSegMode = 4  // Single column of variable sizes
	PSM_SINGLE_BLOCK_VERT_TEXT PageSegMode = 5  // Single uniform block of vertically aligned text
	PSM_SINGLE_BLOCK           PageSegMode = 6  // Single uniform block of text
	PSM_SINGLE_LINE            PageSegMode = 7  // Single text line
	PSM_SINGLE_WORD            PageSegMode = 8  // Single word
	PSM_CIRCLE_WORD            PageSegMode = 9  // Single word in a circle
	PSM_SINGLE_CHAR            PageSegMode = 10 // Single character
	PSM_SPARSE_TEXT            PageSegMode = 11 // Find as much text as possible
	PSM_SPARSE_TEXT_OSD        PageSegMode = 12 // Sparse text with OSD
	PSM_RAW_LINE               PageSegMode = 13 // Treat image as single text line
)

// Valid reports whether the mode is one Tesseract knows.
func (m PageSegMode) Valid() bool {
	return m >= PSM_OSD_ONLY && m <= PSM_RAW_LINE
}

// String returns the Tesseract number of the mode.
func (m PageSegMode) String() string {
	return "psm " + strconv.Itoa(int(m))
}

// Options configure a Client.
type Options struct {
	Language    string
	PageSegMode PageSegMode
}

// DefaultOptions reads English text as a single uniform block.
func DefaultOptions() Options {
	return Options{
		Language:    DefaultLanguage,
		PageSegMode: PSM_SINGLE_BLOCK,
	}
}

// Validate checks the options.
func (o Options) Validate() error {
	if !o.PageSegMode.Valid() {
		return fmt.Errorf("invalid page segmentation mode %d", int(o.PageSegMode))
	}
	return nil
}
