// Package format provides input format detection for finscan.
package format

import (
	"bytes"
	"encoding/binary"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document, usually a scanned statement.
	PDF
	// PNG indicates a PNG page image.
	PNG
	// JPEG indicates a JPEG page image.
	JPEG
	// TIFF indicates a TIFF page image.
	TIFF
	// BMP indicates a Windows bitmap page image.
	BMP
	// Text indicates plain OCR text, pages separated by form feeds.
	Text
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case TIFF:
		return "TIFF"
	case BMP:
		return "BMP"
	case Text:
		return "Text"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case PNG:
		return ".png"
	case JPEG:
		return ".jpg"
	case TIFF:
		return ".tiff"
	case BMP:
		return ".bmp"
	case Text:
		return ".txt"
	default:
		return ""
	}
}

// IsImage reports whether the format is a single page image.
func (f Format) IsImage() bool {
	switch f {
	case PNG, JPEG, TIFF, BMP:
		return true
	default:
		return false
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return PDF
	case ".png":
		return PNG
	case ".jpg", ".jpeg":
		return JPEG
	case ".tif", ".tiff":
		return TIFF
	case ".bmp":
		return BMP
	case ".txt", ".text":
		return Text
	default:
		return Unknown
	}
}

var (
	magicPDF    = []byte("%PDF")
	magicPNG    = []byte("\x89PNG\r\n\x1a\n")
	magicJPEG   = []byte{0xFF, 0xD8, 0xFF}
	magicTIFFLE = []byte("II*\x00")
	magicTIFFBE = []byte("MM\x00*")
	magicBMP    = []byte("BM")
)

// DetectFromMagic checks file magic bytes to determine format.
// This provides more reliable detection than extension-based detection.
// Data that is valid UTF-8 without NUL bytes is reported as Text.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, magicPDF):
		return PDF
	case bytes.HasPrefix(data, magicPNG):
		return PNG
	case bytes.HasPrefix(data, magicJPEG):
		return JPEG
	case bytes.HasPrefix(data, magicTIFFLE), bytes.HasPrefix(data, magicTIFFBE):
		return TIFF
	case isBMP(data):
		return BMP
	}

	if looksLikeText(data) {
		return Text
	}
	return Unknown
}

// isBMP checks the file header beyond the "BM" signature: the reserved
// bytes must be zero and the info header size must be a known one.
func isBMP(data []byte) bool {
	if len(data) < 18 || !bytes.HasPrefix(data, magicBMP) {
		return false
	}
	if binary.LittleEndian.Uint32(data[6:10]) != 0 {
		return false
	}
	switch binary.LittleEndian.Uint32(data[14:18]) {
	case 12, 40, 52, 56, 64, 108, 124:
		return true
	}
	return false
}

// looksLikeText reports whether data is plausibly OCR text output.
func looksLikeText(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return false
	}
	// The sample may cut a multi-byte rune; ignore a short invalid tail.
	for i := 0; i < utf8.UTFMax && len(data) > 0; i++ {
		if utf8.Valid(data) {
			return true
		}
		data = data[:len(data)-1]
	}
	return false
}

// DetectFromReader inspects the content to determine format.
// It reads at most 512 bytes from the start of r.
func DetectFromReader(r io.ReaderAt) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}
