package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidDPI is returned when the render resolution is out of range.
	ErrInvalidDPI = errors.New("invalid dpi: must be between 72 and 1200")

	// ErrInvalidWorkers is returned when fewer than one worker is configured.
	ErrInvalidWorkers = errors.New("invalid workers: must be at least 1")

	// ErrInvalidThreshold is returned for a threshold outside 0..255.
	ErrInvalidThreshold = errors.New("invalid threshold: must be between 0 and 255")

	// ErrInvalidKernelSize is returned when the opening kernel is smaller than 1.
	ErrInvalidKernelSize = errors.New("invalid kernel size: must be at least 1")

	// ErrInvalidScale is returned when the scale factor is not positive.
	ErrInvalidScale = errors.New("invalid scale: must be positive")

	// ErrInvalidPageSegMode is returned for a Tesseract mode outside 0..13.
	ErrInvalidPageSegMode = errors.New("invalid page segmentation mode: must be between 0 and 13")

	// ErrUnknownSource is returned when source is not auto, ocr or text.
	ErrUnknownSource = errors.New("unknown source: must be auto, ocr or text")

	// ErrUnknownFormat is returned for an output format with no writer.
	ErrUnknownFormat = errors.New("unknown format: must be xlsx, json, csv, markdown or html")

	// ErrEmptyLanguage is returned when no OCR language is set.
	ErrEmptyLanguage = errors.New("language must not be empty")

	// ErrUnknownDetector is returned when no table detector has the configured name.
	ErrUnknownDetector = errors.New("unknown table detector")

	// ErrEmptyKeyword is returned when the keyword list contains a blank entry.
	ErrEmptyKeyword = errors.New("keywords must not contain empty entries")
)
