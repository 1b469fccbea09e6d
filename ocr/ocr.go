//go:build ocr

// Package ocr provides OCR (Optical Character Recognition) for scanned
// financial statement pages, plus the image clean-up applied before it.
//
// This file wraps the Tesseract OCR engine via gosseract and is compiled with
// the "ocr" build tag. It requires Tesseract to be installed on the system.
// On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps Tesseract for OCR operations.
// A Client is not safe for concurrent use.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client configured with opts.
// The client should be closed when no longer needed to release resources.
func New(opts Options) (*Client, error) {
	c := &Client{client: gosseract.NewClient()}

	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if err := c.SetLanguage(opts.Language); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.SetPageSegMode(opts.PageSegMode); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}

// RecognizeImage performs OCR on image data (PNG, TIFF, JPEG, etc.).
// Line spacing is returned untouched; runs of spaces separate columns.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return text, nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g., "eng+hin").
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(strings.Split(lang, "+")...)
}

// SetPageSegMode sets the page segmentation mode.
// Statements are read as a single uniform block (PSM_SINGLE_BLOCK) by default.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	return c.client.SetPageSegMode(gosseract.PageSegMode(mode))
}
