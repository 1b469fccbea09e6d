//go:build ocr

package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// createTestPNG creates a simple PNG image with text-like patterns for testing.
// This is a very basic image that OCR might or might not recognize.
func createTestPNG(width, height int) []byte {
	img := image.NewGray(image.Rect(0, 0, width, height))

	// Fill with white
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}

	// Draw some black pixels (simple pattern)
	for x := 10; x < 50; x++ {
		for y := 10; y < 30; y++ {
			img.Set(x, y, color.Black)
		}
	}

	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func TestNew(t *testing.T) {
	client, err := New(DefaultOptions())
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()

	if client == nil {
		t.Error("Expected non-nil client")
	}
}

func TestRecognizeImage(t *testing.T) {
	client, err := New(DefaultOptions())
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()

	pngData := createTestPNG(100, 50)

	// The image is only a rectangle; check the call succeeds.
	if _, err := client.RecognizeImage(pngData); err != nil {
		t.Errorf("RecognizeImage failed: %v", err)
	}
}

func TestSetPageSegMode(t *testing.T) {
	client, err := New(DefaultOptions())
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()

	if err := client.SetPageSegMode(PSM_AUTO); err != nil {
		t.Errorf("SetPageSegMode failed: %v", err)
	}
}

func TestClose(t *testing.T) {
	client, err := New(DefaultOptions())
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}

	if err := client.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	// Second close is a no-op
	if err := client.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
