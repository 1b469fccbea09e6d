package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/tiff"
)

func uniformRGBA(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestPreprocess_Threshold(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 1))
	img.Pix = []uint8{150, 151, 20}

	out := Preprocess(img, DefaultPreprocessOptions())

	want := []uint8{0, 255, 0}
	for i, v := range want {
		if out.Pix[i] != v {
			t.Errorf("pixel %d = %d, want %d", i, out.Pix[i], v)
		}
	}
	if img.Pix[0] != 150 {
		t.Error("Preprocess must not modify its input")
	}
}

func TestPreprocess_ColourToGray(t *testing.T) {
	light := uniformRGBA(4, 4, color.RGBA{R: 230, G: 230, B: 230, A: 255})
	out := Preprocess(light, DefaultPreprocessOptions())
	for i, v := range out.Pix {
		if v != 255 {
			t.Fatalf("pixel %d = %d, want white", i, v)
		}
	}

	dark := uniformRGBA(4, 4, color.RGBA{R: 40, G: 40, B: 90, A: 255})
	out = Preprocess(dark, DefaultPreprocessOptions())
	for i, v := range out.Pix {
		if v != 0 {
			t.Fatalf("pixel %d = %d, want black", i, v)
		}
	}
}

func TestPreprocess_OpeningRemovesSpecks(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 9, 9))
	// single white speck
	img.SetGray(1, 1, color.Gray{Y: 255})
	// 4x4 white block
	for y := 4; y < 8; y++ {
		for x := 4; x < 8; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	opts := DefaultPreprocessOptions()
	opts.KernelSize = 3
	out := Preprocess(img, opts)

	if out.GrayAt(1, 1).Y != 0 {
		t.Error("speck smaller than the kernel should be removed")
	}
	for y := 4; y < 8; y++ {
		for x := 4; x < 8; x++ {
			if out.GrayAt(x, y).Y != 255 {
				t.Errorf("block pixel (%d,%d) should survive opening", x, y)
			}
		}
	}
}

func TestPreprocess_KernelOneIsIdentity(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 5, 1))
	img.Pix = []uint8{255, 0, 255, 0, 255}

	out := Preprocess(img, DefaultPreprocessOptions())
	for i := range img.Pix {
		if out.Pix[i] != img.Pix[i] {
			t.Errorf("pixel %d changed: %d -> %d", i, img.Pix[i], out.Pix[i])
		}
	}
}

func TestPreprocess_Scale(t *testing.T) {
	img := uniformRGBA(10, 5, color.White)
	opts := DefaultPreprocessOptions()
	opts.Scale = 2

	out := Preprocess(img, opts)
	if out.Bounds().Dx() != 20 || out.Bounds().Dy() != 10 {
		t.Errorf("scaled bounds = %v, want 20x10", out.Bounds())
	}
}

func TestPreprocessOptions_Validate(t *testing.T) {
	if err := DefaultPreprocessOptions().Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
	if err := (PreprocessOptions{KernelSize: 0, Scale: 1}).Validate(); err == nil {
		t.Error("expected error for kernel size 0")
	}
	if err := (PreprocessOptions{KernelSize: 1, Scale: 0}).Validate(); err == nil {
		t.Error("expected error for scale 0")
	}
}

func TestDecodeImage(t *testing.T) {
	src := uniformRGBA(6, 3, color.Black)

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, src); err != nil {
		t.Fatal(err)
	}
	var tiffBuf bytes.Buffer
	if err := tiff.Encode(&tiffBuf, src, nil); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"png", pngBuf.Bytes(), "png"},
		{"tiff", tiffBuf.Bytes(), "tiff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, format, err := DecodeImage(tt.data)
			if err != nil {
				t.Fatalf("DecodeImage failed: %v", err)
			}
			if format != tt.want {
				t.Errorf("format = %q, want %q", format, tt.want)
			}
			if img.Bounds().Dx() != 6 {
				t.Errorf("width = %d, want 6", img.Bounds().Dx())
			}
		})
	}

	if _, _, err := DecodeImage([]byte("not an image")); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestPreprocessBytes(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, uniformRGBA(4, 4, color.White)); err != nil {
		t.Fatal(err)
	}

	out, err := PreprocessBytes(buf.Bytes(), DefaultPreprocessOptions())
	if err != nil {
		t.Fatalf("PreprocessBytes failed: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not PNG: %v", err)
	}
	if _, ok := img.(*image.Gray); !ok {
		t.Errorf("expected greyscale PNG, got %T", img)
	}
}
