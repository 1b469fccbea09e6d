package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	// Decoders for page images handed to DecodeImage.
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"golang.org/x/image/draw"
)

// DefaultThreshold is the grey level above which a pixel becomes white.
const DefaultThreshold = 150

// PreprocessOptions control image clean-up before recognition.
type PreprocessOptions struct {
	// Threshold is the binarisation cut-off: grey > Threshold is white.
	Threshold uint8

	// KernelSize is the side of the square opening kernel. 1 leaves the
	// binarised image unchanged.
	KernelSize int

	// Scale enlarges the page before binarisation when greater than 1.
	Scale float64
}

// DefaultPreprocessOptions returns the clean-up used for scanned statements.
func DefaultPreprocessOptions() PreprocessOptions {
	return PreprocessOptions{
		Threshold:  DefaultThreshold,
		KernelSize: 1,
		Scale:      1,
	}
}

// Validate checks the options.
func (o PreprocessOptions) Validate() error {
	if o.KernelSize < 1 {
		return errors.New("kernel size must be at least 1")
	}
	if o.Scale <= 0 {
		return errors.New("scale must be positive")
	}
	return nil
}

// Preprocess converts img to a clean black and white page: optional upscale,
// greyscale, binary threshold, then a morphological opening that removes
// specks smaller than the kernel.
func Preprocess(img image.Image, opts PreprocessOptions) *image.Gray {
	if opts.Scale > 1 {
		img = upscale(img, opts.Scale)
	}

	gray := toGray(img)
	threshold(gray, opts.Threshold)

	if opts.KernelSize > 1 {
		gray = dilate(erode(gray, opts.KernelSize), opts.KernelSize)
	}
	return gray
}

// PreprocessBytes decodes a page image, preprocesses it and returns PNG bytes.
func PreprocessBytes(data []byte, opts PreprocessOptions) ([]byte, error) {
	img, _, err := DecodeImage(data)
	if err != nil {
		return nil, err
	}
	return EncodePNG(Preprocess(img, opts))
}

// DecodeImage decodes PNG, JPEG, TIFF or BMP data.
func DecodeImage(data []byte) (image.Image, string, error) {
	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, name, nil
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func upscale(img image.Image, factor float64) image.Image {
	b := img.Bounds()
	w := int(float64(b.Dx()) * factor)
	h := int(float64(b.Dy()) * factor)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// toGray returns a greyscale copy of img; the caller's image is never modified.
func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(b)
	draw.Draw(out, b, img, b.Min, draw.Src)
	return out
}

// threshold applies a binary threshold in place.
func threshold(g *image.Gray, t uint8) {
	for i, v := range g.Pix {
		if v > t {
			g.Pix[i] = 0xFF
		} else {
			g.Pix[i] = 0
		}
	}
}

func erode(src *image.Gray, k int) *image.Gray {
	return morph(src, k, true)
}

func dilate(src *image.Gray, k int) *image.Gray {
	return morph(src, k, false)
}

// morph applies a k×k min (erode) or max (dilate) filter anchored at the
// kernel centre. Pixels outside the image do not take part.
func morph(src *image.Gray, k int, takeMin bool) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	anchor := k / 2

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := uint8(0)
			if takeMin {
				v = 0xFF
			}
			for dy := -anchor; dy < k-anchor; dy++ {
				yy := y + dy
				if yy < b.Min.Y || yy >= b.Max.Y {
					continue
				}
				for dx := -anchor; dx < k-anchor; dx++ {
					xx := x + dx
					if xx < b.Min.X || xx >= b.Max.X {
						continue
					}
					p := src.Pix[src.PixOffset(xx, yy)]
					if takeMin && p < v || !takeMin && p > v {
						v = p
					}
				}
			}
			dst.Pix[dst.PixOffset(x, y)] = v
		}
	}
	return dst
}
