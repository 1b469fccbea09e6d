// Package raster renders PDF pages to images for OCR.
//
// Rendering is delegated to poppler's pdftoppm, which writes one PNG per
// page at the requested resolution. Install it with:
//
//	apt-get install poppler-utils   # Ubuntu/Debian
//	brew install poppler            # macOS
package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultDPI is the resolution used for OCR rendering.
const DefaultDPI = 300

// Supported resolution range.
const (
	MinDPI = 72
	MaxDPI = 1200
)

var (
	// ErrNotInstalled is returned when pdftoppm cannot be found on PATH.
	ErrNotInstalled = errors.New("pdftoppm not available (install poppler-utils)")

	// ErrInvalidDPI is returned for a resolution outside MinDPI..MaxDPI.
	ErrInvalidDPI = fmt.Errorf("dpi must be between %d and %d", MinDPI, MaxDPI)
)

// Rasterizer renders a single PDF page to image bytes.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdfPath string, page int) ([]byte, error)
}

// Pdftoppm renders pages to PNG with poppler's pdftoppm.
type Pdftoppm struct {
	// Binary is the executable name or path; "pdftoppm" when empty.
	Binary string

	// DPI is the render resolution; DefaultDPI when zero.
	DPI int
}

var _ Rasterizer = (*Pdftoppm)(nil)

// New returns a Pdftoppm rasterizer at the given resolution.
func New(dpi int) (*Pdftoppm, error) {
	if dpi == 0 {
		dpi = DefaultDPI
	}
	if dpi < MinDPI || dpi > MaxDPI {
		return nil, ErrInvalidDPI
	}
	return &Pdftoppm{DPI: dpi}, nil
}

func (p *Pdftoppm) binary() string {
	if p.Binary != "" {
		return p.Binary
	}
	return "pdftoppm"
}

// Available reports whether the pdftoppm binary can be found.
func (p *Pdftoppm) Available() bool {
	_, err := exec.LookPath(p.binary())
	return err == nil
}

// Args returns the pdftoppm arguments that render page of pdfPath to the
// output prefix.
func (p *Pdftoppm) Args(pdfPath string, page int, prefix string) []string {
	dpi := p.DPI
	if dpi == 0 {
		dpi = DefaultDPI
	}
	n := strconv.Itoa(page)
	return []string{
		"-png",
		"-r", strconv.Itoa(dpi),
		"-f", n,
		"-l", n,
		"-singlefile",
		pdfPath,
		prefix,
	}
}

// Rasterize renders one page (1-indexed) and returns PNG bytes.
func (p *Pdftoppm) Rasterize(ctx context.Context, pdfPath string, page int) ([]byte, error) {
	if page < 1 {
		return nil, fmt.Errorf("invalid page number %d", page)
	}
	bin, err := exec.LookPath(p.binary())
	if err != nil {
		return nil, ErrNotInstalled
	}

	tmpDir, err := os.MkdirTemp("", "finscan-page-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	cmd := exec.CommandContext(ctx, bin, p.Args(pdfPath, page, prefix)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("pdftoppm failed on page %d: %w: %s", page, err, strings.TrimSpace(stderr.String()))
	}

	data, err := os.ReadFile(prefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("pdftoppm produced no image for page %d: %w", page, err)
	}
	return data, nil
}
