package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
	"golang.org/x/text/language"

	"github.com/tsawler/finscan"
	"github.com/tsawler/finscan/export"
	"github.com/tsawler/finscan/ocr"
	"github.com/tsawler/finscan/raster"
	"github.com/tsawler/finscan/tables"
)

// AppName names the XDG configuration directory.
const AppName = "finscan"

// Config holds every tunable setting of a conversion.
type Config struct {
	// DPI is the resolution PDF pages are rendered at.
	DPI int `yaml:"dpi"`

	// Workers is the number of pages processed concurrently.
	Workers int `yaml:"workers"`

	// Language is the Tesseract language, e.g. "eng" or "eng+hin".
	Language string `yaml:"language"`

	// PageSegMode is the Tesseract page segmentation mode.
	PageSegMode int `yaml:"page_seg_mode"`

	// Threshold is the binarisation cut-off, 0..255.
	Threshold int `yaml:"threshold"`

	// KernelSize is the side of the morphological opening kernel.
	KernelSize int `yaml:"kernel_size"`

	// Scale enlarges page images before binarisation.
	Scale float64 `yaml:"scale"`

	// Source is auto, ocr or text.
	Source string `yaml:"source"`

	// Format is the default output format.
	Format string `yaml:"format"`

	// Locale controls number formatting in Markdown and HTML output.
	Locale string `yaml:"locale"`

	// DetectorName selects a registered table detector.
	DetectorName string `yaml:"detector"`

	// Keywords replace the default statement keywords when set.
	Keywords []string `yaml:"keywords,omitempty"`
}

// NewConfig returns a Config with the default settings.
func NewConfig() *Config {
	return &Config{
		DPI:         raster.DefaultDPI,
		Workers:     runtime.NumCPU(),
		Language:    ocr.DefaultLanguage,
		PageSegMode: int(ocr.PSM_SINGLE_BLOCK),
		Threshold:   ocr.DefaultThreshold,
		KernelSize:  1,
		Scale:       1,
		Source:      finscan.SourceAuto.String(),
		Format:      export.FormatXLSX.String(),
		Locale:      export.DefaultLocale,

		DetectorName: tables.DefaultDetector,
	}
}

// XDGConfigDir returns the directory holding the user's config file.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGConfigFile returns the path of the user's config file.
func XDGConfigFile() string {
	return filepath.Join(XDGConfigDir(), ConfigFileName)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.DPI < raster.MinDPI || c.DPI > raster.MaxDPI {
		return ErrInvalidDPI
	}
	if c.Workers < 1 {
		return ErrInvalidWorkers
	}
	if strings.TrimSpace(c.Language) == "" {
		return ErrEmptyLanguage
	}
	if !ocr.PageSegMode(c.PageSegMode).Valid() {
		return ErrInvalidPageSegMode
	}
	if c.Threshold < 0 || c.Threshold > 255 {
		return ErrInvalidThreshold
	}
	if c.KernelSize < 1 {
		return ErrInvalidKernelSize
	}
	if c.Scale <= 0 {
		return ErrInvalidScale
	}
	if _, err := finscan.ParseSource(c.Source); err != nil {
		return ErrUnknownSource
	}
	if _, err := export.ParseFormat(c.Format); err != nil {
		return ErrUnknownFormat
	}
	if c.Locale != "" {
		if _, err := language.Parse(c.Locale); err != nil {
			return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
		}
	}
	if c.DetectorName != "" && tables.GetDetector(c.DetectorName) == nil {
		return fmt.Errorf("%w: %q (have %s)", ErrUnknownDetector, c.DetectorName,
			strings.Join(tables.ListDetectors(), ", "))
	}
	for _, k := range c.Keywords {
		if strings.TrimSpace(k) == "" {
			return ErrEmptyKeyword
		}
	}
	return nil
}

// Detector creates the table detector named by c.DetectorName, configured
// with c.Keywords when any are set.
func (c *Config) Detector() (tables.Detector, error) {
	name := c.DetectorName
	if name == "" {
		name = tables.DefaultDetector
	}
	d := tables.GetDetector(name)
	if d == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDetector, name)
	}
	if len(c.Keywords) == 0 {
		return d, nil
	}
	if err := d.Configure(tables.Config{Keywords: c.Keywords}); err != nil {
		return nil, err
	}
	return d, nil
}

// Apply configures e with every setting in c. Call Validate first.
func (c *Config) Apply(e *finscan.Extractor) (*finscan.Extractor, error) {
	source, err := finscan.ParseSource(c.Source)
	if err != nil {
		return nil, err
	}
	detector, err := c.Detector()
	if err != nil {
		return nil, err
	}

	return e.
		DPI(c.DPI).
		Workers(c.Workers).
		Language(c.Language).
		PageSegMode(ocr.PageSegMode(c.PageSegMode)).
		Threshold(uint8(c.Threshold)).
		KernelSize(c.KernelSize).
		Scale(c.Scale).
		Source(source).
		Detector(detector), nil
}

// ExportOptions returns the export options for c.Format and c.Locale.
func (c *Config) ExportOptions() (export.Options, error) {
	opts := export.DefaultOptions()
	f, err := export.ParseFormat(c.Format)
	if err != nil {
		return opts, err
	}
	opts.Format = f
	if c.Locale != "" {
		opts.Locale = c.Locale
	}
	return opts, nil
}
