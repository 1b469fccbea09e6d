package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/finscan/config"
	"github.com/tsawler/finscan/tables"
)

// addPipelineFlags registers the rendering, preprocessing and OCR flags.
func addPipelineFlags(cmd *cobra.Command) {
	defaults := config.NewConfig()

	cmd.Flags().Int("dpi", defaults.DPI, "Resolution PDF pages are rendered at")
	cmd.Flags().String("pages", "", "Pages to process, e.g. 1,3-5 (default: all)")
	cmd.Flags().String("lang", defaults.Language, "Tesseract language, e.g. eng or eng+hin")
	cmd.Flags().Int("psm", defaults.PageSegMode, "Tesseract page segmentation mode (0-13)")
	cmd.Flags().Int("threshold", defaults.Threshold, "Binarisation threshold (0-255)")
	cmd.Flags().Int("kernel-size", defaults.KernelSize, "Noise removal kernel size (1 disables)")
	cmd.Flags().Float64("scale", defaults.Scale, "Upscale factor applied before OCR")
	cmd.Flags().String("source", defaults.Source, "Page text source: auto, ocr or text")
}

// addOutputFlags registers the output flags shared by convert and extract.
func addOutputFlags(cmd *cobra.Command, defaultFormat string) {
	defaults := config.NewConfig()

	cmd.Flags().StringP("output", "o", "", "Output file path")
	cmd.Flags().StringP("format", "f", defaultFormat, "Output format: xlsx, json, csv, markdown or html")
	cmd.Flags().String("locale", defaults.Locale, "Locale for number formatting in markdown and html")
	cmd.Flags().IntP("workers", "w", defaults.Workers, "Pages processed concurrently")
	cmd.Flags().String("detector", defaults.DetectorName,
		"Table detector: "+strings.Join(tables.ListDetectors(), ", "))
	cmd.Flags().StringSlice("keywords", nil, "Statement keywords that start a table (replaces the defaults)")
}

// loadConfig loads the config file and environment, then applies every flag
// the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	setInt := func(name string, dst *int) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			*dst, _ = flags.GetInt(name)
		}
	}
	setString := func(name string, dst *string) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}

	setInt("dpi", &cfg.DPI)
	setInt("workers", &cfg.Workers)
	setInt("psm", &cfg.PageSegMode)
	setInt("threshold", &cfg.Threshold)
	setInt("kernel-size", &cfg.KernelSize)
	setString("lang", &cfg.Language)
	setString("source", &cfg.Source)
	setString("format", &cfg.Format)
	setString("locale", &cfg.Locale)
	setString("detector", &cfg.DetectorName)

	if flags.Lookup("scale") != nil && flags.Changed("scale") {
		cfg.Scale, _ = flags.GetFloat64("scale")
	}
	if flags.Lookup("keywords") != nil && flags.Changed("keywords") {
		cfg.Keywords, _ = flags.GetStringSlice("keywords")
	}

	return cfg, cfg.Validate()
}
