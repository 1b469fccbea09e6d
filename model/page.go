package model

import "strings"

// PageText is the recognised text of a single page.
type PageText struct {
	Page int    // 1-indexed page number
	Text string // raw text, lines separated by '\n'
}

// Lines returns the non-blank lines of the page with their original spacing.
func (p PageText) Lines() []string {
	var lines []string
	for _, line := range strings.Split(p.Text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// IsBlank reports whether the page produced no text at all.
func (p PageText) IsBlank() bool {
	return strings.TrimSpace(p.Text) == ""
}
