package finscan

import (
	"fmt"
	"strings"
)

// Warning is a non-fatal problem with one page. The page is skipped and
// extraction continues with the rest of the document.
type Warning struct {
	Page    int
	Message string
}

func (w Warning) String() string {
	if w.Page == 0 {
		return w.Message
	}
	return fmt.Sprintf("page %d: %s", w.Page, w.Message)
}

func pageWarning(page int, err error) Warning {
	return Warning{Page: page, Message: err.Error()}
}

// FormatWarnings joins warnings into a single line for logging.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
