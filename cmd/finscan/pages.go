package main

import (
	"fmt"
	"strconv"
	"strings"
)

// pageRange is an inclusive page range from a --pages list.
type pageRange struct {
	start, end int
}

// parsePageSpec parses a page list such as "1,3-5" into page ranges.
// Ranges are not expanded; the extractor checks them against the page count.
func parsePageSpec(spec string) ([]pageRange, error) {
	var pages []pageRange
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil || start < 1 {
			return nil, fmt.Errorf("invalid page %q", part)
		}
		end := start
		if isRange {
			end, err = strconv.Atoi(strings.TrimSpace(hi))
			if err != nil || end < start {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
		}
		pages = append(pages, pageRange{start: start, end: end})
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages in %q", spec)
	}
	return pages, nil
}
