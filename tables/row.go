package tables

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/finscan/model"
)

var (
	// columnGap separates columns: two or more whitespace characters.
	columnGap = regexp.MustCompile(`[\s\v\p{Z}\x{85}]{2,}`)

	// numberPattern matches a figure once grouping commas are removed.
	numberPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)
)

// ParseRow splits a statement line into a description and its figures.
//
// The line is split on runs of two or more whitespace characters. Parts that
// are numbers after removing commas become values, in left-to-right order;
// every other part joins the description. ok is false when the line has
// fewer than two parts or lacks either a figure or a description.
func ParseRow(line string) (row model.Row, ok bool) {
	parts := columnGap.Split(line, -1)
	if len(parts) < 2 {
		return model.Row{}, false
	}

	var text []string
	var values []float64
	for _, part := range parts {
		if v, isNum := parseFigure(part); isNum {
			values = append(values, v)
			continue
		}
		text = append(text, part)
	}

	if len(values) == 0 || len(text) == 0 {
		return model.Row{}, false
	}

	row = model.Row{
		Description: strings.TrimSpace(strings.Join(text, " ")),
		Values:      values,
	}
	if row.Description == "" {
		// only blank fragments around the figures
		return model.Row{}, false
	}
	return row, true
}

// parseFigure reports whether part is a number once commas are removed.
// A token that looks numeric but does not convert is treated as text.
func parseFigure(part string) (float64, bool) {
	s := strings.ReplaceAll(part, ",", "")
	if !numberPattern.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// hasDigit reports whether the line contains an ASCII digit.
func hasDigit(line string) bool {
	return strings.ContainsAny(line, "0123456789")
}
