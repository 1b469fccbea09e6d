package model

import (
	"encoding/csv"
	"encoding/json"
	"strconv"
	"strings"
)

// Row is one parsed statement line: a label and the figures printed beside it.
type Row struct {
	Description string    `json:"description"`
	Values      []float64 `json:"values"`
}

// Valid reports whether the row has both a description and at least one value.
func (r Row) Valid() bool {
	return strings.TrimSpace(r.Description) != "" && len(r.Values) > 0
}

// Table is one detected financial table on one page.
type Table struct {
	Name string `json:"name"`
	Data []Row  `json:"data"`
	Page int    `json:"page"`
}

// MarshalJSON encodes an unnamed table with a null name.
func (t Table) MarshalJSON() ([]byte, error) {
	type table Table
	out := struct {
		Name *string `json:"name"`
		table
	}{table: table(t)}
	if t.Name != "" {
		name := t.Name
		out.Name = &name
	}
	return json.Marshal(out)
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Data)
}

// ColCount returns the widest value count across all rows
func (t *Table) ColCount() int {
	cols := 0
	for _, row := range t.Data {
		if len(row.Values) > cols {
			cols = len(row.Values)
		}
	}
	return cols
}

// GetRow returns the row at the given index (0-indexed)
func (t *Table) GetRow(i int) *Row {
	if i < 0 || i >= len(t.Data) {
		return nil
	}
	return &t.Data[i]
}

// GetText returns the table as tab-separated lines.
func (t *Table) GetText() string {
	var sb strings.Builder
	for _, row := range t.Data {
		sb.WriteString(row.Description)
		for _, v := range row.Values {
			sb.WriteString("\t")
			sb.WriteString(FormatValue(v))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToMarkdown converts the table to markdown format
func (t *Table) ToMarkdown() string {
	if len(t.Data) == 0 {
		return ""
	}

	cols := t.ColCount()
	var sb strings.Builder

	// Header row
	sb.WriteString("| ")
	sb.WriteString(EscapeCell(t.Name))
	sb.WriteString(" |")
	for j := 1; j <= cols; j++ {
		sb.WriteString(" Value ")
		sb.WriteString(strconv.Itoa(j))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")

	// Separator
	sb.WriteString("|---|")
	for j := 0; j < cols; j++ {
		sb.WriteString("---:|")
	}
	sb.WriteString("\n")

	for _, row := range t.Data {
		sb.WriteString("| ")
		sb.WriteString(EscapeCell(row.Description))
		sb.WriteString(" |")
		for j := 0; j < cols; j++ {
			sb.WriteString(" ")
			if j < len(row.Values) {
				sb.WriteString(FormatValue(row.Values[j]))
			}
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToCSV converts the table to CSV format, one row per line.
func (t *Table) ToCSV() string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	for _, row := range t.Data {
		record := make([]string, 0, len(row.Values)+1)
		record = append(record, row.Description)
		for _, v := range row.Values {
			record = append(record, FormatValue(v))
		}
		// Writes to a strings.Builder cannot fail.
		_ = w.Write(record)
	}
	w.Flush()
	return sb.String()
}

// FormatValue renders a figure with two decimal places and no grouping.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// EscapeCell makes s safe inside a Markdown table cell: newlines become
// spaces and pipes are escaped.
func EscapeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "\\|")
}
