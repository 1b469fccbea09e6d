package model

import (
	"encoding/json"
	"strings"
	"testing"
)

// ============================================================================
// Row Tests
// ============================================================================

func TestRowValid(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want bool
	}{
		{"complete", Row{Description: "Cash", Values: []float64{1}}, true},
		{"no values", Row{Description: "Cash"}, false},
		{"blank description", Row{Description: "  ", Values: []float64{1}}, false},
		{"empty", Row{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ============================================================================
// Table Tests
// ============================================================================

func sampleTable() Table {
	return Table{
		Name: "Balance Sheet",
		Page: 2,
		Data: []Row{
			{Description: "Share capital", Values: []float64{100000, 100000}},
			{Description: "Reserves, surplus", Values: []float64{-2500.5}},
		},
	}
}

func TestTableCounts(t *testing.T) {
	table := sampleTable()
	if table.RowCount() != 2 {
		t.Errorf("RowCount() = %d, want 2", table.RowCount())
	}
	if table.ColCount() != 2 {
		t.Errorf("ColCount() = %d, want 2", table.ColCount())
	}

	empty := Table{}
	if empty.ColCount() != 0 {
		t.Errorf("empty ColCount() = %d, want 0", empty.ColCount())
	}
}

func TestTableGetRow(t *testing.T) {
	table := sampleTable()
	if r := table.GetRow(1); r == nil || r.Description != "Reserves, surplus" {
		t.Errorf("GetRow(1) = %+v", r)
	}
	if table.GetRow(-1) != nil || table.GetRow(2) != nil {
		t.Error("GetRow out of range should return nil")
	}
}

func TestTableGetText(t *testing.T) {
	table := sampleTable()
	want := "Share capital\t100000.00\t100000.00\nReserves, surplus\t-2500.50\n"
	if got := table.GetText(); got != want {
		t.Errorf("GetText() = %q, want %q", got, want)
	}
}

func TestTableToMarkdown(t *testing.T) {
	table := sampleTable()
	md := table.ToMarkdown()

	lines := strings.Split(strings.TrimSpace(md), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 markdown lines, got %d:\n%s", len(lines), md)
	}
	if lines[0] != "| Balance Sheet | Value 1 | Value 2 |" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "|---|---:|---:|" {
		t.Errorf("separator = %q", lines[1])
	}
	if lines[3] != "| Reserves, surplus | -2500.50 |  |" {
		t.Errorf("short row = %q", lines[3])
	}

	empty := Table{Name: "x"}
	if empty.ToMarkdown() != "" {
		t.Error("empty table should render no markdown")
	}
}

func TestEscapeCell(t *testing.T) {
	tests := map[string]string{
		"Cash | bank":   `Cash \| bank`,
		"line\nbreak":   "line break",
		"Share capital": "Share capital",
	}
	for in, want := range tests {
		if got := EscapeCell(in); got != want {
			t.Errorf("EscapeCell(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTableToCSV(t *testing.T) {
	table := sampleTable()
	want := "Share capital,100000.00,100000.00\n\"Reserves, surplus\",-2500.50\n"
	if got := table.ToCSV(); got != want {
		t.Errorf("ToCSV() = %q, want %q", got, want)
	}
}

func TestTableToCSV_Quoting(t *testing.T) {
	table := Table{Data: []Row{
		{Description: `Provision for "doubtful" debts`, Values: []float64{12}},
		{Description: "Cash\nin hand", Values: []float64{3}},
	}}
	want := "\"Provision for \"\"doubtful\"\" debts\",12.00\n\"Cash\nin hand\",3.00\n"
	if got := table.ToCSV(); got != want {
		t.Errorf("ToCSV() = %q, want %q", got, want)
	}
}

func TestTableMarshalJSON(t *testing.T) {
	data, err := json.Marshal(Table{Page: 1, Data: []Row{{Description: "a", Values: []float64{1}}}})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"name":null`) {
		t.Errorf("expected null name, got %s", data)
	}

	data, err = json.Marshal(sampleTable())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"name":"Balance Sheet"`) || !strings.Contains(string(data), `"page":2`) {
		t.Errorf("unexpected JSON: %s", data)
	}

	var back Table
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.Name != "Balance Sheet" || back.RowCount() != 2 {
		t.Errorf("round trip lost data: %+v", back)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{12998379, "12998379.00"},
		{-1.5, "-1.50"},
		{0, "0.00"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ============================================================================
// Document Tests
// ============================================================================

func TestDocument(t *testing.T) {
	doc := NewDocument("statement.pdf")
	if doc.HasTables() {
		t.Error("new document should have no tables")
	}

	first := sampleTable()
	second := Table{Name: "Cash Flow", Page: 3, Data: []Row{{Description: "Net", Values: []float64{1}}}}
	doc.AddTables(first, second)

	if !doc.HasTables() {
		t.Error("expected tables after AddTables")
	}
	if doc.RowCount() != 3 {
		t.Errorf("RowCount() = %d, want 3", doc.RowCount())
	}
	if got := doc.TablesOnPage(3); len(got) != 1 || got[0].Name != "Cash Flow" {
		t.Errorf("TablesOnPage(3) = %+v", got)
	}
	if got := doc.TablesOnPage(9); len(got) != 0 {
		t.Errorf("TablesOnPage(9) = %+v, want none", got)
	}
}

// ============================================================================
// PageText Tests
// ============================================================================

func TestPageTextLines(t *testing.T) {
	p := PageText{Page: 1, Text: "Balance Sheet\r\n\n   \nTotal    1    2\n"}
	lines := p.Lines()
	if len(lines) != 2 {
		t.Fatalf("Lines() = %q, want 2 lines", lines)
	}
	if lines[1] != "Total    1    2" {
		t.Errorf("spacing must be preserved, got %q", lines[1])
	}
	if p.IsBlank() {
		t.Error("page should not be blank")
	}
	if !(PageText{Text: " \n\t"}).IsBlank() {
		t.Error("whitespace page should be blank")
	}
}
