package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/finscan/model"
)

// SummarySheet is the name of the sheet that indexes every table.
const SummarySheet = "Summary"

// Excel rejects longer sheet names.
const maxSheetName = 31

// StyleSet describes the look of the workbook. It is a plain value; callers
// copy and adjust it rather than sharing one mutable instance.
type StyleSet struct {
	FontName         string
	FontSize         float64
	HeaderFill       string // hex RGB, no leading '#'
	HeaderBold       bool
	TitleBold        bool
	BorderColor      string
	NumberFormat     string
	DescriptionWidth float64
	ValueWidth       float64
}

// DefaultStyleSet returns the workbook style used for statement exports.
func DefaultStyleSet() StyleSet {
	return StyleSet{
		FontName:         "Calibri",
		FontSize:         11,
		HeaderFill:       "DDEBF7",
		HeaderBold:       true,
		TitleBold:        true,
		BorderColor:      "000000",
		NumberFormat:     "#,##0.00",
		DescriptionWidth: 40,
		ValueWidth:       20,
	}
}

// styleIDs are the registered excelize style handles for one workbook.
type styleIDs struct {
	title  int
	header int
	text   int
	number int
}

func (s StyleSet) border() []excelize.Border {
	var borders []excelize.Border
	for _, side := range []string{"left", "top", "right", "bottom"} {
		borders = append(borders, excelize.Border{Type: side, Color: s.BorderColor, Style: 1})
	}
	return borders
}

func (s StyleSet) register(f *excelize.File) (styleIDs, error) {
	var ids styleIDs
	var err error

	font := func(bold bool) *excelize.Font {
		return &excelize.Font{Family: s.FontName, Size: s.FontSize, Bold: bold}
	}

	if ids.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: s.FontName, Size: s.FontSize + 1, Bold: s.TitleBold},
	}); err != nil {
		return ids, err
	}

	if ids.header, err = f.NewStyle(&excelize.Style{
		Font:      font(s.HeaderBold),
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{s.HeaderFill}},
		Border:    s.border(),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return ids, err
	}

	if ids.text, err = f.NewStyle(&excelize.Style{
		Font:   font(false),
		Border: s.border(),
	}); err != nil {
		return ids, err
	}

	numFmt := s.NumberFormat
	ids.number, err = f.NewStyle(&excelize.Style{
		Font:         font(false),
		Border:       s.border(),
		CustomNumFmt: &numFmt,
	})
	return ids, err
}

// SheetNames returns the sheet name for each table in doc, in table order.
// Names follow the pattern "P<page> <table name>", are cleaned of characters
// Excel forbids, cut to 31 characters and made unique.
func SheetNames(doc *model.Document) []string {
	used := map[string]bool{strings.ToLower(SummarySheet): true}
	names := make([]string, len(doc.Tables))
	for i, t := range doc.Tables {
		base := sanitizeSheetName(fmt.Sprintf("P%d %s", t.Page, t.Name))
		if base == "" {
			base = fmt.Sprintf("P%d Table", t.Page)
		}
		name := trimSheetName(truncateRunes(base, maxSheetName))
		for n := 2; used[strings.ToLower(name)]; n++ {
			suffix := " (" + strconv.Itoa(n) + ")"
			name = trimSheetName(truncateRunes(base, maxSheetName-len(suffix))) + suffix
		}
		used[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

func sanitizeSheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return ' '
		}
		return r
	}, s)
	return trimSheetName(strings.Join(strings.Fields(s), " "))
}

// trimSheetName strips what Excel rejects at either end of a sheet name.
func trimSheetName(s string) string {
	return strings.Trim(s, "' ")
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func writeXLSX(w io.Writer, doc *model.Document, styles StyleSet) error {
	f := excelize.NewFile()
	defer f.Close()

	ids, err := styles.register(f)
	if err != nil {
		return fmt.Errorf("failed to register styles: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}

	names := SheetNames(doc)
	for i := range doc.Tables {
		if _, err := f.NewSheet(names[i]); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", names[i], err)
		}
		if err := writeTableSheet(f, names[i], &doc.Tables[i], ids, styles); err != nil {
			return fmt.Errorf("failed to write sheet %q: %w", names[i], err)
		}
	}

	if err := writeSummarySheet(f, doc, names, ids, styles); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeTableSheet(f *excelize.File, sheet string, t *model.Table, ids styleIDs, styles StyleSet) error {
	cols := t.ColCount()

	if err := f.SetCellValue(sheet, "A1", t.Name); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", ids.title); err != nil {
		return err
	}

	header := []interface{}{"Particulars"}
	for i := 1; i <= cols; i++ {
		header = append(header, fmt.Sprintf("Value %d", i))
	}
	if err := f.SetSheetRow(sheet, "A2", &header); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 2)
	if err := f.SetCellStyle(sheet, "A2", last, ids.header); err != nil {
		return err
	}

	for i, row := range t.Data {
		r := i + 3
		values := []interface{}{row.Description}
		for _, v := range row.Values {
			values = append(values, v)
		}
		start, _ := excelize.CoordinatesToCellName(1, r)
		if err := f.SetSheetRow(sheet, start, &values); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, start, start, ids.text); err != nil {
			return err
		}
		if cols > 0 {
			first, _ := excelize.CoordinatesToCellName(2, r)
			end, _ := excelize.CoordinatesToCellName(cols+1, r)
			if err := f.SetCellStyle(sheet, first, end, ids.number); err != nil {
				return err
			}
		}
	}

	return setWidths(f, sheet, cols+1, styles)
}

func writeSummarySheet(f *excelize.File, doc *model.Document, names []string, ids styleIDs, styles StyleSet) error {
	header := []interface{}{"Sheet", "Page", "Table", "Rows", "Columns"}
	if err := f.SetSheetRow(SummarySheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "E1", ids.header); err != nil {
		return err
	}

	for i := range doc.Tables {
		t := &doc.Tables[i]
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{names[i], t.Page, t.Name, t.RowCount(), t.ColCount()}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
		end, _ := excelize.CoordinatesToCellName(len(row), i+2)
		if err := f.SetCellStyle(SummarySheet, cell, end, ids.text); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(SummarySheet, "A", "A", styles.ValueWidth); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "C", "C", styles.DescriptionWidth); err != nil {
		return err
	}
	return nil
}

func setWidths(f *excelize.File, sheet string, cols int, styles StyleSet) error {
	if err := f.SetColWidth(sheet, "A", "A", styles.DescriptionWidth); err != nil {
		return err
	}
	if cols < 2 {
		return nil
	}
	last, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", last, styles.ValueWidth)
}
