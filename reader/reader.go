package reader

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrPageOutOfRange is returned for a page number outside 1..NumPages.
var ErrPageOutOfRange = errors.New("page out of range")

// Gap thresholds relative to the font size of the fragment on the left.
const (
	// ColumnGap is the gap that separates two columns.
	ColumnGap = 1.0
	// WordGap is the gap that separates two words in a column.
	WordGap = 0.15
)

// Document is an open PDF file.
type Document struct {
	path string
	file *os.File
	pdf  *pdf.Reader
}

// Open opens the PDF at path.
func Open(path string) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to open PDF %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	return &Document{path: path, file: f, pdf: r}, nil
}

// PageCount opens path just long enough to count its pages.
func PageCount(path string) (int, error) {
	doc, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer doc.Close()
	return doc.NumPages(), nil
}

// Close releases the underlying file.
// It is safe to call Close multiple times.
func (d *Document) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// Path returns the file path the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// NumPages returns the number of pages.
func (d *Document) NumPages() int {
	return d.pdf.NumPage()
}

// PageLines returns the text-layer lines of page n (1-indexed), top to
// bottom. A page without a text layer returns no lines and no error.
func (d *Document) PageLines(n int) (lines []string, err error) {
	if n < 1 || n > d.NumPages() {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, n, d.NumPages())
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read page %d: %v", n, r)
		}
	}()

	page := d.pdf.Page(n)
	if page.V.IsNull() {
		return nil, nil
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("failed to read page %d: %w", n, err)
	}

	// Top of the page first; PDF y grows upwards.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Position > rows[j].Position
	})

	for _, row := range rows {
		line := JoinRow(row.Content)
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// PageText returns the text-layer lines of page n joined by newlines.
func (d *Document) PageText(n int) (string, error) {
	lines, err := d.PageLines(n)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// JoinRow concatenates the fragments of one text row left to right. Gaps of
// at least ColumnGap font sizes become two spaces, smaller gaps of at least
// WordGap font sizes become one space.
func JoinRow(texts []pdf.Text) string {
	if len(texts) == 0 {
		return ""
	}

	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	var sb strings.Builder
	prev := sorted[0]
	sb.WriteString(prev.S)
	for _, t := range sorted[1:] {
		size := prev.FontSize
		if size <= 0 {
			size = 10
		}
		gap := t.X - (prev.X + prev.W)

		switch {
		case gap >= ColumnGap*size:
			sb.WriteString("  ")
		case gap >= WordGap*size && !endsWithSpace(sb.String()) && !strings.HasPrefix(t.S, " "):
			sb.WriteString(" ")
		}
		sb.WriteString(t.S)
		prev = t
	}
	return collapseEdges(sb.String())
}

func endsWithSpace(s string) bool {
	return strings.HasSuffix(s, " ")
}

// collapseEdges trims the row and rounds away float noise in widths that can
// leave three or more spaces where two were meant.
func collapseEdges(s string) string {
	s = strings.TrimSpace(s)
	for strings.Contains(s, "   ") {
		s = strings.ReplaceAll(s, "   ", "  ")
	}
	return s
}

