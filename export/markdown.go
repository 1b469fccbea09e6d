package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/tsawler/finscan/model"
)

// NumberFormatter renders figures with a locale's grouping and decimal
// separators and two decimals.
type NumberFormatter struct {
	printer *message.Printer
}

// NewNumberFormatter returns a formatter for a BCP 47 locale such as "en-IN".
func NewNumberFormatter(locale string) (*NumberFormatter, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &NumberFormatter{printer: message.NewPrinter(tag)}, nil
}

// Format renders v, e.g. 1234.5 as "1,234.50" in en-US.
func (n *NumberFormatter) Format(v float64) string {
	return n.printer.Sprint(number.Decimal(v, number.Scale(2)))
}

func writeMarkdown(w io.Writer, doc *model.Document, opts Options) error {
	nf, err := NewNumberFormatter(opts.Locale)
	if err != nil {
		return err
	}

	md := markdown.NewMarkdown(w)
	md.H1(opts.title(doc))
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Pages", strconv.Itoa(doc.Pages)},
			{"Tables", strconv.Itoa(len(doc.Tables))},
			{"Rows", strconv.Itoa(doc.RowCount())},
		},
	})
	md.PlainText("")

	if !doc.HasTables() {
		md.PlainText("No financial statement tables were found.")
		return md.Build()
	}

	for i := range doc.Tables {
		t := &doc.Tables[i]
		md.H2(t.Name)
		md.PlainText(fmt.Sprintf("Page %d", t.Page))
		md.PlainText("")
		md.Table(markdownTable(t, nf))
		md.PlainText("")
	}
	return md.Build()
}

func markdownTable(t *model.Table, nf *NumberFormatter) markdown.TableSet {
	cols := t.ColCount()
	header := []string{"Particulars"}
	for i := 1; i <= cols; i++ {
		header = append(header, fmt.Sprintf("Value %d", i))
	}

	rows := make([][]string, 0, len(t.Data))
	for _, row := range t.Data {
		cells := make([]string, cols+1)
		cells[0] = model.EscapeCell(row.Description)
		for j, v := range row.Values {
			cells[j+1] = nf.Format(v)
		}
		rows = append(rows, cells)
	}
	return markdown.TableSet{Header: header, Rows: rows}
}
