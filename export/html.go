package export

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/finscan/model"
)

const htmlStyle = `body{font-family:Calibri,Arial,sans-serif;margin:2em}
table{border-collapse:collapse;margin-bottom:2em}
th,td{border:1px solid #000;padding:4px 8px}
th{background:#DDEBF7}
td.num{text-align:right}`

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func withText(a atom.Atom, s string, attrs ...html.Attribute) *html.Node {
	n := element(a, attrs...)
	n.AppendChild(textNode(s))
	return n
}

// HTMLNode builds the report as an html.Node tree rooted at <html>.
func HTMLNode(doc *model.Document, opts Options) (*html.Node, error) {
	nf, err := NewNumberFormatter(opts.Locale)
	if err != nil {
		return nil, err
	}
	title := opts.title(doc)

	root := element(atom.Html, html.Attribute{Key: "lang", Val: "en"})
	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	head.AppendChild(withText(atom.Title, title))
	head.AppendChild(withText(atom.Style, htmlStyle))
	root.AppendChild(head)

	body := element(atom.Body)
	body.AppendChild(withText(atom.H1, title))
	body.AppendChild(withText(atom.P, fmt.Sprintf("%d pages, %d tables, %d rows",
		doc.Pages, len(doc.Tables), doc.RowCount())))

	for i := range doc.Tables {
		body.AppendChild(htmlTable(&doc.Tables[i], nf))
	}
	root.AppendChild(body)
	return root, nil
}

func htmlTable(t *model.Table, nf *NumberFormatter) *html.Node {
	section := element(atom.Section, html.Attribute{Key: "data-page", Val: strconv.Itoa(t.Page)})
	section.AppendChild(withText(atom.H2, t.Name))

	table := element(atom.Table)
	cols := t.ColCount()

	thead := element(atom.Thead)
	tr := element(atom.Tr)
	tr.AppendChild(withText(atom.Th, "Particulars"))
	for i := 1; i <= cols; i++ {
		tr.AppendChild(withText(atom.Th, fmt.Sprintf("Value %d", i)))
	}
	thead.AppendChild(tr)
	table.AppendChild(thead)

	tbody := element(atom.Tbody)
	for _, row := range t.Data {
		tr := element(atom.Tr)
		tr.AppendChild(withText(atom.Td, row.Description))
		for j := 0; j < cols; j++ {
			cell := ""
			if j < len(row.Values) {
				cell = nf.Format(row.Values[j])
			}
			tr.AppendChild(withText(atom.Td, cell, html.Attribute{Key: "class", Val: "num"}))
		}
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)
	section.AppendChild(table)
	return section
}

func writeHTML(w io.Writer, doc *model.Document, opts Options) error {
	root, err := HTMLNode(doc, opts)
	if err != nil {
		return err
	}

	page := &html.Node{Type: html.DocumentNode}
	page.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	page.AppendChild(root)
	return html.Render(w, page)
}
