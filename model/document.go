package model

// Document is the result of converting one source file.
type Document struct {
	Source string  `json:"source,omitempty"`
	Pages  int     `json:"pages"`
	Tables []Table `json:"tables"`
}

// NewDocument creates an empty document for the given source.
func NewDocument(source string) *Document {
	return &Document{
		Source: source,
		Tables: make([]Table, 0),
	}
}

// AddTables appends tables in the order given.
func (d *Document) AddTables(tables ...Table) {
	d.Tables = append(d.Tables, tables...)
}

// TablesOnPage returns the tables detected on a page (1-indexed).
func (d *Document) TablesOnPage(page int) []Table {
	var out []Table
	for _, t := range d.Tables {
		if t.Page == page {
			out = append(out, t)
		}
	}
	return out
}

// RowCount returns the total number of rows across all tables.
func (d *Document) RowCount() int {
	n := 0
	for i := range d.Tables {
		n += d.Tables[i].RowCount()
	}
	return n
}

// HasTables reports whether any table was detected.
func (d *Document) HasTables() bool {
	return len(d.Tables) > 0
}
