package export

import (
	"io"

	"github.com/gocarina/gocsv"

	"github.com/tsawler/finscan/model"
)

// Record is one figure of one table row.
type Record struct {
	Page        int     `csv:"page"`
	Table       string  `csv:"table"`
	Row         int     `csv:"row"`
	Description string  `csv:"description"`
	Column      int     `csv:"column"`
	Value       float64 `csv:"value"`
}

// Records flattens doc into one Record per figure. Row and Column are
// 1-indexed.
func Records(doc *model.Document) []Record {
	var out []Record
	for _, t := range doc.Tables {
		for i, row := range t.Data {
			for j, v := range row.Values {
				out = append(out, Record{
					Page:        t.Page,
					Table:       t.Name,
					Row:         i + 1,
					Description: row.Description,
					Column:      j + 1,
					Value:       v,
				})
			}
		}
	}
	return out
}

func writeCSV(w io.Writer, doc *model.Document) error {
	records := Records(doc)
	if records == nil {
		records = []Record{}
	}
	return gocsv.Marshal(&records, w)
}
