package export

import (
	"encoding/json"
	"io"

	"github.com/tsawler/finscan/model"
)

func writeJSON(w io.Writer, doc *model.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
