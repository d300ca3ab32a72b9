package output

import (
	"encoding/json"
	"io"

	"github.com/phyten/todomark/internal/scan"
)

// WriteJSON writes the whole result as one indented document.
func WriteJSON(w io.Writer, res scan.Result) error {
	if res.Items == nil {
		res.Items = []scan.Item{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
