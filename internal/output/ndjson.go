package output

import (
	"encoding/json"
	"io"

	"github.com/phyten/todomark/internal/scan"
)

type ndjsonError struct {
	Error scan.ItemError `json:"error"`
}

// WriteNDJSON streams items as newline-delimited JSON objects. Per-file
// errors follow the items, each wrapped in an "error" object.
func WriteNDJSON(w io.Writer, items []scan.Item, errs []scan.ItemError) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, it := range items {
		if err := enc.Encode(it); err != nil {
			return err
		}
	}
	for _, e := range errs {
		if err := enc.Encode(ndjsonError{Error: e}); err != nil {
			return err
		}
	}
	return nil
}
