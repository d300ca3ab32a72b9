package output

import (
	"fmt"
	"io"

	"github.com/phyten/todomark/internal/scan"
)

// Formats lists the names accepted by Write.
var Formats = []string{"table", "tsv", "json", "ndjson", "csv", "markdown"}

// Write renders res in the named format. Columns are ignored by json and
// ndjson, which always carry every field.
func Write(w io.Writer, format string, res scan.Result, sel FieldSelection, opts TableOptions) error {
	switch format {
	case "json":
		return WriteJSON(w, res)
	case "ndjson":
		return WriteNDJSON(w, res.Items, res.Errors)
	case "csv":
		return WriteCSV(w, res.Items, sel)
	case "markdown", "md":
		return WriteMarkdownTable(w, res.Items, sel)
	case "tsv":
		return WriteTSV(w, res.Items, sel)
	case "table", "":
		return WriteTable(w, res.Items, sel, opts)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
