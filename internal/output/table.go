package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/phyten/todomark/internal/scan"
	"github.com/phyten/todomark/internal/termcolor"
	"github.com/phyten/todomark/internal/textutil"
)

// TableOptions controls the aligned human readable listing.
type TableOptions struct {
	Color  bool
	Scheme termcolor.Scheme
	// Keyword styles the keyword and text columns. A nil func or a false
	// result leaves the cell plain.
	Keyword func(scan.Item) (termcolor.Style, bool)
	// MaxWidth truncates the context column; zero keeps it whole.
	MaxWidth int
}

const tableGap = "  "

// WriteTable writes space aligned columns. Padding is computed on the plain
// text so escape sequences never shift the layout.
func WriteTable(w io.Writer, items []scan.Item, sel FieldSelection, opts TableOptions) error {
	rows := make([][]string, 0, len(items)+1)
	rows = append(rows, Headers(sel.Fields))
	for _, it := range items {
		row := RowValues(it, sel.Fields)
		for i, f := range sel.Fields {
			row[i] = tsvReplacer.Replace(row[i])
			if f.Key == "context" && opts.MaxWidth > 0 {
				row[i] = textutil.TruncateByWidth(row[i], opts.MaxWidth, "…")
			}
		}
		rows = append(rows, row)
	}
	widths := textutil.ColumnWidths(rows)

	bw := bufio.NewWriter(w)
	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if opts.Color {
				cell = paintCell(cell, sel.Fields[i].Key, r, items, opts)
			}
			if i == len(row)-1 {
				cells[i] = cell
				continue
			}
			if numericFields[sel.Fields[i].Key] && r > 0 {
				cells[i] = textutil.PadLeft(cell, widths[i])
			} else {
				cells[i] = textutil.PadRight(cell, widths[i])
			}
		}
		if _, err := bw.WriteString(strings.TrimRight(strings.Join(cells, tableGap), " ") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func paintCell(cell, key string, row int, items []scan.Item, opts TableOptions) string {
	if row == 0 {
		return termcolor.Apply(termcolor.HeaderStyle(), cell, true)
	}
	it := items[row-1]
	switch key {
	case "keyword", "text":
		if opts.Keyword == nil {
			return cell
		}
		if style, ok := opts.Keyword(it); ok {
			return termcolor.Apply(style, cell, true)
		}
		return cell
	case "kind":
		return termcolor.Apply(termcolor.KindStyle(string(it.Kind), opts.Scheme), cell, true)
	default:
		return cell
	}
}
