package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/phyten/todomark/internal/scan"
)

var numericFields = map[string]bool{"line": true, "col": true, "offset": true}

// WriteMarkdownTable renders items as a GitHub Flavored Markdown table.
// Numeric columns are right aligned.
func WriteMarkdownTable(w io.Writer, items []scan.Item, sel FieldSelection) error {
	headers := Headers(sel.Fields)
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(headers, " | ")); err != nil {
		return err
	}
	sep := make([]string, len(sel.Fields))
	for i, f := range sel.Fields {
		sep[i] = "---"
		if numericFields[f.Key] {
			sep[i] = "---:"
		}
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, it := range items {
		row := RowValues(it, sel.Fields)
		for i, f := range sel.Fields {
			row[i] = escapeMarkdownCell(row[i])
			if f.Key == "keyword" || f.Key == "text" {
				row[i] = codeSpan(row[i])
			}
		}
		if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(row, " | ")); err != nil {
			return err
		}
	}
	return nil
}

func escapeMarkdownCell(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "<br>")
	s = strings.ReplaceAll(s, "|", "\\|")
	return s
}

func codeSpan(s string) string {
	if s == "" || strings.Contains(s, "`") {
		return s
	}
	return "`" + s + "`"
}
