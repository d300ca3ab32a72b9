package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phyten/todomark/internal/scan"
)

type Field struct {
	Key    string
	Header string
}

type FieldSelection struct {
	Fields []Field
}

// Has reports whether key is one of the selected columns.
func (s FieldSelection) Has(key string) bool {
	for _, f := range s.Fields {
		if f.Key == key {
			return true
		}
	}
	return false
}

var fieldRegistry = map[string]string{
	"keyword":  "KEYWORD",
	"punct":    "PUNCT",
	"text":     "TEXT",
	"file":     "FILE",
	"line":     "LINE",
	"col":      "COL",
	"location": "LOCATION",
	"kind":     "KIND",
	"lang":     "LANG",
	"context":  "CONTEXT",
	"style":    "STYLE",
	"offset":   "OFFSET",
}

var fieldAliases = map[string]string{
	"column":  "col",
	"loc":     "location",
	"type":    "keyword",
	"comment": "context",
}

var defaultFields = []string{"location", "keyword", "kind", "context"}

// ResolveFields parses a comma separated column list. An empty list selects
// the default columns.
func ResolveFields(raw string) (FieldSelection, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		sel := FieldSelection{Fields: make([]Field, 0, len(defaultFields))}
		for _, key := range defaultFields {
			sel.Fields = append(sel.Fields, Field{Key: key, Header: fieldRegistry[key]})
		}
		return sel, nil
	}
	parts := strings.Split(raw, ",")
	sel := FieldSelection{Fields: make([]Field, 0, len(parts))}
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			return FieldSelection{}, fmt.Errorf("invalid fields: empty entry")
		}
		key := strings.ToLower(name)
		if alias, ok := fieldAliases[key]; ok {
			key = alias
		}
		header, ok := fieldRegistry[key]
		if !ok {
			return FieldSelection{}, fmt.Errorf("unknown field: %s", name)
		}
		sel.Fields = append(sel.Fields, Field{Key: key, Header: header})
	}
	return sel, nil
}

func Headers(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Header
	}
	return out
}

func RowValues(it scan.Item, fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = FieldValue(it, f.Key)
	}
	return out
}

func FieldValue(it scan.Item, key string) string {
	switch key {
	case "keyword":
		return it.Keyword
	case "punct":
		return it.Punct
	case "text":
		return it.Text()
	case "file":
		return it.File
	case "line":
		return strconv.Itoa(it.Line)
	case "col":
		return strconv.Itoa(it.Col)
	case "location":
		return fmt.Sprintf("%s:%d:%d", it.File, it.Line, it.Col)
	case "kind":
		return string(it.Kind)
	case "lang":
		return it.Lang
	case "context":
		return it.Context
	case "style":
		return it.Style
	case "offset":
		return strconv.Itoa(it.Span.Start)
	default:
		return ""
	}
}
