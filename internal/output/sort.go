package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/phyten/todomark/internal/scan"
)

type SortKey struct {
	Name string
	Desc bool
}

type SortSpec struct {
	Keys []SortKey
}

// ParseSortSpec reads keys such as "-keyword,file". A leading '-' reverses
// a key and "location" expands to file, line and col.
func ParseSortSpec(raw string) (SortSpec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SortSpec{}, nil
	}
	parts := strings.Split(raw, ",")
	keys := make([]SortKey, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			return SortSpec{}, fmt.Errorf("invalid sort key: empty segment")
		}
		desc := false
		switch token[0] {
		case '+':
			token = token[1:]
		case '-':
			desc = true
			token = token[1:]
		}
		token = strings.TrimSpace(token)
		if token == "" {
			return SortSpec{}, fmt.Errorf("invalid sort key: sign without name")
		}
		name := strings.ToLower(token)
		switch name {
		case "column":
			name = "col"
		case "location", "loc":
			keys = append(keys, SortKey{Name: "file", Desc: desc}, SortKey{Name: "line", Desc: desc}, SortKey{Name: "col", Desc: desc})
			continue
		case "keyword", "file", "line", "col", "kind", "lang":
		default:
			return SortSpec{}, fmt.Errorf("invalid sort key: %s", token)
		}
		keys = append(keys, SortKey{Name: name, Desc: desc})
	}
	return SortSpec{Keys: keys}, nil
}

// ApplySort orders items in place. File position always breaks ties.
func ApplySort(items []scan.Item, spec SortSpec) {
	keys := append(append([]SortKey{}, spec.Keys...), SortKey{Name: "file"}, SortKey{Name: "line"}, SortKey{Name: "col"})
	sort.SliceStable(items, func(i, j int) bool {
		a := &items[i]
		b := &items[j]
		for _, key := range keys {
			var c int
			switch key.Name {
			case "keyword":
				c = strings.Compare(a.Keyword, b.Keyword)
			case "file":
				c = strings.Compare(a.File, b.File)
			case "line":
				c = a.Line - b.Line
			case "col":
				c = a.Col - b.Col
			case "kind":
				c = strings.Compare(string(a.Kind), string(b.Kind))
			case "lang":
				c = strings.Compare(a.Lang, b.Lang)
			}
			if c == 0 {
				continue
			}
			if key.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}
