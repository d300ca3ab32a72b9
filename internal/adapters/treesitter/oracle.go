// Package treesitter builds comment and string region indexes from
// tree-sitter parse trees. Only grammars compiled into the binary are used;
// other kinds fall back to the delimiter tables in lexctx.
package treesitter

import (
	"fmt"
	"sort"
	"strings"
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	ts_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/phyten/todomark/internal/buffer"
	"github.com/phyten/todomark/internal/lexctx"
	"github.com/phyten/todomark/internal/model"
)

type grammar struct {
	language func() unsafe.Pointer
	// node kinds whose whole range is annotation-bearing
	kinds map[string]model.MatchKind
}

var grammars = map[string]grammar{
	"go": {
		language: ts_go.Language,
		kinds: map[string]model.MatchKind{
			"comment":                    model.MatchKindComment,
			"interpreted_string_literal": model.MatchKindString,
			"raw_string_literal":         model.MatchKindString,
			"rune_literal":               model.MatchKindString,
		},
	},
	"python": {
		language: ts_python.Language,
		kinds: map[string]model.MatchKind{
			"comment": model.MatchKindComment,
			"string":  model.MatchKindString,
		},
	},
	"javascript": {
		language: ts_javascript.Language,
		kinds: map[string]model.MatchKind{
			"comment":         model.MatchKindComment,
			"string":          model.MatchKindString,
			"template_string": model.MatchKindString,
		},
	},
}

// Supports reports whether a grammar is compiled in for lang.
func Supports(lang string) bool {
	_, ok := grammars[strings.ToLower(strings.TrimSpace(lang))]
	return ok
}

// Languages lists the compiled-in grammars in sorted order.
func Languages() []string {
	out := make([]string, 0, len(grammars))
	for name := range grammars {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ByteRange is a half-open byte range of a classified node.
type ByteRange struct {
	Start int
	End   int
	Kind  model.MatchKind
}

// Parse returns the comment and string node ranges of src in document
// order. Nested matches are not descended into.
func Parse(lang string, src []byte) ([]ByteRange, error) {
	g, ok := grammars[strings.ToLower(strings.TrimSpace(lang))]
	if !ok {
		return nil, fmt.Errorf("no tree-sitter grammar for %q", lang)
	}
	if len(src) == 0 {
		return nil, nil
	}
	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(tree_sitter.NewLanguage(g.language())); err != nil {
		return nil, fmt.Errorf("set language %s: %w", lang, err)
	}
	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("parse %s: no tree", lang)
	}
	defer tree.Close()

	var out []ByteRange
	collect(tree.RootNode(), g.kinds, &out)
	return out, nil
}

func collect(n *tree_sitter.Node, kinds map[string]model.MatchKind, out *[]ByteRange) {
	if n == nil {
		return
	}
	if kind, ok := kinds[n.Kind()]; ok {
		*out = append(*out, ByteRange{Start: int(n.StartByte()), End: int(n.EndByte()), Kind: kind})
		return
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		collect(n.Child(i), kinds, out)
	}
}

// Regions converts the node ranges of b into rune regions.
func Regions(b *buffer.Buffer) (lexctx.Regions, error) {
	ranges, err := Parse(b.Kind(), b.Source())
	if err != nil {
		return nil, err
	}
	regions := make(lexctx.Regions, 0, len(ranges))
	for _, r := range ranges {
		regions = append(regions, lexctx.Region{
			Start: b.RuneOffset(r.Start),
			End:   b.RuneOffset(r.End),
			Kind:  r.Kind,
		})
	}
	return regions, nil
}

// NewOracle parses b and indexes the result. Prose buffers skip parsing.
func NewOracle(b *buffer.Buffer, textLike bool) (*lexctx.RegionOracle, error) {
	if textLike {
		return lexctx.Text(), nil
	}
	regions, err := Regions(b)
	if err != nil {
		return nil, err
	}
	return lexctx.NewRegionOracle(regions, false), nil
}
