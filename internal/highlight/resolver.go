// Package highlight turns accepted keyword occurrences into styled ranges.
package highlight

import (
	"io"
	"log"

	"github.com/phyten/todomark/internal/colorutil"
	"github.com/phyten/todomark/internal/keyword"
	"github.com/phyten/todomark/internal/pattern"
	"github.com/phyten/todomark/internal/termcolor"
)

// Resolver maps keyword text to the style of the first entry whose pattern
// matches it entirely. Styles are computed once per compiled pattern.
type Resolver struct {
	compiled *pattern.Compiled
	entries  []keyword.Entry
	styles   []termcolor.Style
	valid    []bool
	logger   *log.Logger
}

// NewResolver prepares styles for every entry of compiled. Entries whose
// color cannot be parsed stay unresolvable and are reported on logger.
func NewResolver(compiled *pattern.Compiled, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	r := &Resolver{compiled: compiled, logger: logger}
	if compiled == nil {
		return r
	}
	r.entries = compiled.Entries()
	r.styles = make([]termcolor.Style, len(r.entries))
	r.valid = make([]bool, len(r.entries))
	for i, e := range r.entries {
		style, err := StyleOf(e.Style)
		if err != nil {
			logger.Printf("keyword %q: %v", e.Pattern, err)
			continue
		}
		r.styles[i] = style
		r.valid[i] = true
	}
	return r
}

// StyleOf converts a style reference. A full face is used unmodified; a
// color becomes the foreground of the base face.
func StyleOf(ref keyword.StyleRef) (termcolor.Style, error) {
	if ref.Face != nil {
		return *ref.Face, nil
	}
	if ref.Color == "" {
		return termcolor.Base(), nil
	}
	rgb, err := colorutil.Parse(ref.Color)
	if err != nil {
		return termcolor.Style{}, err
	}
	return termcolor.Base().WithRGB(rgb.Array()), nil
}

// Resolve returns the style for an accepted keyword. Matching is
// case-sensitive and ordered; a miss is logged and yields false.
func (r *Resolver) Resolve(text string) (termcolor.Style, bool) {
	if r.compiled == nil {
		return termcolor.Style{}, false
	}
	idx, ok := r.compiled.EntryFor(text)
	if !ok {
		r.logger.Printf("no keyword entry matches %q; left unstyled", text)
		return termcolor.Style{}, false
	}
	if !r.valid[idx] {
		r.logger.Printf("keyword %q resolves to entry %q without a usable style", text, r.entries[idx].Pattern)
		return termcolor.Style{}, false
	}
	return r.styles[idx], true
}

// Entry returns the entry that styles text.
func (r *Resolver) Entry(text string) (keyword.Entry, bool) {
	if r.compiled == nil {
		return keyword.Entry{}, false
	}
	idx, ok := r.compiled.EntryFor(text)
	if !ok {
		return keyword.Entry{}, false
	}
	return r.entries[idx], true
}
