package highlight

import (
	"github.com/phyten/todomark/internal/matcher"
	"github.com/phyten/todomark/internal/model"
	"github.com/phyten/todomark/internal/termcolor"
)

// Sink receives styled ranges in rune offsets.
type Sink interface {
	Paint(start, end int, style termcolor.Style)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(start, end int, style termcolor.Style)

func (f SinkFunc) Paint(start, end int, style termcolor.Style) { f(start, end, style) }

// Span is one painted range.
type Span struct {
	Start int
	End   int
	Style termcolor.Style
}

// Spans records everything painted into it.
type Spans []Span

func (s *Spans) Paint(start, end int, style termcolor.Style) {
	*s = append(*s, Span{Start: start, End: end, Style: style})
}

// Run paints every accepted occurrence within [start, end), trailing
// punctuation included. The style is looked up from the bare keyword;
// occurrences without one are skipped. It returns the number of painted
// ranges.
func Run(c *matcher.Cursor, r *Resolver, start, end int, sink Sink) (int, error) {
	c.Seek(start)
	bound := end
	if end < 0 || end > c.Buffer().Len() {
		bound = c.Buffer().Len()
	}
	painted := 0
	err := matcher.Walk(c, bound, func(m model.Match) bool {
		style, ok := r.Resolve(m.Keyword)
		if !ok {
			return true
		}
		sink.Paint(m.Start, m.End, style)
		painted++
		return true
	})
	return painted, err
}
