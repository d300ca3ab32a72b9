// Package matcher searches a buffer for keyword occurrences that sit in
// annotation-bearing context.
package matcher

import (
	"github.com/phyten/todomark/internal/buffer"
	"github.com/phyten/todomark/internal/lexctx"
	"github.com/phyten/todomark/internal/model"
	"github.com/phyten/todomark/internal/pattern"
)

// NoBound disables the search limit.
const NoBound = -1

// Cursor owns a position in a buffer. It is not safe for concurrent use;
// distinct cursors may share one *pattern.Compiled.
type Cursor struct {
	buf      *buffer.Buffer
	oracle   lexctx.Oracle
	compiled *pattern.Compiled
	pos      int
	err      error
}

// New returns a cursor at offset 0. A nil compiled pattern disables
// matching: every search reports no hit.
func New(buf *buffer.Buffer, oracle lexctx.Oracle, compiled *pattern.Compiled) *Cursor {
	if oracle == nil {
		oracle = lexctx.None()
	}
	return &Cursor{buf: buf, oracle: oracle, compiled: compiled}
}

func (c *Cursor) Pos() int               { return c.pos }
func (c *Cursor) Buffer() *buffer.Buffer { return c.buf }
func (c *Cursor) Oracle() lexctx.Oracle  { return c.oracle }

// Seek moves the cursor, clamped to the buffer.
func (c *Cursor) Seek(pos int) {
	c.pos = c.buf.Clamp(pos)
}

// Err returns the first regex evaluation error, typically a match timeout.
// Once set, every search fails.
func (c *Cursor) Err() error { return c.err }

// Search finds the next accepted occurrence in dir. Forward hits leave the
// cursor at the match end, backward hits at the match start. A bound of
// NoBound searches to the buffer edge; otherwise a forward match may not end
// after bound and a backward match may not start before it.
func (c *Cursor) Search(dir model.Direction, bound int) (model.Match, bool) {
	if c.compiled == nil || c.err != nil {
		return model.Match{}, false
	}
	if dir == model.Backward {
		return c.searchBackward(bound)
	}
	return c.searchForward(bound)
}

func (c *Cursor) searchForward(bound int) (model.Match, bool) {
	if bound != NoBound && bound < c.pos {
		return model.Match{}, false
	}
	runes := c.buf.Runes()
	for c.pos <= len(runes) {
		m, ok, err := c.compiled.FindFrom(runes, c.pos)
		if err != nil {
			c.err = err
			return model.Match{}, false
		}
		if !ok {
			return model.Match{}, false
		}
		if bound != NoBound && m.End > bound {
			return model.Match{}, false
		}
		next := m.End
		if next <= m.Start {
			next = m.Start + 1
		}
		c.pos = next
		if c.accept(m) {
			return m, true
		}
	}
	return model.Match{}, false
}

// searchBackward returns the nearest accepted occurrence ending at or
// before the cursor. The right-to-left pattern gives the last possible end,
// so the walk starts there instead of at the cursor. Candidates are
// confirmed with the forward pattern.
func (c *Cursor) searchBackward(bound int) (model.Match, bool) {
	if bound != NoBound && bound > c.pos {
		return model.Match{}, false
	}
	lo := 0
	if bound != NoBound {
		lo = bound
	}
	runes := c.buf.Runes()
	limit := c.pos
	for limit > lo {
		end, ok, err := c.compiled.LastEnd(runes, limit)
		if err != nil {
			c.err = err
			return model.Match{}, false
		}
		if !ok || end <= lo {
			return model.Match{}, false
		}
		m, found, err := c.lastStartBefore(runes, end-1, lo, limit)
		if err != nil {
			c.err = err
			return model.Match{}, false
		}
		if !found {
			return model.Match{}, false
		}
		c.pos = m.Start
		if c.accept(m) {
			return m, true
		}
		limit = m.Start
	}
	return model.Match{}, false
}

// lastStartBefore walks word starts from hi down to lo and returns the first
// occurrence that ends at or before limit.
func (c *Cursor) lastStartBefore(runes []rune, hi, lo, limit int) (model.Match, bool, error) {
	for s := hi; s >= lo; s-- {
		if !c.compiled.CanStartAt(runes, s) {
			continue
		}
		m, ok, err := c.compiled.MatchAt(runes, s)
		if err != nil {
			return model.Match{}, false, err
		}
		if ok && m.End <= limit {
			return m, true, nil
		}
	}
	return model.Match{}, false, nil
}

func (c *Cursor) accept(m model.Match) bool {
	return c.oracle.TextLike() || c.oracle.InsideCommentOrString(m.Start)
}

func (c *Cursor) skipMatchAtPoint() {
	if c.compiled == nil {
		return
	}
	m, ok, err := c.compiled.MatchAt(c.buf.Runes(), c.pos)
	if err == nil && ok {
		c.pos = m.End
	}
}
