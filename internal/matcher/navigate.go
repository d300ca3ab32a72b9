package matcher

import (
	"github.com/phyten/todomark/internal/buffer"
	"github.com/phyten/todomark/internal/model"
	"github.com/phyten/todomark/internal/pattern"
)

// Next moves to the n-th accepted occurrence after the cursor. An
// occurrence starting right at the cursor is stepped over first, so Next
// after Previous does not find the same keyword again. A negative n searches
// backward. On failure the cursor returns to where it started.
func Next(c *Cursor, n int, bound int) (model.Match, bool) {
	if n < 0 {
		return Previous(c, -n, bound)
	}
	return repeat(c, model.Forward, n, bound)
}

// Previous moves to the n-th accepted occurrence before the cursor.
func Previous(c *Cursor, n int, bound int) (model.Match, bool) {
	if n < 0 {
		return Next(c, -n, bound)
	}
	return repeat(c, model.Backward, n, bound)
}

func repeat(c *Cursor, dir model.Direction, n int, bound int) (model.Match, bool) {
	if n == 0 {
		return model.Match{}, false
	}
	origin := c.Pos()
	var m model.Match
	for i := 0; i < n; i++ {
		if dir == model.Forward {
			c.skipMatchAtPoint()
		}
		var ok bool
		m, ok = c.Search(dir, bound)
		if !ok {
			c.Seek(origin)
			return model.Match{}, false
		}
	}
	return m, true
}

// Walk visits every accepted occurrence from the cursor up to bound.
// Returning false from fn stops the walk.
func Walk(c *Cursor, bound int, fn func(model.Match) bool) error {
	for {
		m, ok := c.Search(model.Forward, bound)
		if !ok {
			return c.Err()
		}
		if !fn(m) {
			return nil
		}
	}
}

// Collect returns every accepted occurrence in the buffer.
func Collect(c *Cursor) ([]model.Match, error) {
	c.Seek(0)
	var out []model.Match
	err := Walk(c, NoBound, func(m model.Match) bool {
		out = append(out, m)
		return true
	})
	return out, err
}

// Enumerate lists every raw occurrence of the keyword pattern, ignoring
// lexical context. It is a superset of what a cursor accepts.
func Enumerate(buf *buffer.Buffer, compiled *pattern.Compiled) ([]model.Match, error) {
	if compiled == nil {
		return nil, nil
	}
	return compiled.All(buf.Runes())
}
