package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phyten/todomark/internal/buffer"
	"github.com/phyten/todomark/internal/lexctx"
	"github.com/phyten/todomark/internal/model"
)

const navSrc = "// TODO one\nx := \"FIXME two\"\nNOTE()\n# HACK\n// DONE three\n"

func TestNextCount(t *testing.T) {
	c := goCursor(t, navSrc)
	m, ok := Next(c, 3, NoBound)
	require.True(t, ok)
	assert.Equal(t, "DONE", m.Keyword, "NOTE in code and HACK after # are skipped")

	c.Seek(0)
	_, ok = Next(c, 4, NoBound)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Pos(), "failed count restores the cursor")

	_, ok = Next(c, 0, NoBound)
	assert.False(t, ok)
}

func TestPreviousCountAndNegative(t *testing.T) {
	c := goCursor(t, navSrc)
	c.Seek(len([]rune(navSrc)))
	m, ok := Previous(c, 2, NoBound)
	require.True(t, ok)
	assert.Equal(t, "FIXME", m.Keyword)

	m, ok = Next(c, -1, NoBound)
	require.True(t, ok)
	assert.Equal(t, "TODO", m.Keyword)

	m, ok = Previous(c, -1, NoBound)
	require.True(t, ok)
	assert.Equal(t, "FIXME", m.Keyword)
}

func TestWalkStops(t *testing.T) {
	c := goCursor(t, navSrc)
	var seen []string
	err := Walk(c, NoBound, func(m model.Match) bool {
		seen = append(seen, m.Keyword)
		return len(seen) < 2
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"TODO", "FIXME"}, seen)
}

func TestEnumerateIsSuperset(t *testing.T) {
	b := buffer.New("x.go", "go", navSrc)
	compiled := compileDefault(t, ":")
	raw, err := Enumerate(b, compiled)
	require.NoError(t, err)
	accepted, err := Collect(New(b, lexctx.ForBuffer(b, false), compiled))
	require.NoError(t, err)

	assert.Len(t, raw, 5)
	assert.Len(t, accepted, 3)
	starts := make(map[int]bool, len(raw))
	for _, m := range raw {
		starts[m.Start] = true
	}
	for _, m := range accepted {
		assert.Truef(t, starts[m.Start], "accepted match at %d missing from enumeration", m.Start)
	}

	none, err := Enumerate(b, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}
