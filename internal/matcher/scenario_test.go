package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phyten/todomark/internal/buffer"
	"github.com/phyten/todomark/internal/highlight"
	"github.com/phyten/todomark/internal/keyword"
	"github.com/phyten/todomark/internal/lexctx"
	"github.com/phyten/todomark/internal/matcher"
	"github.com/phyten/todomark/internal/model"
	"github.com/phyten/todomark/internal/pattern"
)

func TestCommentKeywordWithPunctuationIsStyled(t *testing.T) {
	cfg := keyword.Config{
		Entries: []keyword.Entry{
			{Pattern: "TODO", Style: keyword.StyleRef{Color: "red"}},
			{Pattern: "FIXME", Style: keyword.StyleRef{Color: "blue"}},
		},
		Punctuation: "!",
	}
	compiled, err := pattern.Compile(cfg)
	require.NoError(t, err)

	b := buffer.New("x.go", "go", "// TODO!! fix this")
	c := matcher.New(b, lexctx.ForBuffer(b, false), compiled)
	m, ok := c.Search(model.Forward, matcher.NoBound)
	require.True(t, ok)
	assert.Equal(t, 3, m.Start)
	assert.Equal(t, 9, m.End)
	assert.Equal(t, "TODO!!", b.Slice(m.Start, m.End))
	assert.Equal(t, "!!", m.Punct)

	style, ok := highlight.NewResolver(compiled, nil).Resolve(m.Keyword)
	require.True(t, ok)
	rgb, ok := style.RGB()
	require.True(t, ok)
	assert.Equal(t, [3]uint8{255, 0, 0}, rgb)

	c.Seek(b.Len())
	back, ok := c.Search(model.Backward, matcher.NoBound)
	require.True(t, ok)
	assert.Equal(t, m, back)
}
