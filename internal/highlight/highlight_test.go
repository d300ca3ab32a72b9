package highlight

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phyten/todomark/internal/buffer"
	"github.com/phyten/todomark/internal/keyword"
	"github.com/phyten/todomark/internal/lexctx"
	"github.com/phyten/todomark/internal/matcher"
	"github.com/phyten/todomark/internal/pattern"
	"github.com/phyten/todomark/internal/termcolor"
)

func newResolver(t *testing.T, cfg keyword.Config) (*pattern.Compiled, *Resolver, *bytes.Buffer) {
	t.Helper()
	compiled, err := pattern.Compile(cfg)
	require.NoError(t, err)
	var logs bytes.Buffer
	return compiled, NewResolver(compiled, log.New(&logs, "", 0)), &logs
}

func TestResolveColorEntry(t *testing.T) {
	_, r, _ := newResolver(t, keyword.DefaultConfig())
	s, ok := r.Resolve("TODO")
	require.True(t, ok)
	assert.True(t, s.Bold)
	rgb, ok := s.RGB()
	require.True(t, ok)
	assert.Equal(t, [3]uint8{0xcc, 0x93, 0x93}, rgb)

	s, ok = r.Resolve("XXXXXXX")
	require.True(t, ok, "regexp entries resolve by full match")
	rgb, _ = s.RGB()
	assert.Equal(t, [3]uint8{0xcc, 0x93, 0x93}, rgb)
}

func TestResolveFaceIsUnmodified(t *testing.T) {
	face := termcolor.Style{Underline: true}
	cfg := keyword.Config{Entries: []keyword.Entry{{Pattern: "NOTE", Style: keyword.StyleRef{Face: &face}}}}
	_, r, _ := newResolver(t, cfg)
	s, ok := r.Resolve("NOTE")
	require.True(t, ok)
	assert.Equal(t, face, s)
	assert.False(t, s.Bold)
}

func TestResolveFirstEntryWins(t *testing.T) {
	cfg := keyword.Config{Entries: []keyword.Entry{
		{Pattern: "T.DO", Style: keyword.StyleRef{Color: "red"}},
		{Pattern: "TODO", Style: keyword.StyleRef{Color: "#00ff00"}},
	}}
	_, r, _ := newResolver(t, cfg)
	s, ok := r.Resolve("TODO")
	require.True(t, ok)
	rgb, _ := s.RGB()
	assert.Equal(t, [3]uint8{255, 0, 0}, rgb)
	e, ok := r.Entry("TODO")
	require.True(t, ok)
	assert.Equal(t, "T.DO", e.Pattern)
}

func TestResolveMissIsLogged(t *testing.T) {
	_, r, logs := newResolver(t, keyword.DefaultConfig())
	_, ok := r.Resolve("todo")
	assert.False(t, ok, "resolution is case-sensitive")
	assert.Contains(t, logs.String(), `"todo"`)
}

func TestResolveBadColor(t *testing.T) {
	cfg := keyword.Config{Entries: []keyword.Entry{{Pattern: "TODO", Style: keyword.StyleRef{Color: "nonsense"}}}}
	_, r, logs := newResolver(t, cfg)
	assert.Contains(t, logs.String(), "nonsense")
	_, ok := r.Resolve("TODO")
	assert.False(t, ok)
}

func TestResolverNilLoggerAndPattern(t *testing.T) {
	r := NewResolver(nil, nil)
	_, ok := r.Resolve("TODO")
	assert.False(t, ok)
}

func TestRunPaintsAcceptedOnly(t *testing.T) {
	cfg := keyword.DefaultConfig()
	cfg.Punctuation = ":"
	compiled, r, _ := newResolver(t, cfg)
	src := "TODO()\n// TODO: x\n// FIXME y\n"
	b := buffer.New("a.go", "go", src)
	c := matcher.New(b, lexctx.ForBuffer(b, false), compiled)

	var spans Spans
	n, err := Run(c, r, 0, -1, &spans)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	assert.Equal(t, "TODO:", b.Slice(spans[0].Start, spans[0].End))
	assert.Equal(t, "FIXME", b.Slice(spans[1].Start, spans[1].End))

	var limited Spans
	n, err = Run(c, r, 0, 15, &limited)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRenderANSI(t *testing.T) {
	cfg := keyword.Config{Entries: []keyword.Entry{{Pattern: "TODO", Style: keyword.StyleRef{Color: "#ff0000"}}}}
	compiled, r, _ := newResolver(t, cfg)
	b := buffer.New("a.txt", "text", "a TODO b")
	c := matcher.New(b, lexctx.Text(), compiled)
	var spans Spans
	_, err := Run(c, r, 0, -1, &spans)
	require.NoError(t, err)

	var out strings.Builder
	p := Painter{Enabled: true, Profile: termcolor.ProfileBasic8}
	require.NoError(t, p.Render(&out, b, spans))
	assert.Equal(t, "a \x1b[1;31mTODO\x1b[0m b", out.String())

	out.Reset()
	p.Enabled = false
	require.NoError(t, p.Render(&out, b, spans))
	assert.Equal(t, "a TODO b", out.String())
}

func TestPainterContrast(t *testing.T) {
	s := termcolor.Base().WithRGB([3]uint8{0x10, 0x10, 0x40})
	p := Painter{Profile: termcolor.ProfileTrueColor, Scheme: termcolor.SchemeDark, MinContrast: 4.5}
	adj := p.Adjust(s)
	rgb, ok := adj.RGB()
	require.True(t, ok)
	assert.NotEqual(t, [3]uint8{0x10, 0x10, 0x40}, rgb)
	assert.True(t, adj.Bold)
}
