package treesitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phyten/todomark/internal/buffer"
	"github.com/phyten/todomark/internal/model"
)

func TestSupports(t *testing.T) {
	assert.True(t, Supports("go"))
	assert.True(t, Supports(" Python "))
	assert.False(t, Supports("cobol"))
	assert.Equal(t, []string{"go", "javascript", "python"}, Languages())
}

func TestGoRegions(t *testing.T) {
	src := "package x\n\n// TODO: one\nvar s = \"TODO in string\"\nvar TODO = 1\n/* FIXME */\n"
	b := buffer.New("x.go", "go", src)
	o, err := NewOracle(b, false)
	require.NoError(t, err)

	comment := b.IndexFrom(0, "TODO: one")
	str := b.IndexFrom(0, "TODO in string")
	code := b.IndexFrom(0, "TODO = 1")
	block := b.IndexFrom(0, "FIXME")

	assert.True(t, o.InsideCommentOrString(comment))
	assert.Equal(t, model.MatchKindComment, o.KindAt(comment))
	assert.True(t, o.InsideCommentOrString(str))
	assert.Equal(t, model.MatchKindString, o.KindAt(str))
	assert.False(t, o.InsideCommentOrString(code))
	assert.True(t, o.InsideCommentOrString(block))
}

func TestRuneOffsetsAfterMultibyteText(t *testing.T) {
	src := "s = \"日本語\"\n# TODO: later\n"
	b := buffer.New("x.py", "python", src)
	regions, err := Regions(b)
	require.NoError(t, err)
	require.Len(t, regions, 2)

	todo := b.IndexFrom(0, "TODO")
	assert.Equal(t, model.MatchKindComment, regions[1].Kind)
	assert.LessOrEqual(t, regions[1].Start, todo)
	assert.Equal(t, "# TODO: later", b.Slice(regions[1].Start, regions[1].End))
	assert.Equal(t, "\"日本語\"", b.Slice(regions[0].Start, regions[0].End))
}

func TestInvalidUTF8KeepsRegionsAligned(t *testing.T) {
	src := "package x\n\nvar s = \"caf\xe9\xe9\xe9\xe9\"\nvar TODO = 1 // ok\n"
	b := buffer.FromBytes("x.go", "go", []byte(src))
	o, err := NewOracle(b, false)
	require.NoError(t, err)

	code := b.IndexFrom(0, "TODO = 1")
	require.GreaterOrEqual(t, code, 0)
	assert.False(t, o.InsideCommentOrString(code))
	assert.True(t, o.InsideCommentOrString(b.IndexFrom(0, "// ok")))
	assert.True(t, o.InsideCommentOrString(b.IndexFrom(0, "caf")))
}

func TestJavaScriptTemplateString(t *testing.T) {
	b := buffer.New("x.js", "javascript", "const a = `TODO here`;\nTODO();\n")
	o, err := NewOracle(b, false)
	require.NoError(t, err)
	assert.True(t, o.InsideCommentOrString(b.IndexFrom(0, "TODO here")))
	assert.False(t, o.InsideCommentOrString(b.IndexFrom(0, "TODO()")))
}

func TestUnsupportedKind(t *testing.T) {
	_, err := NewOracle(buffer.New("x.lua", "lua", "-- TODO"), false)
	assert.Error(t, err)

	o, err := NewOracle(buffer.New("x.md", "markdown", "TODO"), true)
	require.NoError(t, err)
	assert.True(t, o.TextLike())
}
