package session

import (
	"bytes"
	"errors"
	"log"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phyten/todomark/internal/buffer"
	"github.com/phyten/todomark/internal/keyword"
	"github.com/phyten/todomark/internal/matcher"
	"github.com/phyten/todomark/internal/model"
)

func entries(patterns ...string) keyword.Config {
	cfg := keyword.DefaultConfig()
	cfg.Entries = nil
	for _, p := range patterns {
		cfg.Entries = append(cfg.Entries, keyword.Entry{Pattern: p})
	}
	return cfg
}

func TestNewRejectsInvalidPattern(t *testing.T) {
	_, err := New(entries("TODO", "(unclosed"), Options{})
	var invalid *keyword.InvalidPatternError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, 1, invalid.Index)
}

func TestReconfigureKeepsPreviousOnInvalidPattern(t *testing.T) {
	var logs bytes.Buffer
	s, err := New(entries("TODO"), Options{Logger: log.New(&logs, "", 0)})
	require.NoError(t, err)
	before := s.Snapshot()

	err = s.Reconfigure(entries("[bad"))
	require.Error(t, err)
	assert.Same(t, before, s.Snapshot())
	assert.Contains(t, logs.String(), "keeping previous keywords")

	require.NoError(t, s.Reconfigure(entries("FIXME")))
	after := s.Snapshot()
	assert.Equal(t, before.Generation+1, after.Generation)
	assert.Equal(t, "FIXME", after.Compiled.Entries()[0].Pattern)
}

func TestEmptyKeywordsDisableMatching(t *testing.T) {
	s, err := New(entries(keyword.Sentinel), Options{})
	require.NoError(t, err)
	snap := s.Snapshot()
	assert.False(t, snap.Enabled())

	buf := buffer.New("a.txt", "text", "TODO everywhere")
	c := snap.Cursor(buf)
	_, ok := c.Search(model.Forward, matcher.NoBound)
	assert.False(t, ok)
	assert.NoError(t, c.Err())
}

func TestOracleSelection(t *testing.T) {
	src := "package a\n\nfunc f() {\n\tx := 1 // TODO: a\n\ty := \"TODO\"\n\tTODO()\n}\n"
	for _, mode := range []string{OracleAuto, OracleSyntax, OracleTreeSitter} {
		t.Run(mode, func(t *testing.T) {
			s, err := New(entries("TODO"), Options{Oracle: mode})
			require.NoError(t, err)
			buf := buffer.New("a.go", "go", src)
			got, err := matcher.Collect(s.Snapshot().Cursor(buf))
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, buf.IndexFrom(0, "TODO: a"), got[0].Start)
		})
	}
}

func TestOraclesAgreeOnLatin1Source(t *testing.T) {
	src := []byte("package x\n\nvar s = \"caf\xe9\xe9\xe9\xe9\"\nvar TODO = 1 // ok\n")
	for _, mode := range []string{OracleAuto, OracleSyntax, OracleTreeSitter} {
		t.Run(mode, func(t *testing.T) {
			s, err := New(entries("TODO"), Options{Oracle: mode})
			require.NoError(t, err)
			got, err := matcher.Collect(s.Snapshot().Cursor(buffer.FromBytes("x.go", "go", src)))
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestTextKindAcceptsEverywhere(t *testing.T) {
	s, err := New(entries("TODO"), Options{})
	require.NoError(t, err)
	buf := buffer.New("notes.md", "markdown", "TODO first\nthen TODO again\n")
	got, err := matcher.Collect(s.Snapshot().Cursor(buf))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestConcurrentReaders(t *testing.T) {
	s, err := New(entries("TODO"), Options{})
	require.NoError(t, err)
	buf := buffer.New("a.txt", "text", "TODO TODO TODO")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := matcher.Collect(s.Snapshot().Cursor(buf))
			assert.NoError(t, err)
			assert.NotEmpty(t, got)
		}()
	}
	require.NoError(t, s.Reconfigure(entries("TODO", "NOTE")))
	wg.Wait()
}
