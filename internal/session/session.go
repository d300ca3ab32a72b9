// Package session owns the live keyword configuration of one consumer: the
// compiled pattern, the style resolver and the file prefilter derived from
// it. Reconfiguration swaps all three together; readers take an immutable
// Snapshot.
package session

import (
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/phyten/todomark/internal/adapters/treesitter"
	"github.com/phyten/todomark/internal/buffer"
	"github.com/phyten/todomark/internal/highlight"
	"github.com/phyten/todomark/internal/keyword"
	"github.com/phyten/todomark/internal/lexctx"
	"github.com/phyten/todomark/internal/matcher"
	"github.com/phyten/todomark/internal/pattern"
	"github.com/phyten/todomark/internal/prefilter"
)

// Oracle backends.
const (
	OracleAuto       = "auto"
	OracleSyntax     = "syntax"
	OracleTreeSitter = "treesitter"
)

type Options struct {
	// Timeout bounds each regex evaluation; zero uses the library default.
	Timeout time.Duration
	// Oracle selects the lexical context backend.
	Oracle string
	Logger *log.Logger
}

type Session struct {
	mu      sync.RWMutex
	current *Snapshot
	opts    Options
	logger  *log.Logger
}

// Snapshot is one consistent generation of derived state.
type Snapshot struct {
	Config     keyword.Config
	Compiled   *pattern.Compiled
	Resolver   *highlight.Resolver
	Filter     *prefilter.Filter
	Generation int

	oracle string
	logger *log.Logger
}

// New compiles cfg. An invalid pattern is an error here because there is
// no previous configuration to fall back to; an empty keyword list is not.
func New(cfg keyword.Config, opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if opts.Oracle == "" {
		opts.Oracle = OracleAuto
	}
	s := &Session{opts: opts, logger: logger}
	snap, err := s.build(cfg, 1)
	if err != nil {
		return nil, err
	}
	s.current = snap
	return s, nil
}

// Reconfigure installs cfg. When a pattern is invalid the previous
// generation stays in force and the error is returned.
func (s *Session) Reconfigure(cfg keyword.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.build(cfg, s.current.Generation+1)
	if err != nil {
		s.logger.Printf("keeping previous keywords: %v", err)
		return err
	}
	s.current = next
	return nil
}

// Snapshot returns the current generation.
func (s *Session) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Session) build(cfg keyword.Config, gen int) (*Snapshot, error) {
	cfg = cfg.Clone()
	compiled, err := pattern.Compile(cfg, pattern.WithTimeout(s.opts.Timeout))
	switch {
	case errors.Is(err, keyword.ErrEmpty):
		s.logger.Printf("no keywords configured; matching disabled")
		compiled = nil
	case err != nil:
		return nil, err
	}
	return &Snapshot{
		Config:     cfg,
		Compiled:   compiled,
		Resolver:   highlight.NewResolver(compiled, s.logger),
		Filter:     prefilter.New(cfg),
		Generation: gen,
		oracle:     s.opts.Oracle,
		logger:     s.logger,
	}, nil
}

// Enabled reports whether any keyword can match.
func (sn *Snapshot) Enabled() bool { return sn.Compiled != nil }

// OracleFor builds the context oracle for buf. Prose kinds accept
// everything. With the auto backend tree-sitter is used when a grammar is
// compiled in; parse failures fall back to the delimiter table.
func (sn *Snapshot) OracleFor(buf *buffer.Buffer) lexctx.Oracle {
	textLike := sn.Config.IsTextKind(buf.Kind())
	if textLike {
		return lexctx.Text()
	}
	switch sn.oracle {
	case OracleAuto, OracleTreeSitter:
		if treesitter.Supports(buf.Kind()) {
			o, err := treesitter.NewOracle(buf, false)
			if err == nil {
				return o
			}
			sn.logger.Printf("%s: tree-sitter: %v", buf.Name(), err)
		}
	}
	return lexctx.ForBuffer(buf, false)
}

// Cursor returns a cursor over buf at offset 0.
func (sn *Snapshot) Cursor(buf *buffer.Buffer) *matcher.Cursor {
	return matcher.New(buf, sn.OracleFor(buf), sn.Compiled)
}
