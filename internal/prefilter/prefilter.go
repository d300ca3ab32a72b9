// Package prefilter skips files that cannot contain any keyword before the
// regular expression runs. It searches for the literal prefix of every
// pattern at once with an Aho-Corasick automaton.
package prefilter

import (
	"strings"

	aho "github.com/petar-dambovaliev/aho-corasick"

	"github.com/phyten/todomark/internal/keyword"
)

const metaChars = `\.+*?()[]{}|^$`

// Filter answers MayMatch for raw file contents. A disabled filter passes
// everything.
type Filter struct {
	automaton aho.AhoCorasick
	prefixes  []string
	enabled   bool
}

// New builds a filter for the sanitized entries of cfg. It is disabled when
// some pattern has no literal prefix, since such a pattern could match text
// the automaton never sees.
func New(cfg keyword.Config) *Filter {
	entries := cfg.Sanitized()
	if len(entries) == 0 {
		return &Filter{}
	}
	seen := make(map[string]struct{}, len(entries))
	prefixes := make([]string, 0, len(entries))
	for _, e := range entries {
		p := LiteralPrefix(e.Pattern)
		if p == "" {
			return &Filter{}
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		prefixes = append(prefixes, p)
	}
	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		DFA: true,
	})
	return &Filter{
		automaton: builder.Build(prefixes),
		prefixes:  prefixes,
		enabled:   true,
	}
}

func (f *Filter) Enabled() bool { return f != nil && f.enabled }

// Prefixes returns the literal needles in entry order.
func (f *Filter) Prefixes() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.prefixes...)
}

// MayMatch reports whether data contains at least one needle.
func (f *Filter) MayMatch(data []byte) bool {
	if !f.Enabled() {
		return true
	}
	iter := f.automaton.IterOverlappingByte(data)
	return iter.Next() != nil
}

// LiteralPrefix returns the leading run of pattern that every match must
// start with, or "" when there is none. A character followed by an optional
// quantifier is not part of the prefix.
func LiteralPrefix(pattern string) string {
	if strings.ContainsRune(pattern, '|') {
		return ""
	}
	runes := []rune(pattern)
	end := 0
	for end < len(runes) && !strings.ContainsRune(metaChars, runes[end]) {
		end++
	}
	if end < len(runes) && end > 0 {
		switch runes[end] {
		case '*', '?', '{':
			end--
		}
	}
	return string(runes[:end])
}
