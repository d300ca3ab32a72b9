// Package pattern compiles a keyword configuration into the regular
// expressions used to find, classify and style keyword occurrences.
package pattern

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/phyten/todomark/internal/keyword"
	"github.com/phyten/todomark/internal/model"
	"github.com/phyten/todomark/internal/wordclass"
)

const (
	groupFull    = "full"
	groupKeyword = "kw"
)

// Option tweaks compilation.
type Option func(*options)

type options struct {
	class   wordclass.Class
	timeout time.Duration
}

// WithTimeout bounds every single regex evaluation. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithClass overrides the word-constituent table.
func WithClass(c wordclass.Class) Option {
	return func(o *options) { o.class = c }
}

// Compiled is the immutable product of Compile. It is safe for concurrent
// use.
type Compiled struct {
	entries  []keyword.Entry
	source   string
	forward  *regexp2.Regexp
	anchored *regexp2.Regexp
	reverse  *regexp2.Regexp
	exact    []*regexp2.Regexp
	class    wordclass.Class
	timeout  time.Duration
}

// Compile builds the keyword matcher for cfg. Sentinel entries are dropped
// first; an empty result yields keyword.ErrEmpty and any entry that does not
// compile on its own fails the whole build with *keyword.InvalidPatternError.
func Compile(cfg keyword.Config, opts ...Option) (*Compiled, error) {
	o := options{class: wordclass.Default()}
	for _, fn := range opts {
		fn(&o)
	}
	entries := cfg.Sanitized()
	if len(entries) == 0 {
		return nil, keyword.ErrEmpty
	}

	exact := make([]*regexp2.Regexp, len(entries))
	alts := make([]string, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.Pattern) == "" {
			return nil, &keyword.InvalidPatternError{Entry: e, Index: i, Err: errEmptyPattern}
		}
		if _, err := regexp2.Compile(e.Pattern, regexp2.ExplicitCapture); err != nil {
			return nil, &keyword.InvalidPatternError{Entry: e, Index: i, Err: err}
		}
		re, err := regexp2.Compile(`\A(?:`+e.Pattern+`)\z`, regexp2.ExplicitCapture)
		if err != nil {
			return nil, &keyword.InvalidPatternError{Entry: e, Index: i, Err: err}
		}
		re.MatchTimeout = timeoutOrDefault(o.timeout)
		exact[i] = re
		alts[i] = "(?:" + e.Pattern + ")"
	}

	src := buildSource(alts, cfg.Punctuation, cfg.RequirePunctuation, o.class)
	forward, err := regexp2.Compile(src, regexp2.ExplicitCapture)
	if err != nil {
		return nil, &keyword.InvalidPatternError{Entry: entries[0], Index: 0, Err: err}
	}
	anchored, err := regexp2.Compile(`\G(?:`+src+`)`, regexp2.ExplicitCapture)
	if err != nil {
		return nil, &keyword.InvalidPatternError{Entry: entries[0], Index: 0, Err: err}
	}
	reverse, err := regexp2.Compile(src, regexp2.ExplicitCapture|regexp2.RightToLeft)
	if err != nil {
		return nil, &keyword.InvalidPatternError{Entry: entries[0], Index: 0, Err: err}
	}
	forward.MatchTimeout = timeoutOrDefault(o.timeout)
	anchored.MatchTimeout = timeoutOrDefault(o.timeout)
	reverse.MatchTimeout = timeoutOrDefault(o.timeout)

	return &Compiled{
		entries:  entries,
		source:   src,
		forward:  forward,
		anchored: anchored,
		reverse:  reverse,
		exact:    exact,
		class:    o.class,
		timeout:  o.timeout,
	}, nil
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return regexp2.DefaultMatchTimeout
	}
	return d
}

func buildSource(alts []string, punct string, requirePunct bool, class wordclass.Class) string {
	word := class.RegexpClass()
	var b strings.Builder
	b.WriteString("(?<!" + word + ")(?=" + word + ")")
	b.WriteString("(?<" + groupFull + ">")
	b.WriteString("(?<" + groupKeyword + ">")
	b.WriteString(strings.Join(alts, "|"))
	b.WriteString(")")
	b.WriteString(`(?:(?!` + word + `)|\?(?!` + word + `))`)
	if set := punctClass(punct); set != "" {
		b.WriteString(set)
		if requirePunct {
			b.WriteString("+")
		} else {
			b.WriteString("*")
		}
	}
	b.WriteString(")")
	return b.String()
}

func punctClass(punct string) string {
	if punct == "" {
		return ""
	}
	seen := make(map[rune]bool, len(punct))
	var b strings.Builder
	for _, r := range punct {
		if seen[r] {
			continue
		}
		seen[r] = true
		b.WriteString(wordclass.EscapeClassRune(r))
	}
	return "[" + b.String() + "]"
}

// Source returns the regular expression used for forward search.
func (c *Compiled) Source() string { return c.source }

// Entries returns the sanitized entries in priority order.
func (c *Compiled) Entries() []keyword.Entry {
	return append([]keyword.Entry(nil), c.entries...)
}

// Timeout returns the per-evaluation limit, zero when unbounded.
func (c *Compiled) Timeout() time.Duration { return c.timeout }

// FindFrom returns the first occurrence starting at or after pos.
func (c *Compiled) FindFrom(text []rune, pos int) (model.Match, bool, error) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(text) {
		return model.Match{}, false, nil
	}
	m, err := c.forward.FindRunesMatchStartingAt(text, pos)
	if err != nil || m == nil {
		return model.Match{}, false, err
	}
	return toMatch(m), true, nil
}

// MatchAt returns the occurrence starting exactly at pos, if any.
func (c *Compiled) MatchAt(text []rune, pos int) (model.Match, bool, error) {
	if pos < 0 || pos >= len(text) {
		return model.Match{}, false, nil
	}
	m, err := c.anchored.FindRunesMatchStartingAt(text, pos)
	if err != nil || m == nil || m.Index != pos {
		return model.Match{}, false, err
	}
	return toMatch(m), true, nil
}

// LastEnd returns the largest end of any occurrence lying entirely before
// pos. Starts are not reliable in right-to-left mode, so callers confirm
// candidates with MatchAt.
func (c *Compiled) LastEnd(text []rune, pos int) (int, bool, error) {
	if pos > len(text) {
		pos = len(text)
	}
	if pos <= 0 {
		return 0, false, nil
	}
	m, err := c.reverse.FindRunesMatchStartingAt(text, pos)
	if err != nil || m == nil {
		return 0, false, err
	}
	return toMatch(m).End, true, nil
}

// CanStartAt reports whether pos is a word start, the only place an
// occurrence may begin.
func (c *Compiled) CanStartAt(text []rune, pos int) bool {
	if pos < 0 || pos >= len(text) || !c.class.IsWord(text[pos]) {
		return false
	}
	return pos == 0 || !c.class.IsWord(text[pos-1])
}

// All returns every occurrence in text, left to right, without overlap.
func (c *Compiled) All(text []rune) ([]model.Match, error) {
	var out []model.Match
	pos := 0
	for pos <= len(text) {
		m, ok, err := c.FindFrom(text, pos)
		if err != nil {
			return out, err
		}
		if !ok {
			break
		}
		out = append(out, m)
		next := m.End
		if next <= m.Start {
			next = m.Start + 1
		}
		pos = next
	}
	return out, nil
}

// EntryFor returns the index of the first entry whose pattern matches the
// whole of text.
func (c *Compiled) EntryFor(text string) (int, bool) {
	for i, re := range c.exact {
		ok, err := re.MatchString(text)
		if err == nil && ok {
			return i, true
		}
	}
	return -1, false
}

func toMatch(m *regexp2.Match) model.Match {
	full := m.GroupByName(groupFull)
	kw := m.GroupByName(groupKeyword)
	start, end := m.Index, m.Index+m.Length
	if full != nil && len(full.Captures) > 0 {
		start, end = full.Index, full.Index+full.Length
	}
	out := model.Match{Start: start, End: end}
	if kw != nil && len(kw.Captures) > 0 {
		out.Keyword = kw.String()
		fullText := m.String()
		if full != nil && len(full.Captures) > 0 {
			fullText = full.String()
		}
		out.Punct = strings.TrimPrefix(fullText, out.Keyword)
	}
	return out
}
