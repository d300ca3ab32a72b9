// Package keyword holds the keyword configuration: the ordered list of
// marker patterns, the styles attached to them and the punctuation that may
// trail a marker.
package keyword

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/phyten/todomark/internal/termcolor"
)

// Sentinel is the legacy placeholder keyword. As a pattern it makes matching
// practically non-terminating, so it is removed before compilation.
const Sentinel = "???"

// StyleRef is either a plain color string or a full style descriptor.
type StyleRef struct {
	Color string
	Face  *termcolor.Style
}

// IsZero reports whether neither a color nor a face is set.
func (s StyleRef) IsZero() bool {
	return strings.TrimSpace(s.Color) == "" && s.Face == nil
}

func (s StyleRef) String() string {
	if s.Face != nil {
		return "face"
	}
	return s.Color
}

// Entry is one highlightable marker.
type Entry struct {
	Pattern string
	Style   StyleRef
}

// Literal reports whether the pattern matches only its own text, i.e.
// escaping it yields the same string.
func (e Entry) Literal() bool {
	return e.Pattern != "" && regexp2.Escape(e.Pattern) == e.Pattern
}

// Config is an immutable keyword configuration. Every change produces a new
// value; compiled patterns derived from it are never updated in place.
type Config struct {
	Entries            []Entry
	Punctuation        string
	RequirePunctuation bool
	TextKinds          []string
}

// Clone returns a deep copy so callers can derive a modified configuration.
func (c Config) Clone() Config {
	out := c
	out.Entries = append([]Entry(nil), c.Entries...)
	out.TextKinds = append([]string(nil), c.TextKinds...)
	return out
}

// Sanitized returns the entries in order with every sentinel entry removed.
func (c Config) Sanitized() []Entry {
	out := make([]Entry, 0, len(c.Entries))
	for _, e := range c.Entries {
		if e.Pattern == Sentinel {
			continue
		}
		out = append(out, e)
	}
	return out
}

// IsTextKind reports whether buffers of the given kind accept matches
// anywhere, regardless of lexical context.
func (c Config) IsTextKind(kind string) bool {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		return false
	}
	for _, k := range c.TextKinds {
		if strings.EqualFold(strings.TrimSpace(k), kind) {
			return true
		}
	}
	return false
}

// LiteralEntries returns the entries eligible for insertion.
func (c Config) LiteralEntries() []Entry {
	var out []Entry
	for _, e := range c.Sanitized() {
		if e.Literal() {
			out = append(out, e)
		}
	}
	return out
}

// ParseEntry parses the "PATTERN=color" shorthand used by flags and the
// environment. The text after the last '=' is a color only when it reads
// as one ("#rgb", "#rrggbb" or a name); otherwise the whole input is the
// pattern, so lookaheads such as "(?=X)" survive.
func ParseEntry(raw string) (Entry, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Entry{}, fmt.Errorf("empty keyword entry")
	}
	idx := strings.LastIndex(raw, "=")
	if idx <= 0 {
		return Entry{Pattern: raw}, nil
	}
	color := strings.TrimSpace(raw[idx+1:])
	if !looksLikeColor(color) {
		return Entry{Pattern: raw}, nil
	}
	pattern := strings.TrimSpace(raw[:idx])
	if pattern == "" {
		return Entry{}, fmt.Errorf("keyword entry %q has no pattern", raw)
	}
	return Entry{Pattern: pattern, Style: StyleRef{Color: color}}, nil
}

func looksLikeColor(s string) bool {
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) != 3 && len(hex) != 6 {
			return false
		}
		return strings.Trim(strings.ToLower(hex), "0123456789abcdef") == ""
	}
	if s == "" || !isASCIILetter(s[0]) {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isASCIILetter(c) && !(c >= '0' && c <= '9') && c != ' ' {
			return false
		}
	}
	return true
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// ParseEntries parses every shorthand entry, keeping order.
func ParseEntries(values []string) ([]Entry, error) {
	out := make([]Entry, 0, len(values))
	for _, v := range values {
		e, err := ParseEntry(v)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
