// Package wordclass decides which runes belong to a word for keyword
// boundary purposes.
package wordclass

import (
	"strings"
	"unicode"
)

// Class is a word-constituent table: Unicode letters and digits plus a set
// of extra runes promoted to word class.
type Class struct {
	extra []rune
}

// Default is the prose table with '?' promoted to word class, so "TODO?"
// is one word and "???" never splits into boundaries.
func Default() Class {
	return Class{extra: []rune{'?'}}
}

// New returns a class with the given runes promoted to word class.
func New(extra ...rune) Class {
	return Class{extra: append([]rune(nil), extra...)}
}

// IsWord reports whether r is a word constituent.
func (c Class) IsWord(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.N, r) {
		return true
	}
	for _, e := range c.extra {
		if r == e {
			return true
		}
	}
	return false
}

// RegexpClass renders the class as a bracket expression.
func (c Class) RegexpClass() string {
	return "[" + c.body() + "]"
}

// NegatedRegexpClass renders the complement of the class.
func (c Class) NegatedRegexpClass() string {
	return "[^" + c.body() + "]"
}

func (c Class) body() string {
	var b strings.Builder
	b.WriteString(`\p{L}\p{N}`)
	for _, r := range c.extra {
		b.WriteString(EscapeClassRune(r))
	}
	return b.String()
}

// EscapeClassRune escapes r for use inside a bracket expression.
func EscapeClassRune(r rune) string {
	switch r {
	case '\\', ']', '[', '^', '-':
		return `\` + string(r)
	case '\t':
		return `\t`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	}
	return string(r)
}
