// Package buffer provides the rune-indexed text a cursor walks over.
package buffer

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Buffer is an immutable rune slice with a kind (normalized language name)
// and line/column mapping. All offsets are rune indices.
type Buffer struct {
	name       string
	kind       string
	runes      []rune
	lineStarts []int
	byteStarts []int
	src        string
}

// New builds a buffer from text.
func New(name, kind, text string) *Buffer {
	b := &Buffer{name: name, kind: kind, src: text}
	b.runes = make([]rune, 0, utf8.RuneCountInString(text))
	b.byteStarts = make([]int, 0, cap(b.runes)+1)
	b.lineStarts = []int{0}
	for i, r := range text {
		b.byteStarts = append(b.byteStarts, i)
		b.runes = append(b.runes, r)
		if r == '\n' {
			b.lineStarts = append(b.lineStarts, len(b.runes))
		}
	}
	b.byteStarts = append(b.byteStarts, len(text))
	return b
}

// FromBytes builds a buffer from raw file contents.
func FromBytes(name, kind string, data []byte) *Buffer {
	return New(name, kind, string(data))
}

func (b *Buffer) Name() string { return b.name }
func (b *Buffer) Kind() string { return b.kind }
func (b *Buffer) Len() int     { return len(b.runes) }

// Runes exposes the backing slice. Callers must not modify it.
func (b *Buffer) Runes() []rune { return b.runes }

// RuneAt returns the rune at off, or utf8.RuneError when off is out of range.
func (b *Buffer) RuneAt(off int) rune {
	if off < 0 || off >= len(b.runes) {
		return utf8.RuneError
	}
	return b.runes[off]
}

// Slice returns the text between two offsets, clamped to the buffer.
func (b *Buffer) Slice(start, end int) string {
	start = b.Clamp(start)
	end = b.Clamp(end)
	if end <= start {
		return ""
	}
	return string(b.runes[start:end])
}

// String returns the whole text.
func (b *Buffer) String() string { return string(b.runes) }

// Clamp limits off to [0, Len()].
func (b *Buffer) Clamp(off int) int {
	if off < 0 {
		return 0
	}
	if off > len(b.runes) {
		return len(b.runes)
	}
	return off
}

// Position maps an offset to a 1-based line and rune column.
func (b *Buffer) Position(off int) (line, col int) {
	off = b.Clamp(off)
	idx := sort.Search(len(b.lineStarts), func(i int) bool { return b.lineStarts[i] > off })
	if idx == 0 {
		return 1, off + 1
	}
	return idx, off - b.lineStarts[idx-1] + 1
}

// Offset maps a 1-based line and column back to an offset, clamped to the
// line's extent.
func (b *Buffer) Offset(line, col int) int {
	if line < 1 {
		return 0
	}
	if line > len(b.lineStarts) {
		return len(b.runes)
	}
	start := b.lineStarts[line-1]
	end := b.lineEnd(line)
	if col < 1 {
		col = 1
	}
	off := start + col - 1
	if off > end {
		off = end
	}
	return off
}

// LineCount returns the number of lines; a trailing newline opens an empty
// last line.
func (b *Buffer) LineCount() int { return len(b.lineStarts) }

// Line returns the text of a 1-based line without its newline.
func (b *Buffer) Line(line int) string {
	if line < 1 || line > len(b.lineStarts) {
		return ""
	}
	return string(b.runes[b.lineStarts[line-1]:b.lineEnd(line)])
}

// LineBounds returns the offsets of the line containing off, excluding the
// newline.
func (b *Buffer) LineBounds(off int) (start, end int) {
	line, _ := b.Position(off)
	return b.lineStarts[line-1], b.lineEnd(line)
}

func (b *Buffer) lineEnd(line int) int {
	if line < len(b.lineStarts) {
		return b.lineStarts[line] - 1
	}
	return len(b.runes)
}

// Source returns the text exactly as given, invalid UTF-8 included. Byte
// offsets from ByteOffset and RuneOffset index into it.
func (b *Buffer) Source() []byte { return []byte(b.src) }

// ByteOffset converts a rune offset into a byte offset of the source text.
func (b *Buffer) ByteOffset(off int) int {
	return b.byteStarts[b.Clamp(off)]
}

// RuneOffset converts a byte offset of the source text into a rune offset.
// Offsets inside a multi-byte rune round down to the rune start.
func (b *Buffer) RuneOffset(byteOff int) int {
	if byteOff <= 0 {
		return 0
	}
	idx := sort.Search(len(b.byteStarts), func(i int) bool { return b.byteStarts[i] > byteOff })
	if idx == 0 {
		return 0
	}
	return idx - 1
}

// Span maps a rune range to line/column coordinates.
func (b *Buffer) Span(start, end int) (sl, sc, el, ec int) {
	sl, sc = b.Position(start)
	el, ec = b.Position(end)
	return sl, sc, el, ec
}

// HasPrefixAt reports whether the text at off starts with s.
func (b *Buffer) HasPrefixAt(off int, s string) bool {
	for _, r := range s {
		if off >= len(b.runes) || b.runes[off] != r {
			return false
		}
		off++
	}
	return true
}

// IndexFrom returns the offset of the first occurrence of s at or after
// off, or -1.
func (b *Buffer) IndexFrom(off int, s string) int {
	if s == "" {
		return b.Clamp(off)
	}
	first, _ := utf8.DecodeRuneInString(s)
	for i := b.Clamp(off); i < len(b.runes); i++ {
		if b.runes[i] == first && b.HasPrefixAt(i, s) {
			return i
		}
	}
	return -1
}

// IsBlankBefore reports whether only spaces and tabs precede off on its line.
func (b *Buffer) IsBlankBefore(off int) bool {
	start, _ := b.LineBounds(off)
	return strings.TrimLeft(string(b.runes[start:b.Clamp(off)]), " \t") == ""
}
