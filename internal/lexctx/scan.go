package lexctx

import (
	"github.com/phyten/todomark/internal/buffer"
	"github.com/phyten/todomark/internal/model"
)

// Scan walks the buffer once and returns the content ranges of every
// comment and string literal described by s. Delimiters themselves are not
// part of a region. Unterminated blocks run to the end of the buffer;
// unterminated single-line strings are ignored.
func Scan(b *buffer.Buffer, s Syntax) Regions {
	runes := b.Runes()
	n := len(runes)
	var out Regions
	i := 0
	for i < n {
		if blk, ok := blockAt(b, i, s.Blocks); ok {
			contentStart := i + runeLen(blk.Start)
			end := b.IndexFrom(contentStart, blk.End)
			if end < 0 {
				out = append(out, Region{Start: contentStart, End: n, Kind: blk.Kind})
				break
			}
			out = append(out, Region{Start: contentStart, End: end, Kind: blk.Kind})
			i = end + runeLen(blk.End)
			continue
		}
		if p, ok := prefixAt(b, i, s.LinePrefixes); ok {
			_, lineEnd := b.LineBounds(i)
			out = append(out, Region{Start: i + runeLen(p), End: lineEnd, Kind: model.MatchKindComment})
			i = lineEnd
			continue
		}
		if d, ok := prefixAt(b, i, s.Strings); ok && !isEscaped(runes, i) {
			contentStart := i + runeLen(d)
			end := closingDelimiter(runes, contentStart, d)
			if end >= 0 {
				out = append(out, Region{Start: contentStart, End: end, Kind: model.MatchKindString})
				i = end + runeLen(d)
				continue
			}
		}
		i++
	}
	return out.Normalize()
}

// NewSyntaxOracle scans b with its language's delimiter table.
func NewSyntaxOracle(b *buffer.Buffer, s Syntax, textLike bool) *RegionOracle {
	return NewRegionOracle(Scan(b, s), textLike)
}

// ForBuffer picks the table for the buffer's kind. Prose buffers accept
// everything and unknown kinds accept nothing.
func ForBuffer(b *buffer.Buffer, textLike bool) *RegionOracle {
	if textLike {
		return Text()
	}
	s, ok := SyntaxFor(b.Kind())
	if !ok {
		return None()
	}
	return NewSyntaxOracle(b, s, false)
}

func blockAt(b *buffer.Buffer, i int, blocks []Block) (Block, bool) {
	for _, blk := range blocks {
		if !b.HasPrefixAt(i, blk.Start) {
			continue
		}
		if blk.LineStart && !b.IsBlankBefore(i) {
			continue
		}
		return blk, true
	}
	return Block{}, false
}

func prefixAt(b *buffer.Buffer, i int, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if p != "" && b.HasPrefixAt(i, p) {
			return p, true
		}
	}
	return "", false
}

// closingDelimiter finds the unescaped closing delimiter on the same line.
func closingDelimiter(runes []rune, start int, delim string) int {
	d := []rune(delim)
	for i := start; i+len(d) <= len(runes); i++ {
		if runes[i] == '\n' {
			return -1
		}
		if !hasRunes(runes, i, d) {
			continue
		}
		if len(d) == 1 && isEscaped(runes, i) {
			continue
		}
		return i
	}
	return -1
}

func hasRunes(runes []rune, i int, d []rune) bool {
	for j, r := range d {
		if runes[i+j] != r {
			return false
		}
	}
	return true
}

func isEscaped(runes []rune, pos int) bool {
	count := 0
	for i := pos - 1; i >= 0 && runes[i] == '\\'; i-- {
		count++
	}
	return count%2 == 1
}

func runeLen(s string) int { return len([]rune(s)) }
