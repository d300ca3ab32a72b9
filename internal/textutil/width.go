// Package textutil measures and fits text by terminal display width.
package textutil

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// ANSI escape sequences (covers common CSI and OSC forms).
var ansiRe = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)

// StripANSI removes SGR and OSC sequences.
func StripANSI(s string) string {
	if s == "" {
		return ""
	}
	if !strings.ContainsRune(s, 0x1b) {
		return s
	}
	return ansiRe.ReplaceAllString(s, "")
}

// VisibleWidth returns terminal display width (wcwidth-based).
func VisibleWidth(s string) int {
	if s == "" {
		return 0
	}
	g := uniseg.NewGraphemes(StripANSI(s))
	width := 0
	for g.Next() {
		width += runewidth.StringWidth(g.Str())
	}
	return width
}

// DisplayColumn converts a 1-based rune column of line into the 1-based
// screen column where that rune is drawn. Tabs advance to the next
// multiple of tabWidth.
func DisplayColumn(line string, runeCol, tabWidth int) int {
	if runeCol <= 1 {
		return 1
	}
	if tabWidth <= 0 {
		tabWidth = 8
	}
	col := 0
	idx := 0
	for _, r := range line {
		if idx >= runeCol-1 {
			break
		}
		if r == '\t' {
			col += tabWidth - col%tabWidth
		} else {
			col += runewidth.RuneWidth(r)
		}
		idx++
	}
	// columns past the end of line count as single cells
	col += runeCol - 1 - idx
	return col + 1
}

// TruncateByWidth truncates s to fit width w without breaking graphemes.
// If truncation happens and ellipsis is not empty, append it when it fits.
func TruncateByWidth(s string, w int, ellipsis string) string {
	if s == "" || w <= 0 {
		return ""
	}
	if VisibleWidth(s) <= w {
		return s
	}
	g := uniseg.NewGraphemes(StripANSI(s))
	var segs []string
	var widths []int
	used := 0
	ellW := runewidth.StringWidth(ellipsis)
	for g.Next() {
		seg := g.Str()
		segW := runewidth.StringWidth(seg)
		if used+segW > w {
			if ellipsis == "" || ellW > w {
				return strings.Join(segs, "")
			}
			for len(segs) > 0 && used+ellW > w {
				used -= widths[len(widths)-1]
				segs = segs[:len(segs)-1]
				widths = widths[:len(widths)-1]
			}
			if used+ellW > w {
				return strings.Join(segs, "")
			}
			return strings.Join(segs, "") + ellipsis
		}
		segs = append(segs, seg)
		widths = append(widths, segW)
		used += segW
	}
	return strings.Join(segs, "")
}

// PadRight pads s on the right with spaces so that the visible width equals w.
func PadRight(s string, w int) string {
	pad := w - VisibleWidth(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}

// PadLeft pads s on the left with spaces so that the visible width equals w.
func PadLeft(s string, w int) string {
	pad := w - VisibleWidth(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

// ColumnWidths returns the widest visible cell of every column.
func ColumnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			for len(widths) <= i {
				widths = append(widths, 0)
			}
			if w := VisibleWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}
