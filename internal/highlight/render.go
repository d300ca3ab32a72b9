package highlight

import (
	"bufio"
	"io"
	"sort"

	"github.com/phyten/todomark/internal/buffer"
	"github.com/phyten/todomark/internal/colorutil"
	"github.com/phyten/todomark/internal/termcolor"
)

// Painter adapts resolved styles to the output terminal.
type Painter struct {
	Enabled     bool
	Profile     termcolor.Profile
	Scheme      termcolor.Scheme
	MinContrast float64
}

// Background is the assumed terminal background for a scheme.
func Background(s termcolor.Scheme) colorutil.RGB {
	if s == termcolor.SchemeLight {
		return colorutil.RGB{R: 249, G: 250, B: 251}
	}
	return colorutil.RGB{R: 24, G: 24, B: 27}
}

// Adjust applies contrast correction and the color profile downgrade.
func (p Painter) Adjust(s termcolor.Style) termcolor.Style {
	if rgb, ok := s.RGB(); ok && p.MinContrast > 0 {
		fg := colorutil.RGB{R: rgb[0], G: rgb[1], B: rgb[2]}
		s = s.WithRGB(colorutil.EnsureContrast(fg, Background(p.Scheme), p.MinContrast).Array())
	}
	return s.ForProfile(p.Profile)
}

// Render writes the buffer with spans wrapped in SGR sequences. Overlapping
// spans are dropped after the first.
func (p Painter) Render(w io.Writer, buf *buffer.Buffer, spans Spans) error {
	bw := bufio.NewWriter(w)
	runes := buf.Runes()
	ordered := append(Spans(nil), spans...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })
	pos := 0
	for _, sp := range ordered {
		if sp.Start < pos || sp.End <= sp.Start || sp.End > len(runes) {
			continue
		}
		if _, err := bw.WriteString(string(runes[pos:sp.Start])); err != nil {
			return err
		}
		if _, err := bw.WriteString(termcolor.Apply(p.Adjust(sp.Style), string(runes[sp.Start:sp.End]), p.Enabled)); err != nil {
			return err
		}
		pos = sp.End
	}
	if _, err := bw.WriteString(string(runes[pos:])); err != nil {
		return err
	}
	return bw.Flush()
}
