package colorutil

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Parse accepts "#rgb", "#rrggbb" and color names ("red", "DarkOrange",
// "dark orange").
func Parse(s string) (RGB, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return RGB{}, fmt.Errorf("empty color")
	}
	if strings.HasPrefix(raw, "#") {
		c, err := colorful.Hex(strings.ToLower(raw))
		if err != nil {
			return RGB{}, fmt.Errorf("invalid hex color %q: %w", raw, err)
		}
		r, g, b := c.RGB255()
		return RGB{R: r, G: g, B: b}, nil
	}
	name := strings.ToLower(strings.Join(strings.Fields(raw), ""))
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return RGB{}, fmt.Errorf("unknown color %q", raw)
	}
	r, g, b := c.RGB()
	if r < 0 || g < 0 || b < 0 {
		return RGB{}, fmt.Errorf("color %q has no rgb value", raw)
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// Hex formats c as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Array converts c into the triple used by terminal styles.
func (c RGB) Array() [3]uint8 {
	return [3]uint8{c.R, c.G, c.B}
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}
