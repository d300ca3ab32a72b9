package termcolor

import (
	"fmt"
	"strings"
)

// Reset ends every SGR sequence produced by this package.
const Reset = "\x1b[0m"

type Style struct {
	Bold      bool
	Italic    bool
	Underline bool
	Dim       bool
	FGBasic   *int
	FG256     *int
	FGTrue    *[3]uint8
}

// Base is the face every color-only keyword style starts from.
func Base() Style {
	return Style{Bold: true}
}

func Apply(s Style, text string, enabled bool) string {
	if !enabled || text == "" {
		return text
	}
	prefix := SGR(s)
	if prefix == "" {
		return text
	}
	return prefix + text + Reset
}

// SGR returns the escape sequence that switches to s, or "" for the empty
// style.
func SGR(s Style) string {
	codes := sgrCodes(s)
	if len(codes) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func sgrCodes(s Style) []string {
	codes := make([]string, 0, 6)
	if s.Bold {
		codes = append(codes, "1")
	}
	if s.Dim {
		codes = append(codes, "2")
	}
	if s.Italic {
		codes = append(codes, "3")
	}
	if s.Underline {
		codes = append(codes, "4")
	}
	if s.FGTrue != nil {
		rgb := *s.FGTrue
		codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", rgb[0], rgb[1], rgb[2]))
	} else if s.FG256 != nil {
		codes = append(codes, fmt.Sprintf("38;5;%d", *s.FG256))
	} else if s.FGBasic != nil {
		codes = append(codes, fmt.Sprintf("3%d", *s.FGBasic))
	}
	return codes
}

// WithRGB returns a copy of s whose foreground is the given true color.
func (s Style) WithRGB(rgb [3]uint8) Style {
	out := s
	out.FGBasic, out.FG256 = nil, nil
	v := rgb
	out.FGTrue = &v
	return out
}

// RGB reports the true-color foreground, if any.
func (s Style) RGB() ([3]uint8, bool) {
	if s.FGTrue == nil {
		return [3]uint8{}, false
	}
	return *s.FGTrue, true
}

// IsZero reports whether s renders as plain text.
func (s Style) IsZero() bool {
	return len(sgrCodes(s)) == 0
}

// ForProfile downgrades a true-color foreground to what the terminal can
// show.
func (s Style) ForProfile(p Profile) Style {
	if s.FGTrue == nil || p == ProfileTrueColor {
		return s
	}
	rgb := *s.FGTrue
	out := s
	out.FGTrue = nil
	switch p {
	case ProfileANSI256:
		idx := rgbToANSI256(rgb[0], rgb[1], rgb[2])
		out.FG256 = &idx
	default:
		c := rgbToBasic(rgb[0], rgb[1], rgb[2])
		out.FGBasic = &c
	}
	return out
}

// String describes s in the notation accepted by config files.
func (s Style) String() string {
	var parts []string
	if s.Bold {
		parts = append(parts, "bold")
	}
	if s.Italic {
		parts = append(parts, "italic")
	}
	if s.Underline {
		parts = append(parts, "underline")
	}
	if s.Dim {
		parts = append(parts, "dim")
	}
	switch {
	case s.FGTrue != nil:
		rgb := *s.FGTrue
		parts = append(parts, fmt.Sprintf("fg=#%02x%02x%02x", rgb[0], rgb[1], rgb[2]))
	case s.FG256 != nil:
		parts = append(parts, fmt.Sprintf("fg=%d", *s.FG256))
	case s.FGBasic != nil:
		parts = append(parts, fmt.Sprintf("fg=basic%d", *s.FGBasic))
	}
	if len(parts) == 0 {
		return "default"
	}
	return strings.Join(parts, " ")
}
