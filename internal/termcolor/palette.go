package termcolor

import (
	"strings"
)

func HeaderStyle() Style {
	return Style{Bold: true, Underline: true}
}

// KindStyle colors the region kind column of listings.
func KindStyle(kind string, scheme Scheme) Style {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "comment":
		color := 6
		if scheme == SchemeLight {
			color = 4
		}
		return Style{FGBasic: &color}
	case "string":
		color := 3
		if scheme == SchemeLight {
			color = 5
		}
		return Style{FGBasic: &color}
	case "text":
		return Style{Dim: true}
	default:
		return Style{}
	}
}

func rgbToANSI256(r, g, b uint8) int {
	if r == g && g == b {
		if r < 8 {
			return 16
		}
		if r > 248 {
			return 231
		}
		return 232 + (int(r)-8)*24/247
	}
	rr := int(r) * 5 / 255
	gg := int(g) * 5 / 255
	bb := int(b) * 5 / 255
	return 16 + 36*rr + 6*gg + bb
}

// rgbToBasic picks the closest of the eight ANSI colors by thresholding
// each channel against the brightest one.
func rgbToBasic(r, g, b uint8) int {
	maxc := r
	if g > maxc {
		maxc = g
	}
	if b > maxc {
		maxc = b
	}
	if maxc < 64 {
		return 0
	}
	threshold := uint8(int(maxc) * 3 / 5)
	code := 0
	if r >= threshold {
		code |= 1
	}
	if g >= threshold {
		code |= 2
	}
	if b >= threshold {
		code |= 4
	}
	return code
}
