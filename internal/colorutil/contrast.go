package colorutil

// RGB is an 8-bit sRGB triple.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

var (
	black = RGB{0, 0, 0}
	white = RGB{255, 255, 255}
)

// DefaultMinContrast is the WCAG AA ratio for normal text.
const DefaultMinContrast = 4.5

const contrastSteps = 20

// Luminance is the WCAG relative luminance of c.
func Luminance(c RGB) float64 {
	r, g, b := c.colorful().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio returns the WCAG contrast ratio of two colors, from 1 to 21.
func ContrastRatio(fg, bg RGB) float64 {
	hi, lo := Luminance(fg), Luminance(bg)
	if hi < lo {
		hi, lo = lo, hi
	}
	return (hi + 0.05) / (lo + 0.05)
}

// AutoTextColor picks black or white, whichever reads better on bg.
func AutoTextColor(bg RGB) RGB {
	onBlack := ContrastRatio(black, bg)
	if onBlack >= DefaultMinContrast || onBlack >= ContrastRatio(white, bg) {
		return black
	}
	return white
}

// EnsureContrast moves fg toward the better of black and white in Lab
// space until it reaches minRatio against bg, keeping as much of its hue as
// possible.
func EnsureContrast(fg, bg RGB, minRatio float64) RGB {
	if minRatio <= 0 {
		minRatio = DefaultMinContrast
	}
	if ContrastRatio(fg, bg) >= minRatio {
		return fg
	}
	target := AutoTextColor(bg)
	from, to := fg.colorful(), target.colorful()
	for step := 1; step <= contrastSteps; step++ {
		candidate := fromColorful(from.BlendLab(to, float64(step)/contrastSteps))
		if ContrastRatio(candidate, bg) >= minRatio {
			return candidate
		}
	}
	return target
}
