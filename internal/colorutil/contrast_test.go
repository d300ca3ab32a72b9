package colorutil

import "testing"

func TestContrastRatio(t *testing.T) {
	cases := []struct {
		name     string
		fg, bg   RGB
		minRatio float64
	}{
		{"blackOnWhite", RGB{0, 0, 0}, RGB{255, 255, 255}, 4.5},
		{"whiteOnBlack", RGB{255, 255, 255}, RGB{0, 0, 0}, 4.5},
		{"darkRedOnWhite", RGB{185, 28, 28}, RGB{255, 255, 255}, 4.5},
		{"amberOnBlack", RGB{245, 158, 11}, RGB{17, 24, 39}, 4.5},
	}
	for _, tc := range cases {
		ratio := ContrastRatio(tc.fg, tc.bg)
		if ratio < tc.minRatio {
			t.Fatalf("%s contrast ratio %.2f < %.2f", tc.name, ratio, tc.minRatio)
		}
	}
}

func TestAutoTextColor(t *testing.T) {
	cases := []struct {
		name string
		bg   RGB
		want RGB
	}{
		{"lightBackground", RGB{255, 247, 237}, black},
		{"darkBackground", RGB{15, 23, 42}, white},
		{"medium", RGB{120, 113, 108}, white},
	}
	for _, tc := range cases {
		got := AutoTextColor(tc.bg)
		if got != tc.want {
			t.Fatalf("%s AutoTextColor=%v want %v", tc.name, got, tc.want)
		}
	}
}

func TestEnsureContrastPrefersAutoWhenNeeded(t *testing.T) {
	bg := RGB{255, 255, 255}
	fg := RGB{255, 0, 0}
	ensured := EnsureContrast(fg, bg, 4.5)
	if ContrastRatio(ensured, bg) < 4.5 {
		t.Fatalf("expected EnsureContrast to meet ratio, got %.2f", ContrastRatio(ensured, bg))
	}
}

func TestEnsureContrastKeepsHue(t *testing.T) {
	bg := RGB{30, 30, 30}
	fg := RGB{0x8c, 0x53, 0x53}
	ensured := EnsureContrast(fg, bg, 4.5)
	if ContrastRatio(ensured, bg) < 4.5 {
		t.Fatalf("ratio not met: %.2f", ContrastRatio(ensured, bg))
	}
	if ensured == white {
		t.Fatalf("expected a blended color, got plain white")
	}
	if ensured.R <= ensured.G || ensured.R <= ensured.B {
		t.Fatalf("expected red to stay dominant, got %v", ensured)
	}
	if got := EnsureContrast(white, bg, 4.5); got != white {
		t.Fatalf("already contrasting colors must be kept, got %v", got)
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want RGB
	}{
		{"#cc9393", RGB{0xcc, 0x93, 0x93}},
		{"#CC9393", RGB{0xcc, 0x93, 0x93}},
		{"#fff", RGB{255, 255, 255}},
		{"  #000000 ", RGB{0, 0, 0}},
		{"red", RGB{255, 0, 0}},
		{"White", RGB{255, 255, 255}},
		{"dark orange", RGB{255, 140, 0}},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q)=%v want %v", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"", "#12", "#zzzzzz", "not-a-color"} {
		if _, err := Parse(bad); err == nil {
			t.Fatalf("Parse(%q) should fail", bad)
		}
	}
}

func TestHex(t *testing.T) {
	if got := (RGB{0xcc, 0x93, 0x93}).Hex(); got != "#cc9393" {
		t.Fatalf("Hex()=%q", got)
	}
}

func TestLuminanceBounds(t *testing.T) {
	if got := Luminance(black); got != 0 {
		t.Fatalf("Luminance(black)=%v want 0", got)
	}
	if got := Luminance(white); got < 0.999 || got > 1.001 {
		t.Fatalf("Luminance(white)=%v want 1", got)
	}
	if r := ContrastRatio(black, white); r < 20.9 || r > 21.1 {
		t.Fatalf("ContrastRatio(black, white)=%v want 21", r)
	}
}
