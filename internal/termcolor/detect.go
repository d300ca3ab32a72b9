package termcolor

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

type ColorMode int

const (
	ModeAuto ColorMode = iota
	ModeAlways
	ModeNever
)

func (m ColorMode) String() string {
	switch m {
	case ModeAlways:
		return "always"
	case ModeNever:
		return "never"
	default:
		return "auto"
	}
}

func ParseMode(v string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "auto":
		return ModeAuto, nil
	case "always", "force":
		return ModeAlways, nil
	case "never", "none", "off":
		return ModeNever, nil
	default:
		return ModeAuto, fmt.Errorf("unknown color mode: %s", v)
	}
}

type Profile int

const (
	ProfileBasic8 Profile = iota
	ProfileANSI256
	ProfileTrueColor
)

func (p Profile) String() string {
	switch p {
	case ProfileTrueColor:
		return "truecolor"
	case ProfileANSI256:
		return "256"
	default:
		return "basic"
	}
}

// ParseProfile accepts "truecolor"/"24bit", "256" and "basic"/"8".
func ParseProfile(v string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "truecolor", "24bit", "24-bit":
		return ProfileTrueColor, nil
	case "256", "256color", "ansi256":
		return ProfileANSI256, nil
	case "basic", "8", "16", "ansi":
		return ProfileBasic8, nil
	default:
		return ProfileBasic8, fmt.Errorf("unknown color profile: %s", v)
	}
}

// ProfileEnv overrides profile detection.
const ProfileEnv = "TODOMARK_COLOR_PROFILE"

func EnvMap(values []string) map[string]string {
	env := make(map[string]string, len(values))
	for _, entry := range values {
		if entry == "" {
			continue
		}
		if idx := strings.Index(entry, "="); idx >= 0 {
			env[entry[:idx]] = entry[idx+1:]
		} else {
			env[entry] = ""
		}
	}
	return env
}

// Terminal is everything a renderer needs to know about its output.
type Terminal struct {
	Enabled bool
	Profile Profile
	Scheme  Scheme
}

// Detect resolves mode against the environment and stdout.
func Detect(mode ColorMode, stdout *os.File, env map[string]string) Terminal {
	t := Terminal{Profile: DetectProfile(env), Scheme: DetectScheme(env)}
	switch mode {
	case ModeAlways:
		t.Enabled = true
	case ModeNever:
		t.Enabled = false
	default:
		t.Enabled = DetectMode(stdout, env) == ModeAlways
	}
	return t
}

// DetectMode determines the effective color mode for auto-detection.
//
// Priority order (first match wins):
//  1. TERM=dumb suppresses colors entirely.
//  2. NO_COLOR disables colors.
//  3. CLICOLOR=0 disables colors.
//  4. CLICOLOR_FORCE / FORCE_COLOR with any non-zero value force-enable colors.
//  5. Otherwise colors are emitted only when stdout is a TTY.
func DetectMode(stdout *os.File, env map[string]string) ColorMode {
	if v := strings.ToLower(strings.TrimSpace(env["TERM"])); v == "dumb" {
		return ModeNever
	}
	if strings.TrimSpace(env["NO_COLOR"]) != "" {
		return ModeNever
	}
	if strings.TrimSpace(env["CLICOLOR"]) == "0" {
		return ModeNever
	}
	if forceColor(env["CLICOLOR_FORCE"]) || forceColor(env["FORCE_COLOR"]) {
		return ModeAlways
	}
	if isTerminal(stdout) {
		return ModeAlways
	}
	return ModeNever
}

// DetectProfile picks the color depth. TODOMARK_COLOR_PROFILE wins, then
// COLORTERM truecolor/24bit, then a TERM ending in 256color. Anything else
// gets the basic eight colors.
func DetectProfile(env map[string]string) Profile {
	if v := strings.TrimSpace(env[ProfileEnv]); v != "" {
		if p, err := ParseProfile(v); err == nil {
			return p
		}
	}
	if v := strings.ToLower(strings.TrimSpace(env["COLORTERM"])); v != "" {
		if strings.Contains(v, "truecolor") || strings.Contains(v, "24bit") || strings.Contains(v, "24-bit") {
			return ProfileTrueColor
		}
	}
	if v := strings.ToLower(strings.TrimSpace(env["TERM"])); strings.Contains(v, "256color") {
		return ProfileANSI256
	}
	return ProfileBasic8
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func forceColor(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != "0"
}
