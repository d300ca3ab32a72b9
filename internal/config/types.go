package config

import (
	"runtime"
	"time"

	"github.com/phyten/todomark/internal/keyword"
)

const maxJobs = 64

// MatchConfig is one layer of keyword settings; nil means "not set here".
type MatchConfig struct {
	Keywords           *[]keyword.Entry
	Punctuation        *string
	RequirePunctuation *bool
	TextKinds          *[]string
	MatchTimeout       *time.Duration
}

type ScanConfig struct {
	Paths        *[]string
	Excludes     *[]string
	Langs        *[]string
	Jobs         *int
	MaxFileBytes *int
	Oracle       *string
	Raw          *bool
	NoPrefilter  *bool
	Git          *bool
}

type UIConfig struct {
	Output      *string
	Color       *string
	Fields      *string
	Sort        *string
	MinContrast *float64
}

type Config struct {
	Match MatchConfig
	Scan  ScanConfig
	UI    UIConfig
}

type MatchSettings struct {
	Keywords           []keyword.Entry
	Punctuation        string
	RequirePunctuation bool
	TextKinds          []string
	MatchTimeout       time.Duration
}

// KeywordConfig converts the settings into the immutable keyword
// configuration the pattern compiler consumes.
func (m MatchSettings) KeywordConfig() keyword.Config {
	return keyword.Config{
		Entries:            append([]keyword.Entry(nil), m.Keywords...),
		Punctuation:        m.Punctuation,
		RequirePunctuation: m.RequirePunctuation,
		TextKinds:          cloneStrings(m.TextKinds),
	}
}

type ScanSettings struct {
	Paths        []string
	Excludes     []string
	Langs        []string
	Jobs         int
	MaxFileBytes int
	Oracle       string
	Raw          bool
	NoPrefilter  bool
	Git          bool
}

type UISettings struct {
	Output      string
	Color       string
	Fields      string
	Sort        string
	MinContrast float64
}

type Settings struct {
	Match MatchSettings
	Scan  ScanSettings
	UI    UISettings
}

func DefaultMatchSettings() MatchSettings {
	def := keyword.DefaultConfig()
	return MatchSettings{
		Keywords:           def.Entries,
		Punctuation:        def.Punctuation,
		RequirePunctuation: def.RequirePunctuation,
		TextKinds:          def.TextKinds,
		MatchTimeout:       2 * time.Second,
	}
}

func DefaultScanSettings() ScanSettings {
	jobs := runtime.NumCPU()
	if jobs < 1 {
		jobs = 1
	}
	if jobs > maxJobs {
		jobs = maxJobs
	}
	return ScanSettings{
		Paths:        []string{"."},
		Jobs:         jobs,
		MaxFileBytes: 4 << 20,
		Oracle:       "auto",
	}
}

func DefaultUISettings() UISettings {
	return UISettings{
		Output: "table",
		Color:  "auto",
	}
}

func Defaults() Settings {
	return Settings{
		Match: DefaultMatchSettings(),
		Scan:  DefaultScanSettings(),
		UI:    DefaultUISettings(),
	}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
