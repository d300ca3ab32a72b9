package config

import (
	"fmt"
	"strings"

	"github.com/phyten/todomark/internal/detect"
	"github.com/phyten/todomark/internal/termcolor"
)

var outputFormats = map[string]struct{}{
	"table": {}, "tsv": {}, "json": {}, "ndjson": {}, "csv": {}, "markdown": {},
}

// NormalizeOutput validates and lower-cases the output format value.
func NormalizeOutput(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "md" {
		v = "markdown"
	}
	if _, ok := outputFormats[v]; ok {
		return v, nil
	}
	return "", fmt.Errorf("invalid output: %s", value)
}

// NormalizeOracle validates the lexical context backend.
func NormalizeOracle(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "", "auto":
		return "auto", nil
	case "syntax", "treesitter":
		return v, nil
	case "tree-sitter", "ts":
		return "treesitter", nil
	}
	return "", fmt.Errorf("invalid oracle: %s", value)
}

func NormalizeMatch(values MatchSettings) (MatchSettings, error) {
	if values.MatchTimeout < 0 {
		return values, fmt.Errorf("match_timeout must not be negative")
	}
	values.TextKinds = detect.CanonicalLangs(values.TextKinds)
	return values, nil
}

func NormalizeScan(values ScanSettings) (ScanSettings, error) {
	var err error
	if values.Jobs < 1 || values.Jobs > maxJobs {
		return values, fmt.Errorf("jobs must be between 1 and %d", maxJobs)
	}
	if values.MaxFileBytes < 0 {
		return values, fmt.Errorf("max_file_bytes must be >= 0")
	}
	values.Oracle, err = NormalizeOracle(values.Oracle)
	if err != nil {
		return values, err
	}
	values.Langs = detect.CanonicalLangs(values.Langs)
	if len(values.Paths) == 0 {
		values.Paths = []string{"."}
	}
	return values, nil
}

func NormalizeUI(values UISettings) (UISettings, error) {
	var err error
	values.Fields = strings.TrimSpace(values.Fields)
	values.Sort = strings.TrimSpace(values.Sort)
	values.Output, err = NormalizeOutput(values.Output)
	if err != nil {
		return values, err
	}
	mode, err := termcolor.ParseMode(values.Color)
	if err != nil {
		return values, err
	}
	values.Color = mode.String()
	if values.MinContrast < 0 || values.MinContrast > 21 {
		return values, fmt.Errorf("min_contrast must be between 0 and 21")
	}
	return values, nil
}

// Normalize validates every section.
func Normalize(s Settings) (Settings, error) {
	var err error
	if s.Match, err = NormalizeMatch(s.Match); err != nil {
		return s, err
	}
	if s.Scan, err = NormalizeScan(s.Scan); err != nil {
		return s, err
	}
	if s.UI, err = NormalizeUI(s.UI); err != nil {
		return s, err
	}
	return s, nil
}
