package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/phyten/todomark/internal/colorutil"
	"github.com/phyten/todomark/internal/keyword"
	"github.com/phyten/todomark/internal/termcolor"
)

var matchKeyMap = map[string]string{
	"keywords":            "keywords",
	"keyword":             "keywords",
	"punctuation":         "punctuation",
	"punct":               "punctuation",
	"require_punctuation": "require_punctuation",
	"text_kinds":          "text_kinds",
	"text_modes":          "text_kinds",
	"match_timeout":       "match_timeout",
	"timeout":             "match_timeout",
}

var scanKeyMap = map[string]string{
	"path":           "path",
	"paths":          "path",
	"exclude":        "exclude",
	"excludes":       "exclude",
	"lang":           "langs",
	"langs":          "langs",
	"jobs":           "jobs",
	"max_file_bytes": "max_file_bytes",
	"max_bytes":      "max_file_bytes",
	"oracle":         "oracle",
	"raw":            "raw",
	"no_prefilter":   "no_prefilter",
	"git":            "git",
}

var uiKeyMap = map[string]string{
	"output":       "output",
	"color":        "color",
	"fields":       "fields",
	"sort":         "sort",
	"min_contrast": "min_contrast",
}

func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	return Decode(data, filepath.Ext(path), path)
}

// Decode parses raw config bytes; ext selects the format.
func Decode(data []byte, ext, name string) (Config, error) {
	var cfg Config
	var raw map[string]any
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if decodeErr := yaml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", name, decodeErr)
		}
	case ".toml":
		if decodeErr := toml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", name, decodeErr)
		}
	case ".json":
		if decodeErr := json.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", name, decodeErr)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if raw == nil {
		return cfg, nil
	}
	decoded, err := decodeConfigMap(raw)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", name, err)
	}
	return decoded, nil
}

func decodeConfigMap(raw map[string]any) (Config, error) {
	var cfg Config
	matchSection := make(map[string]any)
	scanSection := make(map[string]any)
	uiSection := make(map[string]any)

	sections := []struct {
		name    string
		dst     map[string]any
		allowed map[string]string
	}{
		{"match", matchSection, matchKeyMap},
		{"scan", scanSection, scanKeyMap},
		{"ui", uiSection, uiKeyMap},
	}
	for _, s := range sections {
		block, ok := raw[s.name]
		if !ok {
			continue
		}
		sub, err := toStringKeyMap(block)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", s.name, err)
		}
		if err := fillSection(s.dst, sub, s.allowed, s.name); err != nil {
			return cfg, err
		}
	}

	for key, value := range raw {
		norm := normalizeKey(key)
		switch norm {
		case "match", "scan", "ui":
			continue
		default:
			if canonical, ok := matchKeyMap[norm]; ok {
				matchSection[canonical] = value
				continue
			}
			if canonical, ok := scanKeyMap[norm]; ok {
				scanSection[canonical] = value
				continue
			}
			if canonical, ok := uiKeyMap[norm]; ok {
				uiSection[canonical] = value
				continue
			}
			return cfg, fmt.Errorf("unknown config key: %s", key)
		}
	}

	if err := assignMatch(matchSection, &cfg.Match); err != nil {
		return cfg, fmt.Errorf("match: %w", err)
	}
	if err := assignScan(scanSection, &cfg.Scan); err != nil {
		return cfg, fmt.Errorf("scan: %w", err)
	}
	if err := assignUI(uiSection, &cfg.UI); err != nil {
		return cfg, fmt.Errorf("ui: %w", err)
	}
	return cfg, nil
}

func fillSection(dst, src map[string]any, allowed map[string]string, section string) error {
	for key, value := range src {
		canonical, ok := allowed[normalizeKey(key)]
		if !ok {
			return fmt.Errorf("unknown %s key: %s", section, key)
		}
		dst[canonical] = value
	}
	return nil
}

func assignMatch(section map[string]any, dst *MatchConfig) error {
	for key, value := range section {
		switch key {
		case "keywords":
			entries, err := expectEntries(value, key)
			if err != nil {
				return err
			}
			dst.Keywords = &entries
		case "punctuation":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			dst.Punctuation = &str
		case "require_punctuation":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.RequirePunctuation = &b
		case "text_kinds":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.TextKinds = &list
		case "match_timeout":
			d, err := expectDuration(value, key)
			if err != nil {
				return err
			}
			dst.MatchTimeout = &d
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

func assignScan(section map[string]any, dst *ScanConfig) error {
	for key, value := range section {
		switch key {
		case "path":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Paths = &list
		case "exclude":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Excludes = &list
		case "langs":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Langs = &list
		case "jobs":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.Jobs = &n
		case "max_file_bytes":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.MaxFileBytes = &n
		case "oracle":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			dst.Oracle = &trimmed
		case "raw":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.Raw = &b
		case "no_prefilter":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.NoPrefilter = &b
		case "git":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.Git = &b
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

func assignUI(section map[string]any, dst *UIConfig) error {
	for key, value := range section {
		switch key {
		case "output", "color", "fields", "sort":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			switch key {
			case "output":
				dst.Output = &trimmed
			case "color":
				dst.Color = &trimmed
			case "fields":
				dst.Fields = &trimmed
			case "sort":
				dst.Sort = &trimmed
			}
		case "min_contrast":
			f, err := expectFloat(value, key)
			if err != nil {
				return err
			}
			dst.MinContrast = &f
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

// expectEntries accepts a list whose items are either "PATTERN=color"
// strings or maps with pattern, color and face keys.
func expectEntries(value any, field string) ([]keyword.Entry, error) {
	items, ok := value.([]any)
	if !ok {
		if s, isString := value.(string); isString {
			return keyword.ParseEntries(SplitMulti([]string{s}))
		}
		return nil, fmt.Errorf("expected list for %s, got %T", field, value)
	}
	out := make([]keyword.Entry, 0, len(items))
	for i, item := range items {
		label := fmt.Sprintf("%s[%d]", field, i)
		switch v := item.(type) {
		case string:
			e, err := keyword.ParseEntry(v)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", label, err)
			}
			out = append(out, e)
		default:
			m, err := toStringKeyMap(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", label, err)
			}
			e, err := decodeEntryMap(m, label)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
	}
	return out, nil
}

func decodeEntryMap(m map[string]any, label string) (keyword.Entry, error) {
	var e keyword.Entry
	for key, value := range m {
		switch normalizeKey(key) {
		case "pattern", "keyword":
			s, err := expectString(value, label+".pattern")
			if err != nil {
				return e, err
			}
			e.Pattern = s
		case "color":
			s, err := expectString(value, label+".color")
			if err != nil {
				return e, err
			}
			e.Style.Color = strings.TrimSpace(s)
		case "face":
			sub, err := toStringKeyMap(value)
			if err != nil {
				return e, fmt.Errorf("%s.face: %w", label, err)
			}
			face, err := decodeFace(sub, label+".face")
			if err != nil {
				return e, err
			}
			e.Style.Face = &face
		default:
			return e, fmt.Errorf("unknown %s key: %s", label, key)
		}
	}
	if e.Pattern == "" {
		return e, fmt.Errorf("%s: missing pattern", label)
	}
	return e, nil
}

// decodeFace builds a complete style; a face is used as-is, so it starts
// from the empty style rather than the bold base.
func decodeFace(m map[string]any, label string) (termcolor.Style, error) {
	var s termcolor.Style
	for key, value := range m {
		norm := normalizeKey(key)
		switch norm {
		case "bold", "italic", "underline", "dim":
			b, err := expectBool(value, label+"."+norm)
			if err != nil {
				return s, err
			}
			switch norm {
			case "bold":
				s.Bold = b
			case "italic":
				s.Italic = b
			case "underline":
				s.Underline = b
			case "dim":
				s.Dim = b
			}
		case "fg", "foreground", "color":
			str, err := expectString(value, label+".fg")
			if err != nil {
				return s, err
			}
			rgb, err := colorutil.Parse(str)
			if err != nil {
				return s, fmt.Errorf("%s.fg: %w", label, err)
			}
			s = s.WithRGB(rgb.Array())
		default:
			return s, fmt.Errorf("unknown %s key: %s", label, key)
		}
	}
	return s, nil
}

func expectString(value any, field string) (string, error) {
	if value == nil {
		return "", fmt.Errorf("%s cannot be null", field)
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("expected string for %s, got %T", field, value)
}

func expectBool(value any, field string) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return ParseBool(v, field)
	default:
		return false, fmt.Errorf("expected bool for %s, got %T", field, value)
	}
}

func expectInt(value any, field string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("expected integer for %s, got %v", field, value)
		}
		return int(v), nil
	case json.Number:
		n, err := strconv.Atoi(v.String())
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %v", field, value)
		}
		return n, nil
	case string:
		return parseInt(v, field)
	default:
		return 0, fmt.Errorf("expected integer for %s, got %T", field, value)
	}
}

func expectFloat(value any, field string) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		return parseFloat(v, field)
	default:
		return 0, fmt.Errorf("expected number for %s, got %T", field, value)
	}
}

// expectDuration accepts numbers as seconds and strings in Go duration
// syntax.
func expectDuration(value any, field string) (time.Duration, error) {
	switch v := value.(type) {
	case string:
		return ParseDuration(v, field)
	case int, int64, float64:
		secs, err := expectFloat(v, field)
		if err != nil {
			return 0, err
		}
		if secs < 0 {
			return 0, fmt.Errorf("%s must not be negative", field)
		}
		return time.Duration(secs * float64(time.Second)), nil
	default:
		return 0, fmt.Errorf("expected duration for %s, got %T", field, value)
	}
}

func expectStringList(value any, field string) ([]string, error) {
	switch v := value.(type) {
	case string:
		parts := SplitMulti([]string{v})
		return normalizeList(parts), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, err := expectString(item, field)
			if err != nil {
				return nil, err
			}
			out = append(out, str)
		}
		return normalizeList(out), nil
	case []string:
		return normalizeList(v), nil
	default:
		return nil, fmt.Errorf("expected string or list for %s, got %T", field, value)
	}
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func toStringKeyMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, value := range typed {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key: %v", k)
			}
			out[key] = value
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected map, got %T", v)
	}
}

func normalizeKey(key string) string {
	norm := strings.ToLower(strings.TrimSpace(key))
	norm = strings.ReplaceAll(norm, "-", "_")
	return norm
}
