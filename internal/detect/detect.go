// Package detect maps file names and contents to normalized language names,
// which double as buffer kinds.
package detect

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Source tells how a language was determined.
type Source string

const (
	SourceNone     Source = ""
	SourceOverride Source = "override"
	SourcePath     Source = "path"
	SourceShebang  Source = "shebang"
	SourceContent  Source = "content"
)

type Info struct {
	Name   string
	Source Source
}

// Detect resolves the kind of a file. A non-empty override wins.
func Detect(p string, data []byte, override string) Info {
	if name := NormalizeLangName(override); name != "" {
		return Info{Name: name, Source: SourceOverride}
	}
	return FromPathAndContent(p, data)
}

func FromPathAndContent(p string, data []byte) Info {
	name := detectByPath(p)
	if name != "" {
		if strings.EqualFold(filepath.Ext(p), ".m") && name == "objective-c" && looksLikeMatlab(data) {
			return Info{Name: "matlab", Source: SourceContent}
		}
		return Info{Name: name, Source: SourcePath}
	}
	if shebang := detectByShebang(data); shebang != "" {
		return Info{Name: shebang, Source: SourceShebang}
	}
	return Info{}
}

func detectByPath(p string) string {
	base := strings.ToLower(filepath.Base(p))
	if lang, ok := basenameLanguages[base]; ok {
		return lang
	}
	ext := filepath.Ext(base)
	if lang, ok := extensionLanguages[ext]; ok && ext != "" {
		return lang
	}
	// compound names such as "Dockerfile.prod" or "main.go.orig"
	stem := strings.TrimSuffix(base, ext)
	if ext == "" || stem == "" {
		return ""
	}
	if lang, ok := basenameLanguages[stem]; ok {
		return lang
	}
	return extensionLanguages[filepath.Ext(stem)]
}

func detectByShebang(data []byte) string {
	if !bytes.HasPrefix(data, []byte("#!")) {
		return ""
	}
	end := bytes.IndexByte(data, '\n')
	if end == -1 {
		end = len(data)
	}
	fields := strings.Fields(strings.ToLower(string(data[2:end])))
	if len(fields) == 0 {
		return ""
	}
	interp := filepath.Base(fields[0])
	if interp == "env" {
		for _, f := range fields[1:] {
			if !strings.HasPrefix(f, "-") {
				interp = f
				break
			}
		}
	}
	if lang, ok := shebangLanguages[interp]; ok {
		return lang
	}
	// versioned interpreters such as python3.12
	trimmed := strings.TrimRight(interp, "0123456789.")
	return shebangLanguages[trimmed]
}

func NormalizeLangName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}
	if canon, ok := langAliases[n]; ok {
		return canon
	}
	return n
}

// MatchesLang reports whether info passes an allow list; an empty list
// allows everything.
func MatchesLang(info Info, allow []string) bool {
	if len(allow) == 0 {
		return true
	}
	detected := NormalizeLangName(info.Name)
	if detected == "" {
		return false
	}
	for _, raw := range allow {
		if NormalizeLangName(raw) == detected {
			return true
		}
	}
	return false
}

func CanonicalLangs(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, raw := range values {
		norm := NormalizeLangName(raw)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}

func looksLikeMatlab(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	sample := data
	if len(sample) > 4096 {
		sample = sample[:4096]
	}
	sawMatlabKeyword := false
	for _, line := range strings.Split(string(sample), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "%") {
			continue
		}
		lower := strings.ToLower(trimmed)
		if strings.HasPrefix(lower, "@interface") || strings.HasPrefix(lower, "@implementation") || strings.HasPrefix(lower, "#import") {
			return false
		}
		if strings.HasPrefix(lower, "function") || strings.HasPrefix(lower, "classdef") {
			return true
		}
		if strings.HasPrefix(lower, "properties") || strings.HasPrefix(lower, "methods") {
			sawMatlabKeyword = true
		}
	}
	return sawMatlabKeyword
}
