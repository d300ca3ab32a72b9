package config

import "strings"

// MergeMatch applies layers over base in order of increasing precedence.
func MergeMatch(base MatchSettings, layers ...MatchConfig) MatchSettings {
	out := base
	for _, layer := range layers {
		out.Keywords = resolveList(out.Keywords, layer.Keywords)
		// punctuation is taken verbatim: a space is a valid member
		out.Punctuation = resolve(out.Punctuation, layer.Punctuation)
		out.RequirePunctuation = resolve(out.RequirePunctuation, layer.RequirePunctuation)
		out.TextKinds = resolveList(out.TextKinds, layer.TextKinds)
		out.MatchTimeout = resolve(out.MatchTimeout, layer.MatchTimeout)
	}
	return out
}

func MergeScan(base ScanSettings, layers ...ScanConfig) ScanSettings {
	out := base
	for _, layer := range layers {
		out.Paths = resolveList(out.Paths, layer.Paths)
		out.Excludes = resolveList(out.Excludes, layer.Excludes)
		out.Langs = resolveList(out.Langs, layer.Langs)
		out.Jobs = resolve(out.Jobs, layer.Jobs)
		out.MaxFileBytes = resolve(out.MaxFileBytes, layer.MaxFileBytes)
		out.Oracle = resolveTrimmed(out.Oracle, layer.Oracle)
		out.Raw = resolve(out.Raw, layer.Raw)
		out.NoPrefilter = resolve(out.NoPrefilter, layer.NoPrefilter)
		out.Git = resolve(out.Git, layer.Git)
	}
	if strings.TrimSpace(out.Oracle) == "" {
		out.Oracle = "auto"
	}
	return out
}

func MergeUI(base UISettings, layers ...UIConfig) UISettings {
	out := base
	for _, layer := range layers {
		out.Output = resolveTrimmed(out.Output, layer.Output)
		out.Color = resolveTrimmed(out.Color, layer.Color)
		out.Fields = resolveTrimmed(out.Fields, layer.Fields)
		out.Sort = resolveTrimmed(out.Sort, layer.Sort)
		out.MinContrast = resolve(out.MinContrast, layer.MinContrast)
	}
	if strings.TrimSpace(out.Output) == "" {
		out.Output = "table"
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "auto"
	}
	return out
}

// Merge layers whole configs in order of increasing precedence.
func Merge(base Settings, layers ...Config) Settings {
	match := make([]MatchConfig, 0, len(layers))
	scan := make([]ScanConfig, 0, len(layers))
	ui := make([]UIConfig, 0, len(layers))
	for _, l := range layers {
		match = append(match, l.Match)
		scan = append(scan, l.Scan)
		ui = append(ui, l.UI)
	}
	return Settings{
		Match: MergeMatch(base.Match, match...),
		Scan:  MergeScan(base.Scan, scan...),
		UI:    MergeUI(base.UI, ui...),
	}
}
