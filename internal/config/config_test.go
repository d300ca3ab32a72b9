package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/phyten/todomark/internal/keyword"
)

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func boolPtr(b bool) *bool { return &b }

func stringsPtr(values ...string) *[]string {
	copied := append([]string(nil), values...)
	return &copied
}

func entriesPtr(values ...keyword.Entry) *[]keyword.Entry {
	copied := append([]keyword.Entry(nil), values...)
	return &copied
}

func TestMergeScanPrecedence(t *testing.T) {
	base := ScanSettings{Oracle: "auto", Jobs: 2, Paths: []string{"base"}, MaxFileBytes: 10}

	fileCfg := ScanConfig{Oracle: strPtr("syntax"), Paths: stringsPtr("file"), Raw: boolPtr(true)}
	envCfg := ScanConfig{Paths: stringsPtr("env"), Git: boolPtr(true)}
	flagCfg := ScanConfig{Paths: stringsPtr("flag"), Jobs: intPtr(8), Raw: boolPtr(false)}

	merged := MergeScan(base, fileCfg, envCfg, flagCfg)

	if merged.Oracle != "syntax" {
		t.Fatalf("expected Oracle syntax, got %q", merged.Oracle)
	}
	if !reflect.DeepEqual(merged.Paths, []string{"flag"}) {
		t.Fatalf("unexpected paths: %v", merged.Paths)
	}
	if merged.Raw {
		t.Fatal("expected Raw false after flag override")
	}
	if !merged.Git {
		t.Fatal("expected Git true from env layer")
	}
	if merged.Jobs != 8 {
		t.Fatalf("expected Jobs 8, got %d", merged.Jobs)
	}
	if merged.MaxFileBytes != 10 {
		t.Fatalf("expected MaxFileBytes kept, got %d", merged.MaxFileBytes)
	}
}

func TestMergeMatchReplacesKeywordList(t *testing.T) {
	base := DefaultMatchSettings()
	fileCfg := MatchConfig{Keywords: entriesPtr(keyword.Entry{Pattern: "NOTE"}, keyword.Entry{Pattern: "TODO"})}
	envCfg := MatchConfig{Punctuation: strPtr(" "), MatchTimeout: func() *time.Duration { d := time.Second; return &d }()}

	merged := MergeMatch(base, fileCfg, envCfg)
	if len(merged.Keywords) != 2 || merged.Keywords[0].Pattern != "NOTE" {
		t.Fatalf("expected file keyword list to replace defaults, got %+v", merged.Keywords)
	}
	if merged.Punctuation != " " {
		t.Fatalf("punctuation must be kept verbatim, got %q", merged.Punctuation)
	}
	if merged.MatchTimeout != time.Second {
		t.Fatalf("unexpected timeout %v", merged.MatchTimeout)
	}
	if len(base.Keywords) != len(keyword.DefaultEntries()) {
		t.Fatal("merge must not modify the base settings")
	}
}

func TestMergeUIPrecedence(t *testing.T) {
	base := DefaultUISettings()

	fileCfg := UIConfig{Output: strPtr("json"), Sort: strPtr("file")}
	envCfg := UIConfig{Output: strPtr("tsv")}
	flagCfg := UIConfig{Fields: strPtr("keyword,location")}

	merged := MergeUI(base, fileCfg, envCfg, flagCfg)
	if merged.Output != "tsv" {
		t.Fatalf("expected output tsv, got %q", merged.Output)
	}
	if merged.Sort != "file" {
		t.Fatalf("expected sort from file, got %q", merged.Sort)
	}
	if merged.Fields != "keyword,location" {
		t.Fatalf("unexpected fields %q", merged.Fields)
	}
	if merged.Color != "auto" {
		t.Fatalf("expected color auto, got %q", merged.Color)
	}
}

func TestFromEnv(t *testing.T) {
	env := map[string]string{
		"TODOMARK_KEYWORDS":            "TODO=#cc9393,FIXME=red,XXX+",
		"TODOMARK_PUNCTUATION":         ":!",
		"TODOMARK_REQUIRE_PUNCTUATION": "yes",
		"TODOMARK_TEXT_KINDS":          "text,markdown",
		"TODOMARK_MATCH_TIMEOUT":       "250ms",
		"TODOMARK_PATH":                "src,cmd",
		"TODOMARK_EXCLUDE":             "vendor,dist",
		"TODOMARK_LANGS":               "go,py",
		"TODOMARK_JOBS":                "128",
		"TODOMARK_MAX_FILE_BYTES":      "8192",
		"TODOMARK_ORACLE":              "treesitter",
		"TODOMARK_RAW":                 "1",
		"TODOMARK_NO_PREFILTER":        "on",
		"TODOMARK_GIT":                 "false",
		"TODOMARK_OUTPUT":              "ndjson",
		"TODOMARK_COLOR":               "never",
		"TODOMARK_FIELDS":              "keyword,file",
		"TODOMARK_SORT":                "-line",
		"TODOMARK_MIN_CONTRAST":        "4.5",
	}
	cfg, err := FromEnv(func(key string) string { return env[key] })
	if err != nil {
		t.Fatalf("FromEnv returned error: %v", err)
	}
	want := []keyword.Entry{
		{Pattern: "TODO", Style: keyword.StyleRef{Color: "#cc9393"}},
		{Pattern: "FIXME", Style: keyword.StyleRef{Color: "red"}},
		{Pattern: "XXX+"},
	}
	if cfg.Match.Keywords == nil || !reflect.DeepEqual(*cfg.Match.Keywords, want) {
		t.Fatalf("unexpected keywords: %+v", cfg.Match.Keywords)
	}
	if cfg.Match.Punctuation == nil || *cfg.Match.Punctuation != ":!" {
		t.Fatalf("unexpected punctuation: %v", cfg.Match.Punctuation)
	}
	if cfg.Match.RequirePunctuation == nil || !*cfg.Match.RequirePunctuation {
		t.Fatal("expected RequirePunctuation true")
	}
	if cfg.Match.TextKinds == nil || !reflect.DeepEqual(*cfg.Match.TextKinds, []string{"text", "markdown"}) {
		t.Fatalf("unexpected text kinds: %v", cfg.Match.TextKinds)
	}
	if cfg.Match.MatchTimeout == nil || *cfg.Match.MatchTimeout != 250*time.Millisecond {
		t.Fatalf("unexpected timeout: %v", cfg.Match.MatchTimeout)
	}
	if cfg.Scan.Paths == nil || !reflect.DeepEqual(*cfg.Scan.Paths, []string{"src", "cmd"}) {
		t.Fatalf("unexpected paths: %v", cfg.Scan.Paths)
	}
	if cfg.Scan.Excludes == nil || !reflect.DeepEqual(*cfg.Scan.Excludes, []string{"vendor", "dist"}) {
		t.Fatalf("unexpected excludes: %v", cfg.Scan.Excludes)
	}
	if cfg.Scan.Langs == nil || !reflect.DeepEqual(*cfg.Scan.Langs, []string{"go", "py"}) {
		t.Fatalf("unexpected langs: %v", cfg.Scan.Langs)
	}
	if cfg.Scan.Jobs == nil || *cfg.Scan.Jobs != 128 {
		t.Fatalf("expected Jobs 128, got %+v", cfg.Scan.Jobs)
	}
	if cfg.Scan.MaxFileBytes == nil || *cfg.Scan.MaxFileBytes != 8192 {
		t.Fatalf("unexpected max_file_bytes: %+v", cfg.Scan.MaxFileBytes)
	}
	if cfg.Scan.Oracle == nil || *cfg.Scan.Oracle != "treesitter" {
		t.Fatalf("unexpected oracle: %v", cfg.Scan.Oracle)
	}
	if cfg.Scan.Raw == nil || !*cfg.Scan.Raw {
		t.Fatal("expected Raw true")
	}
	if cfg.Scan.NoPrefilter == nil || !*cfg.Scan.NoPrefilter {
		t.Fatal("expected NoPrefilter true")
	}
	if cfg.Scan.Git == nil || *cfg.Scan.Git {
		t.Fatal("expected Git false")
	}
	if cfg.UI.Output == nil || *cfg.UI.Output != "ndjson" {
		t.Fatalf("unexpected output: %v", cfg.UI.Output)
	}
	if cfg.UI.Color == nil || *cfg.UI.Color != "never" {
		t.Fatalf("unexpected color: %v", cfg.UI.Color)
	}
	if cfg.UI.Fields == nil || *cfg.UI.Fields != "keyword,file" {
		t.Fatalf("unexpected fields: %+v", cfg.UI.Fields)
	}
	if cfg.UI.Sort == nil || *cfg.UI.Sort != "-line" {
		t.Fatalf("unexpected sort: %+v", cfg.UI.Sort)
	}
	if cfg.UI.MinContrast == nil || *cfg.UI.MinContrast != 4.5 {
		t.Fatalf("unexpected min contrast: %v", cfg.UI.MinContrast)
	}
}

func TestFromEnvCollectsErrors(t *testing.T) {
	env := map[string]string{
		"TODOMARK_RAW":           "maybe",
		"TODOMARK_JOBS":          "many",
		"TODOMARK_MATCH_TIMEOUT": "soon",
	}
	_, err := FromEnv(func(key string) string { return env[key] })
	if err == nil {
		t.Fatal("expected error")
	}
	for _, key := range []string{"TODOMARK_RAW", "TODOMARK_JOBS", "TODOMARK_MATCH_TIMEOUT"} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("error %q should mention %s", err, key)
		}
	}
}

func TestLoadConfigFormats(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		".yaml": "match:\n  keywords:\n    - \"TODO=#cc9393\"\n    - pattern: FIXME\n      face:\n        bold: true\n        underline: true\n        fg: \"#ff0000\"\n  punctuation: \":\"\n  match_timeout: 1.5\nscan:\n  jobs: 3\n  oracle: syntax\nui:\n  min_contrast: 3\n",
		".toml": "keywords = [\"NOTE\", {pattern = \"HACK\", color = \"orange\"}]\nrequire_punctuation = true\nmax_bytes = 2048\n[ui]\noutput = \"json\"\n",
		".json": "{\n  \"match\": {\"keywords\": [\"TODO\"], \"text_kinds\": [\"text\"], \"match_timeout\": \"300ms\"},\n  \"no_prefilter\": true\n}\n",
	}

	for ext, content := range cases {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "config"+ext)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if cfg.Match.Keywords == nil {
				t.Fatal("expected keywords to be set")
			}
			entries := *cfg.Match.Keywords
			switch ext {
			case ".yaml":
				if len(entries) != 2 {
					t.Fatalf("yaml keywords: %+v", entries)
				}
				if entries[0].Style.Color != "#cc9393" {
					t.Fatalf("yaml color mismatch: %+v", entries[0])
				}
				face := entries[1].Style.Face
				if face == nil || !face.Bold || !face.Underline || face.Italic {
					t.Fatalf("yaml face mismatch: %+v", face)
				}
				if face.FGTrue == nil || *face.FGTrue != [3]uint8{255, 0, 0} {
					t.Fatalf("yaml face fg mismatch: %+v", face.FGTrue)
				}
				if cfg.Match.Punctuation == nil || *cfg.Match.Punctuation != ":" {
					t.Fatalf("yaml punctuation mismatch: %q", ptrString(cfg.Match.Punctuation))
				}
				if cfg.Match.MatchTimeout == nil || *cfg.Match.MatchTimeout != 1500*time.Millisecond {
					t.Fatalf("yaml timeout mismatch: %v", cfg.Match.MatchTimeout)
				}
				if ptrInt(cfg.Scan.Jobs) != 3 {
					t.Fatalf("yaml jobs mismatch: %d", ptrInt(cfg.Scan.Jobs))
				}
				if ptrString(cfg.Scan.Oracle) != "syntax" {
					t.Fatalf("yaml oracle mismatch: %q", ptrString(cfg.Scan.Oracle))
				}
				if cfg.UI.MinContrast == nil || *cfg.UI.MinContrast != 3 {
					t.Fatalf("yaml min_contrast mismatch: %v", cfg.UI.MinContrast)
				}
			case ".toml":
				if len(entries) != 2 || entries[1].Pattern != "HACK" || entries[1].Style.Color != "orange" {
					t.Fatalf("toml keywords: %+v", entries)
				}
				if cfg.Match.RequirePunctuation == nil || !*cfg.Match.RequirePunctuation {
					t.Fatal("toml require_punctuation should be true")
				}
				if ptrInt(cfg.Scan.MaxFileBytes) != 2048 {
					t.Fatalf("toml max_bytes mismatch: %d", ptrInt(cfg.Scan.MaxFileBytes))
				}
				if ptrString(cfg.UI.Output) != "json" {
					t.Fatalf("toml output mismatch: %q", ptrString(cfg.UI.Output))
				}
			case ".json":
				if len(entries) != 1 || entries[0].Pattern != "TODO" {
					t.Fatalf("json keywords: %+v", entries)
				}
				if cfg.Match.TextKinds == nil || !reflect.DeepEqual(*cfg.Match.TextKinds, []string{"text"}) {
					t.Fatalf("json text_kinds mismatch: %v", cfg.Match.TextKinds)
				}
				if cfg.Match.MatchTimeout == nil || *cfg.Match.MatchTimeout != 300*time.Millisecond {
					t.Fatalf("json timeout mismatch: %v", cfg.Match.MatchTimeout)
				}
				if cfg.Scan.NoPrefilter == nil || !*cfg.Scan.NoPrefilter {
					t.Fatal("json no_prefilter should be true")
				}
			}
		})
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"unknown key":    "unknown: value\n",
		"unknown face":   "keywords:\n  - pattern: TODO\n    face:\n      blink: true\n",
		"missing patern": "keywords:\n  - color: red\n",
		"bad fg":         "keywords:\n  - pattern: TODO\n    face:\n      fg: notacolor\n",
		"bad section":    "scan:\n  keywords: [TODO]\n",
	}
	dir := t.TempDir()
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(name, " ", "_")+".yaml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestFindOrder(t *testing.T) {
	repoRoot := filepath.Join(t.TempDir(), "repo")
	if mkErr := os.MkdirAll(filepath.Join(repoRoot, "sub", "dir"), 0o755); mkErr != nil {
		t.Fatalf("mkdir: %v", mkErr)
	}
	repoConfig := filepath.Join(repoRoot, ".todomark.yaml")
	if writeErr := os.WriteFile(repoConfig, []byte("keywords: [TODO]\n"), 0o644); writeErr != nil {
		t.Fatalf("write repo config: %v", writeErr)
	}
	path, where, err := Find(filepath.Join(repoRoot, "sub", "dir"), "", "", "")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if path != repoConfig || where != "cwd-up" {
		t.Fatalf("unexpected result: path=%s where=%s", path, where)
	}

	explicitDir := t.TempDir()
	explicit := filepath.Join(explicitDir, "custom.toml")
	if writeErr := os.WriteFile(explicit, []byte("keywords=['FIXME']\n"), 0o644); writeErr != nil {
		t.Fatalf("write explicit: %v", writeErr)
	}
	path, where, err = Find(repoRoot, explicit, "", "")
	if err != nil {
		t.Fatalf("Find explicit failed: %v", err)
	}
	if path != explicit || where != "explicit" {
		t.Fatalf("expected explicit config, got path=%s where=%s", path, where)
	}
	if _, _, err := Find(repoRoot, explicitDir, "", ""); err == nil {
		t.Fatal("expected error for explicit directory")
	}

	xdgHome := t.TempDir()
	if mkErr := os.MkdirAll(filepath.Join(xdgHome, "todomark"), 0o755); mkErr != nil {
		t.Fatalf("mkdir xdg: %v", mkErr)
	}
	xdgPath := filepath.Join(xdgHome, "todomark", "config.json")
	if writeErr := os.WriteFile(xdgPath, []byte("{}"), 0o644); writeErr != nil {
		t.Fatalf("write xdg: %v", writeErr)
	}
	path, where, err = Find(t.TempDir(), "", xdgHome, "")
	if err != nil {
		t.Fatalf("Find xdg failed: %v", err)
	}
	if path != xdgPath || where != "xdg" {
		t.Fatalf("expected xdg config, got path=%s where=%s", path, where)
	}

	homeDir := t.TempDir()
	homePath := filepath.Join(homeDir, ".todomark.toml")
	if writeErr := os.WriteFile(homePath, []byte("keywords=['NOTE']\n"), 0o644); writeErr != nil {
		t.Fatalf("write home: %v", writeErr)
	}
	path, where, err = Find(t.TempDir(), "", filepath.Join(t.TempDir(), "empty"), homeDir)
	if err != nil {
		t.Fatalf("Find home failed: %v", err)
	}
	if path != homePath || where != "home" {
		t.Fatalf("expected home config, got path=%s where=%s", path, where)
	}
}

func TestLoadSettingsLayers(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".todomark.yaml"), []byte("keywords: [\"NOTE=#d0bf8f\", TODO]\noutput: json\njobs: 2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TODOMARK_OUTPUT=csv\nTODOMARK_JOBS=3\n"), 0o644); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	env := map[string]string{"TODOMARK_JOBS": "4"}
	settings, src, err := LoadSettings(Request{
		StartDir: dir,
		XDGHome:  filepath.Join(dir, "xdg"),
		Home:     filepath.Join(dir, "home"),
		Getenv:   func(k string) string { return env[k] },
		Flags:    Config{UI: UIConfig{Sort: strPtr("-line")}},
	})
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if src.FileOrigin != "cwd-up" || src.Dotenv == "" {
		t.Fatalf("unexpected sources: %+v", src)
	}
	if len(settings.Match.Keywords) != 2 || settings.Match.Keywords[0].Pattern != "NOTE" {
		t.Fatalf("unexpected keywords: %+v", settings.Match.Keywords)
	}
	if settings.UI.Output != "csv" {
		t.Fatalf("dotenv should override the file, got %q", settings.UI.Output)
	}
	if settings.Scan.Jobs != 4 {
		t.Fatalf("process env should override dotenv, got %d", settings.Scan.Jobs)
	}
	if settings.UI.Sort != "-line" {
		t.Fatalf("flags should apply last, got %q", settings.UI.Sort)
	}
	kw := settings.Match.KeywordConfig()
	if len(kw.Entries) != 2 || !kw.IsTextKind("markdown") {
		t.Fatalf("unexpected keyword config: %+v", kw)
	}
}

func TestNormalize(t *testing.T) {
	values := Defaults()
	values.UI.Output = " MD "
	values.UI.Color = "ALWAYS"
	values.UI.Fields = " keyword,file "
	values.Scan.Oracle = "tree-sitter"
	values.Scan.Langs = []string{"GO", "go", "py"}
	values.Match.TextKinds = []string{"Markdown", "txt"}
	normalized, err := Normalize(values)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if normalized.UI.Output != "markdown" {
		t.Fatalf("expected markdown, got %q", normalized.UI.Output)
	}
	if normalized.UI.Color != "always" {
		t.Fatalf("expected always, got %q", normalized.UI.Color)
	}
	if normalized.UI.Fields != "keyword,file" {
		t.Fatalf("expected fields trimmed, got %q", normalized.UI.Fields)
	}
	if normalized.Scan.Oracle != "treesitter" {
		t.Fatalf("expected treesitter, got %q", normalized.Scan.Oracle)
	}
	if !reflect.DeepEqual(normalized.Scan.Langs, []string{"go", "python"}) {
		t.Fatalf("unexpected langs %v", normalized.Scan.Langs)
	}
	if !reflect.DeepEqual(normalized.Match.TextKinds, []string{"markdown", "text"}) {
		t.Fatalf("unexpected text kinds %v", normalized.Match.TextKinds)
	}

	bad := []func(*Settings){
		func(s *Settings) { s.Scan.Jobs = 0 },
		func(s *Settings) { s.Scan.Jobs = 65 },
		func(s *Settings) { s.Scan.Oracle = "lsp" },
		func(s *Settings) { s.UI.Output = "xml" },
		func(s *Settings) { s.UI.Color = "sometimes" },
		func(s *Settings) { s.UI.MinContrast = 30 },
		func(s *Settings) { s.Match.MatchTimeout = -time.Second },
	}
	for i, mutate := range bad {
		s := Defaults()
		mutate(&s)
		if _, err := Normalize(s); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestParseHelpers(t *testing.T) {
	if v, err := ParseBool(" On ", "x"); err != nil || !v {
		t.Fatalf("ParseBool on: %v %v", v, err)
	}
	if _, err := ParseBool("2", "x"); err == nil {
		t.Fatal("expected ParseBool error")
	}
	if _, err := ParseIntInRange("0", "jobs", 1, 64); err == nil {
		t.Fatal("expected range error")
	}
	if d, err := ParseDuration("2", "t"); err != nil || d != 2*time.Second {
		t.Fatalf("ParseDuration seconds: %v %v", d, err)
	}
	if _, err := ParseDuration("-1s", "t"); err == nil {
		t.Fatal("expected negative duration error")
	}
	if got := SplitMulti([]string{"a, b", "", "c,,"}); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("SplitMulti: %v", got)
	}
}

func ptrString(v *string) string {
	if v == nil {
		return "<nil>"
	}
	return *v
}

func ptrInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
