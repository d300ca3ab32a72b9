package scan

import (
	"github.com/phyten/todomark/internal/execx"
	"github.com/phyten/todomark/internal/model"
	"github.com/phyten/todomark/internal/progress"
)

// Item は受理された 1 件のキーワード出現を表します。
type Item struct {
	File    string          `json:"file"`
	Lang    string          `json:"lang,omitempty"`
	Keyword string          `json:"keyword"`
	Punct   string          `json:"punct,omitempty"`
	Kind    model.MatchKind `json:"kind"`
	Line    int             `json:"line"`
	Col     int             `json:"col"`
	Span    model.Span      `json:"span"`
	Context string          `json:"context,omitempty"`
	Style   string          `json:"style,omitempty"`
}

// Text はキーワードと句読点を連結した一致文字列です。
func (it Item) Text() string { return it.Keyword + it.Punct }

// ItemError は 1 ファイルの処理に失敗した際の情報を表します。
type ItemError struct {
	File    string `json:"file"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Options は走査オプションです。
type Options struct {
	Paths        []string
	Excludes     []string
	Langs        []string
	Jobs         int
	MaxFileBytes int
	// Raw は文脈判定を行わず、パターンの全出現を列挙します。
	Raw         bool
	NoPrefilter bool
	// Git は git ls-files の結果だけを対象にします。
	Git      bool
	RepoDir  string
	Runner   execx.Runner
	Progress progress.Observer
}

// Result は走査結果です。
type Result struct {
	Items      []Item      `json:"items"`
	Total      int         `json:"total"`
	Files      int         `json:"files"`
	Skipped    int         `json:"skipped"`
	ElapsedMS  int64       `json:"elapsed_ms"`
	Errors     []ItemError `json:"errors,omitempty"`
	ErrorCount int         `json:"error_count"`
}
