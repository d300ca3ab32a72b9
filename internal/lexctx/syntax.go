package lexctx

import (
	"github.com/phyten/todomark/internal/keyword"
	"github.com/phyten/todomark/internal/model"
)

// Syntax describes the comment and string delimiters of a language.
type Syntax struct {
	LinePrefixes []string
	Blocks       []Block
	Strings      []string
}

// Block is a delimited region. LineStart restricts the opener to the start
// of a line, allowing indentation.
type Block struct {
	Start     string
	End       string
	Kind      model.MatchKind
	LineStart bool
}

// Comment returns the leader used when inserting a keyword.
func (s Syntax) Comment() (keyword.CommentSyntax, bool) {
	if len(s.LinePrefixes) > 0 {
		return keyword.CommentSyntax{Start: trimRight(s.LinePrefixes[0])}, true
	}
	for _, b := range s.Blocks {
		if b.Kind == model.MatchKindComment && !b.LineStart {
			return keyword.CommentSyntax{Start: b.Start, End: b.End}, true
		}
	}
	return keyword.CommentSyntax{}, false
}

func trimRight(s string) string {
	for len(s) > 0 && s[len(s)-1] == ' ' {
		s = s[:len(s)-1]
	}
	return s
}

var (
	syntaxC = Syntax{
		LinePrefixes: []string{"//"},
		Blocks:       []Block{{Start: "/*", End: "*/", Kind: model.MatchKindComment}},
		Strings:      []string{"\""},
	}
	syntaxGo = Syntax{
		LinePrefixes: []string{"//"},
		Blocks:       []Block{{Start: "/*", End: "*/", Kind: model.MatchKindComment}, {Start: "`", End: "`", Kind: model.MatchKindString}},
		Strings:      []string{"\""},
	}
	syntaxJS = Syntax{
		LinePrefixes: []string{"//"},
		Blocks:       []Block{{Start: "/*", End: "*/", Kind: model.MatchKindComment}, {Start: "`", End: "`", Kind: model.MatchKindString}},
		Strings:      []string{"\"", "'"},
	}
	syntaxHash = Syntax{
		LinePrefixes: []string{"#"},
		Strings:      []string{"\"", "'"},
	}
	syntaxHashOnly = Syntax{
		LinePrefixes: []string{"#"},
	}
	syntaxRuby = Syntax{
		LinePrefixes: []string{"#"},
		Blocks:       []Block{{Start: "=begin", End: "=end", Kind: model.MatchKindComment, LineStart: true}},
		Strings:      []string{"\"", "'"},
	}
	syntaxPython = Syntax{
		LinePrefixes: []string{"#"},
		Blocks:       []Block{{Start: "\"\"\"", End: "\"\"\"", Kind: model.MatchKindString}, {Start: "'''", End: "'''", Kind: model.MatchKindString}},
		Strings:      []string{"\"", "'"},
	}
	syntaxHTML = Syntax{
		Blocks: []Block{{Start: "<!--", End: "-->", Kind: model.MatchKindComment}},
	}
	syntaxSQL = Syntax{
		LinePrefixes: []string{"--"},
		Blocks:       []Block{{Start: "/*", End: "*/", Kind: model.MatchKindComment}},
		Strings:      []string{"'"},
	}
	syntaxCSS = Syntax{
		Blocks:  []Block{{Start: "/*", End: "*/", Kind: model.MatchKindComment}},
		Strings: []string{"\"", "'"},
	}
	syntaxIni = Syntax{
		LinePrefixes: []string{";", "#"},
	}
	syntaxHCL = Syntax{
		LinePrefixes: []string{"//", "#"},
		Blocks:       []Block{{Start: "/*", End: "*/", Kind: model.MatchKindComment}},
		Strings:      []string{"\""},
	}
	syntaxLisp = Syntax{
		LinePrefixes: []string{";"},
		Strings:      []string{"\""},
	}
	syntaxHaskell = Syntax{
		LinePrefixes: []string{"--"},
		Blocks:       []Block{{Start: "{-", End: "-}", Kind: model.MatchKindComment}},
		Strings:      []string{"\""},
	}
	syntaxOCaml = Syntax{
		Blocks:  []Block{{Start: "(*", End: "*)", Kind: model.MatchKindComment}},
		Strings: []string{"\""},
	}
	syntaxPowershell = Syntax{
		LinePrefixes: []string{"#"},
		Blocks:       []Block{{Start: "<#", End: "#>", Kind: model.MatchKindComment}},
		Strings:      []string{"\"", "'"},
	}
	syntaxJinja = Syntax{
		Blocks: []Block{{Start: "{#", End: "#}", Kind: model.MatchKindComment}},
	}
	syntaxHandlebars = Syntax{
		Blocks: []Block{{Start: "{{!--", End: "--}}", Kind: model.MatchKindComment}, {Start: "{{!", End: "}}", Kind: model.MatchKindComment}},
	}
	syntaxBatch = Syntax{
		LinePrefixes: []string{"REM ", "rem ", "::"},
	}
	syntaxPug = Syntax{
		LinePrefixes: []string{"//-", "//"},
	}
	syntaxBash = Syntax{
		LinePrefixes: []string{"#"},
		Strings:      []string{"\"", "'", "`"},
	}
	syntaxLua = Syntax{
		LinePrefixes: []string{"--"},
		Blocks:       []Block{{Start: "--[[", End: "]]", Kind: model.MatchKindComment}},
		Strings:      []string{"\"", "'"},
	}
	syntaxTeX = Syntax{
		LinePrefixes: []string{"%"},
	}
)

var languageSyntax = map[string]Syntax{
	"c":               syntaxC,
	"cpp":             syntaxC,
	"objective-c":     syntaxC,
	"objective-cpp":   syntaxC,
	"go":              syntaxGo,
	"java":            syntaxC,
	"csharp":          syntaxC,
	"scala":           syntaxC,
	"kotlin":          syntaxC,
	"swift":           syntaxC,
	"groovy":          syntaxC,
	"dart":            syntaxC,
	"rust":            syntaxC,
	"typescript":      syntaxJS,
	"typescriptreact": syntaxJS,
	"javascript":      syntaxJS,
	"javascriptreact": syntaxJS,
	"php":             syntaxJS,
	"proto":           syntaxC,
	"thrift":          syntaxC,
	"graphql":         syntaxHash,
	"hcl":             syntaxHCL,
	"terraform":       syntaxHCL,
	"cue":             syntaxC,
	"starlark":        syntaxPython,
	"python":          syntaxPython,
	"cython":          syntaxPython,
	"ruby":            syntaxRuby,
	"perl":            syntaxHash,
	"shell":           syntaxBash,
	"fish":            syntaxBash,
	"powershell":      syntaxPowershell,
	"batch":           syntaxBatch,
	"yaml":            syntaxHash,
	"toml":            syntaxHash,
	"ini":             syntaxIni,
	"properties":      syntaxIni,
	"dotenv":          syntaxHash,
	"latex":           syntaxTeX,
	"html":            syntaxHTML,
	"vue":             syntaxHTML,
	"svelte":          syntaxHTML,
	"xml":             syntaxHTML,
	"css":             syntaxCSS,
	"scss":            syntaxC,
	"sass":            syntaxC,
	"less":            syntaxC,
	"stylus":          syntaxC,
	"sql":             syntaxSQL,
	"make":            syntaxHashOnly,
	"cmake":           syntaxHash,
	"ninja":           syntaxHashOnly,
	"dockerfile":      syntaxHashOnly,
	"jinja":           syntaxJinja,
	"twig":            syntaxJinja,
	"django":          syntaxJinja,
	"liquid":          syntaxJinja,
	"handlebars":      syntaxHandlebars,
	"pug":             syntaxPug,
	"haml":            syntaxHashOnly,
	"erb":             syntaxRuby,
	"ejs":             syntaxJS,
	"aspnet":          syntaxHTML,
	"common-lisp":     syntaxLisp,
	"scheme":          syntaxLisp,
	"racket":          syntaxLisp,
	"clojure":         syntaxLisp,
	"emacs-lisp":      syntaxLisp,
	"haskell":         syntaxHaskell,
	"elm":             syntaxHaskell,
	"ocaml":           syntaxOCaml,
	"fsharp":          syntaxC,
	"lua":             syntaxLua,
	"matlab":          Syntax{LinePrefixes: []string{"%"}, Blocks: []Block{{Start: "%{", End: "%}", Kind: model.MatchKindComment, LineStart: true}}, Strings: []string{"\""}},
	"erlang":          Syntax{LinePrefixes: []string{"%"}, Strings: []string{"\""}},
	"elixir":          syntaxHash,
	"verilog":         syntaxC,
	"systemverilog":   syntaxC,
	"apex":            syntaxC,
	"zig":             Syntax{LinePrefixes: []string{"//"}, Strings: []string{"\""}},
	"nim":             syntaxHash,
	"julia":           syntaxHash,
	"r":               syntaxHash,
	"rego":            syntaxHash,
	"pip":             syntaxHashOnly,
	"gradle":          syntaxC,
	"procfile":        syntaxHashOnly,
	"gotemplate":      Syntax{Blocks: []Block{{Start: "{{/*", End: "*/}}", Kind: model.MatchKindComment}}},
}

// SyntaxFor returns the delimiter table for a normalized language name.
func SyntaxFor(lang string) (Syntax, bool) {
	s, ok := languageSyntax[lang]
	return s, ok
}

// CommentFor returns the insertion leader for a language.
func CommentFor(lang string) (keyword.CommentSyntax, bool) {
	s, ok := SyntaxFor(lang)
	if !ok {
		return keyword.CommentSyntax{}, false
	}
	return s.Comment()
}
