package detect

// language describes how one normalized language name is recognized.
type language struct {
	name         string
	exts         []string
	files        []string
	interpreters []string
	aliases      []string
}

var languages = []language{
	{name: "c", exts: []string{".c", ".h"}},
	{name: "cpp", exts: []string{".cc", ".cp", ".cpp", ".cxx", ".hh", ".hpp", ".hxx"}, aliases: []string{"c++", "cc", "h++", "hpp", "hh"}},
	{name: "objective-c", exts: []string{".m"}, aliases: []string{"m"}},
	{name: "objective-cpp", exts: []string{".mm"}},
	{name: "go", exts: []string{".go"}},
	{name: "javascript", exts: []string{".js", ".mjs", ".cjs"}, interpreters: []string{"node", "deno"}, aliases: []string{"js", "mjs", "cjs"}},
	{name: "javascriptreact", exts: []string{".jsx"}, aliases: []string{"jsx"}},
	{name: "typescript", exts: []string{".ts"}, aliases: []string{"ts"}},
	{name: "typescriptreact", exts: []string{".tsx"}, aliases: []string{"tsx"}},
	{name: "coffeescript", exts: []string{".coffee", ".litcoffee"}},
	{name: "python", exts: []string{".py", ".pyw", ".pyi"}, files: []string{"setup.py"}, interpreters: []string{"python", "python3", "python2", "pypy"}, aliases: []string{"py"}},
	{name: "ruby", exts: []string{".rb", ".rake", ".gemspec"}, files: []string{"podfile", "vagrantfile", "gemfile", "rakefile", "berksfile", "config.ru"}, interpreters: []string{"ruby"}, aliases: []string{"rb"}},
	{name: "php", exts: []string{".php", ".php5", ".phtml"}, interpreters: []string{"php"}},
	{name: "csharp", exts: []string{".cs"}, interpreters: []string{"dotnet-script"}, aliases: []string{"c#", "cs"}},
	{name: "vb", exts: []string{".vb"}},
	{name: "fsharp", exts: []string{".fs"}},
	{name: "java", exts: []string{".java"}},
	{name: "kotlin", exts: []string{".kt", ".kts"}, aliases: []string{"kt"}},
	{name: "scala", exts: []string{".scala"}},
	{name: "groovy", exts: []string{".groovy"}, files: []string{"jenkinsfile"}, interpreters: []string{"groovy"}},
	{name: "gradle", exts: []string{".gradle"}},
	{name: "swift", exts: []string{".swift"}, interpreters: []string{"swift"}},
	{name: "rust", exts: []string{".rs"}},
	{name: "dart", exts: []string{".dart"}},
	{name: "erlang", exts: []string{".erl", ".hrl"}, interpreters: []string{"escript"}},
	{name: "elixir", exts: []string{".ex", ".exs"}, interpreters: []string{"elixir"}},
	{name: "haskell", exts: []string{".hs", ".lhs"}},
	{name: "clojure", exts: []string{".clj", ".cljs", ".cljc", ".edn"}},
	{name: "elm", exts: []string{".elm"}},
	{name: "ocaml", exts: []string{".ml", ".mli"}},
	{name: "pascal", exts: []string{".pas"}},
	{name: "ada", exts: []string{".adb", ".ads"}},
	{name: "shell", exts: []string{".sh", ".bash", ".zsh", ".ksh", ".csh", ".tcsh"}, interpreters: []string{"bash", "sh", "zsh", "ksh"}, aliases: []string{"bash", "sh", "zsh"}},
	{name: "fish", exts: []string{".fish"}, interpreters: []string{"fish"}},
	{name: "powershell", exts: []string{".ps1", ".psm1", ".psd1", ".pssc"}, interpreters: []string{"pwsh", "powershell"}, aliases: []string{"ps", "ps1", "psm1"}},
	{name: "batch", exts: []string{".bat", ".cmd"}, files: []string{"gradlew.bat"}},
	{name: "sql", exts: []string{".sql", ".psql", ".plsql", ".pgsql", ".sqlx", ".qy"}},
	{name: "json", exts: []string{".json", ".json5", ".hjson"}, files: []string{"package.json", "package-lock.json", "composer.json", "pipfile.lock", "tsconfig.json", "jsconfig.json"}},
	{name: "yaml", exts: []string{".yaml", ".yml"}, aliases: []string{"yml"}},
	{name: "toml", exts: []string{".toml"}, files: []string{"pyproject.toml", "cargo.toml", "cargo.lock", "pipfile"}},
	{name: "ini", exts: []string{".ini", ".cfg", ".conf", ".sln"}},
	{name: "properties", exts: []string{".properties"}, files: []string{"gradle.properties"}},
	{name: "dotenv", exts: []string{".env"}},
	{name: "text", exts: []string{".txt"}, files: []string{"readme", "license", "changelog", "authors"}, aliases: []string{"txt", "plain"}},
	{name: "markdown", exts: []string{".md", ".markdown", ".mdx"}, aliases: []string{"md"}},
	{name: "rst", exts: []string{".rst"}},
	{name: "asciidoc", exts: []string{".adoc", ".asciidoc"}},
	{name: "org", exts: []string{".org"}},
	{name: "emacs-lisp", exts: []string{".el"}, aliases: []string{"elisp"}},
	{name: "lua", exts: []string{".lua"}, interpreters: []string{"lua"}},
	{name: "r", exts: []string{".r"}, interpreters: []string{"r"}},
	{name: "perl", exts: []string{".pl", ".pm"}, interpreters: []string{"perl"}},
	{name: "latex", exts: []string{".tex"}},
	{name: "bibtex", exts: []string{".bib"}},
	{name: "html", exts: []string{".html", ".htm", ".xhtml"}, aliases: []string{"htm"}},
	{name: "vue", exts: []string{".vue"}},
	{name: "svelte", exts: []string{".svelte"}},
	{name: "xml", exts: []string{".xml", ".svg", ".plist", ".xaml", ".wsdl", ".csproj", ".fsproj", ".vbproj", ".ps1xml"}, files: []string{"pom.xml"}},
	{name: "css", exts: []string{".css"}},
	{name: "scss", exts: []string{".scss"}},
	{name: "sass", exts: []string{".sass"}},
	{name: "less", exts: []string{".less"}},
	{name: "stylus", exts: []string{".styl"}},
	{name: "proto", exts: []string{".proto"}},
	{name: "thrift", exts: []string{".thrift"}},
	{name: "avro", exts: []string{".avdl"}},
	{name: "graphql", exts: []string{".graphql", ".gql"}},
	{name: "hcl", exts: []string{".hcl", ".nomad"}},
	{name: "terraform", exts: []string{".tf", ".tfvars"}, aliases: []string{"tf"}},
	{name: "cue", exts: []string{".cue"}},
	{name: "starlark", exts: []string{".bzl", ".star", ".bazel", ".build"}},
	{name: "dockerfile", exts: []string{".dockerfile"}, files: []string{"dockerfile"}},
	{name: "make", exts: []string{".mk", ".make"}, files: []string{"makefile", "gnumakefile", "justfile"}, aliases: []string{"mk"}},
	{name: "ninja", exts: []string{".ninja"}},
	{name: "gotemplate", exts: []string{".tpl", ".tmpl"}},
	{name: "jinja", exts: []string{".jinja", ".jinja2"}},
	{name: "twig", exts: []string{".twig"}},
	{name: "handlebars", exts: []string{".hbs", ".mustache"}},
	{name: "django", exts: []string{".djhtml"}},
	{name: "liquid", exts: []string{".liquid"}},
	{name: "pug", exts: []string{".pug", ".jade"}},
	{name: "haml", exts: []string{".haml"}},
	{name: "ejs", exts: []string{".ejs"}},
	{name: "erb", exts: []string{".erb"}},
	{name: "aspnet", exts: []string{".aspx", ".ascx", ".cshtml", ".vbhtml"}},
	{name: "common-lisp", exts: []string{".cl", ".lisp"}},
	{name: "scheme", exts: []string{".scm", ".ss"}, interpreters: []string{"scheme", "guile"}},
	{name: "racket", exts: []string{".rkt"}},
	{name: "verilog", exts: []string{".v", ".vh"}},
	{name: "systemverilog", exts: []string{".sv", ".svh"}},
	{name: "cython", exts: []string{".pyx", ".pxd", ".pxi"}},
	{name: "apex", exts: []string{".apex", ".cls", ".trigger"}},
	{name: "ahk", exts: []string{".ahk"}},
	{name: "autoit", exts: []string{".au3"}},
	{name: "nim", exts: []string{".nim"}},
	{name: "zig", exts: []string{".zig"}},
	{name: "smali", exts: []string{".smali"}},
	{name: "julia", exts: []string{".jl"}},
	{name: "rego", exts: []string{".rego"}},
	{name: "cmake", files: []string{"cmakelists.txt"}},
	{name: "procfile", files: []string{"procfile"}},
	{name: "bash", files: []string{"gradlew"}},
	{name: "pip", files: []string{"requirements.txt"}},
	{name: "awk", interpreters: []string{"awk"}},
	{name: "sed", interpreters: []string{"sed"}},
}

var (
	extensionLanguages = map[string]string{}
	basenameLanguages  = map[string]string{}
	shebangLanguages   = map[string]string{}
	langAliases        = map[string]string{}
)

func init() {
	for _, l := range languages {
		for _, e := range l.exts {
			extensionLanguages[e] = l.name
		}
		for _, f := range l.files {
			basenameLanguages[f] = l.name
		}
		for _, i := range l.interpreters {
			shebangLanguages[i] = l.name
		}
		for _, a := range l.aliases {
			langAliases[a] = l.name
		}
	}
}
