package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/phyten/todomark/internal/config"
	"github.com/phyten/todomark/internal/keyword"
	"github.com/phyten/todomark/internal/session"
	"github.com/phyten/todomark/internal/termcolor"
)

// runtimeEnv is everything the commands take from the process.
type runtimeEnv struct {
	stdout  io.Writer
	stderr  io.Writer
	getenv  func(string) string
	environ []string
	dir     string
	xdgHome string
	home    string
	stdoutF *os.File
}

func processEnv() runtimeEnv {
	home, _ := os.UserHomeDir()
	return runtimeEnv{
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		getenv:  os.Getenv,
		environ: os.Environ(),
		dir:     ".",
		xdgHome: os.Getenv("XDG_CONFIG_HOME"),
		home:    home,
		stdoutF: os.Stdout,
	}
}

type globalFlags struct {
	configPath   string
	keywords     []string
	punctuation  string
	requirePunct bool
	textKinds    []string
	timeout      string
	color        string
	minContrast  float64
	quiet        bool
}

func newRootCmd(env runtimeEnv) *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "todomark",
		Short:         "Find and highlight TODO-style keywords in comments and strings",
		Long:          "todomark lists, highlights and navigates marker keywords (TODO, FIXME, HACK, ...)\nthat sit in comments or strings of code, or anywhere in prose files.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(env.stdout)
	root.SetErr(env.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "config file (default: .todomark.yaml searched upward, then XDG)")
	pf.StringArrayVarP(&g.keywords, "keyword", "k", nil, "keyword entry PATTERN[=color], color as #rgb, #rrggbb or a name; repeatable, replaces the configured list")
	pf.StringVar(&g.punctuation, "punctuation", "", "characters that may trail a keyword")
	pf.BoolVar(&g.requirePunct, "require-punctuation", false, "only match keywords followed by punctuation")
	pf.StringSliceVar(&g.textKinds, "text-kind", nil, "buffer kinds matched everywhere (comma separated)")
	pf.StringVar(&g.timeout, "match-timeout", "", "limit for a single regex evaluation (e.g. 2s, 500ms)")
	pf.StringVar(&g.color, "color", "", "auto|always|never")
	pf.Float64Var(&g.minContrast, "min-contrast", 0, "raise keyword colors to this WCAG contrast ratio (0 disables)")
	pf.BoolVarP(&g.quiet, "quiet", "q", false, "suppress diagnostics on stderr")

	root.AddCommand(
		newListCmd(env, g),
		newHighlightCmd(env, g),
		newNextCmd(env, g),
		newInsertCmd(env, g),
		newKeywordsCmd(env, g),
		newWatchCmd(env, g),
	)
	return root
}

// app is the loaded state shared by every command.
type app struct {
	env      runtimeEnv
	settings config.Settings
	sources  config.Sources
	session  *session.Session
	logger   *log.Logger
	term     termcolor.Terminal
}

func (g *globalFlags) layer(fs *pflag.FlagSet) (config.Config, error) {
	var cfg config.Config
	if fs.Changed("keyword") {
		entries, err := keyword.ParseEntries(config.SplitMulti(g.keywords))
		if err != nil {
			return cfg, err
		}
		cfg.Match.Keywords = &entries
	}
	if fs.Changed("punctuation") {
		v := g.punctuation
		cfg.Match.Punctuation = &v
	}
	if fs.Changed("require-punctuation") {
		v := g.requirePunct
		cfg.Match.RequirePunctuation = &v
	}
	if fs.Changed("text-kind") {
		v := append([]string(nil), g.textKinds...)
		cfg.Match.TextKinds = &v
	}
	if fs.Changed("match-timeout") {
		d, err := config.ParseDuration(g.timeout, "--match-timeout")
		if err != nil {
			return cfg, err
		}
		cfg.Match.MatchTimeout = &d
	}
	if fs.Changed("color") {
		v := g.color
		cfg.UI.Color = &v
	}
	if fs.Changed("min-contrast") {
		v := g.minContrast
		cfg.UI.MinContrast = &v
	}
	return cfg, nil
}

// loadApp layers the configuration and compiles the keyword session.
// extra carries command specific flag values.
func loadApp(cmd *cobra.Command, env runtimeEnv, g *globalFlags, extra func(*config.Config) error) (*app, error) {
	flags, err := g.layer(cmd.Flags())
	if err != nil {
		return nil, err
	}
	if extra != nil {
		if err := extra(&flags); err != nil {
			return nil, err
		}
	}
	settings, sources, err := loadSettings(env, g, flags)
	if err != nil {
		return nil, err
	}
	logger := log.New(env.stderr, "todomark: ", 0)
	if g.quiet {
		logger = log.New(io.Discard, "", 0)
	}
	sess, err := session.New(settings.Match.KeywordConfig(), session.Options{
		Timeout: settings.Match.MatchTimeout,
		Oracle:  settings.Scan.Oracle,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}
	mode, err := termcolor.ParseMode(settings.UI.Color)
	if err != nil {
		return nil, err
	}
	return &app{
		env:      env,
		settings: settings,
		sources:  sources,
		session:  sess,
		logger:   logger,
		term:     termcolor.Detect(mode, env.stdoutF, termcolor.EnvMap(env.environ)),
	}, nil
}

func loadSettings(env runtimeEnv, g *globalFlags, flags config.Config) (config.Settings, config.Sources, error) {
	settings, sources, err := config.LoadSettings(config.Request{
		StartDir: env.dir,
		Explicit: g.configPath,
		XDGHome:  env.xdgHome,
		Home:     env.home,
		Getenv:   env.getenv,
		Flags:    flags,
	})
	if err != nil {
		if sources.File != "" {
			return settings, sources, fmt.Errorf("%s: %w", sources.File, err)
		}
		return settings, sources, err
	}
	return settings, sources, nil
}

func setString(target **string, fs *pflag.FlagSet, name, value string) {
	if fs.Changed(name) {
		v := strings.TrimSpace(value)
		*target = &v
	}
}
