package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/phyten/todomark/internal/config"
	"github.com/phyten/todomark/internal/highlight"
	"github.com/phyten/todomark/internal/output"
	"github.com/phyten/todomark/internal/progress"
	"github.com/phyten/todomark/internal/scan"
	"github.com/phyten/todomark/internal/termcolor"
)

type scanFlags struct {
	output       string
	fields       string
	sort         string
	excludes     []string
	langs        []string
	jobs         int
	maxFileBytes int
	oracle       string
	raw          bool
	noPrefilter  bool
	git          bool
	maxWidth     int
	progress     bool
	noProgress   bool
}

func (s *scanFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&s.output, "output", "o", "", "table|tsv|json|ndjson|csv|markdown")
	fs.StringVar(&s.fields, "fields", "", "columns, e.g. location,keyword,kind,context")
	fs.StringVar(&s.sort, "sort", "", "sort keys, e.g. -keyword,location")
	fs.StringArrayVarP(&s.excludes, "exclude", "x", nil, "glob of paths to skip; repeatable")
	fs.StringArrayVarP(&s.langs, "lang", "l", nil, "only scan these languages; repeatable")
	fs.IntVarP(&s.jobs, "jobs", "j", 0, "max parallel workers")
	fs.IntVar(&s.maxFileBytes, "max-file-bytes", 0, "skip files larger than this (0 = no limit)")
	fs.StringVar(&s.oracle, "oracle", "", "context backend: auto|syntax|treesitter")
	fs.BoolVar(&s.raw, "raw", false, "list every pattern occurrence, ignoring context")
	fs.BoolVar(&s.noPrefilter, "no-prefilter", false, "run the matcher on every file")
	fs.BoolVar(&s.git, "git", false, "only scan files known to git")
	fs.IntVar(&s.maxWidth, "max-width", 0, "truncate the context column in table output")
	fs.BoolVar(&s.progress, "progress", false, "force progress even when piped")
	fs.BoolVar(&s.noProgress, "no-progress", false, "disable progress/ETA")
}

// apply copies the changed flags into the flag layer.
func (s *scanFlags) apply(fs *pflag.FlagSet, paths []string) func(*config.Config) error {
	return func(cfg *config.Config) error {
		if len(paths) > 0 {
			v := append([]string(nil), paths...)
			cfg.Scan.Paths = &v
		}
		setString(&cfg.UI.Output, fs, "output", s.output)
		setString(&cfg.UI.Fields, fs, "fields", s.fields)
		setString(&cfg.UI.Sort, fs, "sort", s.sort)
		setString(&cfg.Scan.Oracle, fs, "oracle", s.oracle)
		if fs.Changed("exclude") {
			v := config.SplitMulti(s.excludes)
			cfg.Scan.Excludes = &v
		}
		if fs.Changed("lang") {
			v := config.SplitMulti(s.langs)
			cfg.Scan.Langs = &v
		}
		if fs.Changed("jobs") {
			v := s.jobs
			cfg.Scan.Jobs = &v
		}
		if fs.Changed("max-file-bytes") {
			v := s.maxFileBytes
			cfg.Scan.MaxFileBytes = &v
		}
		for name, target := range map[string]**bool{"raw": &cfg.Scan.Raw, "no-prefilter": &cfg.Scan.NoPrefilter, "git": &cfg.Scan.Git} {
			if fs.Changed(name) {
				v, _ := fs.GetBool(name)
				*target = &v
			}
		}
		return nil
	}
}

func newListCmd(env runtimeEnv, g *globalFlags) *cobra.Command {
	sf := &scanFlags{}
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List keywords found in comments, strings and prose",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, env, g, sf.apply(cmd.Flags(), args))
			if err != nil {
				return err
			}
			return a.list(cmd.Context(), sf, env.stdout)
		},
	}
	sf.register(cmd.Flags())
	return cmd
}

func (a *app) scanOptions(sf *scanFlags) scan.Options {
	s := a.settings.Scan
	opts := scan.Options{
		Paths:        s.Paths,
		Excludes:     s.Excludes,
		Langs:        s.Langs,
		Jobs:         s.Jobs,
		MaxFileBytes: s.MaxFileBytes,
		Raw:          s.Raw,
		NoPrefilter:  s.NoPrefilter,
		Git:          s.Git,
		RepoDir:      a.env.dir,
	}
	if progress.ShouldShowProgress(sf.progress, sf.noProgress) {
		opts.Progress = progress.NewAutoObserver(a.env.stderr)
	}
	return opts
}

func (a *app) list(ctx context.Context, sf *scanFlags, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sel, err := output.ResolveFields(a.settings.UI.Fields)
	if err != nil {
		return err
	}
	spec, err := output.ParseSortSpec(a.settings.UI.Sort)
	if err != nil {
		return err
	}
	snap := a.session.Snapshot()
	res, err := scan.Run(ctx, snap, a.scanOptions(sf))
	if err != nil {
		return err
	}
	output.ApplySort(res.Items, spec)

	painter := a.painter()
	opts := output.TableOptions{
		Color:    a.term.Enabled,
		Scheme:   a.term.Scheme,
		MaxWidth: sf.maxWidth,
		Keyword: func(it scan.Item) (termcolor.Style, bool) {
			style, ok := snap.Resolver.Resolve(it.Keyword)
			if !ok {
				return termcolor.Style{}, false
			}
			return painter.Adjust(style), true
		},
	}
	if err := output.Write(w, a.settings.UI.Output, *res, sel, opts); err != nil {
		return err
	}
	reportErrors(a.env.stderr, res)
	return nil
}

func (a *app) painter() highlight.Painter {
	return highlight.Painter{
		Enabled:     a.term.Enabled,
		Profile:     a.term.Profile,
		Scheme:      a.term.Scheme,
		MinContrast: a.settings.UI.MinContrast,
	}
}

// reportErrors summarizes per-file failures on stderr.
func reportErrors(w io.Writer, res *scan.Result) {
	if res == nil || res.ErrorCount == 0 {
		return
	}
	fmt.Fprintf(w, "warning: %d error(s) while scanning\n", res.ErrorCount)
	for _, e := range res.Errors {
		file := e.File
		if file == "" {
			file = "(unknown location)"
		}
		stage := e.Stage
		if stage == "" {
			stage = "scan"
		}
		fmt.Fprintf(w, "  %s [%s] %s\n", file, stage, e.Message)
	}
}
