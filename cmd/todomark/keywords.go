package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phyten/todomark/internal/highlight"
	"github.com/phyten/todomark/internal/termcolor"
	"github.com/phyten/todomark/internal/textutil"
)

func newKeywordsCmd(env runtimeEnv, g *globalFlags) *cobra.Command {
	var showSource bool
	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Print the effective keyword list in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, env, g, nil)
			if err != nil {
				return err
			}
			if showSource {
				a.printSources()
			}
			return a.printKeywords()
		},
	}
	cmd.Flags().BoolVar(&showSource, "source", false, "also print where the configuration came from")
	return cmd
}

func (a *app) printSources() {
	w := a.env.stdout
	file := a.sources.File
	if file == "" {
		file = "(defaults)"
	} else {
		file += " (" + a.sources.FileOrigin + ")"
	}
	fmt.Fprintf(w, "# config: %s\n", file)
	if a.sources.Dotenv != "" {
		fmt.Fprintf(w, "# dotenv: %s\n", a.sources.Dotenv)
	}
	cfg := a.session.Snapshot().Config
	fmt.Fprintf(w, "# punctuation: %q require: %t\n", cfg.Punctuation, cfg.RequirePunctuation)
	fmt.Fprintf(w, "# text kinds: %s\n", strings.Join(cfg.TextKinds, ","))
}

func (a *app) printKeywords() error {
	snap := a.session.Snapshot()
	entries := snap.Config.Sanitized()
	painter := a.painter()
	rows := [][]string{{"PATTERN", "STYLE", "LITERAL"}}
	styles := make([]termcolor.Style, len(entries))
	valid := make([]bool, len(entries))
	for i, e := range entries {
		style, err := highlight.StyleOf(e.Style)
		desc := ""
		if err != nil {
			desc = "invalid: " + err.Error()
		} else {
			styles[i], valid[i] = painter.Adjust(style), true
			desc = style.String()
		}
		literal := "no"
		if e.Literal() {
			literal = "yes"
		}
		rows = append(rows, []string{e.Pattern, desc, literal})
	}
	widths := textutil.ColumnWidths(rows)
	for r, row := range rows {
		pattern := textutil.PadRight(row[0], widths[0])
		if r > 0 && valid[r-1] && a.term.Enabled {
			pattern = termcolor.Apply(styles[r-1], row[0], true) + strings.Repeat(" ", widths[0]-textutil.VisibleWidth(row[0]))
		}
		line := pattern + "  " + textutil.PadRight(row[1], widths[1]) + "  " + row[2]
		if _, err := fmt.Fprintln(a.env.stdout, line); err != nil {
			return err
		}
	}
	return nil
}
