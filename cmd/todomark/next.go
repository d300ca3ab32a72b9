package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phyten/todomark/internal/buffer"
	"github.com/phyten/todomark/internal/matcher"
	"github.com/phyten/todomark/internal/scan"
)

type nextFlags struct {
	lang     string
	from     string
	bound    string
	count    int
	repeat   int
	backward bool
}

func newNextCmd(env runtimeEnv, g *globalFlags) *cobra.Command {
	nf := &nextFlags{}
	cmd := &cobra.Command{
		Use:   "next <file>",
		Short: "Navigate to the next (or previous) accepted keyword",
		Long: "next searches from --from (a rune offset or LINE:COL) and prints the position of\n" +
			"the --count-th accepted keyword, --repeat times. --bound stops the search at an\n" +
			"offset or LINE:COL. It exits with an error when nothing is found.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, env, g, nil)
			if err != nil {
				return err
			}
			buf, err := scan.Open(args[0], nf.lang)
			if err != nil {
				return err
			}
			return a.navigate(buf, nf)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&nf.lang, "lang", "l", "", "override the detected language")
	fs.StringVar(&nf.from, "from", "", "start position: rune offset or LINE:COL (default: start, or end with --backward)")
	fs.StringVar(&nf.bound, "bound", "", "search limit: rune offset or LINE:COL")
	fs.IntVarP(&nf.count, "count", "n", 1, "move to the n-th keyword; negative reverses the direction")
	fs.IntVar(&nf.repeat, "repeat", 1, "number of steps to print")
	fs.BoolVarP(&nf.backward, "backward", "b", false, "search backward")
	return cmd
}

func (a *app) navigate(buf *buffer.Buffer, nf *nextFlags) error {
	snap := a.session.Snapshot()
	c := snap.Cursor(buf)
	from := 0
	if nf.backward {
		from = buf.Len()
	}
	if nf.from != "" {
		off, err := parsePosition(buf, nf.from)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		from = off
	}
	bound := matcher.NoBound
	if nf.bound != "" {
		off, err := parsePosition(buf, nf.bound)
		if err != nil {
			return fmt.Errorf("--bound: %w", err)
		}
		bound = off
	}
	c.Seek(from)

	found := 0
	for i := 0; i < nf.repeat; i++ {
		step := matcher.Next
		if nf.backward {
			step = matcher.Previous
		}
		m, ok := step(c, nf.count, bound)
		if err := c.Err(); err != nil {
			return err
		}
		if !ok {
			break
		}
		found++
		line, col := buf.Position(m.Start)
		fmt.Fprintf(a.env.stdout, "%s:%d:%d\t%d\t%s\n", buf.Name(), line, col, m.Start, m.Text())
	}
	if found == 0 {
		return fmt.Errorf("no keyword found")
	}
	return nil
}

// parsePosition reads a rune offset or a 1-based LINE:COL.
func parsePosition(buf *buffer.Buffer, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if line, col, ok := strings.Cut(raw, ":"); ok {
		l, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || l < 1 {
			return 0, fmt.Errorf("invalid line in %q", raw)
		}
		c, err := strconv.Atoi(strings.TrimSpace(col))
		if err != nil || c < 1 {
			return 0, fmt.Errorf("invalid column in %q", raw)
		}
		return buf.Offset(l, c), nil
	}
	off, err := strconv.Atoi(raw)
	if err != nil || off < 0 {
		return 0, fmt.Errorf("invalid offset %q", raw)
	}
	return buf.Clamp(off), nil
}
