package main

import (
	"github.com/spf13/cobra"

	"github.com/phyten/todomark/internal/highlight"
	"github.com/phyten/todomark/internal/scan"
)

func newHighlightCmd(env runtimeEnv, g *globalFlags) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "highlight <file>",
		Short: "Print a file with its accepted keywords painted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, env, g, nil)
			if err != nil {
				return err
			}
			buf, err := scan.Open(args[0], lang)
			if err != nil {
				return err
			}
			snap := a.session.Snapshot()
			var spans highlight.Spans
			if snap.Enabled() {
				if _, err := highlight.Run(snap.Cursor(buf), snap.Resolver, 0, -1, &spans); err != nil {
					return err
				}
			}
			return a.painter().Render(env.stdout, buf, spans)
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "override the detected language")
	return cmd
}
