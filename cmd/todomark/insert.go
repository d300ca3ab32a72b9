package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phyten/todomark/internal/detect"
	"github.com/phyten/todomark/internal/lexctx"
)

func newInsertCmd(env runtimeEnv, g *globalFlags) *cobra.Command {
	var lang string
	var inComment bool
	cmd := &cobra.Command{
		Use:   "insert <keyword>",
		Short: "Print a keyword formatted for insertion in the given language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, env, g, nil)
			if err != nil {
				return err
			}
			name := detect.NormalizeLangName(lang)
			syntax, ok := lexctx.CommentFor(name)
			if !ok && !inComment {
				return fmt.Errorf("no comment syntax known for %q", lang)
			}
			text, err := a.session.Snapshot().Config.Insertion(args[0], syntax, inComment)
			if err != nil {
				return err
			}
			fmt.Fprintln(env.stdout, text)
			return nil
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "language whose comment leader is used")
	cmd.Flags().BoolVar(&inComment, "in-comment", false, "point is already inside a comment")
	_ = cmd.MarkFlagRequired("lang")
	return cmd
}
