package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/phyten/todomark/internal/config"
	"github.com/phyten/todomark/internal/watch"
)

func newWatchCmd(env runtimeEnv, g *globalFlags) *cobra.Command {
	sf := &scanFlags{}
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "List keywords again whenever files or the config change",
		RunE: func(cmd *cobra.Command, args []string) error {
			extra := sf.apply(cmd.Flags(), args)
			a, err := loadApp(cmd, env, g, extra)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd, g, sf, extra, debounce)
		},
	}
	sf.register(cmd.Flags())
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before re-listing")
	return cmd
}

func (a *app) watch(ctx context.Context, cmd *cobra.Command, g *globalFlags, sf *scanFlags, extra func(*config.Config) error, debounce time.Duration) error {
	w, err := watch.New(watch.Options{
		Debounce:   debounce,
		ConfigFile: a.sources.File,
		Logger:     a.logger,
	})
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()
	if err := w.Add(a.settings.Scan.Paths...); err != nil {
		return err
	}

	// progress lines would interleave with the listings
	sf.noProgress = true
	if err := a.list(ctx, sf, a.env.stdout); err != nil {
		return err
	}
	err = w.Run(ctx, func(b watch.Batch) {
		if b.Config {
			a.reload(cmd, g, extra)
		}
		fmt.Fprintf(a.env.stdout, "\n# %s: %d file(s) changed\n", time.Now().Format("15:04:05"), len(b.Paths))
		if err := a.list(ctx, sf, a.env.stdout); err != nil {
			a.logger.Printf("rescan: %v", err)
		}
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// reload re-reads the configuration. A broken file or pattern keeps the
// previous keywords in force.
func (a *app) reload(cmd *cobra.Command, g *globalFlags, extra func(*config.Config) error) {
	flags, err := g.layer(cmd.Flags())
	if err == nil {
		err = extra(&flags)
	}
	if err != nil {
		a.logger.Printf("reload: %v", err)
		return
	}
	settings, _, err := loadSettings(a.env, g, flags)
	if err != nil {
		a.logger.Printf("reload: %v; keeping previous configuration", err)
		return
	}
	if err := a.session.Reconfigure(settings.Match.KeywordConfig()); err != nil {
		return
	}
	a.settings.Match = settings.Match
	a.settings.UI = settings.UI
	a.logger.Printf("configuration reloaded")
}
