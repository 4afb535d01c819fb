package main

import (
	"context"
	"io"
	"time"

	"mirrorpick/internal/config"
	"mirrorpick/internal/dashboard"
	"mirrorpick/internal/errors"
	"mirrorpick/internal/export"
	"mirrorpick/internal/log"
	"mirrorpick/internal/mirrors"
	"mirrorpick/internal/tui"
	"mirrorpick/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// loadStatus resolves the mirror status for cfg and keeps the configured countries.
func loadStatus(ctx context.Context, cfg *config.Config) (mirrors.Status, mirrors.Source, error) {
	loader := &mirrors.Loader{Client: mirrors.NewClient(cfg.URL)}
	if path, err := mirrors.DefaultCachePath(); err == nil {
		loader.Cache = mirrors.NewCache(path, cfg.TTL())
	} else {
		log.LogWithError(err).Warn("mirror status cache disabled")
	}

	st, src, err := loader.Load(ctx)
	if err != nil {
		return mirrors.Status{}, "", err
	}
	st, err = mirrors.FilterCountries(st, cfg.Countries)
	if err != nil {
		return mirrors.Status{}, "", err
	}
	return st, src, nil
}

// runDashboard runs the interactive dashboard and exports the selection on exit.
func runDashboard(cmd *cobra.Command, opts *rootOptions) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	model, err := tui.New(ctx, opts.cfg, loadStatus)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	var watcher *watch.Watcher
	if !opts.noWatch {
		if w, err := watch.New(opts.configPath); err != nil {
			log.LogWithError(err).Warn("config file will not be watched")
		} else if err := w.Start(); err != nil {
			w.Stop()
			log.LogWithError(err).Warn("config file will not be watched")
		} else {
			watcher = w
		}
	}

	var final tea.Model
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		var runErr error
		final, runErr = p.Run()
		return runErr
	})
	if watcher != nil {
		g.Go(func() error {
			defer watcher.Stop()
			reload := func(path string) (*config.Config, error) {
				return opts.reload(cmd, path)
			}
			forwardConfigChanges(gctx, watcher.Changes(), reload, func(msg tea.Msg) { p.Send(msg) })
			return nil
		})
	}
	if err := g.Wait(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "running dashboard")
	}

	m, ok := final.(*tui.Model)
	if !ok {
		return nil
	}
	st := m.State()
	return exportSelection(cmd.OutOrStdout(), cmd.ErrOrStderr(), m.Config(), st.Selection(), st.ExportSort(), opts.clipboard)
}

// forwardConfigChanges reloads the configuration on every change and sends it to the
// dashboard. A file that fails to load is logged and the previous settings stay.
func forwardConfigChanges(
	ctx context.Context,
	changes <-chan watch.Change,
	reload func(path string) (*config.Config, error),
	send func(tea.Msg),
) {
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			cfg, err := reload(change.Path)
			if err != nil {
				log.LogWithError(err).Warn("keeping previous configuration")
				continue
			}
			send(tui.ConfigReloaded{Config: cfg})
		}
	}
}

// exportSelection writes the mirrorlist to the configured outfile, or out when none is
// set, and optionally copies it to the clipboard. Progress messages go to msgs.
func exportSelection(out, msgs io.Writer, cfg *config.Config, sel dashboard.Selection, by dashboard.ExportSort, toClipboard bool) error {
	p := newPrinter(msgs, cfg.Theme)
	if len(sel) == 0 {
		p.Info("no countries selected, nothing exported")
		return nil
	}

	data, err := export.Mirrorlist(sel, export.Options{
		Limit:     cfg.Export,
		Sort:      by,
		Generated: time.Now(),
	})
	if err != nil {
		return err
	}

	if cfg.Outfile == "" {
		if _, err := out.Write(data); err != nil {
			return errors.NewExportError("writing mirrorlist", "stdout", err)
		}
	} else {
		if err := export.WriteFile(cfg.Outfile, data); err != nil {
			return err
		}
		p.Success("mirrorlist written to " + cfg.Outfile)
	}

	if toClipboard {
		if err := export.ToClipboard(data); err != nil {
			return err
		}
		p.Success("mirrorlist copied to the clipboard")
	}
	return nil
}
