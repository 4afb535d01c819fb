package tui

import (
	"context"
	"slices"
	"time"

	"mirrorpick/internal/config"
	"mirrorpick/internal/dashboard"
	"mirrorpick/internal/errors"
	"mirrorpick/internal/log"
	"mirrorpick/internal/mirrors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	// chromeHeight is the number of lines around the table rows: title, status
	// bar, four table border/header lines, selection summary, input line, footer.
	chromeHeight = 9

	fetchQueueSize = 1
	tickInterval   = time.Second
)

// LoadFunc produces the mirror status for a configuration.
type LoadFunc func(ctx context.Context, cfg *config.Config) (mirrors.Status, mirrors.Source, error)

// ConfigReloaded is sent by the config watcher after the file was re-read and validated.
type ConfigReloaded struct {
	Config *config.Config
}

type statusLoadedMsg struct {
	status mirrors.Status
	source mirrors.Source
	err    error
}

type dispatchFailedMsg struct {
	err error
}

type tickMsg time.Time

// Model is the bubbletea program state. All dashboard decisions are made by
// dashboard.Reduce; Model only translates terminal events and draws the result.
type Model struct {
	state dashboard.State
	cfg   *config.Config

	ctx     context.Context
	load    LoadFunc
	pending chan struct{}

	spinner spinner.Model
	help    help.Model
	keys    keyMap
	styles  Styles
	width   int
}

// New creates the model. The first fetch starts from Init.
func New(ctx context.Context, cfg *config.Config, load LoadFunc) (*Model, error) {
	if cfg == nil {
		cfg = config.New()
	}
	opts, err := cfg.DashboardOptions()
	if err != nil {
		return nil, err
	}
	if load == nil {
		return nil, errors.New("no mirror status loader")
	}

	styles := NewStyles(cfg.Theme)
	state := dashboard.New(opts)
	return &Model{
		state:   state,
		cfg:     cfg,
		ctx:     ctx,
		load:    load,
		pending: make(chan struct{}, fetchQueueSize),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Prompt)),
		help:    help.New(),
		keys:    newKeyMap().enable(state.Actions()),
		styles:  styles,
	}, nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.dispatch(), tickCmd())
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.reduce(dashboard.KeyPressed{Key: dashboard.Classify(msg)})

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m.reduce(dashboard.Resized{Height: max(1, msg.Height-chromeHeight)})

	case statusLoadedMsg:
		if msg.err != nil {
			return m.reduce(dashboard.DispatchFailed{Err: msg.err})
		}
		return m.reduce(dashboard.ItemsLoaded{Status: msg.status, Source: string(msg.source)})

	case dispatchFailedMsg:
		return m.reduce(dashboard.DispatchFailed{Err: msg.err})

	case ConfigReloaded:
		return m.reloadConfig(msg.Config)

	case tickMsg:
		next, cmd := m.reduce(dashboard.Tick{Time: time.Time(msg)})
		if cmd != nil {
			return next, cmd
		}
		return next, tickCmd()

	case spinner.TickMsg:
		if m.state.Phase() != dashboard.PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) reduce(msg dashboard.Msg) (tea.Model, tea.Cmd) {
	next, effect := dashboard.Reduce(m.state, msg)
	m.state = next
	m.keys = m.keys.enable(next.Actions())
	if effect == dashboard.EffectQuit {
		return m, tea.Quit
	}
	return m, nil
}

// reloadConfig applies a new configuration. Settings that change which mirrors
// are loaded trigger a new fetch.
func (m *Model) reloadConfig(cfg *config.Config) (tea.Model, tea.Cmd) {
	if cfg == nil {
		return m, nil
	}
	opts, err := cfg.DashboardOptions()
	if err != nil {
		log.LogWithError(err).Warn("ignoring reloaded configuration")
		return m, nil
	}

	refetch := cfg.URL != m.cfg.URL ||
		cfg.CacheTTL != m.cfg.CacheTTL ||
		!slices.Equal(cfg.Countries, m.cfg.Countries)

	m.cfg = cfg
	m.styles = NewStyles(cfg.Theme)
	m.spinner.Style = m.styles.Prompt
	next, cmd := m.reduce(dashboard.ConfigChanged{Options: opts})

	log.LogWithFields(log.F("refetch", refetch)).Info("configuration reloaded")
	if refetch {
		return next, tea.Batch(cmd, m.dispatch())
	}
	return next, cmd
}

// dispatch queues a fetch. At most fetchQueueSize fetches are in flight; a
// request beyond that fails immediately instead of blocking the update loop.
func (m *Model) dispatch() tea.Cmd {
	select {
	case m.pending <- struct{}{}:
	default:
		err := errors.New("a mirror status request is already in flight")
		return func() tea.Msg { return dispatchFailedMsg{err: err} }
	}

	ctx, cfg, load, pending := m.ctx, m.cfg, m.load, m.pending
	return func() tea.Msg {
		defer func() { <-pending }()
		st, src, err := load(ctx, cfg)
		return statusLoadedMsg{status: st, source: src, err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// State returns the current dashboard state.
func (m *Model) State() dashboard.State {
	return m.state
}

// Config returns the configuration currently applied.
func (m *Model) Config() *config.Config {
	return m.cfg
}
