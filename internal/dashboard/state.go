// Package dashboard holds the navigation and selection state of the mirror dashboard.
// All transitions go through Reduce; the package performs no I/O besides logging.
package dashboard

import (
	"time"

	"mirrorpick/internal/log"
	"mirrorpick/internal/mirrors"
)

// Phase is the outer state: waiting for the first data set, or browsing it.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
)

func (p Phase) String() string {
	if p == PhaseReady {
		return "ready"
	}
	return "loading"
}

// Mode is the inner input mode while ready.
type Mode int

const (
	ModeCommand Mode = iota
	ModeTextEntry
)

func (m Mode) String() string {
	if m == ModeTextEntry {
		return "text-entry"
	}
	return "command"
}

// Options are the initial filter and sort settings.
type Options struct {
	Filters    FilterSet
	Sort       ViewSort
	ExportSort ExportSort
}

// State is an immutable snapshot of the dashboard. Use Reduce to derive the next one.
type State struct {
	phase      Phase
	mode       Mode
	actions    ActionSet
	status     mirrors.Status
	source     string
	filters    FilterSet
	sort       ViewSort
	exportSort ExportSort
	input      TextBuffer
	rows       []Row
	cursor     int
	height     int
	selection  Selection
	popup      bool
}

// New returns the loading state. A nil filter set means the default filters.
func New(opts Options) State {
	filters := opts.Filters
	if filters == nil {
		filters = DefaultFilters()
	}
	return State{
		phase:      PhaseLoading,
		mode:       ModeCommand,
		actions:    LoadingActions(),
		filters:    filters,
		sort:       opts.Sort,
		exportSort: opts.ExportSort,
		popup:      true,
	}
}

func (s State) Phase() Phase { return s.phase }
func (s State) Mode() Mode { return s.mode }
func (s State) Actions() ActionSet { return s.actions }
func (s State) Filters() FilterSet { return s.filters }
func (s State) Sort() ViewSort { return s.sort }
func (s State) ExportSort() ExportSort { return s.exportSort }
func (s State) Cursor() int { return s.cursor }
func (s State) Height() int { return s.height }
func (s State) Input() TextBuffer { return s.input }
func (s State) Popup() bool { return s.popup }
func (s State) Status() mirrors.Status { return s.status }
func (s State) Source() string { return s.source }
func (s State) Selection() Selection { return s.selection }
func (s State) Rows() []Row { return s.rows }

// Focused returns the row under the cursor.
func (s State) Focused() (Row, bool) {
	return ItemAt(s.cursor, s.rows, s.height)
}

// Msg is an input to Reduce.
type Msg interface {
	dashboardMsg()
}

// KeyPressed carries a classified key.
type KeyPressed struct {
	Key Key
}

// ItemsLoaded replaces the mirror data. Source names where it came from.
type ItemsLoaded struct {
	Status mirrors.Status
	Source string
}

// Resized carries the number of table rows that fit on screen.
type Resized struct {
	Height int
}

// Tick fires on idle cycles.
type Tick struct {
	Time time.Time
}

// ConfigChanged replaces the filter and sort settings after a config reload.
type ConfigChanged struct {
	Options Options
}

// DispatchFailed reports that a background request could not be queued.
type DispatchFailed struct {
	Err error
}

func (KeyPressed) dashboardMsg() {}
func (ItemsLoaded) dashboardMsg() {}
func (Resized) dashboardMsg() {}
func (Tick) dashboardMsg() {}
func (ConfigChanged) dashboardMsg() {}
func (DispatchFailed) dashboardMsg() {}

// Effect is what the caller must do after a transition.
type Effect int

const (
	EffectNone Effect = iota
	EffectQuit
)

// Reduce applies msg to s and returns the next state. s itself is never modified.
func Reduce(s State, msg Msg) (State, Effect) {
	switch msg := msg.(type) {
	case KeyPressed:
		return s.key(msg.Key)

	case ItemsLoaded:
		s.status = msg.Status
		s.source = msg.Source
		s.phase = PhaseReady
		s.actions = ReadyActions()
		s.popup = false
		log.LogWithFields(
			log.F("source", msg.Source),
			log.F("countries", len(msg.Status.Countries)),
			log.F("mirrors", msg.Status.MirrorCount()),
		).Info("mirror status loaded")
		return s.rebuild(), EffectNone

	case Resized:
		s.height = msg.Height
		return s, EffectNone

	case ConfigChanged:
		opts := msg.Options
		if opts.Filters == nil {
			opts.Filters = DefaultFilters()
		}
		s.filters = opts.Filters
		s.sort = opts.Sort
		s.exportSort = opts.ExportSort
		return s.rebuild(), EffectNone

	case DispatchFailed:
		s.popup = false
		log.LogError(msg.Err, "error from dispatch")
		return s, EffectNone

	case Tick:
		return s, EffectNone
	}
	return s, EffectNone
}

// rebuild recomputes the view and moves the cursor to the top.
func (s State) rebuild() State {
	s.rows = DeriveView(s.status, s.filters, s.sort, s.input.String())
	s.cursor = 0
	return s
}

func (s State) key(k Key) (State, Effect) {
	if s.mode == ModeTextEntry {
		return s.textEntry(k), EffectNone
	}

	action, ok := s.actions.Find(k)
	if !ok {
		if k.IsExit() {
			return s, EffectQuit
		}
		log.Warn("no action associated", k.String())
		return s, EffectNone
	}

	switch action {
	case ActionQuit:
		return s, EffectQuit
	case ActionClosePopUp:
		s.popup = !s.popup
	case ActionShowInput:
		s.mode = ModeTextEntry
	case ActionNavigateUp:
		s.cursor = Previous(s.cursor, len(s.rows))
	case ActionNavigateDown:
		s.cursor = Next(s.cursor, len(s.rows))
	case ActionFilterHTTPS:
		s = s.toggleFilter(FilterHTTPS)
	case ActionFilterHTTP:
		s = s.toggleFilter(FilterHTTP)
	case ActionFilterRsync:
		s = s.toggleFilter(FilterRsync)
	case ActionFilterInSync:
		s = s.toggleFilter(FilterInSync)
	case ActionViewSortAlphabetical:
		s = s.setSort(SortAlphabetical)
	case ActionViewSortMirrorCount:
		s = s.setSort(SortMirrorCount)
	case ActionToggleSelect:
		s = s.toggleSelect()
	}
	return s, EffectNone
}

func (s State) toggleFilter(f Filter) State {
	s.filters = s.filters.Toggle(f)
	log.Debugf("filter %s toggled, active: %v", f, s.filters.Strings())
	return s.rebuild()
}

func (s State) setSort(order ViewSort) State {
	s.sort = order
	return s.rebuild()
}

// toggleSelect selects or deselects the country under the cursor. An empty view is a no-op.
func (s State) toggleSelect() State {
	row, ok := s.Focused()
	if !ok {
		return s
	}
	s.selection = s.selection.Toggle(row.Country)
	log.LogWithFields(
		log.F("country", row.Country.Code),
		log.F("selected", s.selection.Has(row.Country.Code)),
	).Info("selection toggled")
	return s
}

func (s State) textEntry(k Key) State {
	switch k.Kind {
	case KeyChar:
		s.input = s.input.Insert(k.Rune)
		return s.rebuild()
	case KeyBackspace:
		s.input = s.input.Backspace()
		return s.rebuild()
	case KeyDelete:
		s.input = s.input.Delete()
		return s.rebuild()
	case KeyLeft:
		s.input = s.input.Left()
	case KeyRight:
		s.input = s.input.Right()
	case KeyHome:
		s.input = s.input.Home()
	case KeyEnd:
		s.input = s.input.End()
	case KeyEsc, KeyEnter:
		s.mode = ModeCommand
	default:
		log.Warn("no action associated", k.String())
	}
	return s
}

// View is the read-only model a renderer draws from.
type View struct {
	Phase       Phase
	Mode        Mode
	Page        []Row
	PageIndex   int
	PageCount   int
	Offset      int
	Cursor      int
	Total       int
	Focused     *Row
	Selection   Selection
	Input       string
	InputCursor int
	InputColumn int
	Popup       bool
	Filters     FilterSet
	Sort        ViewSort
	ExportSort  ExportSort
	Actions     ActionSet
	LastCheck   time.Time
	Source      string
	Mirrors     int
}

// View builds the view model for the current page.
func (s State) View() View {
	p := Pager{Height: s.height}
	n := len(s.rows)
	v := View{
		Phase:       s.phase,
		Mode:        s.mode,
		PageIndex:   p.Page(s.cursor, n),
		PageCount:   p.PageCount(n),
		Offset:      p.Offset(s.cursor, n),
		Cursor:      s.cursor,
		Total:       n,
		Selection:   s.selection,
		Input:       s.input.String(),
		InputCursor: s.input.Cursor(),
		InputColumn: s.input.Column(),
		Popup:       s.popup,
		Filters:     s.filters,
		Sort:        s.sort,
		ExportSort:  s.exportSort,
		Actions:     s.actions,
		LastCheck:   s.status.LastCheck,
		Mirrors:     s.status.MirrorCount(),
		Source:      s.source,
	}
	if pages := Fragments(p, s.rows); v.PageIndex < len(pages) {
		v.Page = pages[v.PageIndex]
	}
	if row, ok := s.Focused(); ok {
		v.Focused = &row
	}
	return v
}
