package dashboard

// Action is a semantic command resolved from a key in command mode.
type Action int

const (
	ActionClosePopUp Action = iota
	ActionQuit
	ActionShowInput
	ActionNavigateUp
	ActionNavigateDown
	ActionFilterHTTPS
	ActionFilterHTTP
	ActionFilterRsync
	ActionFilterInSync
	ActionViewSortAlphabetical
	ActionViewSortMirrorCount
	ActionToggleSelect
)

// binding pairs an action with its key and help text.
type binding struct {
	action Action
	key    Key
	help   string
}

// bindings is the static binding table. Every action has exactly one key.
var bindings = []binding{
	{ActionClosePopUp, Ctrl('p'), "toggle popup"},
	{ActionQuit, Char('q'), "quit"},
	{ActionShowInput, Esc, "search"},
	{ActionNavigateUp, Char('k'), "up"},
	{ActionNavigateDown, Char('j'), "down"},
	{ActionFilterHTTPS, Ctrl('s'), "filter https"},
	{ActionFilterHTTP, Ctrl('t'), "filter http"},
	{ActionFilterRsync, Ctrl('r'), "filter rsync"},
	{ActionFilterInSync, Ctrl('o'), "filter in sync"},
	{ActionViewSortAlphabetical, Char('1'), "sort by name"},
	{ActionViewSortMirrorCount, Char('2'), "sort by mirrors"},
	{ActionToggleSelect, Char(' '), "select country"},
}

// Key returns the key bound to a.
func (a Action) Key() Key {
	for _, b := range bindings {
		if b.action == a {
			return b.key
		}
	}
	return Unrecognized
}

// Help returns the short help text for a.
func (a Action) Help() string {
	for _, b := range bindings {
		if b.action == a {
			return b.help
		}
	}
	return ""
}

func (a Action) String() string {
	switch a {
	case ActionClosePopUp:
		return "close-popup"
	case ActionQuit:
		return "quit"
	case ActionShowInput:
		return "show-input"
	case ActionNavigateUp:
		return "navigate-up"
	case ActionNavigateDown:
		return "navigate-down"
	case ActionFilterHTTPS:
		return "filter-https"
	case ActionFilterHTTP:
		return "filter-http"
	case ActionFilterRsync:
		return "filter-rsync"
	case ActionFilterInSync:
		return "filter-in-sync"
	case ActionViewSortAlphabetical:
		return "sort-alphabetical"
	case ActionViewSortMirrorCount:
		return "sort-mirror-count"
	case ActionToggleSelect:
		return "toggle-select"
	default:
		return "unknown"
	}
}

// ActionSet is an ordered set of enabled actions.
type ActionSet []Action

// LoadingActions is enabled while the first data set is being fetched.
func LoadingActions() ActionSet {
	return ActionSet{ActionQuit}
}

// ReadyActions enables every action.
func ReadyActions() ActionSet {
	set := make(ActionSet, 0, len(bindings))
	for _, b := range bindings {
		set = append(set, b.action)
	}
	return set
}

// Find returns the first enabled action bound to key.
func (s ActionSet) Find(key Key) (Action, bool) {
	for _, a := range s {
		if a.Key() == key {
			return a, true
		}
	}
	return 0, false
}

// Contains reports whether a is enabled.
func (s ActionSet) Contains(a Action) bool {
	for _, x := range s {
		if x == a {
			return true
		}
	}
	return false
}
