package tui

import (
	"mirrorpick/internal/dashboard"

	"github.com/charmbracelet/bubbles/key"
)

// keyMap mirrors the dashboard binding table as bubbles key bindings so the
// help popup always shows the keys Reduce actually acts on.
type keyMap struct {
	bindings map[dashboard.Action]key.Binding
}

func newKeyMap() keyMap {
	km := keyMap{bindings: make(map[dashboard.Action]key.Binding)}
	for _, a := range dashboard.ReadyActions() {
		k := a.Key().String()
		km.bindings[a] = key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, a.Help()),
		)
	}
	return km
}

// enable turns on exactly the bindings in set.
func (k keyMap) enable(set dashboard.ActionSet) keyMap {
	out := keyMap{bindings: make(map[dashboard.Action]key.Binding, len(k.bindings))}
	for a, b := range k.bindings {
		b.SetEnabled(set.Contains(a))
		out.bindings[a] = b
	}
	return out
}

func (k keyMap) pick(actions ...dashboard.Action) []key.Binding {
	out := make([]key.Binding, 0, len(actions))
	for _, a := range actions {
		out = append(out, k.bindings[a])
	}
	return out
}

func (k keyMap) ShortHelp() []key.Binding {
	return k.pick(dashboard.ActionShowInput, dashboard.ActionToggleSelect, dashboard.ActionClosePopUp, dashboard.ActionQuit)
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.pick(
			dashboard.ActionNavigateUp,
			dashboard.ActionNavigateDown,
			dashboard.ActionToggleSelect,
			dashboard.ActionShowInput,
		),
		k.pick(
			dashboard.ActionFilterHTTPS,
			dashboard.ActionFilterHTTP,
			dashboard.ActionFilterRsync,
			dashboard.ActionFilterInSync,
		),
		k.pick(
			dashboard.ActionViewSortAlphabetical,
			dashboard.ActionViewSortMirrorCount,
			dashboard.ActionClosePopUp,
			dashboard.ActionQuit,
		),
	}
}
