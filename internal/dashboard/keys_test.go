package dashboard

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want Key
	}{
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, Char('j')},
		{"wide rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("日")}, Char('日')},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, Char(' ')},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, Enter},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, Backspace},
		{"delete", tea.KeyMsg{Type: tea.KeyDelete}, Delete},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, Left},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, Right},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, Up},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, Down},
		{"home", tea.KeyMsg{Type: tea.KeyHome}, Home},
		{"end", tea.KeyMsg{Type: tea.KeyEnd}, End},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, Esc},
		{"ctrl+s", tea.KeyMsg{Type: tea.KeyCtrlS}, Ctrl('s')},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, Ctrl('c')},
		{"ctrl+p", tea.KeyMsg{Type: tea.KeyCtrlP}, Ctrl('p')},
		{"f1", tea.KeyMsg{Type: tea.KeyF1}, Function(1)},
		{"f12", tea.KeyMsg{Type: tea.KeyF12}, Function(12)},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, Unrecognized},
		{"alt", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j"), Alt: true}, Unrecognized},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hello"), Paste: true}, Unrecognized},
		{"multi rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")}, Unrecognized},
		{"page down", tea.KeyMsg{Type: tea.KeyPgDown}, Unrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.msg))
		})
	}
}

func TestKeyIsExit(t *testing.T) {
	assert.True(t, Char('q').IsExit())
	assert.True(t, Ctrl('c').IsExit())
	assert.False(t, Char('Q').IsExit())
	assert.False(t, Esc.IsExit())
	assert.False(t, Ctrl('q').IsExit())
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "ctrl+s", Ctrl('s').String())
	assert.Equal(t, "space", Char(' ').String())
	assert.Equal(t, "f7", Function(7).String())
	assert.Equal(t, "esc", Esc.String())
	assert.Equal(t, "unrecognized", Unrecognized.String())
}
