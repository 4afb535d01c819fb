package dashboard

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyKind discriminates abstract keys.
type KeyKind int

const (
	KeyUnrecognized KeyKind = iota
	KeyChar
	KeyCtrl
	KeyFunction
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyEsc
)

// Key is an abstract key symbol. Rune holds the character for KeyChar and KeyCtrl,
// N the number for KeyFunction. Keys are comparable.
type Key struct {
	Kind KeyKind
	Rune rune
	N    int
}

// Char is a printable character key.
func Char(r rune) Key { return Key{Kind: KeyChar, Rune: r} }

// Ctrl is a control chord such as ctrl+s.
func Ctrl(r rune) Key { return Key{Kind: KeyCtrl, Rune: r} }

// Function is the function key Fn.
func Function(n int) Key { return Key{Kind: KeyFunction, N: n} }

var (
	Unrecognized = Key{Kind: KeyUnrecognized}
	Enter        = Key{Kind: KeyEnter}
	Backspace    = Key{Kind: KeyBackspace}
	Delete       = Key{Kind: KeyDelete}
	Left         = Key{Kind: KeyLeft}
	Right        = Key{Kind: KeyRight}
	Up           = Key{Kind: KeyUp}
	Down         = Key{Kind: KeyDown}
	Home         = Key{Kind: KeyHome}
	End          = Key{Kind: KeyEnd}
	Esc          = Key{Kind: KeyEsc}
)

// IsExit reports whether the key ends the session when pressed outside text entry.
func (k Key) IsExit() bool {
	return k == Char('q') || k == Ctrl('c')
}

// IsPrintable reports whether the key inserts text.
func (k Key) IsPrintable() bool {
	return k.Kind == KeyChar
}

func (k Key) String() string {
	switch k.Kind {
	case KeyChar:
		if k.Rune == ' ' {
			return "space"
		}
		return string(k.Rune)
	case KeyCtrl:
		return "ctrl+" + string(k.Rune)
	case KeyFunction:
		return fmt.Sprintf("f%d", k.N)
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	case KeyDelete:
		return "delete"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeyEsc:
		return "esc"
	default:
		return "unrecognized"
	}
}

// Classify maps a terminal key event to an abstract key. It never fails:
// anything it does not know becomes Unrecognized.
func Classify(msg tea.KeyMsg) Key {
	if msg.Alt || msg.Paste {
		return Unrecognized
	}

	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return Unrecognized
		}
		return Char(msg.Runes[0])
	case tea.KeySpace:
		return Char(' ')
	case tea.KeyEnter:
		return Enter
	case tea.KeyBackspace:
		return Backspace
	case tea.KeyDelete:
		return Delete
	case tea.KeyLeft:
		return Left
	case tea.KeyRight:
		return Right
	case tea.KeyUp:
		return Up
	case tea.KeyDown:
		return Down
	case tea.KeyHome:
		return Home
	case tea.KeyEnd:
		return End
	case tea.KeyEsc:
		return Esc
	case tea.KeyTab:
		return Unrecognized
	}

	// ctrl+a (1) through ctrl+z (26); tab and enter were handled above.
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		return Ctrl(rune('a' + int(msg.Type-tea.KeyCtrlA)))
	}
	// Function keys are declared in descending order.
	if msg.Type <= tea.KeyF1 && msg.Type >= tea.KeyF20 {
		return Function(int(tea.KeyF1-msg.Type) + 1)
	}
	return Unrecognized
}
