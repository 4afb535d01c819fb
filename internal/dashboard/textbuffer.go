package dashboard

import (
	"github.com/mattn/go-runewidth"
)

// TextBuffer is the search input. The cursor counts characters, never bytes, and is
// always within [0, len].
type TextBuffer struct {
	runes  []rune
	cursor int
}

// NewTextBuffer returns a buffer holding s with the cursor at the end.
func NewTextBuffer(s string) TextBuffer {
	r := []rune(s)
	return TextBuffer{runes: r, cursor: len(r)}
}

func (b TextBuffer) String() string { return string(b.runes) }

// Len is the number of characters in the buffer.
func (b TextBuffer) Len() int { return len(b.runes) }

// Cursor is the character index of the cursor.
func (b TextBuffer) Cursor() int { return b.cursor }

// Column is the display column of the cursor, accounting for wide characters.
func (b TextBuffer) Column() int {
	return runewidth.StringWidth(string(b.runes[:b.cursor]))
}

// edit returns a copy with its own backing array.
func (b TextBuffer) edit() TextBuffer {
	r := make([]rune, len(b.runes), len(b.runes)+1)
	copy(r, b.runes)
	return TextBuffer{runes: r, cursor: b.cursor}
}

// Insert adds r at the cursor and advances it.
func (b TextBuffer) Insert(r rune) TextBuffer {
	out := b.edit()
	out.runes = append(out.runes, 0)
	copy(out.runes[out.cursor+1:], out.runes[out.cursor:])
	out.runes[out.cursor] = r
	out.cursor++
	return out
}

// Backspace removes the character before the cursor.
func (b TextBuffer) Backspace() TextBuffer {
	if b.cursor == 0 {
		return b
	}
	out := b.edit()
	out.runes = append(out.runes[:out.cursor-1], out.runes[out.cursor:]...)
	out.cursor--
	return out
}

// Delete removes the character at the cursor.
func (b TextBuffer) Delete() TextBuffer {
	if b.cursor >= len(b.runes) {
		return b
	}
	out := b.edit()
	out.runes = append(out.runes[:out.cursor], out.runes[out.cursor+1:]...)
	return out
}

func (b TextBuffer) Left() TextBuffer {
	if b.cursor > 0 {
		b.cursor--
	}
	return b
}

func (b TextBuffer) Right() TextBuffer {
	if b.cursor < len(b.runes) {
		b.cursor++
	}
	return b
}

func (b TextBuffer) Home() TextBuffer {
	b.cursor = 0
	return b
}

func (b TextBuffer) End() TextBuffer {
	b.cursor = len(b.runes)
	return b
}
