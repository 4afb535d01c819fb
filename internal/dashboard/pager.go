package dashboard

// Pager maps a linear cursor onto fixed-height pages.
// A non-positive Height means no frame has been laid out yet; everything is one page.
type Pager struct {
	Height int
}

func (p Pager) height(n int) int {
	if p.Height <= 0 {
		if n <= 0 {
			return 1
		}
		return n
	}
	return p.Height
}

// Page returns the page index of cursor c in a list of n items.
func (p Pager) Page(c, n int) int {
	if n <= 0 || c < 0 {
		return 0
	}
	return c / p.height(n)
}

// Offset returns the position of cursor c within its page.
func (p Pager) Offset(c, n int) int {
	if n <= 0 || c < 0 {
		return 0
	}
	return c - p.Page(c, n)*p.height(n)
}

// PageCount returns the number of pages for n items.
func (p Pager) PageCount(n int) int {
	if n <= 0 {
		return 0
	}
	h := p.height(n)
	return (n + h - 1) / h
}

// Fragments partitions items into contiguous pages of the pager height; the last page
// may be shorter. The returned pages share the backing array of items.
func Fragments[T any](p Pager, items []T) [][]T {
	n := len(items)
	if n == 0 {
		return nil
	}
	h := p.height(n)
	out := make([][]T, 0, p.PageCount(n))
	for start := 0; start < n; start += h {
		end := start + h
		if end > n {
			end = n
		}
		out = append(out, items[start:end:end])
	}
	return out
}

// Next advances c, wrapping to 0 after the last item. No-op for an empty list.
func Next(c, n int) int {
	if n <= 0 {
		return c
	}
	return (c + 1) % n
}

// Previous moves c back, wrapping to the last item from 0. No-op for an empty list.
func Previous(c, n int) int {
	if n <= 0 {
		return c
	}
	return (c - 1 + n) % n
}

// ItemAt resolves the item under cursor by locating its page and in-page offset.
// Rendering and selection both go through here so they agree on the focused row.
func ItemAt[T any](cursor int, items []T, height int) (T, bool) {
	var zero T
	if cursor < 0 || cursor >= len(items) {
		return zero, false
	}
	p := Pager{Height: height}
	pages := Fragments(p, items)
	page := p.Page(cursor, len(items))
	offset := p.Offset(cursor, len(items))
	if page >= len(pages) || offset >= len(pages[page]) {
		return zero, false
	}
	return pages[page][offset], true
}
