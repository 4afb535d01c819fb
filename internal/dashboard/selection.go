package dashboard

import (
	"time"

	"mirrorpick/internal/mirrors"
)

// SelectedMirror is a copy of a mirror taken when its country was selected.
// Later changes to the loaded data or the view do not affect it.
type SelectedMirror struct {
	CountryCode    string
	CountryName    string
	URL            string
	Protocol       mirrors.Protocol
	CompletionPct  float64
	Delay          *int64
	DurationAvg    *float64
	DurationStddev *float64
	Score          *float64
	LastSync       *time.Time
}

func snapshot(c mirrors.Country, m mirrors.Mirror) SelectedMirror {
	return SelectedMirror{
		CountryCode:    c.Code,
		CountryName:    c.Name,
		URL:            m.URL,
		Protocol:       m.Protocol,
		CompletionPct:  m.CompletionPct,
		Delay:          copyPtr(m.Delay),
		DurationAvg:    copyPtr(m.DurationAvg),
		DurationStddev: copyPtr(m.DurationStddev),
		Score:          copyPtr(m.Score),
		LastSync:       copyPtr(m.LastSync),
	}
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Selection is the insertion-ordered set of selected mirrors, whole countries at a time.
type Selection []SelectedMirror

// Has reports whether any mirror of the country code is selected.
func (s Selection) Has(code string) bool {
	for _, m := range s {
		if m.CountryCode == code {
			return true
		}
	}
	return false
}

// Toggle deselects every mirror of c when any is selected, otherwise appends a snapshot of
// all its mirrors. The receiver is left untouched.
func (s Selection) Toggle(c mirrors.Country) Selection {
	if s.Has(c.Code) {
		out := make(Selection, 0, len(s))
		for _, m := range s {
			if m.CountryCode != c.Code {
				out = append(out, m)
			}
		}
		return out
	}

	out := make(Selection, 0, len(s)+len(c.Mirrors))
	out = append(out, s...)
	for _, m := range c.Mirrors {
		out = append(out, snapshot(c, m))
	}
	return out
}

// Countries returns the selected country codes in selection order.
func (s Selection) Countries() []string {
	var codes []string
	seen := make(map[string]bool)
	for _, m := range s {
		if !seen[m.CountryCode] {
			seen[m.CountryCode] = true
			codes = append(codes, m.CountryCode)
		}
	}
	return codes
}
