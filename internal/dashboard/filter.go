package dashboard

import (
	"sort"
	"strings"
	"time"

	"mirrorpick/internal/errors"
	"mirrorpick/internal/mirrors"

	"github.com/sahilm/fuzzy"
)

// Filter is a predicate over a country's mirrors.
type Filter int

const (
	FilterHTTPS Filter = iota
	FilterHTTP
	FilterRsync
	FilterInSync
)

func (f Filter) String() string {
	switch f {
	case FilterHTTPS:
		return "https"
	case FilterHTTP:
		return "http"
	case FilterRsync:
		return "rsync"
	case FilterInSync:
		return "in-sync"
	default:
		return "unknown"
	}
}

// protocol returns the mirror protocol a filter selects, if it is a protocol filter.
func (f Filter) protocol() (mirrors.Protocol, bool) {
	switch f {
	case FilterHTTPS:
		return mirrors.ProtocolHTTPS, true
	case FilterHTTP:
		return mirrors.ProtocolHTTP, true
	case FilterRsync:
		return mirrors.ProtocolRsync, true
	}
	return "", false
}

func (f Filter) matches(m mirrors.Mirror, lastCheck time.Time) bool {
	if p, ok := f.protocol(); ok {
		return m.Protocol == p
	}
	return m.InSync(lastCheck)
}

// ParseFilter parses a filter name case-insensitively.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "https":
		return FilterHTTPS, nil
	case "http":
		return FilterHTTP, nil
	case "rsync":
		return FilterRsync, nil
	case "in-sync", "insync", "in_sync":
		return FilterInSync, nil
	}
	return 0, errors.Newf("unknown filter %q", s)
}

// FilterSet is an ordered, deduplicated set of active filters.
type FilterSet []Filter

// DefaultFilters is the filter set a session starts with.
func DefaultFilters() FilterSet {
	return FilterSet{FilterHTTPS, FilterHTTP}
}

// ParseFilters parses names into a deduplicated set.
func ParseFilters(names []string) (FilterSet, error) {
	set := FilterSet{}
	for _, n := range names {
		f, err := ParseFilter(n)
		if err != nil {
			return nil, err
		}
		if !set.Contains(f) {
			set = set.Toggle(f)
		}
	}
	return set, nil
}

// Contains reports whether f is active.
func (s FilterSet) Contains(f Filter) bool {
	for _, x := range s {
		if x == f {
			return true
		}
	}
	return false
}

// Toggle removes f when active and adds it otherwise. Filters are kept in declaration
// order so toggling twice gives back an identical set. The receiver is not modified.
func (s FilterSet) Toggle(f Filter) FilterSet {
	out := make(FilterSet, 0, len(s)+1)
	found := false
	for _, x := range s {
		if x == f {
			found = true
			continue
		}
		out = append(out, x)
	}
	if !found {
		out = append(out, f)
		sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	}
	return out
}

// Strings returns the filter names in order.
func (s FilterSet) Strings() []string {
	out := make([]string, len(s))
	for i, f := range s {
		out[i] = f.String()
	}
	return out
}

// ViewSort orders the country list.
type ViewSort int

const (
	SortAlphabetical ViewSort = iota
	SortMirrorCount
)

func (s ViewSort) String() string {
	if s == SortMirrorCount {
		return "mirror-count"
	}
	return "alphabetical"
}

// ParseViewSort parses a view sort name case-insensitively.
func ParseViewSort(s string) (ViewSort, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "alphabetical", "name":
		return SortAlphabetical, nil
	case "mirror-count", "mirrorcount", "mirror_count", "count":
		return SortMirrorCount, nil
	}
	return 0, errors.Newf("unknown view sort %q", s)
}

// ExportSort orders selected mirrors in the exported list.
type ExportSort int

const (
	ExportByScore ExportSort = iota
	ExportByDelay
	ExportByDuration
	ExportByCompletion
)

func (s ExportSort) String() string {
	switch s {
	case ExportByDelay:
		return "delay"
	case ExportByDuration:
		return "duration"
	case ExportByCompletion:
		return "completion"
	default:
		return "score"
	}
}

// ParseExportSort parses an export sort name case-insensitively.
// "percentage" is accepted as an alias for completion.
func ParseExportSort(s string) (ExportSort, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "score":
		return ExportByScore, nil
	case "delay":
		return ExportByDelay, nil
	case "duration":
		return ExportByDuration, nil
	case "completion", "percentage":
		return ExportByCompletion, nil
	}
	return 0, errors.Newf("unknown export sort %q", s)
}

// Row is one country in the derived view with the number of mirrors matching the filters.
type Row struct {
	Country mirrors.Country
	Count   int
}

// passes reports whether c satisfies every active filter. A country without mirrors
// passes any filter.
func passes(c mirrors.Country, filters FilterSet, lastCheck time.Time) bool {
	if len(c.Mirrors) == 0 {
		return true
	}
	for _, f := range filters {
		ok := false
		for _, m := range c.Mirrors {
			if f.matches(m, lastCheck) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// matchingCount counts mirrors on an active protocol (any protocol when none is active)
// that are also in sync when the in-sync filter is active.
func matchingCount(c mirrors.Country, filters FilterSet, lastCheck time.Time) int {
	var protocols []mirrors.Protocol
	for _, f := range filters {
		if p, ok := f.protocol(); ok {
			protocols = append(protocols, p)
		}
	}
	inSync := filters.Contains(FilterInSync)

	n := 0
	for _, m := range c.Mirrors {
		if len(protocols) > 0 && !containsProtocol(protocols, m.Protocol) {
			continue
		}
		if inSync && !m.InSync(lastCheck) {
			continue
		}
		n++
	}
	return n
}

func containsProtocol(ps []mirrors.Protocol, p mirrors.Protocol) bool {
	for _, x := range ps {
		if x == p {
			return true
		}
	}
	return false
}

// DeriveView applies filters, the search query and the view sort to the countries of
// status. It never modifies status and always returns a new slice.
func DeriveView(status mirrors.Status, filters FilterSet, order ViewSort, query string) []Row {
	rows := make([]Row, 0, len(status.Countries))
	for _, c := range status.Countries {
		if !passes(c, filters, status.LastCheck) {
			continue
		}
		rows = append(rows, Row{Country: c, Count: matchingCount(c, filters, status.LastCheck)})
	}

	rows = search(rows, query)

	switch order {
	case SortMirrorCount:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Count > rows[j].Count
		})
	default:
		sort.SliceStable(rows, func(i, j int) bool {
			return strings.ToLower(rows[i].Country.Name) < strings.ToLower(rows[j].Country.Name)
		})
	}
	return rows
}

// search keeps rows whose name or code contains query, falling back to fuzzy matching on
// the name when nothing contains it. Order is preserved.
func search(rows []Row, query string) []Row {
	query = strings.TrimSpace(query)
	if query == "" {
		return rows
	}

	needle := strings.ToLower(query)
	var out []Row
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Country.Name), needle) ||
			strings.Contains(strings.ToLower(r.Country.Code), needle) {
			out = append(out, r)
		}
	}
	if len(out) > 0 {
		return out
	}

	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Country.Name
	}
	matched := make(map[int]bool)
	for _, m := range fuzzy.Find(query, names) {
		matched[m.Index] = true
	}
	out = make([]Row, 0, len(matched))
	for i, r := range rows {
		if matched[i] {
			out = append(out, r)
		}
	}
	return out
}
