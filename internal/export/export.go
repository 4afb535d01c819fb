// Package export turns the selected mirrors into a pacman mirrorlist.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"mirrorpick/internal/dashboard"
	"mirrorpick/internal/errors"
	"mirrorpick/internal/log"
	"mirrorpick/internal/mirrors"

	"github.com/atotto/clipboard"
)

// DefaultLimit is the number of servers written when no limit is configured.
const DefaultLimit = 50

// Options controls the rendered list.
type Options struct {
	Limit     int
	Sort      dashboard.ExportSort
	Generated time.Time
}

// Sort returns the mirrors ordered by the export key. Score, delay and duration sort
// ascending, completion descending. Mirrors without a value go last; ties keep selection
// order.
func Sort(sel []dashboard.SelectedMirror, by dashboard.ExportSort) []dashboard.SelectedMirror {
	out := make([]dashboard.SelectedMirror, len(sel))
	copy(out, sel)

	switch by {
	case dashboard.ExportByDelay:
		sort.SliceStable(out, func(i, j int) bool { return lessMissingLast(out[i].Delay, out[j].Delay) })
	case dashboard.ExportByDuration:
		sort.SliceStable(out, func(i, j int) bool { return lessMissingLast(out[i].DurationAvg, out[j].DurationAvg) })
	case dashboard.ExportByCompletion:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CompletionPct > out[j].CompletionPct })
	default:
		sort.SliceStable(out, func(i, j int) bool { return lessMissingLast(out[i].Score, out[j].Score) })
	}
	return out
}

func lessMissingLast[T int64 | float64](a, b *T) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return *a < *b
	}
}

// Servers returns the sorted http and https mirrors, cut to the limit. Rsync mirrors
// cannot be used by pacman and are skipped.
func Servers(sel []dashboard.SelectedMirror, opts Options) []dashboard.SelectedMirror {
	var out []dashboard.SelectedMirror
	for _, m := range Sort(sel, opts.Sort) {
		if m.Protocol != mirrors.ProtocolHTTP && m.Protocol != mirrors.ProtocolHTTPS {
			continue
		}
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
		out = append(out, m)
	}
	return out
}

// Mirrorlist renders the selection in pacman's mirrorlist format.
func Mirrorlist(sel []dashboard.SelectedMirror, opts Options) ([]byte, error) {
	servers := Servers(sel, opts)
	if len(servers) == 0 {
		return nil, errors.ErrNoMirrors
	}

	generated := opts.Generated
	if generated.IsZero() {
		generated = time.Now()
	}

	var buf bytes.Buffer
	buf.WriteString("##\n## Arch Linux repository mirrorlist\n")
	fmt.Fprintf(&buf, "## Generated by mirrorpick on %s\n", generated.UTC().Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&buf, "## Sorted by %s, %d servers\n##\n", opts.Sort, len(servers))

	country := ""
	for i, m := range servers {
		if i == 0 || m.CountryName != country {
			country = m.CountryName
			fmt.Fprintf(&buf, "\n## %s\n", country)
		}
		fmt.Fprintf(&buf, "Server = %s$repo/os/$arch\n", withSlash(m.URL))
	}
	return buf.Bytes(), nil
}

func withSlash(url string) string {
	if strings.HasSuffix(url, "/") {
		return url
	}
	return url + "/"
}

// WriteFile atomically replaces path with data, creating parent directories.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewExportError("cannot create directory", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".mirrorlist-*")
	if err != nil {
		return errors.NewExportError("cannot create temporary file", dir, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.NewExportError("cannot write mirrorlist", tmp.Name(), err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return errors.NewExportError("cannot set permissions", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewExportError("cannot write mirrorlist", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.NewExportError("cannot replace mirrorlist", path, err)
	}
	log.LogWithFields(log.F("path", path), log.F("bytes", len(data))).Info("mirrorlist written")
	return nil
}

// clipboardWrite is replaced in tests; the system clipboard is not available there.
var clipboardWrite = clipboard.WriteAll

// ToClipboard copies the rendered list to the system clipboard.
func ToClipboard(data []byte) error {
	if clipboard.Unsupported {
		return errors.NewExportError("clipboard unsupported on this system", "clipboard", nil)
	}
	if err := clipboardWrite(string(data)); err != nil {
		return errors.NewExportError("cannot copy mirrorlist", "clipboard", err)
	}
	return nil
}
