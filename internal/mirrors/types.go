// Package mirrors loads the Arch Linux mirror status and groups it by country.
package mirrors

import (
	"strings"
	"time"
)

// Protocol is the transport a mirror is reachable over.
type Protocol string

const (
	ProtocolHTTPS Protocol = "https"
	ProtocolHTTP  Protocol = "http"
	ProtocolRsync Protocol = "rsync"
)

// WorldwideName labels mirrors that report no country.
const WorldwideName = "Worldwide"

// SyncWindow is how far behind the last status check a mirror may be and still count as in sync.
const SyncWindow = 24 * time.Hour

// Mirror is one mirror URL as reported by the status endpoint.
// Optional measurements are nil when the mirror has not been checked.
type Mirror struct {
	URL            string     `json:"url"`
	Protocol       Protocol   `json:"protocol"`
	LastSync       *time.Time `json:"last_sync"`
	CompletionPct  float64    `json:"completion_pct"`
	Delay          *int64     `json:"delay"`
	DurationAvg    *float64   `json:"duration_avg"`
	DurationStddev *float64   `json:"duration_stddev"`
	Score          *float64   `json:"score"`
	Active         bool       `json:"active"`
	Country        string     `json:"country"`
	CountryCode    string     `json:"country_code"`
	ISOs           bool       `json:"isos"`
	IPv4           bool       `json:"ipv4"`
	IPv6           bool       `json:"ipv6"`
	Details        string     `json:"details"`
}

// InSync reports whether the mirror synced within SyncWindow of lastCheck.
func (m Mirror) InSync(lastCheck time.Time) bool {
	if m.LastSync == nil {
		return false
	}
	return lastCheck.Sub(*m.LastSync) <= SyncWindow
}

// Country groups the mirrors hosted in one country.
type Country struct {
	Name    string
	Code    string
	Mirrors []Mirror
}

// Status is a snapshot of the mirror status endpoint.
type Status struct {
	Cutoff         int
	LastCheck      time.Time
	NumChecks      int
	CheckFrequency int
	URLs           []Mirror
	Countries      []Country
}

// MirrorCount is the total number of mirrors across countries.
func (s Status) MirrorCount() int {
	n := 0
	for _, c := range s.Countries {
		n += len(c.Mirrors)
	}
	return n
}

// Country returns the country with the given code.
func (s Status) Country(code string) (Country, bool) {
	for _, c := range s.Countries {
		if strings.EqualFold(c.Code, code) {
			return c, true
		}
	}
	return Country{}, false
}
