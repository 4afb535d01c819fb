package mirrors

import (
	"bytes"
	"io"
	"sort"
	"strings"
	"time"

	"mirrorpick/internal/errors"

	json "github.com/goccy/go-json"
)

// statusDocument is the JSON document served at /mirrors/status/json/.
type statusDocument struct {
	Cutoff         int       `json:"cutoff"`
	LastCheck      time.Time `json:"last_check"`
	NumChecks      int       `json:"num_checks"`
	CheckFrequency int       `json:"check_frequency"`
	URLs           []Mirror  `json:"urls"`
	Version        int       `json:"version"`
}

// Decode parses a mirror status document and groups its mirrors by country.
func Decode(r io.Reader) (Status, error) {
	var doc statusDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Status{}, errors.NewFetchError("malformed mirror status", "", 0, errors.DecodeFailed, err)
	}
	return fromDocument(doc), nil
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(b []byte) (Status, error) {
	return Decode(bytes.NewReader(b))
}

func fromDocument(doc statusDocument) Status {
	return Status{
		Cutoff:         doc.Cutoff,
		LastCheck:      doc.LastCheck,
		NumChecks:      doc.NumChecks,
		CheckFrequency: doc.CheckFrequency,
		URLs:           doc.URLs,
		Countries:      groupByCountry(doc.URLs),
	}
}

// groupByCountry buckets mirrors by country code, keeping the document order of mirrors
// within a country. Countries are ordered by name, then code.
func groupByCountry(urls []Mirror) []Country {
	index := make(map[string]int)
	var countries []Country
	for _, m := range urls {
		code := strings.ToUpper(m.CountryCode)
		i, ok := index[code]
		if !ok {
			name := m.Country
			if name == "" {
				name = WorldwideName
			}
			i = len(countries)
			index[code] = i
			countries = append(countries, Country{Name: name, Code: code})
		}
		countries[i].Mirrors = append(countries[i].Mirrors, m)
	}

	sort.SliceStable(countries, func(i, j int) bool {
		if countries[i].Name != countries[j].Name {
			return countries[i].Name < countries[j].Name
		}
		return countries[i].Code < countries[j].Code
	})
	return countries
}
