package mirrors

import (
	"strings"

	"mirrorpick/internal/errors"

	"github.com/gobwas/glob"
)

// FilterCountries keeps the countries whose name or code matches any of patterns.
// Matching is case-insensitive. No patterns keeps every country.
func FilterCountries(st Status, patterns []string) (Status, error) {
	if len(patterns) == 0 {
		return st, nil
	}

	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(strings.ToLower(strings.TrimSpace(p)))
		if err != nil {
			return Status{}, errors.NewConfigError("invalid country pattern "+p, "countries", errors.InvalidConfig, err)
		}
		globs = append(globs, g)
	}

	out := st
	out.Countries = make([]Country, 0, len(st.Countries))
	for _, c := range st.Countries {
		name, code := strings.ToLower(c.Name), strings.ToLower(c.Code)
		for _, g := range globs {
			if g.Match(name) || g.Match(code) {
				out.Countries = append(out.Countries, c)
				break
			}
		}
	}
	return out, nil
}
