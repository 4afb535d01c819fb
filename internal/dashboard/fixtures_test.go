package dashboard

import (
	"fmt"
	"time"

	"mirrorpick/internal/mirrors"
)

var lastCheck = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// mirror builds a mirror that last synced age before lastCheck.
func mirror(proto mirrors.Protocol, age time.Duration) mirrors.Mirror {
	synced := lastCheck.Add(-age)
	score := age.Hours()
	return mirrors.Mirror{
		URL:      fmt.Sprintf("%s://mirror-%d.example.org/", proto, int(age.Minutes())),
		Protocol: proto,
		LastSync: &synced,
		Score:    &score,
		Active:   true,
	}
}

func country(name, code string, ms ...mirrors.Mirror) mirrors.Country {
	return mirrors.Country{Name: name, Code: code, Mirrors: ms}
}

func status(countries ...mirrors.Country) mirrors.Status {
	return mirrors.Status{LastCheck: lastCheck, Countries: countries}
}

// scenarioStatus is Alpha with 2 mirrors, Beta with none and Gamma with 5.
func scenarioStatus() mirrors.Status {
	return status(
		country("Alpha", "AL",
			mirror(mirrors.ProtocolHTTPS, time.Hour),
			mirror(mirrors.ProtocolHTTP, 2*time.Hour),
		),
		country("Beta", "BE"),
		country("Gamma", "GA",
			mirror(mirrors.ProtocolHTTPS, time.Hour),
			mirror(mirrors.ProtocolHTTPS, 3*time.Hour),
			mirror(mirrors.ProtocolHTTP, 5*time.Hour),
			mirror(mirrors.ProtocolHTTP, 48*time.Hour),
			mirror(mirrors.ProtocolRsync, 30*time.Minute),
		),
	)
}

func names(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Country.Name
	}
	return out
}

// ready returns a ready state loaded with st and a viewport of height rows.
func ready(st mirrors.Status, height int) State {
	s := New(Options{})
	s, _ = Reduce(s, Resized{Height: height})
	s, _ = Reduce(s, ItemsLoaded{Status: st, Source: "test"})
	return s
}

// press feeds keys through the reducer and returns the final state and last effect.
func press(s State, keys ...Key) (State, Effect) {
	var eff Effect
	for _, k := range keys {
		s, eff = Reduce(s, KeyPressed{Key: k})
	}
	return s, eff
}

func typeText(s State, text string) State {
	for _, r := range text {
		s, _ = Reduce(s, KeyPressed{Key: Char(r)})
	}
	return s
}
