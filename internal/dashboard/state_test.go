package dashboard

import (
	"errors"
	"testing"
	"time"

	"mirrorpick/internal/mirrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewStateIsLoading(t *testing.T) {
	s := New(Options{})
	assert.Equal(t, PhaseLoading, s.Phase())
	assert.Equal(t, ModeCommand, s.Mode())
	assert.Equal(t, LoadingActions(), s.Actions())
	assert.Equal(t, DefaultFilters(), s.Filters())
	assert.Equal(t, SortAlphabetical, s.Sort())
	assert.True(t, s.Popup())
	assert.Empty(t, s.Rows())
}

func TestLoadingPhaseOnlyQuits(t *testing.T) {
	s := New(Options{})

	s, eff := press(s, Char('j'), Ctrl('s'), Esc, Char(' '))
	assert.Equal(t, EffectNone, eff)
	assert.Equal(t, ModeCommand, s.Mode())
	assert.Equal(t, DefaultFilters(), s.Filters())

	_, eff = press(s, Char('q'))
	assert.Equal(t, EffectQuit, eff)
	_, eff = press(s, Ctrl('c'))
	assert.Equal(t, EffectQuit, eff)
}

func TestItemsLoadedMakesReady(t *testing.T) {
	s := New(Options{Sort: SortMirrorCount})
	s, eff := Reduce(s, ItemsLoaded{Status: scenarioStatus(), Source: "fallback"})
	assert.Equal(t, EffectNone, eff)
	assert.Equal(t, PhaseReady, s.Phase())
	assert.Equal(t, ReadyActions(), s.Actions())
	assert.False(t, s.Popup())
	assert.Equal(t, "fallback", s.Source())
	assert.Equal(t, []string{"Gamma", "Alpha", "Beta"}, names(s.Rows()))
}

func TestItemsLoadedResetsCursorKeepsSelection(t *testing.T) {
	s := ready(scenarioStatus(), 10)
	s, _ = press(s, Char(' '), Char('j'), Char('j'))
	require.Equal(t, 2, s.Cursor())
	require.Len(t, s.Selection(), 2)

	s, _ = Reduce(s, ItemsLoaded{Status: status(country("Solo", "SO")), Source: "network"})
	assert.Equal(t, 0, s.Cursor())
	assert.Equal(t, []string{"Solo"}, names(s.Rows()))
	assert.Len(t, s.Selection(), 2)
}

func TestCommandModeActions(t *testing.T) {
	s := ready(scenarioStatus(), 10)

	s, _ = press(s, Char('k'))
	assert.Equal(t, 2, s.Cursor(), "up wraps to last row")
	s, _ = press(s, Char('j'))
	assert.Equal(t, 0, s.Cursor(), "down wraps to first row")

	s, _ = press(s, Char('j'), Ctrl('r'))
	assert.Equal(t, 0, s.Cursor(), "filter change resets cursor")
	assert.Equal(t, FilterSet{FilterHTTPS, FilterHTTP, FilterRsync}, s.Filters())
	assert.Equal(t, []string{"Beta", "Gamma"}, names(s.Rows()))

	s, _ = press(s, Ctrl('r'))
	assert.Equal(t, DefaultFilters(), s.Filters())
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, names(s.Rows()))

	s, _ = press(s, Ctrl('s'), Ctrl('t'))
	assert.Equal(t, FilterSet{}, s.Filters())

	s, _ = press(s, Ctrl('o'))
	assert.Equal(t, FilterSet{FilterInSync}, s.Filters())

	s, _ = press(s, Char('j'), Char('2'))
	assert.Equal(t, SortMirrorCount, s.Sort())
	assert.Equal(t, 0, s.Cursor(), "sort change resets cursor")
	assert.Equal(t, []string{"Gamma", "Alpha", "Beta"}, names(s.Rows()))

	s, _ = press(s, Char('1'))
	assert.Equal(t, SortAlphabetical, s.Sort())

	s, _ = press(s, Ctrl('p'))
	assert.True(t, s.Popup())
	s, _ = press(s, Ctrl('p'))
	assert.False(t, s.Popup())
}

func TestUnmappedKeysAreIgnored(t *testing.T) {
	s := ready(scenarioStatus(), 10)
	before := s

	s, eff := press(s, Char('x'), Function(3), Unrecognized, Up, Enter)
	assert.Equal(t, EffectNone, eff)
	assert.Equal(t, before.Cursor(), s.Cursor())
	assert.Equal(t, before.Filters(), s.Filters())
	assert.Equal(t, ModeCommand, s.Mode())
}

func TestExitKeysInCommandMode(t *testing.T) {
	s := ready(scenarioStatus(), 10)
	_, eff := press(s, Char('q'))
	assert.Equal(t, EffectQuit, eff)
	_, eff = press(s, Ctrl('c'))
	assert.Equal(t, EffectQuit, eff)
}

func TestTextEntryScenarioC(t *testing.T) {
	s := ready(scenarioStatus(), 10)
	s, _ = press(s, Esc)
	require.Equal(t, ModeTextEntry, s.Mode())

	s = typeText(s, "ab")
	s, _ = press(s, Left, Backspace)
	assert.Equal(t, "b", s.Input().String())
	assert.Equal(t, 0, s.Input().Cursor())
}

func TestTextEntryInsertsCommandCharacters(t *testing.T) {
	s := ready(scenarioStatus(), 10)
	s, _ = press(s, Esc)

	s, eff := press(s, Char('q'), Char('j'), Char('k'), Char('1'), Char('2'), Char(' '))
	assert.Equal(t, EffectNone, eff)
	assert.Equal(t, "qjk12 ", s.Input().String())
	assert.Equal(t, ModeTextEntry, s.Mode())
	assert.Equal(t, DefaultFilters(), s.Filters())
	assert.Equal(t, SortAlphabetical, s.Sort())

	_, eff = press(s, Ctrl('c'))
	assert.Equal(t, EffectNone, eff)
	s, _ = press(s, Ctrl('s'))
	assert.Equal(t, DefaultFilters(), s.Filters(), "filter keys are inert while typing")
}

func TestTextEntrySearch(t *testing.T) {
	s := ready(scenarioStatus(), 10)
	s, _ = press(s, Char('j'), Char('j'), Esc)
	require.Equal(t, 2, s.Cursor())

	s = typeText(s, "am")
	assert.Equal(t, 0, s.Cursor(), "typing resets cursor")
	assert.Equal(t, []string{"Gamma"}, names(s.Rows()))

	// leaving text entry keeps the query applied
	s, _ = press(s, Esc)
	assert.Equal(t, ModeCommand, s.Mode())
	assert.Equal(t, "am", s.Input().String())
	assert.Equal(t, []string{"Gamma"}, names(s.Rows()))

	s, _ = press(s, Esc, End, Backspace, Backspace)
	assert.Equal(t, "", s.Input().String())
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, names(s.Rows()))

	s = typeText(s, "be")
	s, _ = press(s, Enter)
	assert.Equal(t, ModeCommand, s.Mode())
	assert.Equal(t, []string{"Beta"}, names(s.Rows()))
}

func TestTextEntryCursorMovement(t *testing.T) {
	s := ready(scenarioStatus(), 10)
	s, _ = press(s, Esc)
	s = typeText(s, "abc")

	s, _ = press(s, Home, Right, Delete)
	assert.Equal(t, "ac", s.Input().String())
	assert.Equal(t, 1, s.Input().Cursor())

	s, _ = press(s, End, Right, Right)
	assert.Equal(t, 2, s.Input().Cursor())
	s, _ = press(s, Home, Left)
	assert.Equal(t, 0, s.Input().Cursor())
}

func TestResizeAndTick(t *testing.T) {
	s := ready(scenarioStatus(), 10)
	s, _ = press(s, Char('j'), Char('j'))

	s, eff := Reduce(s, Resized{Height: 2})
	assert.Equal(t, EffectNone, eff)
	assert.Equal(t, 2, s.Height())
	assert.Equal(t, 2, s.Cursor())

	next, eff := Reduce(s, Tick{Time: time.Now()})
	assert.Equal(t, EffectNone, eff)
	assert.Equal(t, s.View(), next.View())
}

func TestConfigChanged(t *testing.T) {
	s := ready(scenarioStatus(), 10)
	s, _ = press(s, Char('j'))

	s, _ = Reduce(s, ConfigChanged{Options: Options{
		Filters:    FilterSet{FilterRsync},
		Sort:       SortMirrorCount,
		ExportSort: ExportByDelay,
	}})
	assert.Equal(t, 0, s.Cursor())
	assert.Equal(t, FilterSet{FilterRsync}, s.Filters())
	assert.Equal(t, ExportByDelay, s.ExportSort())
	assert.Equal(t, []string{"Gamma", "Beta"}, names(s.Rows()))

	s, _ = Reduce(s, ConfigChanged{})
	assert.Equal(t, DefaultFilters(), s.Filters())
}

func TestDispatchFailedHidesPopup(t *testing.T) {
	s := New(Options{})
	s, eff := Reduce(s, DispatchFailed{Err: errors.New("queue full")})
	assert.Equal(t, EffectNone, eff)
	assert.False(t, s.Popup())
	assert.Equal(t, PhaseLoading, s.Phase())
}

func TestViewModel(t *testing.T) {
	var countries []mirrors.Country
	for _, code := range []string{"AA", "BB", "CC", "DD", "EE"} {
		countries = append(countries, country(code[:1], code,
			mirror(mirrors.ProtocolHTTPS, time.Hour),
			mirror(mirrors.ProtocolHTTP, time.Hour),
		))
	}
	st := status(countries...)
	s := ready(st, 2)
	s, _ = press(s, Char('k'), Char(' '))

	v := s.View()
	assert.Equal(t, 4, v.Cursor)
	assert.Equal(t, 2, v.PageIndex)
	assert.Equal(t, 3, v.PageCount)
	assert.Equal(t, 0, v.Offset)
	assert.Equal(t, 5, v.Total)
	assert.Equal(t, []string{"E"}, names(v.Page))
	require.NotNil(t, v.Focused)
	assert.Equal(t, "EE", v.Focused.Country.Code)
	assert.Equal(t, []string{"EE"}, v.Selection.Countries())
	assert.Equal(t, lastCheck, v.LastCheck)
	assert.Equal(t, 10, v.Mirrors)

	s, _ = press(s, Esc)
	s = typeText(s, "日")
	v = s.View()
	assert.Equal(t, ModeTextEntry, v.Mode)
	assert.Equal(t, "日", v.Input)
	assert.Equal(t, 1, v.InputCursor)
	assert.Equal(t, 2, v.InputColumn)
	assert.Empty(t, v.Page)
	assert.Nil(t, v.Focused)
}

func TestCursorStaysInRange(t *testing.T) {
	keys := []Key{
		Char('j'), Char('k'), Char(' '), Char('1'), Char('2'), Char('a'), Char('e'),
		Ctrl('s'), Ctrl('t'), Ctrl('r'), Ctrl('o'), Ctrl('p'),
		Esc, Enter, Backspace, Delete, Left, Right, Home, End, Unrecognized,
	}
	rapid.Check(t, func(t *rapid.T) {
		s := ready(genStatus(t), rapid.IntRange(0, 5).Draw(t, "height"))
		steps := rapid.SliceOfN(rapid.SampledFrom(keys), 0, 60).Draw(t, "keys")
		for _, k := range steps {
			s, _ = Reduce(s, KeyPressed{Key: k})
			n := len(s.Rows())
			if n > 0 && (s.Cursor() < 0 || s.Cursor() >= n) {
				t.Fatalf("cursor %d out of range for %d rows after %s", s.Cursor(), n, k)
			}
			if n == 0 && s.Cursor() != 0 {
				t.Fatalf("cursor %d on empty view", s.Cursor())
			}
			if in := s.Input(); in.Cursor() < 0 || in.Cursor() > in.Len() {
				t.Fatalf("input cursor %d out of range", in.Cursor())
			}
		}
	})
}
