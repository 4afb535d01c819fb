package tui

import (
	"mirrorpick/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds every lipgloss style the dashboard draws with.
type Styles struct {
	// Main application frame
	App lipgloss.Style

	Title lipgloss.Style

	// Status bar and footer text
	Status lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style

	// Table cells
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Border   lipgloss.Style

	// Filter labels in the status bar
	FilterOn  lipgloss.Style
	FilterOff lipgloss.Style

	Prompt      lipgloss.Style
	InputCursor lipgloss.Style

	Popup lipgloss.Style
}

// NewStyles builds the styles for a color theme.
func NewStyles(theme config.Theme) Styles {
	primary := lipgloss.Color(theme.Primary)
	muted := lipgloss.Color(theme.Muted)
	emphasis := lipgloss.Color(theme.Emphasis)
	border := lipgloss.Color(theme.Border)

	return Styles{
		App: lipgloss.NewStyle().
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primary).
			Padding(0, 1),

		Status: lipgloss.NewStyle().
			Foreground(muted),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Error)),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Success)),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			Padding(0, 1),

		Cell: lipgloss.NewStyle().
			Padding(0, 1),

		Cursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(emphasis).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Success)).
			Padding(0, 1),

		Border: lipgloss.NewStyle().
			Foreground(border),

		FilterOn: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Success)),

		FilterOff: lipgloss.NewStyle().
			Foreground(muted).
			Strikethrough(true),

		Prompt: lipgloss.NewStyle().
			Foreground(primary),

		InputCursor: lipgloss.NewStyle().
			Reverse(true),

		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2),
	}
}
