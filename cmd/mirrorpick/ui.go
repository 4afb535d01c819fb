package main

import (
	"fmt"
	"io"
	"strings"

	"mirrorpick/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// printer writes themed status lines for the non-interactive commands.
type printer struct {
	w       io.Writer
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
	header  lipgloss.Style
}

func newPrinter(w io.Writer, theme config.Theme) printer {
	return printer{
		w:       w,
		success: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Success)),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Error)),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Warning)),
		info:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Muted)),
		header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Primary)),
	}
}

// Success prints a success message
func (p printer) Success(message string) {
	fmt.Fprintln(p.w, p.success.Render("✓ "+message))
}

// Error prints an error message
func (p printer) Error(message string) {
	fmt.Fprintln(p.w, p.failure.Render("✗ "+message))
}

// Warning prints a warning message
func (p printer) Warning(message string) {
	fmt.Fprintln(p.w, p.warning.Render("! "+message))
}

// Info prints an informational message
func (p printer) Info(message string) {
	fmt.Fprintln(p.w, p.info.Render("ℹ "+message))
}

// Header prints a section header
func (p printer) Header(message string) {
	fmt.Fprintln(p.w, "\n"+p.header.Render(message))
	fmt.Fprintln(p.w, strings.Repeat("─", lipgloss.Width(message)))
}
