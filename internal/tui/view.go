package tui

import (
	"fmt"
	"strconv"
	"strings"

	"mirrorpick/internal/dashboard"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var allFilters = []dashboard.Filter{
	dashboard.FilterHTTPS,
	dashboard.FilterHTTP,
	dashboard.FilterRsync,
	dashboard.FilterInSync,
}

// View implements tea.Model
func (m *Model) View() string {
	v := m.state.View()

	sections := []string{
		m.renderTitle(v),
		m.renderStatusBar(v),
	}
	if v.Popup {
		sections = append(sections, m.renderPopup(v))
	} else {
		sections = append(sections, m.renderTable(v))
	}
	sections = append(sections,
		m.renderSelection(v),
		m.renderInput(v),
		m.help.View(m.keys),
	)
	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderTitle(v dashboard.View) string {
	title := m.styles.Title.Render("mirrorpick")
	if v.Phase == dashboard.PhaseLoading {
		return title
	}
	checked := v.LastCheck.UTC().Format("2006-01-02 15:04 MST")
	return title + m.styles.Status.Render(fmt.Sprintf(" checked %s (%s, %d mirrors)", checked, v.Source, v.Mirrors))
}

func (m *Model) renderStatusBar(v dashboard.View) string {
	parts := make([]string, 0, len(allFilters)+4)
	for _, f := range allFilters {
		if v.Filters.Contains(f) {
			parts = append(parts, m.styles.FilterOn.Render(f.String()))
		} else {
			parts = append(parts, m.styles.FilterOff.Render(f.String()))
		}
	}
	parts = append(parts,
		m.styles.Status.Render("view: "+v.Sort.String()),
		m.styles.Status.Render("export: "+v.ExportSort.String()),
		m.styles.Status.Render(fmt.Sprintf("page %d/%d", v.PageIndex+1, max(1, v.PageCount))),
		m.styles.Status.Render(fmt.Sprintf("%d countries", v.Total)),
	)
	return strings.Join(parts, " ")
}

func (m *Model) renderTable(v dashboard.View) string {
	if v.Total == 0 {
		if v.Phase == dashboard.PhaseLoading {
			return m.styles.Status.Render("waiting for mirror status")
		}
		return m.styles.Status.Render("no countries match")
	}

	rows := make([][]string, 0, len(v.Page))
	for i, r := range v.Page {
		marker := " "
		if v.Focused != nil && i == v.Offset {
			marker = ">"
		}
		if v.Selection.Has(r.Country.Code) {
			marker += "*"
		} else {
			marker += " "
		}
		rows = append(rows, []string{marker, r.Country.Name, r.Country.Code, strconv.Itoa(r.Count)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(m.styles.Border).
		Headers("", "Country", "Code", "Mirrors").
		Rows(rows...)

	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return m.styles.Header
		case v.Focused != nil && row == v.Offset:
			return m.styles.Cursor
		case row >= 0 && row < len(v.Page) && v.Selection.Has(v.Page[row].Country.Code):
			return m.styles.Selected
		}
		return m.styles.Cell
	})
	return t.Render()
}

func (m *Model) renderPopup(v dashboard.View) string {
	if v.Phase == dashboard.PhaseLoading {
		return m.styles.Popup.Render(m.spinner.View() + " fetching mirror status...")
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Header.Render("Keys"),
		m.help.FullHelpView(m.keys.FullHelp()),
	)
	return m.styles.Popup.Render(body)
}

func (m *Model) renderSelection(v dashboard.View) string {
	if len(v.Selection) == 0 {
		return m.styles.Status.Render("no countries selected")
	}
	codes := v.Selection.Countries()
	names := make([]string, len(codes))
	for i, code := range codes {
		names[i] = code
		if c, ok := m.state.Status().Country(code); ok {
			names[i] = c.Name
		}
	}
	return m.styles.Success.Render(fmt.Sprintf("%d mirrors selected from %s",
		len(v.Selection), strings.Join(names, ", ")))
}

// renderInput draws the search buffer with a block cursor while typing.
func (m *Model) renderInput(v dashboard.View) string {
	prompt := m.styles.Prompt.Render("search: ")
	if v.Mode == dashboard.ModeCommand {
		if v.Input == "" {
			return m.styles.Status.Render("esc to search")
		}
		return prompt + v.Input
	}

	runes := []rune(v.Input)
	before := string(runes[:v.InputCursor])
	at, after := " ", ""
	if v.InputCursor < len(runes) {
		at = string(runes[v.InputCursor])
		after = string(runes[v.InputCursor+1:])
	}
	return prompt + before + m.styles.InputCursor.Render(at) + after
}
