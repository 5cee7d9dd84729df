package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Header   lipgloss.Style
	Pane     lipgloss.Style
	PaneOn   lipgloss.Style
	Row      lipgloss.Style
	RowPick  lipgloss.Style
	Cursor   lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Faint    lipgloss.Style
	Spinner  lipgloss.Style
	Badge    lipgloss.Style
}

func defaultStyles() Styles {
	base := lipgloss.NewStyle()
	return Styles{
		Title:    base.Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Subtitle: base.Faint(true),
		Header:   base.Bold(true),
		Pane:     base.Faint(true),
		PaneOn:   base.Bold(true).Foreground(lipgloss.Color("#22D3EE")),
		Row:      base.Foreground(lipgloss.Color("#D1D5DB")),
		RowPick:  base.Foreground(lipgloss.Color("#22C55E")),
		Cursor:   base.Bold(true).Foreground(lipgloss.Color("#F59E0B")),
		Success:  base.Foreground(lipgloss.Color("#22C55E")),
		Error:    base.Foreground(lipgloss.Color("#EF4444")),
		Faint:    base.Faint(true),
		Spinner:  base.Foreground(lipgloss.Color("#22D3EE")),
		Badge:    base.Foreground(lipgloss.Color("#60A5FA")),
	}
}
