package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style

	Header  lipgloss.Style
	Cell    lipgloss.Style
	Focused lipgloss.Style
	Error   lipgloss.Style
	Result  lipgloss.Style
	Note    lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),

		Header:  lipgloss.NewStyle().Bold(true).Width(cellWidth),
		Cell:    lipgloss.NewStyle().Width(cellWidth),
		Focused: lipgloss.NewStyle().Width(cellWidth).Foreground(lipgloss.Color("63")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Result:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Note:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("214")),
	}
}
