package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	label    lipgloss.Style
	score    lipgloss.Style
	clock    lipgloss.Style
	panel    lipgloss.Style
	control  lipgloss.Style
	disabled lipgloss.Style
	help     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		label:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		score:    lipgloss.NewStyle().Bold(true).Padding(0, 2).Foreground(lipgloss.Color("15")),
		clock:    lipgloss.NewStyle().Bold(true).Padding(0, 2).Foreground(lipgloss.Color("214")),
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		control:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
		help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
