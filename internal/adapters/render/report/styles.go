package report

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	detail    lipgloss.Style
	good      lipgloss.Style
	warning   lipgloss.Style
	empty     lipgloss.Style
	timestamp lipgloss.Style
	sent      lipgloss.Style
	received  lipgloss.Style
	address   lipgloss.Style
	meta      lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		detail:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		good:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		warning:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		empty:     lipgloss.NewStyle().Faint(true),
		timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		sent:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		received:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		address:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		meta:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
