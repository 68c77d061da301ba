package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	dimStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	labelStyle        = lipgloss.NewStyle().Width(9).Foreground(lipgloss.Color("252"))
	focusedLabelStyle = lipgloss.NewStyle().Width(9).Bold(true).Foreground(lipgloss.Color("39"))
	errorStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	timestampStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sentStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	receivedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	transcriptBox     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238"))

	statusStyles = map[string]lipgloss.Style{
		"connected":    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		"connecting":   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		"disconnected": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
)
