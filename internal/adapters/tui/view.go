package tui

import (
	"fmt"
	"strings"

	"github.com/camiloAVN/WebSockets-Tester/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const helpLine = "Enter: connect/send  Tab: switch field  ^R: suggestions  ^T: test network  ^L: clear  ^D: disconnect  Esc: quit"

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		titleStyle.Render("WebSocket Tester"),
		m.statusLine(),
		m.networkLine(),
		"",
		m.field("Server", m.address.View(), m.focus == focusAddress),
		transcriptBox.Render(m.transcript.View()),
		m.field("Message", m.compose.View(), m.focus == focusCompose),
	}
	if m.err != "" {
		sections = append(sections, errorStyle.Render("⚠️ "+m.err))
	}
	sections = append(sections, dimStyle.Render(helpLine))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) statusLine() string {
	style := statusStyles[string(m.status)]
	label := style.Render("● " + m.status.Label())

	switch m.status {
	case domain.StatusConnecting:
		return fmt.Sprintf("%s %s %s", m.spinner.View(), label, dimStyle.Render(m.server))
	case domain.StatusConnected:
		since := ""
		if !m.connectedAt.IsZero() {
			since = " since " + humanize.RelTime(m.connectedAt, m.now(), "ago", "from now")
		}
		return fmt.Sprintf("%s %s", label, dimStyle.Render(m.server+since))
	default:
		return label
	}
}

func (m Model) networkLine() string {
	if !m.known {
		return dimStyle.Render("Network: checking...")
	}

	line := "Network: " + m.attachment.StatusLabel()
	if m.attachment.Interface != "" {
		line += dimStyle.Render(" (" + m.attachment.Interface + ")")
	}
	return line
}

func (m Model) field(label, input string, focused bool) string {
	style := labelStyle
	if focused {
		style = focusedLabelStyle
	}
	return style.Render(label+":") + " " + input
}

func renderEntries(entries []domain.TranscriptEntry) string {
	if len(entries) == 0 {
		return dimStyle.Render("No messages yet.")
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		stamp := timestampStyle.Render("[" + e.DisplayTime() + "]")
		if e.Kind == domain.EntrySent {
			lines = append(lines, stamp+" "+sentStyle.Render("→ "+e.Text))
			continue
		}
		lines = append(lines, stamp+" "+receivedStyle.Render(e.Text))
	}

	return strings.Join(lines, "\n")
}
