package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/camiloAVN/WebSockets-Tester/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

type RenderOptions struct {
	Now time.Time
}

func (o RenderOptions) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// RenderNetwork describes the host's current attachment.
func RenderNetwork(a domain.NetworkAttachment) (string, error) {
	return render(func(s styles) string {
		return networkView(a, s)
	})
}

// RenderTranscript prints entries oldest first, sent lines marked with ">".
func RenderTranscript(entries []domain.TranscriptEntry) (string, error) {
	return render(func(s styles) string {
		return transcriptView(entries, s)
	})
}

// RenderHistory lists remembered endpoints, most recent first.
func RenderHistory(endpoints []domain.Endpoint, opts RenderOptions) (string, error) {
	return render(func(s styles) string {
		return historyView(endpoints, opts, s)
	})
}

func networkView(a domain.NetworkAttachment, s styles) string {
	state := s.good.Render("connected")
	if !a.IsConnected {
		state = s.warning.Render("no connection")
	}

	iface := a.Interface
	if iface == "" {
		iface = "n/a"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.title.Render("Network"),
		s.detail.Render(a.StatusLabel()),
		s.header.Render(fmt.Sprintf("type: %s", a.Type)),
		s.header.Render(fmt.Sprintf("interface: %s", iface)),
		fmt.Sprintf("%s %s", s.header.Render("state:"), state),
	)
}

func transcriptView(entries []domain.TranscriptEntry, s styles) string {
	if len(entries) == 0 {
		return s.empty.Render("No messages.")
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, transcriptLine(e, s))
	}

	return strings.Join(lines, "\n")
}

func transcriptLine(e domain.TranscriptEntry, s styles) string {
	stamp := s.timestamp.Render("[" + e.DisplayTime() + "]")
	if e.Kind == domain.EntrySent {
		return fmt.Sprintf("%s %s", stamp, s.sent.Render("> "+e.Text))
	}
	return fmt.Sprintf("%s %s", stamp, s.received.Render(e.Text))
}

func historyView(endpoints []domain.Endpoint, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Recent endpoints"),
		s.header.Render(fmt.Sprintf("endpoints: %d", len(endpoints))),
	}

	if len(endpoints) == 0 {
		lines = append(lines, s.empty.Render("No endpoints used yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	now := opts.now()
	for _, e := range endpoints {
		used := "never"
		if !e.LastUsedAt.IsZero() {
			used = humanize.RelTime(e.LastUsedAt, now, "ago", "from now")
		}
		lines = append(lines, fmt.Sprintf("%s  %s",
			s.address.Render(e.Address),
			s.meta.Render(fmt.Sprintf("%s, used %s", used, pluralTimes(e.Uses))),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func pluralTimes(n int) string {
	if n == 1 {
		return "once"
	}
	return fmt.Sprintf("%s times", humanize.Comma(int64(n)))
}
