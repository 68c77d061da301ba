package tui

import (
	"github.com/camiloAVN/WebSockets-Tester/internal/application"
	"github.com/camiloAVN/WebSockets-Tester/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

// Sender is satisfied by *tea.Program.
type Sender interface {
	Send(msg tea.Msg)
}

// Bind forwards every session notification to the program. The returned
// func removes all three subscriptions.
func Bind(p Sender, c Client) (unbind func(), err error) {
	var stops []func()
	unbind = func() {
		for i := len(stops) - 1; i >= 0; i-- {
			stops[i]()
		}
	}

	stop, err := c.SubscribeTranscript(func(entries []domain.TranscriptEntry) {
		p.Send(transcriptMsg{entries: entries})
	})
	if err != nil {
		return nil, err
	}
	stops = append(stops, stop)

	stop, err = c.SubscribeEvents(func(ev application.Event) {
		p.Send(eventMsg{event: ev})
	})
	if err != nil {
		unbind()
		return nil, err
	}
	stops = append(stops, stop)

	stop, err = c.SubscribeNetwork(func(a domain.NetworkAttachment) {
		p.Send(networkMsg{attachment: a})
	})
	if err != nil {
		unbind()
		return nil, err
	}
	stops = append(stops, stop)

	return unbind, nil
}
