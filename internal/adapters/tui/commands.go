package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Session calls run inside tea.Cmd goroutines, never in Update: listeners
// forward to the program with Send, which blocks until Update reads.

const commandTimeout = 5 * time.Second

func snapshotCmd(c Client) tea.Cmd {
	return func() tea.Msg {
		attachment, known := c.Attachment()
		return snapshotMsg{
			status:     c.Status(),
			address:    c.Address(),
			attachment: attachment,
			known:      known,
			entries:    c.Entries(),
		}
	}
}

func historyCmd(c Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		endpoints, err := c.History(ctx)
		if err != nil {
			return commandErrMsg{err: err}
		}
		return historyMsg{endpoints: endpoints}
	}
}

func connectCmd(c Client, address string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		if err := c.Connect(ctx, address); err != nil {
			return commandErrMsg{err: err}
		}
		return historyCmd(c)()
	}
}

func disconnectCmd(c Client) tea.Cmd {
	return func() tea.Msg {
		if err := c.Disconnect(); err != nil {
			return commandErrMsg{err: err}
		}
		return nil
	}
}

func sendCmd(c Client, text string) tea.Cmd {
	return func() tea.Msg {
		if err := c.Send(text); err != nil {
			return commandErrMsg{err: err}
		}
		return sentMsg{text: text}
	}
}

func clearCmd(c Client) tea.Cmd {
	return func() tea.Msg {
		c.ClearTranscript()
		return nil
	}
}

func testConnectivityCmd(c Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		return networkMsg{attachment: c.TestConnectivity(ctx)}
	}
}
