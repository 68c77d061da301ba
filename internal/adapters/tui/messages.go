package tui

import (
	"github.com/camiloAVN/WebSockets-Tester/internal/application"
	"github.com/camiloAVN/WebSockets-Tester/internal/domain"
)

type transcriptMsg struct {
	entries []domain.TranscriptEntry
}

type eventMsg struct {
	event application.Event
}

type networkMsg struct {
	attachment domain.NetworkAttachment
}

type snapshotMsg struct {
	status     domain.ConnectionStatus
	address    string
	attachment domain.NetworkAttachment
	known      bool
	entries    []domain.TranscriptEntry
}

type historyMsg struct {
	endpoints []domain.Endpoint
}

// commandErrMsg carries a synchronous rejection (bad address, not connected,
// full outbox) back to the screen.
type commandErrMsg struct {
	err error
}

type sentMsg struct {
	text string
}
