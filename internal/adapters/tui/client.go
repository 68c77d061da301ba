package tui

import (
	"context"

	"github.com/camiloAVN/WebSockets-Tester/internal/application"
	"github.com/camiloAVN/WebSockets-Tester/internal/domain"
)

// Client is the part of *application.Session the screen drives.
type Client interface {
	Connect(ctx context.Context, address string) error
	Disconnect() error
	Send(message string) error
	ClearTranscript()
	TestConnectivity(ctx context.Context) domain.NetworkAttachment
	Status() domain.ConnectionStatus
	Address() string
	Attachment() (domain.NetworkAttachment, bool)
	Entries() []domain.TranscriptEntry
	History(ctx context.Context) ([]domain.Endpoint, error)
	SubscribeTranscript(fn func([]domain.TranscriptEntry)) (unsubscribe func(), err error)
	SubscribeEvents(fn func(application.Event)) (unsubscribe func(), err error)
	SubscribeNetwork(fn func(domain.NetworkAttachment)) (unsubscribe func(), err error)
}

var _ Client = (*application.Session)(nil)
