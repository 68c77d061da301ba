package application

import "github.com/camiloAVN/WebSockets-Tester/internal/domain"

// Event is published by ConnectionManager. The concrete types are
// StatusChanged, MessageReceived, MessageSent and ErrorOccurred.
type Event interface {
	connectionEvent()
}

type StatusChanged struct {
	From    domain.ConnectionStatus
	To      domain.ConnectionStatus
	Address string
}

type MessageReceived struct {
	Text string
}

type MessageSent struct {
	Text string
}

// ErrorOccurred carries a *domain.ConnectError or a *domain.TransportError.
// When the error also ends the connection, the StatusChanged event follows it.
type ErrorOccurred struct {
	Err error
}

func (StatusChanged) connectionEvent()   {}
func (MessageReceived) connectionEvent() {}
func (MessageSent) connectionEvent()     {}
func (ErrorOccurred) connectionEvent()   {}
