package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAddress   = errors.New("invalid address")
	ErrAlreadyConnected = errors.New("already connected")
	ErrNotConnected     = errors.New("not connected")
	ErrConnectFailed    = errors.New("connect failed")
	ErrTransport        = errors.New("transport error")
	ErrOutboxFull       = errors.New("outbound queue full")
	ErrSessionClosed    = errors.New("session closed")
)

// ConnectError reports a failed handshake against Address.
type ConnectError struct {
	Address string
	Err     error
}

func (e *ConnectError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("connect to %s failed", e.Address)
	}

	return fmt.Sprintf("connect to %s failed: %v", e.Address, e.Err)
}

func (e *ConnectError) Is(target error) bool {
	return target == ErrConnectFailed
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// TransportError reports a runtime fault on an established connection.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return ErrTransport.Error()
	}

	return fmt.Sprintf("%s: %v", ErrTransport, e.Err)
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
