package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/camiloAVN/WebSockets-Tester/internal/domain"
	"github.com/camiloAVN/WebSockets-Tester/internal/ports"
	"github.com/hashicorp/go-hclog"
)

const DefaultOutboxSize = 64

type ConnectionOptions struct {
	// OutboxSize bounds the number of queued, unwritten messages.
	OutboxSize int
	Logger     hclog.Logger
}

// ConnectionManager owns at most one connection and drives the
// disconnected -> connecting -> connected state machine from transport
// outcomes. Commands validate synchronously and never block on I/O.
type ConnectionManager struct {
	dialer     ports.Dialer
	log        hclog.Logger
	outboxSize int

	mu       sync.Mutex
	status   domain.ConnectionStatus
	address  string
	attempt  *attempt
	link     *link
	shutdown bool

	events dispatcher[Event]
}

type attempt struct {
	cancel context.CancelFunc
}

type link struct {
	conn   ports.Conn
	outbox chan string
	cancel context.CancelFunc

	// guarded by ConnectionManager.mu
	closing  bool
	writeErr error
}

func NewConnectionManager(dialer ports.Dialer, opts ConnectionOptions) *ConnectionManager {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	outboxSize := opts.OutboxSize
	if outboxSize <= 0 {
		outboxSize = DefaultOutboxSize
	}

	return &ConnectionManager{
		dialer:     dialer,
		log:        logger.Named("connection"),
		outboxSize: outboxSize,
		status:     domain.StatusDisconnected,
	}
}

func (m *ConnectionManager) Status() domain.ConnectionStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Address returns the address of the current or most recent connection.
func (m *ConnectionManager) Address() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.address
}

func (m *ConnectionManager) Subscribe(fn func(Event)) (unsubscribe func()) {
	return m.events.subscribe(fn)
}

// Open starts a handshake with address. The address is checked before the
// connection state, so a malformed address reports ErrInvalidAddress even
// while connected.
func (m *ConnectionManager) Open(address string) error {
	addr, err := domain.ParseAddress(address)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if m.shutdown {
		m.mu.Unlock()
		return domain.ErrSessionClosed
	}
	if m.status != domain.StatusDisconnected {
		status := m.status
		m.mu.Unlock()
		return fmt.Errorf("%w: connection is %s", domain.ErrAlreadyConnected, status)
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &attempt{cancel: cancel}
	m.attempt = a
	m.address = addr
	m.setStatusLocked(domain.StatusConnecting)
	m.mu.Unlock()

	m.log.Info("opening connection", "address", addr)
	go m.run(ctx, a, addr)
	m.events.drain()

	return nil
}

// Close requests shutdown of an established connection. The transition to
// disconnected is published once the transport has finished closing.
func (m *ConnectionManager) Close() error {
	m.mu.Lock()
	l := m.link
	if m.status != domain.StatusConnected || l == nil || l.closing {
		m.mu.Unlock()
		return nil
	}
	l.closing = true
	address := m.address
	m.mu.Unlock()

	m.log.Info("closing connection", "address", address)
	go func() {
		if err := l.conn.Close(); err != nil {
			m.log.Debug("close returned error", "address", address, "error", err)
		}
	}()

	return nil
}

// Send queues one write of message. Blank messages are dropped without error.
func (m *ConnectionManager) Send(message string) error {
	if strings.TrimSpace(message) == "" {
		return nil
	}

	m.mu.Lock()
	l := m.link
	if m.status != domain.StatusConnected || l == nil || l.closing {
		m.mu.Unlock()
		return domain.ErrNotConnected
	}

	select {
	case l.outbox <- message:
	default:
		m.mu.Unlock()
		return domain.ErrOutboxFull
	}
	m.events.enqueue(MessageSent{Text: message})
	m.mu.Unlock()

	m.events.drain()
	return nil
}

// Shutdown disposes the manager: listeners are dropped first, then any
// pending handshake is abandoned and any open connection closed. Later
// commands fail with domain.ErrSessionClosed or domain.ErrNotConnected.
func (m *ConnectionManager) Shutdown() {
	m.mu.Lock()
	if m.shutdown {
		m.mu.Unlock()
		return
	}
	m.shutdown = true
	a := m.attempt
	l := m.link
	m.attempt = nil
	m.link = nil
	m.status = domain.StatusDisconnected
	if l != nil {
		l.closing = true
	}
	m.mu.Unlock()

	m.events.reset()

	if a != nil {
		a.cancel()
	}
	if l != nil {
		if err := l.conn.Close(); err != nil {
			m.log.Debug("close during shutdown returned error", "error", err)
		}
		l.cancel()
	}
}

func (m *ConnectionManager) run(ctx context.Context, a *attempt, address string) {
	conn, err := m.dialer.Dial(ctx, address)
	if err != nil {
		m.handshakeFailed(a, address, err)
		return
	}

	l := m.established(a, conn)
	if l == nil {
		_ = conn.Close()
		return
	}

	go m.writeLoop(ctx, l)
	m.finish(l, m.readLoop(ctx, l))
}

func (m *ConnectionManager) handshakeFailed(a *attempt, address string, err error) {
	m.mu.Lock()
	if m.attempt != a {
		m.mu.Unlock()
		return
	}
	m.attempt = nil
	m.events.enqueue(ErrorOccurred{Err: &domain.ConnectError{Address: address, Err: err}})
	m.setStatusLocked(domain.StatusDisconnected)
	m.mu.Unlock()

	a.cancel()
	m.log.Warn("handshake failed", "address", address, "error", err)
	m.events.drain()
}

func (m *ConnectionManager) established(a *attempt, conn ports.Conn) *link {
	m.mu.Lock()
	if m.attempt != a {
		m.mu.Unlock()
		return nil
	}
	m.attempt = nil
	l := &link{
		conn:   conn,
		outbox: make(chan string, m.outboxSize),
		cancel: a.cancel,
	}
	m.link = l
	address := m.address
	m.setStatusLocked(domain.StatusConnected)
	m.mu.Unlock()

	m.log.Info("connection established", "address", address)
	m.events.drain()

	return l
}

func (m *ConnectionManager) readLoop(ctx context.Context, l *link) error {
	for {
		text, err := l.conn.Read(ctx)
		if err != nil {
			return err
		}

		m.mu.Lock()
		if m.link != l {
			m.mu.Unlock()
			return nil
		}
		m.events.enqueue(MessageReceived{Text: text})
		m.mu.Unlock()

		m.events.drain()
	}
}

func (m *ConnectionManager) writeLoop(ctx context.Context, l *link) {
	for {
		select {
		case <-ctx.Done():
			return
		case text := <-l.outbox:
			if err := l.conn.Write(ctx, text); err != nil {
				m.mu.Lock()
				if !l.closing && l.writeErr == nil {
					l.writeErr = err
				}
				m.mu.Unlock()

				// Unblocks the reader, which publishes the failure.
				_ = l.conn.Close()
				return
			}
		}
	}
}

func (m *ConnectionManager) finish(l *link, readErr error) {
	m.mu.Lock()
	if m.link != l {
		m.mu.Unlock()
		l.cancel()
		return
	}
	m.link = nil

	var cause error
	switch {
	case l.closing:
	case l.writeErr != nil:
		cause = l.writeErr
	case readErr != nil && !errors.Is(readErr, ports.ErrConnClosed):
		cause = readErr
	}
	if cause != nil {
		m.events.enqueue(ErrorOccurred{Err: &domain.TransportError{Err: cause}})
	}
	address := m.address
	m.setStatusLocked(domain.StatusDisconnected)
	m.mu.Unlock()

	l.cancel()
	_ = l.conn.Close()

	if cause != nil {
		m.log.Warn("connection lost", "address", address, "error", cause)
	} else {
		m.log.Info("connection closed", "address", address)
	}
	m.events.drain()
}

func (m *ConnectionManager) setStatusLocked(next domain.ConnectionStatus) {
	prev := m.status
	if prev == next {
		return
	}
	m.status = next
	m.events.enqueue(StatusChanged{From: prev, To: next, Address: m.address})
}
