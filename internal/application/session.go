package application

import (
	"context"
	"sync"

	"github.com/camiloAVN/WebSockets-Tester/internal/domain"
	"github.com/camiloAVN/WebSockets-Tester/internal/ports"
	"github.com/hashicorp/go-hclog"
)

type SessionOptions struct {
	// AnnounceNetwork sends AnnounceMessage to the server after each
	// successful connect when an attachment is known.
	AnnounceNetwork bool
	Logger          hclog.Logger
}

// Session owns one running client: the connection, the transcript, the
// network monitor and the recorder wiring them together. Every subscription
// made through it is released by Close.
type Session struct {
	conn       *ConnectionManager
	transcript *TranscriptStore
	network    *NetworkMonitor
	recorder   *TranscriptRecorder
	history    ports.EndpointRepository
	announce   bool
	log        hclog.Logger

	mu       sync.Mutex
	cleanups []func()
	started  bool
	closed   bool
}

func NewSession(conn *ConnectionManager, transcript *TranscriptStore, network *NetworkMonitor, history ports.EndpointRepository, opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Session{
		conn:       conn,
		transcript: transcript,
		network:    network,
		recorder:   NewTranscriptRecorder(transcript),
		history:    history,
		announce:   opts.AnnounceNetwork,
		log:        logger.Named("session"),
	}
}

// Start wires the recorder, begins watching the network and records the
// initial attachment.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.ErrSessionClosed
	}
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.mu.Unlock()

	if err := s.acquire(s.recorder.Attach(s.conn, s.network)); err != nil {
		return err
	}
	if s.announce {
		if err := s.acquire(s.conn.Subscribe(s.announceOnConnect)); err != nil {
			return err
		}
	}

	s.network.Start()
	s.recorder.HandleAttachment(s.network.FetchOnce(ctx))

	return nil
}

// Close releases every subscription, shuts the connection down and detaches
// from the network facility. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cleanups := s.cleanups
	s.cleanups = nil
	s.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	s.conn.Shutdown()
	s.network.Close()
	s.transcript.Close()
	s.log.Debug("session closed")
}

func (s *Session) Connect(ctx context.Context, address string) error {
	if err := s.conn.Open(address); err != nil {
		return err
	}

	if s.history != nil {
		if err := s.history.Remember(ctx, s.conn.Address()); err != nil {
			s.log.Warn("remember endpoint failed", "address", s.conn.Address(), "error", err)
		}
	}

	return nil
}

func (s *Session) Disconnect() error {
	return s.conn.Close()
}

func (s *Session) Send(message string) error {
	return s.conn.Send(message)
}

func (s *Session) ClearTranscript() {
	s.transcript.Clear()
}

// TestConnectivity re-queries the network attachment and records it.
func (s *Session) TestConnectivity(ctx context.Context) domain.NetworkAttachment {
	s.recorder.Note(noticeTestingLink)
	attachment := s.network.FetchOnce(ctx)
	s.recorder.HandleAttachment(attachment)
	return attachment
}

func (s *Session) Status() domain.ConnectionStatus {
	return s.conn.Status()
}

func (s *Session) Address() string {
	return s.conn.Address()
}

func (s *Session) Attachment() (domain.NetworkAttachment, bool) {
	return s.network.Current()
}

func (s *Session) Entries() []domain.TranscriptEntry {
	return s.transcript.Entries()
}

func (s *Session) History(ctx context.Context) ([]domain.Endpoint, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.List(ctx)
}

func (s *Session) SubscribeTranscript(fn func([]domain.TranscriptEntry)) (unsubscribe func(), err error) {
	return s.track(s.transcript.Subscribe(fn))
}

func (s *Session) SubscribeEvents(fn func(Event)) (unsubscribe func(), err error) {
	return s.track(s.conn.Subscribe(fn))
}

func (s *Session) SubscribeNetwork(fn func(domain.NetworkAttachment)) (unsubscribe func(), err error) {
	return s.track(s.network.Subscribe(fn))
}

func (s *Session) track(unsubscribe func()) (func(), error) {
	if err := s.acquire(unsubscribe); err != nil {
		return nil, err
	}
	return unsubscribe, nil
}

// acquire registers release to run on Close. If the session is already
// closed, release runs immediately.
func (s *Session) acquire(release func()) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		release()
		return domain.ErrSessionClosed
	}
	s.cleanups = append(s.cleanups, release)
	s.mu.Unlock()

	return nil
}

func (s *Session) announceOnConnect(ev Event) {
	changed, ok := ev.(StatusChanged)
	if !ok || changed.To != domain.StatusConnected {
		return
	}

	attachment, known := s.recorder.LastAttachment()
	if !known {
		return
	}
	if err := s.conn.Send(AnnounceMessage(attachment)); err != nil {
		s.log.Debug("announce skipped", "error", err)
	}
}
