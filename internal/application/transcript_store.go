package application

import (
	"crypto/rand"
	"io"
	"slices"
	"sync"

	"github.com/camiloAVN/WebSockets-Tester/internal/domain"
	"github.com/camiloAVN/WebSockets-Tester/internal/ports"
	"github.com/oklog/ulid/v2"
)

// TranscriptStore is the append-only, ordered log shown to the user.
// Listeners receive a copy of the whole sequence after every Append and Clear.
type TranscriptStore struct {
	clock ports.Clock

	mu      sync.Mutex
	entropy io.Reader
	entries []domain.TranscriptEntry

	listeners dispatcher[[]domain.TranscriptEntry]
}

func NewTranscriptStore(clock ports.Clock) *TranscriptStore {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &TranscriptStore{
		clock:   clock,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

func (s *TranscriptStore) Append(text string, kind domain.EntryKind) domain.TranscriptEntry {
	s.mu.Lock()
	now := s.clock.Now()
	entry := domain.TranscriptEntry{
		ID:        domain.EntryID(ulid.MustNew(ulid.Timestamp(now), s.entropy).String()),
		Text:      text,
		Timestamp: now,
		Kind:      kind,
	}
	s.entries = append(s.entries, entry)
	s.listeners.enqueue(slices.Clone(s.entries))
	s.mu.Unlock()

	s.listeners.drain()
	return entry
}

func (s *TranscriptStore) Clear() {
	s.mu.Lock()
	s.entries = nil
	s.listeners.enqueue([]domain.TranscriptEntry{})
	s.mu.Unlock()

	s.listeners.drain()
}

func (s *TranscriptStore) Entries() []domain.TranscriptEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

func (s *TranscriptStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *TranscriptStore) Subscribe(fn func([]domain.TranscriptEntry)) (unsubscribe func()) {
	return s.listeners.subscribe(fn)
}

// Close drops every listener. The entries stay readable.
func (s *TranscriptStore) Close() {
	s.listeners.reset()
}
