package application

import (
	"sync"

	"github.com/camiloAVN/WebSockets-Tester/internal/domain"
)

// TranscriptRecorder turns connection events and attachment observations into
// transcript entries. It is the only writer of notices.
//
// Entries are queued under mu and appended after it is released, so a
// transcript listener may call back into the session while a notice is being
// delivered; its entries land after the current batch.
type TranscriptRecorder struct {
	transcript *TranscriptStore

	mu    sync.Mutex
	last  domain.NetworkAttachment
	known bool

	pending dispatcher[recordedEntry]
}

type recordedEntry struct {
	text string
	kind domain.EntryKind
}

func NewTranscriptRecorder(transcript *TranscriptStore) *TranscriptRecorder {
	r := &TranscriptRecorder{transcript: transcript}
	r.pending.subscribe(func(e recordedEntry) {
		r.transcript.Append(e.text, e.kind)
	})
	return r
}

// Attach subscribes the recorder to both sources. The returned func removes
// both subscriptions.
func (r *TranscriptRecorder) Attach(conn *ConnectionManager, network *NetworkMonitor) (detach func()) {
	stopConn := conn.Subscribe(r.HandleEvent)
	stopNetwork := network.Subscribe(r.HandleAttachment)

	return func() {
		stopConn()
		stopNetwork()
	}
}

func (r *TranscriptRecorder) HandleEvent(ev Event) {
	r.mu.Lock()
	switch ev := ev.(type) {
	case StatusChanged:
		switch ev.To {
		case domain.StatusConnected:
			r.noticeLocked(connectedNotice(ev.Address))
			if r.known {
				r.noticeLocked(attachmentInUseNotice(r.last))
			}
		case domain.StatusDisconnected:
			r.noticeLocked(noticeDisconnected)
		}
	case MessageReceived:
		r.pending.enqueue(recordedEntry{text: ev.Text, kind: domain.EntryReceived})
	case MessageSent:
		r.pending.enqueue(recordedEntry{text: ev.Text, kind: domain.EntrySent})
	case ErrorOccurred:
		if ev.Err != nil {
			r.noticeLocked(errorNotice(ev.Err))
		}
	}
	r.mu.Unlock()

	r.pending.drain()
}

// HandleAttachment records one observation. Moving onto ethernet from any
// other attachment, or from none, earns an extra notice; staying on ethernet
// does not.
func (r *TranscriptRecorder) HandleAttachment(a domain.NetworkAttachment) {
	r.mu.Lock()
	enteredEthernet := a.Type == domain.AttachmentEthernet &&
		(!r.known || r.last.Type != domain.AttachmentEthernet)
	r.last = a
	r.known = true

	r.noticeLocked(attachmentNotice(a))
	if enteredEthernet {
		r.noticeLocked(noticeEthernetDetected)
	}
	r.mu.Unlock()

	r.pending.drain()
}

// Note appends a free-form notice, e.g. the connectivity-test banner.
func (r *TranscriptRecorder) Note(text string) {
	r.mu.Lock()
	r.noticeLocked(text)
	r.mu.Unlock()

	r.pending.drain()
}

// LastAttachment is the attachment most recently recorded.
func (r *TranscriptRecorder) LastAttachment() (domain.NetworkAttachment, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, r.known
}

func (r *TranscriptRecorder) noticeLocked(text string) {
	r.pending.enqueue(recordedEntry{text: text, kind: domain.EntryReceived})
}
