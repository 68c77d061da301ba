package domain

import "time"

type EntryID string

type EntryKind string

const (
	EntrySent     EntryKind = "sent"
	EntryReceived EntryKind = "received"
)

const entryTimeLayout = "15:04:05"

// TranscriptEntry is immutable once created.
type TranscriptEntry struct {
	ID        EntryID
	Text      string
	Timestamp time.Time
	Kind      EntryKind
}

func (e TranscriptEntry) DisplayTime() string {
	if e.Timestamp.IsZero() {
		return ""
	}

	return e.Timestamp.Format(entryTimeLayout)
}
