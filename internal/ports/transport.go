package ports

import (
	"context"
	"errors"
)

// ErrConnClosed is returned by Conn.Read once the connection has been shut
// down cleanly, by either side.
var ErrConnClosed = errors.New("connection closed")

// Dialer performs the opening handshake. Dial blocks until the handshake
// resolves or ctx is cancelled.
type Dialer interface {
	Dial(ctx context.Context, address string) (Conn, error)
}

// Conn is one text-framed, full-duplex connection. Read and Write may be
// called from different goroutines; Close may be called concurrently with
// both and unblocks them.
type Conn interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, text string) error
	Close() error
}
