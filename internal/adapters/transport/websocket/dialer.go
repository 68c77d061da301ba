package websocket

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/camiloAVN/WebSockets-Tester/internal/ports"
	"github.com/coder/websocket"
)

// DefaultReadLimit caps a single inbound message.
const DefaultReadLimit = 1 << 20

type Options struct {
	// Header is sent with the opening handshake.
	Header    http.Header
	ReadLimit int64
}

type Dialer struct {
	opts Options
}

var _ ports.Dialer = (*Dialer)(nil)

func NewDialer(opts Options) *Dialer {
	if opts.ReadLimit <= 0 {
		opts.ReadLimit = DefaultReadLimit
	}

	return &Dialer{opts: opts}
}

func (d *Dialer) Dial(ctx context.Context, address string) (ports.Conn, error) {
	c, resp, err := websocket.Dial(ctx, address, &websocket.DialOptions{HTTPHeader: d.opts.Header})
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", address, err)
	}
	c.SetReadLimit(d.opts.ReadLimit)

	return &Conn{conn: c}, nil
}

// Conn exchanges text frames. Binary frames are delivered as their raw bytes.
type Conn struct {
	conn *websocket.Conn

	closeOnce sync.Once
	closeErr  error
}

var _ ports.Conn = (*Conn)(nil)

func (c *Conn) Read(ctx context.Context) (string, error) {
	_, data, err := c.conn.Read(ctx)
	if err != nil {
		if isCleanClose(err) {
			return "", fmt.Errorf("%w: %v", ports.ErrConnClosed, err)
		}
		return "", fmt.Errorf("read message: %w", err)
	}

	return string(data), nil
}

func (c *Conn) Write(ctx context.Context, text string) error {
	if err := c.conn.Write(ctx, websocket.MessageText, []byte(text)); err != nil {
		return fmt.Errorf("write message: %w", err)
	}

	return nil
}

// Close performs the closing handshake once. Later calls return the first
// result.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		err := c.conn.Close(websocket.StatusNormalClosure, "")
		if err != nil && !isCleanClose(err) && !errors.Is(err, net.ErrClosed) {
			c.closeErr = fmt.Errorf("close connection: %w", err)
		}
	})

	return c.closeErr
}

func isCleanClose(err error) bool {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}

	return errors.Is(err, net.ErrClosed)
}
