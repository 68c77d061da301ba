package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/camiloAVN/WebSockets-Tester/internal/domain"
	"github.com/camiloAVN/WebSockets-Tester/internal/ports"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second
const tick = 5 * time.Millisecond

type readResult struct {
	text string
	err  error
}

type fakeConn struct {
	inbound chan readResult
	closed  chan struct{}

	mu           sync.Mutex
	writes       []string
	writeErr     error
	writeGate    chan struct{}
	writeStarted chan struct{}
	closeCalls   int
	closeOnce    sync.Once
}

var _ ports.Conn = (*fakeConn)(nil)

func newFakeConn() *fakeConn {
	return &fakeConn{
		inbound: make(chan readResult, 16),
		closed:  make(chan struct{}),
	}
}

func (c *fakeConn) Read(ctx context.Context) (string, error) {
	select {
	case r := <-c.inbound:
		return r.text, r.err
	case <-c.closed:
		return "", ports.ErrConnClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *fakeConn) Write(ctx context.Context, text string) error {
	c.mu.Lock()
	gate := c.writeGate
	started := c.writeStarted
	c.mu.Unlock()

	if started != nil {
		select {
		case started <- struct{}{}:
		default:
		}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	c.writes = append(c.writes, text)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	c.closeCalls++
	c.mu.Unlock()

	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) deliver(text string) {
	c.inbound <- readResult{text: text}
}

func (c *fakeConn) fail(err error) {
	c.inbound <- readResult{err: err}
}

func (c *fakeConn) CloseCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeCalls
}

func (c *fakeConn) Writes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.writes...)
}

type dialResult struct {
	conn ports.Conn
	err  error
}

type fakeDialer struct {
	results chan dialResult

	mu        sync.Mutex
	addresses []string
	cancelled int
}

var _ ports.Dialer = (*fakeDialer)(nil)

func newFakeDialer() *fakeDialer {
	return &fakeDialer{results: make(chan dialResult, 4)}
}

func (d *fakeDialer) Dial(ctx context.Context, address string) (ports.Conn, error) {
	d.mu.Lock()
	d.addresses = append(d.addresses, address)
	d.mu.Unlock()

	select {
	case r := <-d.results:
		return r.conn, r.err
	case <-ctx.Done():
		d.mu.Lock()
		d.cancelled++
		d.mu.Unlock()
		return nil, ctx.Err()
	}
}

func (d *fakeDialer) accept(conn ports.Conn) {
	d.results <- dialResult{conn: conn}
}

func (d *fakeDialer) reject(err error) {
	d.results <- dialResult{err: err}
}

func (d *fakeDialer) Addresses() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.addresses...)
}

func (d *fakeDialer) Cancelled() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelled
}

type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) record(ev Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Event(nil), l.events...)
}

func (l *eventLog) waitLen(t *testing.T, n int) []Event {
	t.Helper()
	require.Eventually(t, func() bool { return len(l.Events()) >= n }, waitFor, tick)
	return l.Events()
}

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.now.IsZero() {
		c.now = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	c.now = c.now.Add(time.Second)
	return c.now
}

// fakeFacility stands in for the host network facility.
type fakeFacility struct {
	mu        sync.Mutex
	current   domain.NetworkAttachment
	fetchErr  error
	listeners map[int]func(domain.NetworkAttachment)
	nextID    int
}

func newFakeFacility(initial domain.NetworkAttachment) *fakeFacility {
	return &fakeFacility{current: initial, listeners: map[int]func(domain.NetworkAttachment){}}
}

func (f *fakeFacility) Fetch(context.Context) (domain.NetworkAttachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return domain.NetworkAttachment{}, f.fetchErr
	}
	return f.current, nil
}

func (f *fakeFacility) AddListener(fn func(domain.NetworkAttachment)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := f.nextID
	f.listeners[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.listeners, id)
	}
}

func (f *fakeFacility) report(a domain.NetworkAttachment) {
	f.mu.Lock()
	f.current = a
	listeners := make([]func(domain.NetworkAttachment), 0, len(f.listeners))
	for _, fn := range f.listeners {
		listeners = append(listeners, fn)
	}
	f.mu.Unlock()

	for _, fn := range listeners {
		fn(a)
	}
}

func (f *fakeFacility) listenerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listeners)
}

func wifi() domain.NetworkAttachment {
	return domain.NetworkAttachment{Type: domain.AttachmentWiFi, IsConnected: true, Interface: "wlan0"}
}

func ethernet() domain.NetworkAttachment {
	return domain.NetworkAttachment{Type: domain.AttachmentEthernet, IsConnected: true, Interface: "eth0"}
}

func entryTexts(entries []domain.TranscriptEntry) []string {
	texts := make([]string, 0, len(entries))
	for _, e := range entries {
		texts = append(texts, e.Text)
	}
	return texts
}
