package application

import (
	"context"
	"sync"

	"github.com/camiloAVN/WebSockets-Tester/internal/domain"
	"github.com/camiloAVN/WebSockets-Tester/internal/ports"
	"github.com/hashicorp/go-hclog"
)

// NetworkMonitor relays attachment observations from the host facility.
// It never de-duplicates and never fails: a facility error is reported as
// an unknown, disconnected attachment.
type NetworkMonitor struct {
	facility ports.NetworkFacility
	log      hclog.Logger

	mu      sync.Mutex
	current domain.NetworkAttachment
	known   bool
	detach  func()
	closed  bool

	listeners dispatcher[domain.NetworkAttachment]
}

func NewNetworkMonitor(facility ports.NetworkFacility, logger hclog.Logger) *NetworkMonitor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &NetworkMonitor{
		facility: facility,
		log:      logger.Named("network"),
		current:  domain.UnknownAttachment(),
	}
}

// FetchOnce queries the facility directly. The result also becomes the
// current attachment but is not published to subscribers.
func (n *NetworkMonitor) FetchOnce(ctx context.Context) domain.NetworkAttachment {
	attachment, err := n.facility.Fetch(ctx)
	if err != nil {
		n.log.Warn("network attachment query failed", "error", err)
		attachment = domain.UnknownAttachment()
	}

	n.mu.Lock()
	n.current = attachment
	n.known = true
	n.mu.Unlock()

	return attachment
}

// Current returns the last observed attachment and whether any observation
// has been made yet.
func (n *NetworkMonitor) Current() (domain.NetworkAttachment, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current, n.known
}

func (n *NetworkMonitor) Subscribe(fn func(domain.NetworkAttachment)) (unsubscribe func()) {
	return n.listeners.subscribe(fn)
}

// Start attaches to the facility's change notifications. Calling it twice,
// or after Close, is a no-op.
func (n *NetworkMonitor) Start() {
	n.mu.Lock()
	if n.detach != nil || n.closed {
		n.mu.Unlock()
		return
	}
	n.detach = func() {}
	n.mu.Unlock()

	remove := n.facility.AddListener(n.observe)

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		remove()
		return
	}
	n.detach = remove
	n.mu.Unlock()
}

// Close detaches from the facility and drops every subscriber.
func (n *NetworkMonitor) Close() {
	n.mu.Lock()
	detach := n.detach
	n.detach = nil
	n.closed = true
	n.mu.Unlock()

	n.listeners.reset()
	if detach != nil {
		detach()
	}
}

func (n *NetworkMonitor) observe(attachment domain.NetworkAttachment) {
	n.mu.Lock()
	n.current = attachment
	n.known = true
	n.listeners.enqueue(attachment)
	n.mu.Unlock()

	n.log.Debug("network attachment changed", "type", attachment.Type, "connected", attachment.IsConnected, "interface", attachment.Interface)
	n.listeners.drain()
}
