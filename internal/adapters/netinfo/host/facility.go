package host

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/camiloAVN/WebSockets-Tester/internal/domain"
	"github.com/camiloAVN/WebSockets-Tester/internal/ports"
	"github.com/hashicorp/go-hclog"
	gnet "github.com/shirou/gopsutil/v4/net"
)

const DefaultPollInterval = 2 * time.Second

// InterfaceLister enumerates the host's network interfaces.
type InterfaceLister func(ctx context.Context) (gnet.InterfaceStatList, error)

type Options struct {
	PollInterval time.Duration
	Lister       InterfaceLister
	Logger       hclog.Logger
}

// Facility derives the network attachment from the host's interfaces and
// polls for changes while anyone is listening.
type Facility struct {
	interval time.Duration
	list     InterfaceLister
	log      hclog.Logger

	mu        sync.Mutex
	listeners []facilityListener
	nextID    uint64
	stop      context.CancelFunc
	last      domain.NetworkAttachment
	hasLast   bool
}

type facilityListener struct {
	id uint64
	fn func(domain.NetworkAttachment)
}

var _ ports.NetworkFacility = (*Facility)(nil)

func NewFacility(opts Options) *Facility {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Lister == nil {
		opts.Lister = gnet.InterfacesWithContext
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}

	return &Facility{
		interval: opts.PollInterval,
		list:     opts.Lister,
		log:      opts.Logger.Named("netinfo"),
	}
}

func (f *Facility) Fetch(ctx context.Context) (domain.NetworkAttachment, error) {
	ifaces, err := f.list(ctx)
	if err != nil {
		return domain.NetworkAttachment{}, fmt.Errorf("list network interfaces: %w", err)
	}

	return Select(ifaces), nil
}

// AddListener registers fn for attachment changes. The first listener starts
// the poller and removing the last one stops it.
func (f *Facility) AddListener(fn func(domain.NetworkAttachment)) (remove func()) {
	f.mu.Lock()
	f.nextID++
	id := f.nextID
	f.listeners = append(f.listeners, facilityListener{id: id, fn: fn})
	if f.stop == nil {
		ctx, cancel := context.WithCancel(context.Background())
		f.stop = cancel
		go f.poll(ctx)
	}
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { f.removeListener(id) })
	}
}

func (f *Facility) removeListener(id uint64) {
	f.mu.Lock()
	kept := make([]facilityListener, 0, len(f.listeners))
	for _, l := range f.listeners {
		if l.id != id {
			kept = append(kept, l)
		}
	}
	f.listeners = kept

	var stop context.CancelFunc
	if len(kept) == 0 && f.stop != nil {
		stop = f.stop
		f.stop = nil
		f.hasLast = false
	}
	f.mu.Unlock()

	if stop != nil {
		stop()
	}
}

// poll takes a silent baseline, then reports every change.
func (f *Facility) poll(ctx context.Context) {
	f.check(ctx, false)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.check(ctx, true)
		}
	}
}

// check records the attachment and, when notify is set, reports it if it
// differs from the previous one.
func (f *Facility) check(ctx context.Context, notify bool) {
	attachment, err := f.Fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			f.log.Warn("poll network interfaces", "error", err)
		}
		return
	}

	f.mu.Lock()
	if ctx.Err() != nil || (f.hasLast && f.last == attachment) {
		f.mu.Unlock()
		return
	}
	f.last = attachment
	f.hasLast = true
	listeners := f.listeners
	f.mu.Unlock()

	if !notify {
		return
	}

	f.log.Debug("attachment changed", "type", attachment.Type, "connected", attachment.IsConnected, "interface", attachment.Interface)
	for _, l := range listeners {
		if f.registered(l.id) {
			l.fn(attachment)
		}
	}
}

func (f *Facility) registered(id uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, l := range f.listeners {
		if l.id == id {
			return true
		}
	}

	return false
}
