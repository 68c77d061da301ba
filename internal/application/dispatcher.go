package application

import "sync"

// dispatcher delivers values to its listeners one at a time, in enqueue order.
//
// Producers call enqueue while holding their own state lock, so queue order
// matches the order of the state changes, and call drain after releasing it.
// Whichever goroutine finds the queue idle delivers everything pending; a
// listener that triggers further events sees them delivered after it returns
// rather than re-entrantly.
type dispatcher[T any] struct {
	mu        sync.Mutex
	listeners []listener[T]
	nextID    uint64
	queue     []T
	draining  bool
}

type listener[T any] struct {
	id uint64
	fn func(T)
}

func (d *dispatcher[T]) subscribe(fn func(T)) (unsubscribe func()) {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.listeners = append(d.listeners, listener[T]{id: id, fn: fn})
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { d.remove(id) })
	}
}

func (d *dispatcher[T]) remove(id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	kept := make([]listener[T], 0, len(d.listeners))
	for _, l := range d.listeners {
		if l.id != id {
			kept = append(kept, l)
		}
	}
	d.listeners = kept
}

// reset drops every listener and anything still queued.
func (d *dispatcher[T]) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.listeners = nil
	d.queue = nil
}

func (d *dispatcher[T]) enqueue(v T) {
	d.mu.Lock()
	d.queue = append(d.queue, v)
	d.mu.Unlock()
}

func (d *dispatcher[T]) publish(v T) {
	d.enqueue(v)
	d.drain()
}

func (d *dispatcher[T]) drain() {
	d.mu.Lock()
	if d.draining {
		d.mu.Unlock()
		return
	}
	d.draining = true

	for len(d.queue) > 0 {
		var zero T
		v := d.queue[0]
		d.queue[0] = zero
		d.queue = d.queue[1:]
		listeners := d.listeners
		d.mu.Unlock()

		for _, l := range listeners {
			if d.subscribed(l.id) {
				l.fn(v)
			}
		}

		d.mu.Lock()
	}

	d.draining = false
	d.mu.Unlock()
}

func (d *dispatcher[T]) subscribed(id uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, l := range d.listeners {
		if l.id == id {
			return true
		}
	}

	return false
}
