package notify

import (
	"sync"

	"github.com/fattoush-pos/api/internal/model"
)

// Event types published by the order service and table endpoints.
const (
	EventOrderCreated       = "order.created"
	EventOrderUpdated       = "order.updated"
	EventOrderStatusChanged = "order.status_changed"
	EventTableChanged       = "table.changed"
)

// Event carries a state snapshot to subscribers. Order events fill Order;
// table events fill Table.
type Event struct {
	Type  string
	Order model.Order
	Table model.Table
}

// Bus is an in-process fan-out for state changes. Station and tracking
// screens subscribe with callbacks; there is no network transport behind it.
// Callbacks run synchronously on the publisher's goroutine and must not
// block.
type Bus struct {
	mu   sync.RWMutex
	subs map[int]func(Event)
	next int
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(Event))}
}

// Subscribe registers a callback and returns its unsubscribe function.
func (b *Bus) Subscribe(fn func(Event)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers the event to every current subscriber.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	fns := make([]func(Event), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(e)
	}
}
