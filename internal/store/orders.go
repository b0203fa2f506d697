package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/fattoush-pos/api/internal/enum"
	"github.com/fattoush-pos/api/internal/model"
)

// OrderFilter narrows List results. Zero values mean "no filter".
type OrderFilter struct {
	Status  string
	TableID int
}

// OrderStore holds every order ever placed, in creation order. Terminal
// orders are retained for reporting; they are never deleted.
type OrderStore struct {
	mu       sync.RWMutex
	orders   map[string]model.Order
	sequence []string
	lastMs   int64
}

// NewOrderStore creates an empty OrderStore.
func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[string]model.Order)}
}

// Create inserts a new order, assigning a time-derived ID and creation time.
// IDs are unique and strictly increasing even when two orders land within
// the same millisecond.
func (s *OrderStore) Create(o model.Order) model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	ms := now.UnixMilli()
	if ms <= s.lastMs {
		ms = s.lastMs + 1
	}
	s.lastMs = ms

	o.ID = fmt.Sprintf("ORD-%d", ms)
	o.CreatedAt = now
	stored := o.Clone()
	s.orders[stored.ID] = stored
	s.sequence = append(s.sequence, stored.ID)
	return o.Clone()
}

// Get returns a copy of one order.
func (s *OrderStore) Get(id string) (model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return model.Order{}, ErrNotFound
	}
	return o.Clone(), nil
}

// Update replaces a stored order. The order must already exist; ID and
// creation time are immutable and ignored from the input.
func (s *OrderStore) Update(o model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.orders[o.ID]
	if !ok {
		return ErrNotFound
	}
	o.CreatedAt = cur.CreatedAt
	s.orders[o.ID] = o.Clone()
	return nil
}

// List returns matching orders in creation order.
func (s *OrderStore) List(f OrderFilter) []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Order
	for _, id := range s.sequence {
		o := s.orders[id]
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.TableID != 0 && o.TableID != f.TableID {
			continue
		}
		out = append(out, o.Clone())
	}
	return out
}

// ListActive returns every non-terminal order in creation order.
func (s *OrderStore) ListActive() []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Order
	for _, id := range s.sequence {
		if o := s.orders[id]; isActive(o.Status) {
			out = append(out, o.Clone())
		}
	}
	return out
}

// ActiveByTable returns the table's single non-terminal order, if any.
// Create-or-merge semantics guarantee there is at most one.
func (s *OrderStore) ActiveByTable(tableID int) (model.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.sequence {
		o := s.orders[id]
		if o.TableID == tableID && isActive(o.Status) {
			return o.Clone(), true
		}
	}
	return model.Order{}, false
}

// CountActive returns the number of non-terminal orders.
func (s *OrderStore) CountActive() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, o := range s.orders {
		if isActive(o.Status) {
			n++
		}
	}
	return n
}

func isActive(status string) bool {
	return status != enum.OrderStatusCompleted && status != enum.OrderStatusCancelled
}
