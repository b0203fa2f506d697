package store

import (
	"sort"
	"sync"

	"github.com/fattoush-pos/api/internal/enum"
	"github.com/fattoush-pos/api/internal/model"
)

// TableStore is the single source of truth for table occupancy. It never
// inspects orders: Occupy and Release are invoked by the order service as
// side effects of lifecycle transitions; only Reserve is a user decision.
type TableStore struct {
	mu     sync.RWMutex
	tables map[int]model.Table
}

// NewTableStore creates an empty TableStore.
func NewTableStore() *TableStore {
	return &TableStore{tables: make(map[int]model.Table)}
}

// Add registers a table. Used by seeding and admin setup.
func (s *TableStore) Add(t model.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.Status == "" {
		t.Status = enum.TableStatusAvailable
	}
	s.tables[t.ID] = t
}

// List returns all tables sorted by ID.
func (s *TableStore) List() []model.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Table, 0, len(s.tables))
	for _, t := range s.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns one table.
func (s *TableStore) Get(id int) (model.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[id]
	if !ok {
		return model.Table{}, ErrNotFound
	}
	return t, nil
}

// Reserve marks an Available table as Reserved under the given name.
// Any other starting status is an invalid transition.
func (s *TableStore) Reserve(id int, name string) (model.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[id]
	if !ok {
		return model.Table{}, ErrNotFound
	}
	if t.Status != enum.TableStatusAvailable {
		return model.Table{}, ErrInvalidTransition
	}
	t.Status = enum.TableStatusReserved
	t.ReservationName = name
	s.tables[id] = t
	return t, nil
}

// Release returns a table to Available from any status, clearing the
// reservation name. Valid both for manual un-reservation and as the side
// effect of order completion or cancellation.
func (s *TableStore) Release(id int) (model.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[id]
	if !ok {
		return model.Table{}, ErrNotFound
	}
	t.Status = enum.TableStatusAvailable
	t.ReservationName = ""
	s.tables[id] = t
	return t, nil
}

// Occupy marks a table Occupied, clearing any reservation. Side-effect-only:
// called when a new active order is created for the table.
func (s *TableStore) Occupy(id int) (model.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[id]
	if !ok {
		return model.Table{}, ErrNotFound
	}
	t.Status = enum.TableStatusOccupied
	t.ReservationName = ""
	s.tables[id] = t
	return t, nil
}
