package store

import (
	"sort"
	"sync"

	"github.com/fattoush-pos/api/internal/model"
	"github.com/google/uuid"
)

// MenuStore holds dishes and menu pages in memory. Insertion order of dishes
// is preserved so category listings are stable across reads.
type MenuStore struct {
	mu        sync.RWMutex
	dishes    map[uuid.UUID]model.Dish
	dishOrder []uuid.UUID
	pages     map[uuid.UUID]model.MenuPage
}

// NewMenuStore creates an empty MenuStore.
func NewMenuStore() *MenuStore {
	return &MenuStore{
		dishes: make(map[uuid.UUID]model.Dish),
		pages:  make(map[uuid.UUID]model.MenuPage),
	}
}

// ListDishes returns all dishes in insertion order.
func (s *MenuStore) ListDishes() []model.Dish {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Dish, 0, len(s.dishOrder))
	for _, id := range s.dishOrder {
		out = append(out, s.dishes[id])
	}
	return out
}

// ListDishesByCategory returns the dishes of one category, insertion order.
func (s *MenuStore) ListDishesByCategory(category string) []model.Dish {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Dish
	for _, id := range s.dishOrder {
		if d := s.dishes[id]; d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// Snapshot returns a value copy of a dish for embedding into an order item.
// Dish holds no reference types, so the assignment is the deep copy.
func (s *MenuStore) Snapshot(id uuid.UUID) (model.Dish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.dishes[id]
	if !ok {
		return model.Dish{}, ErrNotFound
	}
	return d, nil
}

// CreateDish adds a dish, assigning its ID.
func (s *MenuStore) CreateDish(d model.Dish) model.Dish {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = uuid.New()
	s.dishes[d.ID] = d
	s.dishOrder = append(s.dishOrder, d.ID)
	return d
}

// UpdateDish replaces an existing dish.
func (s *MenuStore) UpdateDish(d model.Dish) (model.Dish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dishes[d.ID]; !ok {
		return model.Dish{}, ErrNotFound
	}
	s.dishes[d.ID] = d
	return d, nil
}

// DeleteDish removes a dish. Orders that already snapshotted it are
// unaffected.
func (s *MenuStore) DeleteDish(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dishes[id]; !ok {
		return ErrNotFound
	}
	delete(s.dishes, id)
	for i, did := range s.dishOrder {
		if did == id {
			s.dishOrder = append(s.dishOrder[:i], s.dishOrder[i+1:]...)
			break
		}
	}
	return nil
}

// ToggleStock flips the out-of-stock flag and returns the updated dish.
func (s *MenuStore) ToggleStock(id uuid.UUID) (model.Dish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.dishes[id]
	if !ok {
		return model.Dish{}, ErrNotFound
	}
	d.IsOutOfStock = !d.IsOutOfStock
	s.dishes[id] = d
	return d, nil
}

// ListPages returns all menu pages sorted by SortOrder.
func (s *MenuStore) ListPages() []model.MenuPage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.MenuPage, 0, len(s.pages))
	for _, p := range s.pages {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// CreatePage adds a menu page, assigning its ID.
func (s *MenuStore) CreatePage(p model.MenuPage) model.MenuPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.New()
	s.pages[p.ID] = p
	return p
}

// UpdatePage replaces an existing page.
func (s *MenuStore) UpdatePage(p model.MenuPage) (model.MenuPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pages[p.ID]; !ok {
		return model.MenuPage{}, ErrNotFound
	}
	s.pages[p.ID] = p
	return p, nil
}

// DeletePage removes a page and unlinks any dishes pointing at it.
func (s *MenuStore) DeletePage(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pages[id]; !ok {
		return ErrNotFound
	}
	delete(s.pages, id)
	for did, d := range s.dishes {
		if d.PageID == id {
			d.PageID = uuid.Nil
			s.dishes[did] = d
		}
	}
	return nil
}
