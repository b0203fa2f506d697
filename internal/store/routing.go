package store

import (
	"errors"
	"sync"

	"github.com/fattoush-pos/api/internal/model"
)

// Errors returned by RoutingStore validation.
var (
	ErrNoStations       = errors.New("routing policy must have at least one station")
	ErrEmptyStationName = errors.New("station name must not be empty")
	ErrDuplicateStation = errors.New("duplicate station name")
)

// RoutingStore holds the station routing policy. Pure configuration:
// mutations take effect on the next projection, no versioning needed since
// queues are computed on read.
type RoutingStore struct {
	mu     sync.RWMutex
	policy model.RoutingPolicy
}

// NewRoutingStore creates a RoutingStore with the given initial policy.
func NewRoutingStore(p model.RoutingPolicy) *RoutingStore {
	return &RoutingStore{policy: p.Clone()}
}

// Policy returns a copy of the current policy.
func (s *RoutingStore) Policy() model.RoutingPolicy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policy.Clone()
}

// SetPolicy replaces the policy after validating it.
func (s *RoutingStore) SetPolicy(p model.RoutingPolicy) error {
	if len(p.Stations) == 0 {
		return ErrNoStations
	}
	seen := make(map[string]bool, len(p.Stations))
	for _, st := range p.Stations {
		if st.Name == "" {
			return ErrEmptyStationName
		}
		if seen[st.Name] {
			return ErrDuplicateStation
		}
		seen[st.Name] = true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policy = p.Clone()
	return nil
}
