// Package repository defines the activity registry interface and errors.
package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/metrics"
)

// MemoryStore is an in-process Store.
//
// A single RWMutex guards every roster: concurrent signups of the same email
// for the same activity produce exactly one success.
type MemoryStore struct {
	mu         sync.RWMutex
	activities map[string]*model.Activity

	metricsEnabled bool
}

// NewMemoryStore builds a store from seed. The seed is deep-copied, so later
// changes to it do not leak into the store.
func NewMemoryStore(_ context.Context, seed model.Catalog, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		activities:     make(map[string]*model.Activity, len(seed)),
		metricsEnabled: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	for name, a := range seed {
		c := a.Clone()
		s.activities[name] = &c
	}

	if s.metricsEnabled {
		metrics.UpdateActivityCount(len(s.activities))
		for name, a := range s.activities {
			metrics.UpdateParticipants(name, len(a.Participants))
		}
	}
	return s
}

// List returns a deep copy of the registry.
func (s *MemoryStore) List(_ context.Context) model.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(model.Catalog, len(s.activities))
	for name, a := range s.activities {
		out[name] = a.Clone()
	}
	return out
}

// Get returns a copy of one activity.
func (s *MemoryStore) Get(_ context.Context, name string) (model.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.activities[name]
	if !ok {
		return model.Activity{}, fmt.Errorf("%w: %q", ErrActivityNotFound, name)
	}
	return a.Clone(), nil
}

// Signup appends email to the roster. MaxParticipants is not checked.
func (s *MemoryStore) Signup(_ context.Context, name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrActivityNotFound, name)
	}
	if a.Has(email) {
		return fmt.Errorf("%w: %q in %q", ErrAlreadyRegistered, email, name)
	}
	a.Participants = append(a.Participants, email)
	s.publish(name, a)
	return nil
}

// Unregister removes the single matching roster entry.
func (s *MemoryStore) Unregister(_ context.Context, name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrActivityNotFound, name)
	}
	i := a.IndexOf(email)
	if i < 0 {
		return fmt.Errorf("%w: %q in %q", ErrNotRegistered, email, name)
	}
	a.Participants = slices.Delete(a.Participants, i, i+1)
	s.publish(name, a)
	return nil
}

// Count returns the number of activities.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activities)
}

// Participants returns the total roster size across activities.
func (s *MemoryStore) Participants(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, a := range s.activities {
		total += len(a.Participants)
	}
	return total
}

// publish updates the roster gauge. Must be called with s.mu held.
func (s *MemoryStore) publish(name string, a *model.Activity) {
	if s.metricsEnabled {
		metrics.UpdateParticipants(name, len(a.Participants))
	}
}
