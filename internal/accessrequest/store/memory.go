package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"devportal/internal/accessrequest/models"
	id "devportal/pkg/domain"
	"devportal/pkg/platform/sentinel"
)

// InMemory keeps access requests in insertion order.
type InMemory struct {
	mu       sync.RWMutex
	requests map[id.AccessRequestID]models.AccessRequest
	order    []id.AccessRequestID
}

func NewInMemory() *InMemory {
	return &InMemory{requests: make(map[id.AccessRequestID]models.AccessRequest)}
}

// Find returns every request matching filter, oldest first.
func (s *InMemory) Find(_ context.Context, filter models.Filter) ([]models.AccessRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.AccessRequest
	for _, arID := range s.order {
		ar := s.requests[arID]
		if filter.Matches(ar) {
			out = append(out, clone(ar))
		}
	}
	slices.SortStableFunc(out, func(a, b models.AccessRequest) int { return cmp.Compare(a.RequestedAt.UnixNano(), b.RequestedAt.UnixNano()) })
	return out, nil
}

func (s *InMemory) FindByID(_ context.Context, arID id.AccessRequestID) (models.AccessRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ar, ok := s.requests[arID]
	if !ok {
		return models.AccessRequest{}, sentinel.ErrNotFound
	}
	return clone(ar), nil
}

// Insert stores a batch atomically: either every request is stored or none.
func (s *InMemory) Insert(_ context.Context, batch []models.AccessRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ar := range batch {
		if _, exists := s.requests[ar.ID]; exists {
			return sentinel.ErrConflict
		}
	}
	for _, ar := range batch {
		s.requests[ar.ID] = clone(ar)
		s.order = append(s.order, ar.ID)
	}
	return nil
}

// Update records a transition. Only a Pending request can transition, so a
// stored request that is already terminal yields ErrConflict.
func (s *InMemory) Update(_ context.Context, ar models.AccessRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.requests[ar.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if stored.Status != models.StatusPending {
		return sentinel.ErrConflict
	}
	s.requests[ar.ID] = clone(ar)
	return nil
}

func clone(ar models.AccessRequest) models.AccessRequest {
	if ar.Endpoints != nil {
		eps := slices.Clone(ar.Endpoints)
		for i := range eps {
			eps[i].Scopes = slices.Clone(eps[i].Scopes)
		}
		ar.Endpoints = eps
	}
	if ar.Decision != nil {
		d := *ar.Decision
		ar.Decision = &d
	}
	if ar.Cancellation != nil {
		c := *ar.Cancellation
		ar.Cancellation = &c
	}
	return ar
}
