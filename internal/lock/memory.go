package lock

import (
	"context"
	"sync"

	domainErrors "github.com/dokonbot/dokonbot/internal/domain/errors"
)

// MemoryStore keeps leases in process memory. Suitable for single-instance
// deployments and tests.
type MemoryStore struct {
	mu     sync.Mutex
	leases map[string]Lease
}

// NewMemoryStore constructs an empty in-memory lease store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{leases: make(map[string]Lease)}
}

// Load returns the lease for key or domain ErrNotFound.
func (s *MemoryStore) Load(ctx context.Context, key string) (*Lease, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lease, ok := s.leases[key]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &lease, nil
}

// Save upserts the lease.
func (s *MemoryStore) Save(ctx context.Context, lease Lease) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leases[lease.Key] = lease
	return nil
}

// Clear removes the lease when owned by owner.
func (s *MemoryStore) Clear(ctx context.Context, key, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lease, ok := s.leases[key]; ok && lease.Owner == owner {
		delete(s.leases, key)
	}
	return nil
}
