package lock

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	domainErrors "github.com/dokonbot/dokonbot/internal/domain/errors"
)

// Lease is a persisted ownership record for one mutation scope.
type Lease struct {
	Key        string
	Owner      string
	AcquiredAt time.Time
	ExpiresAt  time.Time
}

// Store persists leases. Load returns domain ErrNotFound when no lease exists.
// The store offers no compare-and-swap; expired leases are taken over.
type Store interface {
	Load(ctx context.Context, key string) (*Lease, error)
	Save(ctx context.Context, lease Lease) error
	Clear(ctx context.Context, key, owner string) error
}

// Locker serializes mutations per key.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// Manager acquires leases with a bounded number of attempts and linear
// backoff, failing with ErrLockTimeout once the budget is exhausted.
type Manager struct {
	store    Store
	instance string
	ttl      time.Duration
	attempts int
	backoff  time.Duration
	now      func() time.Time
}

// NewManager constructs lease manager. Instance identifies this process in
// lease owner ids; ownership itself is per acquisition, so concurrent
// goroutines of one process exclude each other the same way processes do.
func NewManager(store Store, instance string, ttl time.Duration, attempts int, backoff time.Duration) *Manager {
	if attempts <= 0 {
		attempts = 1
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Manager{
		store:    store,
		instance: instance,
		ttl:      ttl,
		attempts: attempts,
		backoff:  backoff,
		now:      time.Now,
	}
}

// WithLock runs fn while holding the lease for key, releasing it afterwards.
func (m *Manager) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	owner := m.newOwner()

	for attempt := 1; attempt <= m.attempts; attempt++ {
		acquired, err := m.acquire(ctx, key, owner)
		if err != nil {
			return fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if acquired {
			defer m.release(key, owner)
			return fn(ctx)
		}

		if attempt < m.attempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(m.backoff * time.Duration(attempt)):
			}
		}
	}

	return domainErrors.ErrLockTimeout
}

// newOwner mints a unique owner id for one acquisition. A live lease is
// never re-acquirable, not even by the goroutine that took it.
func (m *Manager) newOwner() string {
	return m.instance + "-" + ulid.MustNew(ulid.Now(), rand.Reader).String()
}

func (m *Manager) acquire(ctx context.Context, key, owner string) (bool, error) {
	now := m.now()
	lease := Lease{
		Key:        key,
		Owner:      owner,
		AcquiredAt: now,
		ExpiresAt:  now.Add(m.ttl),
	}

	current, err := m.store.Load(ctx, key)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return true, m.store.Save(ctx, lease)
		}
		return false, err
	}

	if current.ExpiresAt.After(now) {
		return false, nil
	}

	// Expired lease, take it over.
	return true, m.store.Save(ctx, lease)
}

func (m *Manager) release(key, owner string) {
	// Release happens on a fresh context so a cancelled caller still frees the lease.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = m.store.Clear(ctx, key, owner)
}
