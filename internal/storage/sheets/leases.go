package sheets

import (
	"context"

	domainErrors "github.com/dokonbot/dokonbot/internal/domain/errors"
	"github.com/dokonbot/dokonbot/internal/lock"
)

// LeaseStore persists mutation leases in the locks worksheet, giving every
// bot instance sharing the spreadsheet the same view of held leases.
type LeaseStore struct {
	storage *Storage
}

// NewLeaseStore constructs the spreadsheet-backed lease store.
func NewLeaseStore(storage *Storage) *LeaseStore {
	return &LeaseStore{storage: storage}
}

func encodeLease(lease lock.Lease) []interface{} {
	return []interface{}{
		lease.Key,
		lease.Owner,
		formatTime(lease.AcquiredAt),
		formatTime(lease.ExpiresAt),
	}
}

// Load returns the lease for key or domain ErrNotFound.
func (s *LeaseStore) Load(ctx context.Context, key string) (*lock.Lease, error) {
	_, row, found, err := s.storage.findRow(ctx, tabLocks, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domainErrors.ErrNotFound
	}
	return &lock.Lease{
		Key:        cellString(row, 0),
		Owner:      cellString(row, 1),
		AcquiredAt: cellTime(row, 2),
		ExpiresAt:  cellTime(row, 3),
	}, nil
}

// Save upserts the lease row.
func (s *LeaseStore) Save(ctx context.Context, lease lock.Lease) error {
	rowNum, _, found, err := s.storage.findRow(ctx, tabLocks, lease.Key)
	if err != nil {
		return err
	}
	if found {
		return s.storage.updateRow(ctx, tabLocks, rowNum, encodeLease(lease))
	}
	return s.storage.appendRow(ctx, tabLocks, encodeLease(lease))
}

// Clear blanks the lease row when still owned by owner.
func (s *LeaseStore) Clear(ctx context.Context, key, owner string) error {
	rowNum, row, found, err := s.storage.findRow(ctx, tabLocks, key)
	if err != nil {
		return err
	}
	if !found || cellString(row, 1) != owner {
		return nil
	}
	return s.storage.blankRow(ctx, tabLocks, rowNum)
}
