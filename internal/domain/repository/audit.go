package repository

import (
	"context"

	"github.com/dokonbot/dokonbot/internal/domain/model"
)

// AuditRepository is an append-only log of mutations.
type AuditRepository interface {
	Append(ctx context.Context, record model.AuditRecord) (*model.AuditRecord, error)
}
