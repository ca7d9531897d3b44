package sheets

import (
	"context"
	"time"

	"github.com/dokonbot/dokonbot/internal/domain/model"
)

type auditRepository struct {
	storage *Storage
}

func encodeAudit(record model.AuditRecord) []interface{} {
	return []interface{}{
		record.ID,
		string(record.EntityType),
		record.EntityID,
		string(record.Action),
		record.Before,
		record.After,
		record.PerformedBy,
		formatTime(record.Timestamp),
	}
}

func (r *auditRepository) Append(ctx context.Context, record model.AuditRecord) (*model.AuditRecord, error) {
	record.ID = newID(prefixAudit)
	record.Timestamp = time.Now()
	if err := r.storage.appendRow(ctx, tabAudit, encodeAudit(record)); err != nil {
		return nil, err
	}
	return &record, nil
}
