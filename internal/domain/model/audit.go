package model

import "time"

// AuditEntity names the record type an audit entry refers to.
type AuditEntity string

const (
	AuditEntityOrder   AuditEntity = "ORDER"
	AuditEntityProduct AuditEntity = "PRODUCT"
	AuditEntityPayment AuditEntity = "PAYMENT"
	AuditEntityClient  AuditEntity = "CLIENT"
	AuditEntityUser    AuditEntity = "USER"
)

// AuditAction names the mutation recorded in an audit entry.
type AuditAction string

const (
	AuditCreate  AuditAction = "CREATE"
	AuditUpdate  AuditAction = "UPDATE"
	AuditDelete  AuditAction = "DELETE"
	AuditCancel  AuditAction = "CANCEL"
	AuditRestore AuditAction = "RESTORE"
)

// AuditRecord is one append-only audit log entry.
// Before and After hold JSON snapshots of the mutated entity.
type AuditRecord struct {
	ID          string
	EntityType  AuditEntity
	EntityID    string
	Action      AuditAction
	Before      string
	After       string
	PerformedBy string
	Timestamp   time.Time
}
