package model

import "time"

// UserRole grades staff access in the chat interface.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleStaff UserRole = "STAFF"
)

// User is a chat user allowed to operate the ledger.
// ID is the chat platform user identifier.
type User struct {
	ID        string
	Username  string
	FirstName string
	LastName  string
	Role      UserRole
	Active    bool
	Language  string
	CreatedAt time.Time
}
