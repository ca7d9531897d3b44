package model

import "time"

// Client is a buyer on whose behalf orders are created.
type Client struct {
	ID        string
	Name      string
	Phone     string
	Address   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
