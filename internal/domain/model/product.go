package model

import "time"

// Product describes a sellable item with its default price.
type Product struct {
	ID           string
	Name         string
	DefaultPrice float64
	StockQty     float64
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
