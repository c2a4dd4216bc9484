package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog item that can be referenced by order line items.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
