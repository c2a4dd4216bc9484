package repository

import (
	"context"

	"shopfront/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderRepository defines order persistence.
type OrderRepository interface {
	// Create persists the order together with its line items.
	Create(ctx context.Context, order *entity.Order) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByUserID returns the user's orders, oldest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	List(ctx context.Context) ([]*entity.Order, error)

	// UpdateShipment persists status, carrier and tracking number.
	UpdateShipment(ctx context.Context, order *entity.Order) error

	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error

	Delete(ctx context.Context, id uuid.UUID) error
}
