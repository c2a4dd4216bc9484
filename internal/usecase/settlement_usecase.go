package usecase

import (
	"context"

	"shopfront/internal/domain/entity"

	"github.com/google/uuid"
)

// LineItem is a requested (product, quantity) pair.
type LineItem struct {
	ProductID uuid.UUID
	Quantity  int
}

// Outstanding is what a user currently owes.
type Outstanding struct {
	Total float64

	// RepresentativeOrderID is the user's oldest order; payments reference it.
	RepresentativeOrderID uuid.UUID
}

// OrderAggregator computes a user's outstanding balance across all orders.
type OrderAggregator interface {
	// ComputeOutstanding fails with ErrNothingPayable when the user has no orders or owes nothing.
	ComputeOutstanding(ctx context.Context, userID uuid.UUID) (*Outstanding, error)
}

// SettlementUsecase drives orders through the carrier and payments through the processor.
type SettlementUsecase interface {
	// CreateOrder persists a Pending order and registers it with the carrier. When the carrier
	// fails the order stays Pending, a retry event is published and ErrCarrier is returned.
	CreateOrder(ctx context.Context, userID uuid.UUID, items []LineItem) (*entity.Order, error)

	GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	ListOrders(ctx context.Context) ([]*entity.Order, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// UpdateOrderStatus enforces Pending→Shipped→Delivered and Pending|Shipped→Cancelled.
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*entity.Order, error)

	DeleteOrder(ctx context.Context, id uuid.UUID) error

	// RetryShipment registers a Pending order with the carrier again and marks it Shipped.
	RetryShipment(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// CreatePayment charges the user's outstanding total and records a Completed payment
	// referencing the representative order. Nothing is persisted when the processor fails.
	CreatePayment(ctx context.Context, userID uuid.UUID, method string) (*entity.Payment, error)

	GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	ListPayments(ctx context.Context) ([]*entity.Payment, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) (*entity.Payment, error)
	DeletePayment(ctx context.Context, id uuid.UUID) error
}
