package impl

import (
	"context"

	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/repository"
	"shopfront/internal/usecase"

	"github.com/google/uuid"
)

type orderAggregator struct {
	orderRepo repository.OrderRepository
}

// NewOrderAggregator is the constructor for orderAggregator.
func NewOrderAggregator(orderRepo repository.OrderRepository) usecase.OrderAggregator {
	return &orderAggregator{orderRepo: orderRepo}
}

// ComputeOutstanding sums in minor units so that many small totals do not drift.
func (agg *orderAggregator) ComputeOutstanding(ctx context.Context, userID uuid.UUID) (*usecase.Outstanding, error) {
	orders, err := agg.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, domainerrors.ErrNothingPayable
	}

	var cents int64
	for _, order := range orders {
		cents += entity.ToMinorUnits(order.TotalAmount)
	}
	if cents <= 0 {
		return nil, domainerrors.ErrNothingPayable
	}

	// FindByUserID returns oldest first.
	return &usecase.Outstanding{
		Total:                 entity.FromMinorUnits(cents),
		RepresentativeOrderID: orders[0].ID,
	}, nil
}
