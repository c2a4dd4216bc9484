package repository

import (
	"context"

	"shopfront/internal/domain/entity"

	"github.com/google/uuid"
)

// PaymentRepository defines payment persistence.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	List(ctx context.Context) ([]*entity.Payment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}
