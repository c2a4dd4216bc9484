package usecase

import (
	"context"

	"shopfront/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateProductInput defines a new catalog entry. ImagePath is optional.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
	ImagePath   string
}

// UpdateProductInput applies only the non-nil fields. A non-empty ImagePath replaces the image.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	Category    *string
	ImagePath   string
}

// ProductUsecase defines catalog operations.
type ProductUsecase interface {
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
