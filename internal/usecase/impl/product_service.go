package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "shopfront/internal/delivery/context"
	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/repository"
	"shopfront/internal/domain/service"
	"shopfront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type productService struct {
	productRepo repository.ProductRepository
	uploader    service.FileUploader
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Uploader    service.FileUploader
	Logger      *slog.Logger
}

func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo: params.ProductRepo,
		uploader:    params.Uploader,
		logger:      params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *productService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return srv.productRepo.List(ctx)
}

func (srv *productService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return srv.productRepo.FindByID(ctx, id)
}

func (srv *productService) CreateProduct(ctx context.Context, input usecase.CreateProductInput) (*entity.Product, error) {
	product := &entity.Product{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    input.Category,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if input.ImagePath != "" {
		url, err := srv.uploadImage(ctx, input.ImagePath)
		if err != nil {
			return nil, err
		}
		product.ImageURL = url
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Product created", slog.String("product_id", product.ID.String()))

	return product, nil
}

func (srv *productService) UpdateProduct(ctx context.Context, id uuid.UUID, input usecase.UpdateProductInput) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if input.ImagePath != "" {
		url, err := srv.uploadImage(ctx, input.ImagePath)
		if err != nil {
			return nil, err
		}
		product.ImageURL = url
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (srv *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := srv.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	srv.log(ctx).Info("Product deleted", slog.String("product_id", id.String()))

	return nil
}

func (srv *productService) uploadImage(ctx context.Context, path string) (string, error) {
	url, err := srv.uploader.Upload(ctx, path)
	if err != nil {
		srv.log(ctx).Error("Product image upload failed", slog.Any("error", err))

		return "", domainerrors.ErrUploadFailed.WithMessage("Error while uploading product image")
	}

	return url, nil
}

func validateProduct(p *entity.Product) error {
	switch {
	case p.Name == "":
		return domainerrors.ErrInvalidInput.WithMessage("Product name is required")
	case p.Price <= 0:
		return domainerrors.ErrInvalidInput.WithMessage("Product price must be greater than zero")
	case p.Stock < 0:
		return domainerrors.ErrInvalidInput.WithMessage("Product stock cannot be negative")
	}

	return nil
}
