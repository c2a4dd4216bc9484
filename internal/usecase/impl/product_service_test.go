package impl

import (
	"context"
	"testing"

	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	mockRepo "shopfront/internal/mocks/repository"
	mockSvc "shopfront/internal/mocks/service"
	"shopfront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProductServiceForTest(t *testing.T) (usecase.ProductUsecase, *mockRepo.MockProductRepository, *mockSvc.MockFileUploader) {
	t.Helper()

	products := mockRepo.NewMockProductRepository(t)
	uploader := mockSvc.NewMockFileUploader(t)
	srv := NewProductService(ProductServiceParams{
		ProductRepo: products,
		Uploader:    uploader,
		Logger:      newDiscardLogger(),
	})

	return srv, products, uploader
}

func TestProductService_CreateProduct(t *testing.T) {
	srv, products, uploader := newProductServiceForTest(t)
	ctx := context.Background()

	uploader.On("Upload", ctx, "/tmp/mug.jpg").Return("https://cdn.example.com/mug.jpg", nil)
	products.On("Create", ctx, mock.MatchedBy(func(p *entity.Product) bool {
		return p.Name == "Mug" && p.ImageURL == "https://cdn.example.com/mug.jpg" && p.ID != uuid.Nil
	})).Return(nil)

	product, err := srv.CreateProduct(ctx, usecase.CreateProductInput{
		Name:      " Mug ",
		Price:     12.5,
		Stock:     3,
		ImagePath: "/tmp/mug.jpg",
	})

	require.NoError(t, err)
	assert.Equal(t, "Mug", product.Name)
}

func TestProductService_CreateProduct_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input usecase.CreateProductInput
	}{
		{"missing name", usecase.CreateProductInput{Price: 1}},
		{"zero price", usecase.CreateProductInput{Name: "Mug"}},
		{"negative stock", usecase.CreateProductInput{Name: "Mug", Price: 1, Stock: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, _ := newProductServiceForTest(t)

			_, err := srv.CreateProduct(context.Background(), tt.input)

			assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
		})
	}
}

func TestProductService_CreateProduct_UploadFailure(t *testing.T) {
	srv, _, uploader := newProductServiceForTest(t)
	ctx := context.Background()

	uploader.On("Upload", ctx, "/tmp/mug.jpg").Return("", errors.New("denied"))

	_, err := srv.CreateProduct(ctx, usecase.CreateProductInput{Name: "Mug", Price: 1, ImagePath: "/tmp/mug.jpg"})

	assert.True(t, errors.Is(err, domainerrors.ErrUploadFailed))
}

func TestProductService_UpdateProduct_PartialFields(t *testing.T) {
	srv, products, _ := newProductServiceForTest(t)
	ctx := context.Background()
	existing := &entity.Product{ID: uuid.New(), Name: "Mug", Description: "Blue", Price: 10, Stock: 5}
	price := 14.0

	products.On("FindByID", ctx, existing.ID).Return(existing, nil)
	products.On("Update", ctx, existing).Return(nil)

	got, err := srv.UpdateProduct(ctx, existing.ID, usecase.UpdateProductInput{Price: &price})

	require.NoError(t, err)
	assert.InDelta(t, 14.0, got.Price, 1e-9)
	assert.Equal(t, "Blue", got.Description)
	assert.Equal(t, 5, got.Stock)
}

func TestProductService_UpdateProduct_RejectsInvalidPrice(t *testing.T) {
	srv, products, _ := newProductServiceForTest(t)
	ctx := context.Background()
	existing := &entity.Product{ID: uuid.New(), Name: "Mug", Price: 10}
	price := -1.0

	products.On("FindByID", ctx, existing.ID).Return(existing, nil)

	_, err := srv.UpdateProduct(ctx, existing.ID, usecase.UpdateProductInput{Price: &price})

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
}

func TestProductService_DeleteProduct_NotFound(t *testing.T) {
	srv, products, _ := newProductServiceForTest(t)
	ctx := context.Background()
	id := uuid.New()

	products.On("Delete", ctx, id).Return(domainerrors.ErrProductNotFound)

	err := srv.DeleteProduct(ctx, id)

	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}
