package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	mockUsecase "shopfront/internal/mocks/usecase"
	"shopfront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductHandler_CreateProductJSON(t *testing.T) {
	uc := mockUsecase.NewMockProductUsecase(t)
	h := NewProductHandler(uc, newDiscardLogger())

	uc.On("CreateProduct", mock.Anything, usecase.CreateProductInput{
		Name:     "Mug",
		Price:    9.5,
		Stock:    3,
		Category: "kitchen",
	}).Return(&entity.Product{ID: uuid.New(), Name: "Mug", Price: 9.5, Stock: 3, Category: "kitchen"}, nil).Once()

	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/v1/products",
		`{"name":"Mug","price":9.5,"stock":3,"category":"kitchen"}`, newUser(entity.RoleAdmin))

	require.NoError(t, h.CreateProduct(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestProductHandler_UpdateProductForm(t *testing.T) {
	uc := mockUsecase.NewMockProductUsecase(t)
	h := NewProductHandler(uc, newDiscardLogger())
	id := uuid.New()

	uc.On("UpdateProduct", mock.Anything, id, mock.MatchedBy(func(in usecase.UpdateProductInput) bool {
		return in.Name == nil && in.Price != nil && *in.Price == 12.0 && in.Stock != nil && *in.Stock == 0
	})).Return(&entity.Product{ID: id, Name: "Mug", Price: 12}, nil).Once()

	form := url.Values{"price": {"12"}, "stock": {"0"}}
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := newTestEcho().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, h.UpdateProduct(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductHandler_InvalidPrice(t *testing.T) {
	h := NewProductHandler(mockUsecase.NewMockProductUsecase(t), newDiscardLogger())

	form := url.Values{"name": {"Mug"}, "price": {"cheap"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	require.NoError(t, h.CreateProduct(newTestEcho().NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Price must be a number", decodeError(t, rec).Message)
}

func TestProductHandler_GetProductNotFound(t *testing.T) {
	uc := mockUsecase.NewMockProductUsecase(t)
	h := NewProductHandler(uc, newDiscardLogger())
	id := uuid.New()
	uc.On("GetProduct", mock.Anything, id).Return(nil, domainerrors.ErrProductNotFound).Once()

	c, rec := newJSONContext(newTestEcho(), http.MethodGet, "/", "", nil)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, h.GetProduct(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decodeError(t, rec).Message)
}
