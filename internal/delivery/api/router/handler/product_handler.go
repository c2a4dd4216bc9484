package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"shopfront/internal/delivery/api/response"
	deliverycontext "shopfront/internal/delivery/context"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ProductHandler serves the catalog. Mutations are mounted behind RequireAdmin.
type ProductHandler struct {
	uc     usecase.ProductUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: logger,
	}
}

// productFields accepts JSON bodies and multipart forms alike; absent fields stay nil.
type productFields struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, mapViews(products, newProductView), "Products fetched successfully")
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	product, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newProductView(product), "Product fetched successfully")
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	fields, err := bindProductFields(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	imagePath, err := saveFormFile(c, deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger), "image")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	defer removeTemp(imagePath)

	input := usecase.CreateProductInput{ImagePath: imagePath}
	if fields.Name != nil {
		input.Name = *fields.Name
	}
	if fields.Description != nil {
		input.Description = *fields.Description
	}
	if fields.Price != nil {
		input.Price = *fields.Price
	}
	if fields.Stock != nil {
		input.Stock = *fields.Stock
	}
	if fields.Category != nil {
		input.Category = *fields.Category
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newProductView(product), "Product created successfully")
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	fields, err := bindProductFields(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	imagePath, err := saveFormFile(c, deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger), "image")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	defer removeTemp(imagePath)

	product, err := h.uc.UpdateProduct(c.Request().Context(), id, usecase.UpdateProductInput{
		Name:        fields.Name,
		Description: fields.Description,
		Price:       fields.Price,
		Stock:       fields.Stock,
		Category:    fields.Category,
		ImagePath:   imagePath,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newProductView(product), "Product updated successfully")
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]any{}, "Product deleted successfully")
}

func bindProductFields(c echo.Context) (*productFields, error) {
	var fields productFields

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) && !strings.HasPrefix(contentType, echo.MIMEApplicationForm) {
		if err := c.Bind(&fields); err != nil {
			return nil, domainerrors.ErrInvalidInput.WithMessage("Invalid product input")
		}

		return &fields, nil
	}

	form, err := c.FormParams()
	if err != nil {
		return nil, domainerrors.ErrInvalidInput.WithMessage("Invalid product input")
	}
	str := func(key string) *string {
		if _, ok := form[key]; !ok {
			return nil
		}
		v := form.Get(key)

		return &v
	}

	fields.Name = str("name")
	fields.Description = str("description")
	fields.Category = str("category")
	if raw := str("price"); raw != nil {
		price, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
		if err != nil {
			return nil, domainerrors.ErrInvalidInput.WithMessage("Price must be a number")
		}
		fields.Price = &price
	}
	if raw := str("stock"); raw != nil {
		stock, err := strconv.Atoi(strings.TrimSpace(*raw))
		if err != nil {
			return nil, domainerrors.ErrInvalidInput.WithMessage("Stock must be an integer")
		}
		fields.Stock = &stock
	}

	return &fields, nil
}
