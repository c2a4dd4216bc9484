package handler

import (
	"log/slog"
	"net/http"

	"shopfront/internal/delivery/api/response"
	deliverycontext "shopfront/internal/delivery/context"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler serves order placement and the administrative order endpoints.
type OrderHandler struct {
	uc     usecase.SettlementUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.SettlementUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: logger,
	}
}

type lineItemRequest struct {
	ProductID string `json:"product" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type createOrderRequest struct {
	Products []lineItemRequest `json:"products" validate:"dive"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreateOrder places an order for the caller. A carrier failure is rendered here rather than
// by the error handler: the order was persisted, so an idempotent retry must replay the 502.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid order input")
	}
	if err := validateRequest(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	items := make([]usecase.LineItem, 0, len(req.Products))
	for _, p := range req.Products {
		productID, err := uuid.Parse(p.ProductID)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid product or quantity for product "+p.ProductID)
		}
		items = append(items, usecase.LineItem{ProductID: productID, Quantity: p.Quantity})
	}

	order, err := h.uc.CreateOrder(c.Request().Context(), userID, items)
	if err != nil {
		var appErr domainerrors.AppError
		if errors.Is(err, domainerrors.ErrCarrier) && errors.As(err, &appErr) {
			return response.Render(c, appErr)
		}

		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newOrderView(order), "Order created successfully")
}

// GetOrder is limited to the order's owner and administrators.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if err := ownerOrAdmin(c, order.UserID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newOrderView(order), "Order fetched successfully")
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.uc.ListOrders(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, mapViews(orders, newOrderView), "Orders fetched successfully")
}

func (h *OrderHandler) ListUserOrders(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if err := ownerOrAdmin(c, userID); err != nil {
		return response.HandleAppError(c, err)
	}

	orders, err := h.uc.ListUserOrders(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, mapViews(orders, newOrderView), "User orders fetched successfully")
}

func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid status input")
	}
	if err := validateRequest(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.uc.UpdateOrderStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newOrderView(order), "Order status updated successfully")
}

func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.uc.DeleteOrder(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]any{}, "Order deleted successfully")
}

// RetryShipment is the manual recovery path for orders left Pending by a carrier failure.
func (h *OrderHandler) RetryShipment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.uc.RetryShipment(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).Info("Shipment registered on manual retry",
		slog.String("order_id", order.ID.String()),
		slog.String("tracking_number", order.TrackingNumber),
	)

	return response.Success(c, http.StatusOK, newOrderView(order), "Shipment registered successfully")
}
