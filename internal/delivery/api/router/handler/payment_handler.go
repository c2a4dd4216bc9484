package handler

import (
	"log/slog"
	"net/http"

	"shopfront/internal/delivery/api/response"
	"shopfront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// PaymentHandler serves payment creation and the administrative payment endpoints.
type PaymentHandler struct {
	uc         usecase.SettlementUsecase
	aggregator usecase.OrderAggregator
	logger     *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler, injected by Fx.
func NewPaymentHandler(uc usecase.SettlementUsecase, aggregator usecase.OrderAggregator, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		uc:         uc,
		aggregator: aggregator,
		logger:     logger,
	}
}

type createPaymentRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

type outstandingResponse struct {
	Total                 float64 `json:"totalAmount"`
	RepresentativeOrderID string  `json:"order"`
}

// CreatePayment charges everything the caller owes.
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid payment input")
	}

	payment, err := h.uc.CreatePayment(c.Request().Context(), userID, req.PaymentMethod)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newPaymentView(payment), "Payment created successfully")
}

// GetOutstanding shows what CreatePayment would charge.
func (h *PaymentHandler) GetOutstanding(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.aggregator.ComputeOutstanding(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, outstandingResponse{
		Total:                 out.Total,
		RepresentativeOrderID: out.RepresentativeOrderID.String(),
	}, "Outstanding amount fetched successfully")
}

// GetPayment is limited to the payer and administrators.
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	payment, err := h.uc.GetPayment(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if err := ownerOrAdmin(c, payment.UserID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newPaymentView(payment), "Payment fetched successfully")
}

func (h *PaymentHandler) ListPayments(c echo.Context) error {
	payments, err := h.uc.ListPayments(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, mapViews(payments, newPaymentView), "Payments fetched successfully")
}

func (h *PaymentHandler) UpdatePaymentStatus(c echo.Context) error {
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

	payment, err := h.uc.UpdatePaymentStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newPaymentView(payment), "Payment status updated successfully")
}

func (h *PaymentHandler) DeletePayment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.uc.DeletePayment(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]any{}, "Payment deleted successfully")
}
