package impl

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"shopfront/config"
	deliverycontext "shopfront/internal/delivery/context"
	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/repository"
	"shopfront/internal/domain/service"
	"shopfront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// settlementService moves orders through the carrier and charges users through the processor.
type settlementService struct {
	txManager   repository.TransactionManager
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	paymentRepo repository.PaymentRepository
	aggregator  usecase.OrderAggregator
	carrier     service.Carrier
	processor   service.PaymentProcessor
	publisher   service.EventPublisher
	currency    string
	methodTypes []string
	logger      *slog.Logger
}

// SettlementServiceParams holds dependencies for SettlementService, injected by Fx.
type SettlementServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	OrderRepo   repository.OrderRepository
	ProductRepo repository.ProductRepository
	PaymentRepo repository.PaymentRepository
	Aggregator  usecase.OrderAggregator
	Carrier     service.Carrier
	Processor   service.PaymentProcessor
	Publisher   service.EventPublisher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewSettlementService is the constructor for settlementService.
func NewSettlementService(params SettlementServiceParams) usecase.SettlementUsecase {
	srv := &settlementService{
		txManager:   params.TxManager,
		orderRepo:   params.OrderRepo,
		productRepo: params.ProductRepo,
		paymentRepo: params.PaymentRepo,
		aggregator:  params.Aggregator,
		carrier:     params.Carrier,
		processor:   params.Processor,
		publisher:   params.Publisher,
		logger:      params.Logger,
	}
	if pp := params.Config.PaymentProcessor; pp != nil {
		srv.currency = pp.Currency
		srv.methodTypes = pp.PaymentTypes
	}

	return srv
}

func (srv *settlementService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

var errOrderTooLarge = domainerrors.ErrInvalidInput.WithMessage("Order total exceeds the maximum allowed amount")

// --- Orders ---

func (srv *settlementService) CreateOrder(ctx context.Context, userID uuid.UUID, items []usecase.LineItem) (*entity.Order, error) {
	if len(items) == 0 {
		return nil, domainerrors.ErrInvalidInput.WithMessage("Order must contain at least one product")
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := srv.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		ID:     uuid.New(),
		UserID: userID,
		Status: entity.OrderStatusPending,
		Items:  make([]entity.OrderItem, 0, len(items)),
	}
	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok || item.Quantity < 1 || item.Quantity > entity.MaxLineQuantity {
			return nil, domainerrors.ErrInvalidInput.WithMessage("Invalid product or quantity for product " + item.ProductID.String())
		}
		line := entity.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		}
		if line.SubtotalMinor() > entity.MaxAmountMinor {
			return nil, errOrderTooLarge
		}
		order.Items = append(order.Items, line)
	}
	totalMinor := order.CalculateTotalMinor()
	if totalMinor > entity.MaxAmountMinor {
		return nil, errOrderTooLarge
	}
	order.TotalAmount = entity.FromMinorUnits(totalMinor)

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewOrderRepository().Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	logger := srv.log(ctx).With(slog.String("order_id", order.ID.String()))
	logger.Info("Order created", slog.Float64("total_amount", order.TotalAmount))

	confirmation, err := srv.carrier.RegisterShipment(ctx, shipmentRequest(order))
	if err != nil {
		logger.Error("Carrier rejected shipment, order left pending", slog.Any("error", err))
		srv.publishShipmentRetry(ctx, order, err)

		return nil, domainerrors.ErrCarrier.WithDetails(err.Error())
	}

	if err := srv.markShipped(ctx, order, confirmation); err != nil {
		return nil, err
	}

	return order, nil
}

func (srv *settlementService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return srv.orderRepo.FindByID(ctx, id)
}

func (srv *settlementService) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	return srv.orderRepo.List(ctx)
}

func (srv *settlementService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	return srv.orderRepo.FindByUserID(ctx, userID)
}

func (srv *settlementService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*entity.Order, error) {
	next := entity.OrderStatus(status)
	if !next.IsValid() {
		return nil, domainerrors.ErrInvalidInput.WithMessage("Invalid order status: " + status)
	}

	order, err := srv.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, domainerrors.ErrInvalidInput.WithMessage(
			"Cannot change order status from " + string(order.Status) + " to " + status)
	}

	if err := srv.orderRepo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	order.Status = next

	srv.log(ctx).Info("Order status updated", slog.String("order_id", id.String()), slog.String("status", status))

	return order, nil
}

func (srv *settlementService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return srv.orderRepo.Delete(ctx, id)
}

// RetryShipment does not publish another retry event; the worker relies on redelivery instead.
func (srv *settlementService) RetryShipment(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OrderStatusPending {
		return nil, domainerrors.ErrConflict.WithMessage("Order is not pending shipment")
	}

	confirmation, err := srv.carrier.RegisterShipment(ctx, shipmentRequest(order))
	if err != nil {
		srv.log(ctx).Warn("Shipment retry failed", slog.String("order_id", id.String()), slog.Any("error", err))

		return nil, domainerrors.ErrCarrier.WithDetails(err.Error())
	}

	if err := srv.markShipped(ctx, order, confirmation); err != nil {
		return nil, err
	}

	return order, nil
}

func (srv *settlementService) markShipped(ctx context.Context, order *entity.Order, confirmation *service.ShipmentConfirmation) error {
	order.MarkShipped(confirmation.Carrier, confirmation.TrackingNumber)
	if err := srv.orderRepo.UpdateShipment(ctx, order); err != nil {
		srv.log(ctx).Error("Shipment registered but order update failed",
			slog.String("order_id", order.ID.String()),
			slog.String("tracking_number", confirmation.TrackingNumber),
			slog.Any("error", err),
		)

		return err
	}

	srv.log(ctx).Info("Order shipped",
		slog.String("order_id", order.ID.String()),
		slog.String("carrier", confirmation.Carrier),
		slog.String("tracking_number", confirmation.TrackingNumber),
	)

	return nil
}

// publishShipmentRetry is best effort; a failed publish leaves the order for manual recovery.
func (srv *settlementService) publishShipmentRetry(ctx context.Context, order *entity.Order, cause error) {
	event := &service.ShipmentRetryEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		OrderID:    order.ID.String(),
		UserID:     order.UserID.String(),
		Reason:     cause.Error(),
		OccurredAt: time.Now().UTC(),
	}
	if err := srv.publisher.PublishShipmentRetry(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish shipment retry event",
			slog.String("order_id", event.OrderID),
			slog.Any("error", err),
		)
	}
}

func shipmentRequest(order *entity.Order) *service.ShipmentRequest {
	req := &service.ShipmentRequest{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Items:       make([]service.ShipmentItem, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		req.Items = append(req.Items, service.ShipmentItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	return req
}

// --- Payments ---

func (srv *settlementService) CreatePayment(ctx context.Context, userID uuid.UUID, method string) (*entity.Payment, error) {
	outstanding, err := srv.aggregator.ComputeOutstanding(ctx, userID)
	if err != nil {
		return nil, err
	}

	paymentMethod := entity.PaymentMethod(method)
	if !paymentMethod.IsValid() {
		return nil, domainerrors.ErrInvalidInput.WithMessage("Invalid payment method: " + method)
	}

	intent, err := srv.processor.CreatePaymentIntent(ctx, &service.PaymentIntentRequest{
		Amount:             entity.ToMinorUnits(outstanding.Total),
		Currency:           srv.currency,
		PaymentMethodTypes: srv.methodTypes,
		Metadata: map[string]string{
			"user_id":  userID.String(),
			"order_id": outstanding.RepresentativeOrderID.String(),
		},
	})
	if err != nil {
		srv.log(ctx).Warn("Payment intent failed", slog.String("user_id", userID.String()), slog.Any("error", err))

		return nil, processorFailure(err)
	}

	payment := &entity.Payment{
		ID:               uuid.New(),
		UserID:           userID,
		OrderID:          outstanding.RepresentativeOrderID,
		Amount:           outstanding.Total,
		Status:           entity.PaymentStatusCompleted,
		Method:           paymentMethod,
		ProcessorPayment: intent.ID,
	}
	if err := srv.paymentRepo.Create(ctx, payment); err != nil {
		srv.log(ctx).Error("Payment intent created but not recorded",
			slog.String("payment_intent", intent.ID),
			slog.String("user_id", userID.String()),
			slog.Any("error", err),
		)

		return nil, err
	}

	srv.log(ctx).Info("Payment recorded",
		slog.String("payment_id", payment.ID.String()),
		slog.String("payment_intent", intent.ID),
	)

	return payment, nil
}

// processorFailure keeps the processor's message; declines (4xx) surface as 402.
func processorFailure(err error) error {
	var procErr *service.ProcessorError
	if !errors.As(err, &procErr) {
		return domainerrors.ErrPaymentProcessor.WithDetails(err.Error())
	}

	appErr := domainerrors.ErrPaymentProcessor
	if procErr.Msg != "" {
		appErr = appErr.WithMessage(procErr.Msg)
	}
	if procErr.StatusCode >= http.StatusBadRequest && procErr.StatusCode < http.StatusInternalServerError {
		appErr = appErr.WithHTTPCode(http.StatusPaymentRequired)
	}

	return appErr.WithDetails(procErr.Code)
}

func (srv *settlementService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	return srv.paymentRepo.FindByID(ctx, id)
}

func (srv *settlementService) ListPayments(ctx context.Context) ([]*entity.Payment, error) {
	return srv.paymentRepo.List(ctx)
}

func (srv *settlementService) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) (*entity.Payment, error) {
	next := entity.PaymentStatus(status)
	if !next.IsValid() {
		return nil, domainerrors.ErrInvalidInput.WithMessage("Invalid payment status: " + status)
	}

	payment, err := srv.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := srv.paymentRepo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	payment.Status = next

	return payment, nil
}

func (srv *settlementService) DeletePayment(ctx context.Context, id uuid.UUID) error {
	return srv.paymentRepo.Delete(ctx, id)
}
