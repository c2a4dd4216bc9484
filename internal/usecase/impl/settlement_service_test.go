package impl

import (
	"context"
	"net/http"
	"testing"

	"shopfront/config"
	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/service"
	mockRepo "shopfront/internal/mocks/repository"
	mockSvc "shopfront/internal/mocks/service"
	"shopfront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubAggregator struct {
	outstanding *usecase.Outstanding
	err         error
}

func (s *stubAggregator) ComputeOutstanding(context.Context, uuid.UUID) (*usecase.Outstanding, error) {
	return s.outstanding, s.err
}

type settlementFixture struct {
	orders     *mockRepo.MockOrderRepository
	products   *mockRepo.MockProductRepository
	payments   *mockRepo.MockPaymentRepository
	tx         *mockRepo.TransactionManager
	aggregator *stubAggregator
	carrier    *mockSvc.MockCarrier
	processor  *mockSvc.MockPaymentProcessor
	publisher  *mockSvc.MockEventPublisher
	service    usecase.SettlementUsecase
}

func newSettlementFixture(t *testing.T) *settlementFixture {
	t.Helper()

	f := &settlementFixture{
		orders:     mockRepo.NewMockOrderRepository(t),
		products:   mockRepo.NewMockProductRepository(t),
		payments:   mockRepo.NewMockPaymentRepository(t),
		aggregator: &stubAggregator{},
		carrier:    mockSvc.NewMockCarrier(t),
		processor:  mockSvc.NewMockPaymentProcessor(t),
		publisher:  mockSvc.NewMockEventPublisher(t),
	}
	f.tx = mockRepo.NewTransactionManager(&mockRepo.RepositoryFactory{Orders: f.orders})
	f.service = NewSettlementService(SettlementServiceParams{
		TxManager:   f.tx,
		OrderRepo:   f.orders,
		ProductRepo: f.products,
		PaymentRepo: f.payments,
		Aggregator:  f.aggregator,
		Carrier:     f.carrier,
		Processor:   f.processor,
		Publisher:   f.publisher,
		Config: &config.Config{PaymentProcessor: &config.PaymentProcessorConfig{
			Currency:     "inr",
			PaymentTypes: []string{"card"},
		}},
		Logger: newDiscardLogger(),
	})

	return f
}

func TestSettlementService_CreateOrder_Shipped(t *testing.T) {
	f := newSettlementFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	mug := &entity.Product{ID: uuid.New(), Price: 10}
	pen := &entity.Product{ID: uuid.New(), Price: 2.5}

	f.products.On("FindByIDs", ctx, []uuid.UUID{mug.ID, pen.ID}).
		Return(map[uuid.UUID]*entity.Product{mug.ID: mug, pen.ID: pen}, nil)
	f.orders.On("Create", ctx, mock.MatchedBy(func(o *entity.Order) bool {
		return o.Status == entity.OrderStatusPending && o.TotalAmount == 35 && len(o.Items) == 2
	})).Return(nil)
	f.carrier.On("RegisterShipment", ctx, mock.MatchedBy(func(req *service.ShipmentRequest) bool {
		return req.UserID == userID && len(req.Items) == 2 && req.Items[0].Quantity == 3
	})).Return(&service.ShipmentConfirmation{Status: "created", Carrier: "USPS", TrackingNumber: "TRK123"}, nil)
	f.orders.On("UpdateShipment", ctx, mock.MatchedBy(func(o *entity.Order) bool {
		return o.Status == entity.OrderStatusShipped && o.TrackingNumber == "TRK123"
	})).Return(nil)

	order, err := f.service.CreateOrder(ctx, userID, []usecase.LineItem{
		{ProductID: mug.ID, Quantity: 3},
		{ProductID: pen.ID, Quantity: 2},
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, order.Status)
	assert.Equal(t, "USPS", order.Carrier)
	assert.InDelta(t, 35.0, order.TotalAmount, 1e-9)
	assert.InDelta(t, 10.0, order.Items[0].UnitPrice, 1e-9)
	assert.Equal(t, 1, f.tx.Calls)
}

func TestSettlementService_CreateOrder_TotalInCents(t *testing.T) {
	f := newSettlementFixture(t)
	ctx := context.Background()
	sticker := &entity.Product{ID: uuid.New(), Price: 0.1}

	f.products.On("FindByIDs", ctx, []uuid.UUID{sticker.ID}).
		Return(map[uuid.UUID]*entity.Product{sticker.ID: sticker}, nil)
	f.orders.On("Create", ctx, mock.MatchedBy(func(o *entity.Order) bool {
		return o.TotalAmount == 0.3
	})).Return(nil)
	f.carrier.On("RegisterShipment", ctx, mock.MatchedBy(func(req *service.ShipmentRequest) bool {
		return req.TotalAmount == 0.3
	})).Return(&service.ShipmentConfirmation{Carrier: "USPS", TrackingNumber: "TRK9"}, nil)
	f.orders.On("UpdateShipment", ctx, mock.Anything).Return(nil)

	order, err := f.service.CreateOrder(ctx, uuid.New(), []usecase.LineItem{{ProductID: sticker.ID, Quantity: 3}})

	require.NoError(t, err)
	assert.Equal(t, 0.3, order.TotalAmount)
}

func TestSettlementService_CreateOrder_TotalAboveStorableAmount(t *testing.T) {
	f := newSettlementFixture(t)
	ctx := context.Background()
	yacht := &entity.Product{ID: uuid.New(), Price: 999_999_999.99}

	f.products.On("FindByIDs", ctx, mock.Anything).
		Return(map[uuid.UUID]*entity.Product{yacht.ID: yacht}, nil)

	_, err := f.service.CreateOrder(ctx, uuid.New(), []usecase.LineItem{{ProductID: yacht.ID, Quantity: 11}})

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
	assert.Zero(t, f.tx.Calls)
}

func TestSettlementService_CreateOrder_CarrierFailure(t *testing.T) {
	f := newSettlementFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	mug := &entity.Product{ID: uuid.New(), Price: 10}

	f.products.On("FindByIDs", ctx, []uuid.UUID{mug.ID}).Return(map[uuid.UUID]*entity.Product{mug.ID: mug}, nil)
	f.orders.On("Create", ctx, mock.Anything).Return(nil)
	f.carrier.On("RegisterShipment", ctx, mock.Anything).Return(nil, errors.New("carrier returned 503"))
	f.publisher.On("PublishShipmentRetry", ctx, mock.MatchedBy(func(e *service.ShipmentRetryEvent) bool {
		return e.UserID == userID.String() && e.OrderID != "" && e.Reason == "carrier returned 503"
	})).Return(nil)

	order, err := f.service.CreateOrder(ctx, userID, []usecase.LineItem{{ProductID: mug.ID, Quantity: 1}})

	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrCarrier))
	f.orders.AssertNotCalled(t, "UpdateShipment", mock.Anything, mock.Anything)
}

func TestSettlementService_CreateOrder_PublishFailureStillReturnsCarrierError(t *testing.T) {
	f := newSettlementFixture(t)
	ctx := context.Background()
	mug := &entity.Product{ID: uuid.New(), Price: 10}

	f.products.On("FindByIDs", ctx, []uuid.UUID{mug.ID}).Return(map[uuid.UUID]*entity.Product{mug.ID: mug}, nil)
	f.orders.On("Create", ctx, mock.Anything).Return(nil)
	f.carrier.On("RegisterShipment", ctx, mock.Anything).Return(nil, errors.New("timeout"))
	f.publisher.On("PublishShipmentRetry", ctx, mock.Anything).Return(errors.New("topic not found"))

	_, err := f.service.CreateOrder(ctx, uuid.New(), []usecase.LineItem{{ProductID: mug.ID, Quantity: 1}})

	assert.True(t, errors.Is(err, domainerrors.ErrCarrier))
}

func TestSettlementService_CreateOrder_InvalidItems(t *testing.T) {
	mug := &entity.Product{ID: uuid.New(), Price: 10}
	missing := uuid.New()

	tests := []struct {
		name  string
		items []usecase.LineItem
	}{
		{"unknown product", []usecase.LineItem{{ProductID: mug.ID, Quantity: 1}, {ProductID: missing, Quantity: 1}}},
		{"zero quantity", []usecase.LineItem{{ProductID: mug.ID, Quantity: 0}}},
		{"quantity above the line limit", []usecase.LineItem{{ProductID: mug.ID, Quantity: entity.MaxLineQuantity + 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSettlementFixture(t)
			ctx := context.Background()
			f.products.On("FindByIDs", ctx, mock.Anything).Return(map[uuid.UUID]*entity.Product{mug.ID: mug}, nil)

			_, err := f.service.CreateOrder(ctx, uuid.New(), tt.items)

			assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
			assert.Zero(t, f.tx.Calls)
		})
	}

	t.Run("names the product", func(t *testing.T) {
		f := newSettlementFixture(t)
		ctx := context.Background()
		f.products.On("FindByIDs", ctx, mock.Anything).Return(map[uuid.UUID]*entity.Product{}, nil)

		_, err := f.service.CreateOrder(ctx, uuid.New(), []usecase.LineItem{{ProductID: missing, Quantity: 1}})

		var appErr domainerrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Contains(t, appErr.Message(), missing.String())
	})

	t.Run("empty order", func(t *testing.T) {
		f := newSettlementFixture(t)

		_, err := f.service.CreateOrder(context.Background(), uuid.New(), nil)

		assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
	})
}

func TestSettlementService_UpdateOrderStatus(t *testing.T) {
	tests := []struct {
		name    string
		current entity.OrderStatus
		next    string
		wantErr error
	}{
		{"pending to shipped", entity.OrderStatusPending, "Shipped", nil},
		{"shipped to delivered", entity.OrderStatusShipped, "Delivered", nil},
		{"shipped to cancelled", entity.OrderStatusShipped, "Cancelled", nil},
		{"delivered to pending", entity.OrderStatusDelivered, "Pending", domainerrors.ErrInvalidInput},
		{"pending to delivered", entity.OrderStatusPending, "Delivered", domainerrors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSettlementFixture(t)
			ctx := context.Background()
			order := &entity.Order{ID: uuid.New(), Status: tt.current}
			f.orders.On("FindByID", ctx, order.ID).Return(order, nil)
			if tt.wantErr == nil {
				f.orders.On("UpdateStatus", ctx, order.ID, entity.OrderStatus(tt.next)).Return(nil)
			}

			got, err := f.service.UpdateOrderStatus(ctx, order.ID, tt.next)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))

				return
			}
			require.NoError(t, err)
			assert.Equal(t, entity.OrderStatus(tt.next), got.Status)
		})
	}
}

func TestSettlementService_UpdateOrderStatus_UnknownStatus(t *testing.T) {
	f := newSettlementFixture(t)

	_, err := f.service.UpdateOrderStatus(context.Background(), uuid.New(), "Lost")

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
}

func TestSettlementService_UpdateOrderStatus_NotFound(t *testing.T) {
	f := newSettlementFixture(t)
	ctx := context.Background()
	id := uuid.New()
	f.orders.On("FindByID", ctx, id).Return(nil, domainerrors.ErrOrderNotFound)

	_, err := f.service.UpdateOrderStatus(ctx, id, "Shipped")

	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestSettlementService_RetryShipment(t *testing.T) {
	t.Run("pending order ships", func(t *testing.T) {
		f := newSettlementFixture(t)
		ctx := context.Background()
		order := &entity.Order{ID: uuid.New(), Status: entity.OrderStatusPending}
		f.orders.On("FindByID", ctx, order.ID).Return(order, nil)
		f.carrier.On("RegisterShipment", ctx, mock.Anything).Return(&service.ShipmentConfirmation{Carrier: "USPS", TrackingNumber: "T1"}, nil)
		f.orders.On("UpdateShipment", ctx, order).Return(nil)

		got, err := f.service.RetryShipment(ctx, order.ID)

		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusShipped, got.Status)
	})

	t.Run("already shipped", func(t *testing.T) {
		f := newSettlementFixture(t)
		ctx := context.Background()
		order := &entity.Order{ID: uuid.New(), Status: entity.OrderStatusShipped}
		f.orders.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err := f.service.RetryShipment(ctx, order.ID)

		assert.True(t, errors.Is(err, domainerrors.ErrConflict))
	})

	t.Run("carrier still down", func(t *testing.T) {
		f := newSettlementFixture(t)
		ctx := context.Background()
		order := &entity.Order{ID: uuid.New(), Status: entity.OrderStatusPending}
		f.orders.On("FindByID", ctx, order.ID).Return(order, nil)
		f.carrier.On("RegisterShipment", ctx, mock.Anything).Return(nil, errors.New("down"))

		_, err := f.service.RetryShipment(ctx, order.ID)

		assert.True(t, errors.Is(err, domainerrors.ErrCarrier))
		f.publisher.AssertNotCalled(t, "PublishShipmentRetry", mock.Anything, mock.Anything)
	})
}

func TestSettlementService_CreatePayment_Success(t *testing.T) {
	f := newSettlementFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()
	f.aggregator.outstanding = &usecase.Outstanding{Total: 20.5, RepresentativeOrderID: orderID}

	f.processor.On("CreatePaymentIntent", ctx, mock.MatchedBy(func(req *service.PaymentIntentRequest) bool {
		return req.Amount == 2050 && req.Currency == "inr" && req.PaymentMethodTypes[0] == "card" &&
			req.Metadata["order_id"] == orderID.String()
	})).Return(&service.PaymentIntent{ID: "pi_123", Status: "requires_payment_method"}, nil)
	f.payments.On("Create", ctx, mock.MatchedBy(func(p *entity.Payment) bool {
		return p.OrderID == orderID && p.Status == entity.PaymentStatusCompleted && p.ProcessorPayment == "pi_123"
	})).Return(nil)

	payment, err := f.service.CreatePayment(ctx, userID, "Credit Card")

	require.NoError(t, err)
	assert.InDelta(t, 20.5, payment.Amount, 1e-9)
	assert.Equal(t, entity.PaymentMethodCreditCard, payment.Method)
}

func TestSettlementService_CreatePayment_NothingPayable(t *testing.T) {
	f := newSettlementFixture(t)
	f.aggregator.err = domainerrors.ErrNothingPayable

	_, err := f.service.CreatePayment(context.Background(), uuid.New(), "Credit Card")

	assert.Equal(t, domainerrors.ErrNothingPayable, err)

	_, err = f.service.CreatePayment(context.Background(), uuid.New(), "")

	assert.Equal(t, domainerrors.ErrNothingPayable, err)
}

func TestSettlementService_CreatePayment_InvalidMethod(t *testing.T) {
	f := newSettlementFixture(t)
	f.aggregator.outstanding = &usecase.Outstanding{Total: 5, RepresentativeOrderID: uuid.New()}

	_, err := f.service.CreatePayment(context.Background(), uuid.New(), "Cash")

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
}

func TestSettlementService_CreatePayment_ProcessorErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "declined",
			err:         &service.ProcessorError{StatusCode: http.StatusPaymentRequired, Code: "card_declined", Msg: "Your card was declined."},
			wantStatus:  http.StatusPaymentRequired,
			wantMessage: "Your card was declined.",
		},
		{
			name:        "processor outage",
			err:         &service.ProcessorError{StatusCode: http.StatusInternalServerError, Msg: "Internal error"},
			wantStatus:  http.StatusBadGateway,
			wantMessage: "Internal error",
		},
		{
			name:        "transport failure",
			err:         errors.New("dial tcp: timeout"),
			wantStatus:  http.StatusBadGateway,
			wantMessage: "Payment processor rejected the request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSettlementFixture(t)
			ctx := context.Background()
			f.aggregator.outstanding = &usecase.Outstanding{Total: 5, RepresentativeOrderID: uuid.New()}
			f.processor.On("CreatePaymentIntent", ctx, mock.Anything).Return(nil, tt.err)

			_, err := f.service.CreatePayment(ctx, uuid.New(), "Debit Card")

			var appErr domainerrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.True(t, errors.Is(err, domainerrors.ErrPaymentProcessor))
			assert.Equal(t, tt.wantStatus, appErr.HTTPCode())
			assert.Equal(t, tt.wantMessage, appErr.Message())
			f.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestSettlementService_UpdatePaymentStatus(t *testing.T) {
	f := newSettlementFixture(t)
	ctx := context.Background()
	payment := &entity.Payment{ID: uuid.New(), Status: entity.PaymentStatusCompleted}
	f.payments.On("FindByID", ctx, payment.ID).Return(payment, nil)
	f.payments.On("UpdateStatus", ctx, payment.ID, entity.PaymentStatusFailed).Return(nil)

	got, err := f.service.UpdatePaymentStatus(ctx, payment.ID, "Failed")

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusFailed, got.Status)

	_, err = f.service.UpdatePaymentStatus(ctx, payment.ID, "Refunded")
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
}

func TestSettlementService_DeleteOrder_WithPayments(t *testing.T) {
	f := newSettlementFixture(t)
	ctx := context.Background()
	id := uuid.New()
	f.orders.On("Delete", ctx, id).Return(domainerrors.ErrConflict.WithMessage("Order still has payments and cannot be deleted"))

	err := f.service.DeleteOrder(ctx, id)

	assert.True(t, errors.Is(err, domainerrors.ErrConflict))
}
