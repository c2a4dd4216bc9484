// Package usecase provides testify doubles for the usecase interfaces.
package usecase

import (
	"context"

	"shopfront/internal/domain/entity"
	"shopfront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type cleanupT interface {
	mock.TestingT
	Cleanup(func())
}

func register(t cleanupT, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// MockSessionUsecase is a mock of usecase.SessionUsecase.
type MockSessionUsecase struct{ mock.Mock }

func NewMockSessionUsecase(t cleanupT) *MockSessionUsecase {
	m := &MockSessionUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockSessionUsecase) IssuePair(ctx context.Context, userID uuid.UUID) (*entity.TokenPair, error) {
	args := m.Called(ctx, userID)
	pair, _ := args.Get(0).(*entity.TokenPair)

	return pair, args.Error(1)
}

func (m *MockSessionUsecase) Rotate(ctx context.Context, refreshToken string) (*entity.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	pair, _ := args.Get(0).(*entity.TokenPair)

	return pair, args.Error(1)
}

func (m *MockSessionUsecase) Revoke(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockSessionUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	args := m.Called(ctx, accessToken)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

// MockUserUsecase is a mock of usecase.UserUsecase.
type MockUserUsecase struct{ mock.Mock }

func NewMockUserUsecase(t cleanupT) *MockUserUsecase {
	m := &MockUserUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockUserUsecase) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, error) {
	args := m.Called(ctx, input)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockUserUsecase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.LoginOutput)

	return out, args.Error(1)
}

func (m *MockUserUsecase) Logout(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockUserUsecase) RefreshToken(ctx context.Context, refreshToken string) (*entity.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	pair, _ := args.Get(0).(*entity.TokenPair)

	return pair, args.Error(1)
}

func (m *MockUserUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input usecase.ChangePasswordInput) error {
	return m.Called(ctx, userID, input).Error(0)
}

func (m *MockUserUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockUserUsecase) UpdateAccount(ctx context.Context, userID uuid.UUID, input usecase.UpdateAccountInput) (*entity.User, error) {
	args := m.Called(ctx, userID, input)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockUserUsecase) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarPath string) (*entity.User, error) {
	args := m.Called(ctx, userID, avatarPath)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockUserUsecase) ToggleAdmin(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

// MockProductUsecase is a mock of usecase.ProductUsecase.
type MockProductUsecase struct{ mock.Mock }

func NewMockProductUsecase(t cleanupT) *MockProductUsecase {
	m := &MockProductUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockProductUsecase) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]*entity.Product)

	return products, args.Error(1)
}

func (m *MockProductUsecase) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*entity.Product)

	return product, args.Error(1)
}

func (m *MockProductUsecase) CreateProduct(ctx context.Context, input usecase.CreateProductInput) (*entity.Product, error) {
	args := m.Called(ctx, input)
	product, _ := args.Get(0).(*entity.Product)

	return product, args.Error(1)
}

func (m *MockProductUsecase) UpdateProduct(ctx context.Context, id uuid.UUID, input usecase.UpdateProductInput) (*entity.Product, error) {
	args := m.Called(ctx, id, input)
	product, _ := args.Get(0).(*entity.Product)

	return product, args.Error(1)
}

func (m *MockProductUsecase) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockSettlementUsecase is a mock of usecase.SettlementUsecase.
type MockSettlementUsecase struct{ mock.Mock }

func NewMockSettlementUsecase(t cleanupT) *MockSettlementUsecase {
	m := &MockSettlementUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockSettlementUsecase) CreateOrder(ctx context.Context, userID uuid.UUID, items []usecase.LineItem) (*entity.Order, error) {
	args := m.Called(ctx, userID, items)
	order, _ := args.Get(0).(*entity.Order)

	return order, args.Error(1)
}

func (m *MockSettlementUsecase) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*entity.Order)

	return order, args.Error(1)
}

func (m *MockSettlementUsecase) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*entity.Order)

	return orders, args.Error(1)
}

func (m *MockSettlementUsecase) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]*entity.Order)

	return orders, args.Error(1)
}

func (m *MockSettlementUsecase) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*entity.Order, error) {
	args := m.Called(ctx, id, status)
	order, _ := args.Get(0).(*entity.Order)

	return order, args.Error(1)
}

func (m *MockSettlementUsecase) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSettlementUsecase) RetryShipment(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*entity.Order)

	return order, args.Error(1)
}

func (m *MockSettlementUsecase) CreatePayment(ctx context.Context, userID uuid.UUID, method string) (*entity.Payment, error) {
	args := m.Called(ctx, userID, method)
	payment, _ := args.Get(0).(*entity.Payment)

	return payment, args.Error(1)
}

func (m *MockSettlementUsecase) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	args := m.Called(ctx, id)
	payment, _ := args.Get(0).(*entity.Payment)

	return payment, args.Error(1)
}

func (m *MockSettlementUsecase) ListPayments(ctx context.Context) ([]*entity.Payment, error) {
	args := m.Called(ctx)
	payments, _ := args.Get(0).([]*entity.Payment)

	return payments, args.Error(1)
}

func (m *MockSettlementUsecase) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) (*entity.Payment, error) {
	args := m.Called(ctx, id, status)
	payment, _ := args.Get(0).(*entity.Payment)

	return payment, args.Error(1)
}

func (m *MockSettlementUsecase) DeletePayment(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockOrderAggregator is a mock of usecase.OrderAggregator.
type MockOrderAggregator struct{ mock.Mock }

func NewMockOrderAggregator(t cleanupT) *MockOrderAggregator {
	m := &MockOrderAggregator{}
	register(t, &m.Mock)

	return m
}

func (m *MockOrderAggregator) ComputeOutstanding(ctx context.Context, userID uuid.UUID) (*usecase.Outstanding, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).(*usecase.Outstanding)

	return out, args.Error(1)
}
