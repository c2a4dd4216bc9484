// Package repository provides testify doubles for the domain repository interfaces.
package repository

import (
	"context"

	"shopfront/internal/domain/entity"
	"shopfront/internal/domain/repository"

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

// MockUserRepository is a mock of repository.UserRepository.
type MockUserRepository struct{ mock.Mock }

func NewMockUserRepository(t cleanupT) *MockUserRepository {
	m := &MockUserRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockUserRepository) FindByLogin(ctx context.Context, identifier string) (*entity.User, error) {
	args := m.Called(ctx, identifier)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)

	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

// MockSessionRepository is a mock of repository.SessionRepository.
type MockSessionRepository struct{ mock.Mock }

func NewMockSessionRepository(t cleanupT) *MockSessionRepository {
	m := &MockSessionRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockSessionRepository) FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	args := m.Called(ctx, userID)
	session, _ := args.Get(0).(*entity.Session)

	return session, args.Error(1)
}

func (m *MockSessionRepository) Upsert(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockSessionRepository) CompareAndSwap(ctx context.Context, expectedVersion int64, next *entity.Session) (bool, error) {
	args := m.Called(ctx, expectedVersion, next)

	return args.Bool(0), args.Error(1)
}

func (m *MockSessionRepository) Revoke(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// MockProductRepository is a mock of repository.ProductRepository.
type MockProductRepository struct{ mock.Mock }

func NewMockProductRepository(t cleanupT) *MockProductRepository {
	m := &MockProductRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*entity.Product)

	return product, args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Product, error) {
	args := m.Called(ctx, ids)
	products, _ := args.Get(0).(map[uuid.UUID]*entity.Product)

	return products, args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]*entity.Product)

	return products, args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockOrderRepository is a mock of repository.OrderRepository.
type MockOrderRepository struct{ mock.Mock }

func NewMockOrderRepository(t cleanupT) *MockOrderRepository {
	m := &MockOrderRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*entity.Order)

	return order, args.Error(1)
}

func (m *MockOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]*entity.Order)

	return orders, args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context) ([]*entity.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*entity.Order)

	return orders, args.Error(1)
}

func (m *MockOrderRepository) UpdateShipment(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockPaymentRepository is a mock of repository.PaymentRepository.
type MockPaymentRepository struct{ mock.Mock }

func NewMockPaymentRepository(t cleanupT) *MockPaymentRepository {
	m := &MockPaymentRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	args := m.Called(ctx, id)
	payment, _ := args.Get(0).(*entity.Payment)

	return payment, args.Error(1)
}

func (m *MockPaymentRepository) List(ctx context.Context) ([]*entity.Payment, error) {
	args := m.Called(ctx)
	payments, _ := args.Get(0).([]*entity.Payment)

	return payments, args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// RepositoryFactory hands out the configured doubles. Nil fields panic when requested.
type RepositoryFactory struct {
	Users    repository.UserRepository
	Sessions repository.SessionRepository
	Products repository.ProductRepository
	Orders   repository.OrderRepository
	Payments repository.PaymentRepository
}

func (f *RepositoryFactory) NewUserRepository() repository.UserRepository       { return must(f.Users) }
func (f *RepositoryFactory) NewSessionRepository() repository.SessionRepository { return must(f.Sessions) }
func (f *RepositoryFactory) NewProductRepository() repository.ProductRepository { return must(f.Products) }
func (f *RepositoryFactory) NewOrderRepository() repository.OrderRepository     { return must(f.Orders) }
func (f *RepositoryFactory) NewPaymentRepository() repository.PaymentRepository { return must(f.Payments) }

func must[T any](repo T) T {
	if any(repo) == nil {
		panic("repository not configured in test factory")
	}

	return repo
}

// TransactionManager runs fn inline against Factory and counts invocations.
type TransactionManager struct {
	Factory repository.RepositoryFactory
	Calls   int
}

// NewTransactionManager wraps factory.
func NewTransactionManager(factory repository.RepositoryFactory) *TransactionManager {
	return &TransactionManager{Factory: factory}
}

func (tm *TransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	tm.Calls++

	return fn(tm.Factory)
}
