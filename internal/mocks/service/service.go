// Package service provides testify doubles for the domain service interfaces.
package service

import (
	"context"
	"time"

	"shopfront/internal/domain/service"

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

// MockTokenService is a mock of service.TokenService.
type MockTokenService struct{ mock.Mock }

func NewMockTokenService(t cleanupT) *MockTokenService {
	m := &MockTokenService{}
	register(t, &m.Mock)

	return m
}

func (m *MockTokenService) GenerateAccessToken(userID uuid.UUID) (string, error) {
	args := m.Called(userID)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) GenerateRefreshToken(userID uuid.UUID, version int64) (string, time.Time, error) {
	args := m.Called(userID, version)
	expiresAt, _ := args.Get(1).(time.Time)

	return args.String(0), expiresAt, args.Error(2)
}

func (m *MockTokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*service.Claims)

	return claims, args.Error(1)
}

func (m *MockTokenService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*service.Claims)

	return claims, args.Error(1)
}

func (m *MockTokenService) GetAccessTokenDuration() time.Duration {
	args := m.Called()
	d, _ := args.Get(0).(time.Duration)

	return d
}

func (m *MockTokenService) GetRefreshTokenDuration() time.Duration {
	args := m.Called()
	d, _ := args.Get(0).(time.Duration)

	return d
}

// MockPasswordHasher is a mock of service.PasswordHasher.
type MockPasswordHasher struct{ mock.Mock }

func NewMockPasswordHasher(t cleanupT) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	register(t, &m.Mock)

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

// MockCarrier is a mock of service.Carrier.
type MockCarrier struct{ mock.Mock }

func NewMockCarrier(t cleanupT) *MockCarrier {
	m := &MockCarrier{}
	register(t, &m.Mock)

	return m
}

func (m *MockCarrier) RegisterShipment(ctx context.Context, req *service.ShipmentRequest) (*service.ShipmentConfirmation, error) {
	args := m.Called(ctx, req)
	confirmation, _ := args.Get(0).(*service.ShipmentConfirmation)

	return confirmation, args.Error(1)
}

// MockPaymentProcessor is a mock of service.PaymentProcessor.
type MockPaymentProcessor struct{ mock.Mock }

func NewMockPaymentProcessor(t cleanupT) *MockPaymentProcessor {
	m := &MockPaymentProcessor{}
	register(t, &m.Mock)

	return m
}

func (m *MockPaymentProcessor) CreatePaymentIntent(ctx context.Context, req *service.PaymentIntentRequest) (*service.PaymentIntent, error) {
	args := m.Called(ctx, req)
	intent, _ := args.Get(0).(*service.PaymentIntent)

	return intent, args.Error(1)
}

// MockEventPublisher is a mock of service.EventPublisher.
type MockEventPublisher struct{ mock.Mock }

func NewMockEventPublisher(t cleanupT) *MockEventPublisher {
	m := &MockEventPublisher{}
	register(t, &m.Mock)

	return m
}

func (m *MockEventPublisher) PublishShipmentRetry(ctx context.Context, event *service.ShipmentRetryEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// MockFileUploader is a mock of service.FileUploader.
type MockFileUploader struct{ mock.Mock }

func NewMockFileUploader(t cleanupT) *MockFileUploader {
	m := &MockFileUploader{}
	register(t, &m.Mock)

	return m
}

func (m *MockFileUploader) Upload(ctx context.Context, localPath string) (string, error) {
	args := m.Called(ctx, localPath)

	return args.String(0), args.Error(1)
}
