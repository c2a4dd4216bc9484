package repository

import "context"

// TransactionManager runs a unit of work atomically. Session rotation and order
// settlement both depend on it.
type TransactionManager interface {
	// Execute commits when fn returns nil and rolls back otherwise.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to the running transaction.
type RepositoryFactory interface {
	NewUserRepository() UserRepository
	NewSessionRepository() SessionRepository
	NewProductRepository() ProductRepository
	NewOrderRepository() OrderRepository
	NewPaymentRepository() PaymentRepository
}
