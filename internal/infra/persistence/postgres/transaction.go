// Package postgres implements the repositories on GORM over PostgreSQL.
package postgres

import (
	"context"

	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/repository"

	"gorm.io/gorm"
)

type gormTransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute hands fn a factory whose repositories all share one transaction.
// gorm rolls back on error or panic and re-panics after the rollback. Errors from fn come
// back unchanged; begin and commit failures become ErrTransactionFailed.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	var fnErr error
	err := tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(txFactory{tx: tx})

		return fnErr
	})
	if err == nil || fnErr != nil {
		return err
	}

	return domainerrors.ErrTransactionFailed.WrapMessage(err.Error())
}

// txFactory binds every repository to the same *gorm.DB transaction.
type txFactory struct {
	tx *gorm.DB
}

func (f txFactory) NewUserRepository() repository.UserRepository {
	return NewUserRepository(f.tx)
}

func (f txFactory) NewSessionRepository() repository.SessionRepository {
	return NewSessionRepository(f.tx)
}

func (f txFactory) NewProductRepository() repository.ProductRepository {
	return NewProductRepository(f.tx)
}

func (f txFactory) NewOrderRepository() repository.OrderRepository {
	return NewOrderRepository(f.tx)
}

func (f txFactory) NewPaymentRepository() repository.PaymentRepository {
	return NewPaymentRepository(f.tx)
}
