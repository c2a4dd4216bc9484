package postgres

import (
	"context"

	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/repository"
	"shopfront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository is the constructor for paymentRepository.
func NewPaymentRepository(db *gorm.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (repo *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	paymentM := fromPaymentDomain(payment)

	if err := repo.db.WithContext(ctx).Create(paymentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrOrderNotFound
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidInput.WithDetails("invalid payment fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create payment")
	}

	payment.CreatedAt = paymentM.CreatedAt
	payment.UpdatedAt = paymentM.UpdatedAt

	return nil
}

func (repo *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var paymentM model.PaymentModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&paymentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrPaymentNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find payment")
	}

	return toPaymentDomain(&paymentM), nil
}

func (repo *paymentRepository) List(ctx context.Context) ([]*entity.Payment, error) {
	var paymentMs []model.PaymentModel
	if err := repo.db.WithContext(ctx).Order("created_at DESC, id").Find(&paymentMs).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list payments")
	}

	payments := make([]*entity.Payment, 0, len(paymentMs))
	for i := range paymentMs {
		payments = append(payments, toPaymentDomain(&paymentMs[i]))
	}

	return payments, nil
}

func (repo *paymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PaymentModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update payment")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPaymentNotFound
	}

	return nil
}

func (repo *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PaymentModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete payment")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPaymentNotFound
	}

	return nil
}

func toPaymentDomain(data *model.PaymentModel) *entity.Payment {
	return &entity.Payment{
		ID:               data.ID,
		UserID:           data.UserID,
		OrderID:          data.OrderID,
		Amount:           data.Amount,
		Status:           entity.PaymentStatus(data.Status),
		Method:           entity.PaymentMethod(data.Method),
		ProcessorPayment: data.ProcessorPayment,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

func fromPaymentDomain(data *entity.Payment) *model.PaymentModel {
	return &model.PaymentModel{
		ID:               data.ID,
		UserID:           data.UserID,
		OrderID:          data.OrderID,
		Amount:           data.Amount,
		Status:           string(data.Status),
		Method:           string(data.Method),
		ProcessorPayment: data.ProcessorPayment,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}
