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
	"gorm.io/gorm/clause"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the order row and then its items. Callers that need both to land atomically
// run it inside TransactionManager.Execute.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	orderM := fromOrderDomain(order)
	items := orderM.Items

	db := repo.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound
		}
		if isCheckConstraintViolation(err) || isNumericOutOfRange(err) {
			return domainerrors.ErrInvalidInput.WithDetails("invalid order fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	if len(items) > 0 {
		if err := db.Create(&items).Error; err != nil {
			if isCheckConstraintViolation(err) || isNumericOutOfRange(err) {
				return domainerrors.ErrInvalidInput.WithDetails("invalid order item")
			}

			return domainerrors.NewDatabaseExecuteError(err, "failed to create order items")
		}
	}

	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.withItems(ctx).Where("id = ?", id).First(&orderM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find order")
	}

	return toOrderDomain(&orderM), nil
}

func (repo *orderRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orderMs []model.OrderModel
	err := repo.withItems(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&orderMs).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find orders by user")
	}

	return toOrderDomains(orderMs), nil
}

func (repo *orderRepository) List(ctx context.Context) ([]*entity.Order, error) {
	var orderMs []model.OrderModel
	if err := repo.withItems(ctx).Order("created_at DESC, id").Find(&orderMs).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list orders")
	}

	return toOrderDomains(orderMs), nil
}

func (repo *orderRepository) UpdateShipment(ctx context.Context, order *entity.Order) error {
	return repo.update(ctx, order.ID, map[string]any{
		"status":          string(order.Status),
		"carrier":         order.Carrier,
		"tracking_number": order.TrackingNumber,
	})
}

func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	return repo.update(ctx, id, map[string]any{"status": string(status)})
}

// Delete removes the order; its items go with it through ON DELETE CASCADE. Payments
// still referencing the order make the delete fail with a conflict.
func (repo *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.OrderModel{})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrConflict.WithMessage("Order still has payments and cannot be deleted")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete order")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrOrderNotFound
	}

	return nil
}

func (repo *orderRepository) withItems(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func (repo *orderRepository) update(ctx context.Context, id uuid.UUID, columns map[string]any) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Updates(columns)
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrInvalidInput.WithDetails("invalid order status")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrOrderNotFound
	}

	return nil
}

func toOrderDomains(orderMs []model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, 0, len(orderMs))
	for i := range orderMs {
		orders = append(orders, toOrderDomain(&orderMs[i]))
	}

	return orders
}

func toOrderDomain(data *model.OrderModel) *entity.Order {
	items := make([]entity.OrderItem, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, entity.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return &entity.Order{
		ID:             data.ID,
		UserID:         data.UserID,
		Items:          items,
		TotalAmount:    data.TotalAmount,
		Status:         entity.OrderStatus(data.Status),
		Carrier:        data.Carrier,
		TrackingNumber: data.TrackingNumber,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	items := make([]model.OrderItemModel, 0, len(data.Items))
	for i, item := range data.Items {
		items = append(items, model.OrderItemModel{
			ID:        uuid.New(),
			OrderID:   data.ID,
			Position:  i,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return &model.OrderModel{
		ID:             data.ID,
		UserID:         data.UserID,
		TotalAmount:    data.TotalAmount,
		Status:         string(data.Status),
		Carrier:        data.Carrier,
		TrackingNumber: data.TrackingNumber,
		Items:          items,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
