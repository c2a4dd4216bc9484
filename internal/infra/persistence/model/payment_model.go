package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentModel mirrors the 'payments' table. order_id references orders.id with ON DELETE RESTRICT.
type PaymentModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount           float64   `gorm:"type:numeric(12,2);not null"`
	Status           string    `gorm:"type:varchar(20);not null"`
	Method           string    `gorm:"type:varchar(30);not null"`
	ProcessorPayment string    `gorm:"type:varchar(255)"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (PaymentModel) TableName() string {
	return "payments"
}
