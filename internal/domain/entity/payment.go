package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the state of a payment record.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
)

// IsValid checks if the status belongs to the closed enum.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	default:
		return false
	}
}

// PaymentMethod is the instrument a user pays with.
type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "Credit Card"
	PaymentMethodDebitCard    PaymentMethod = "Debit Card"
	PaymentMethodPayPal       PaymentMethod = "PayPal"
	PaymentMethodBankTransfer PaymentMethod = "Bank Transfer"
)

// IsValid checks if the method belongs to the closed enum.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodPayPal, PaymentMethodBankTransfer:
		return true
	default:
		return false
	}
}

// Payment records a confirmed payment intent against an order.
type Payment struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	OrderID          uuid.UUID
	Amount           float64
	Status           PaymentStatus
	Method           PaymentMethod
	ProcessorPayment string // Payment intent id returned by the processor.
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
