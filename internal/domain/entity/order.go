package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// orderTransitions lists the statuses reachable from each status.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// IsValid checks if the status belongs to the closed enum.
func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]

	return ok
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// OrderItem is one (product, quantity) line of an order.
type OrderItem struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice float64 // Price of the product when the order was placed.
}

// SubtotalMinor returns UnitPrice × Quantity in cents.
func (i OrderItem) SubtotalMinor() int64 {
	return ToMinorUnits(i.UnitPrice) * int64(i.Quantity)
}

// Order is a user's checkout.
type Order struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Items          []OrderItem
	TotalAmount    float64
	Status         OrderStatus
	Carrier        string
	TrackingNumber string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CalculateTotalMinor sums the line subtotals in cents.
func (o *Order) CalculateTotalMinor() int64 {
	var cents int64
	for _, item := range o.Items {
		cents += item.SubtotalMinor()
	}

	return cents
}

// MarkShipped records the carrier confirmation and moves the order to Shipped.
func (o *Order) MarkShipped(carrier, trackingNumber string) {
	o.Status = OrderStatusShipped
	o.Carrier = carrier
	o.TrackingNumber = trackingNumber
}
