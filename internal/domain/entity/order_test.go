package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusPending, OrderStatusShipped, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusShipped, OrderStatusPending, false},
		{OrderStatusPending, OrderStatus("Lost"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusPending.IsValid())
	assert.True(t, OrderStatusCancelled.IsValid())
	assert.False(t, OrderStatus("pending").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestOrder_CalculateTotal(t *testing.T) {
	order := &Order{
		Items: []OrderItem{
			{ProductID: uuid.New(), Quantity: 3, UnitPrice: 10},
			{ProductID: uuid.New(), Quantity: 2, UnitPrice: 2.5},
		},
	}

	assert.Equal(t, int64(3500), order.CalculateTotalMinor())
	assert.Zero(t, (&Order{}).CalculateTotalMinor())
}

func TestOrder_CalculateTotalIsExactToTheCent(t *testing.T) {
	order := &Order{Items: []OrderItem{{ProductID: uuid.New(), Quantity: 3, UnitPrice: 0.1}}}
	assert.Equal(t, 0.3, FromMinorUnits(order.CalculateTotalMinor()))

	order.Items = append(order.Items, OrderItem{ProductID: uuid.New(), Quantity: 7, UnitPrice: 19.99})
	assert.Equal(t, int64(30+13993), order.CalculateTotalMinor())
	assert.Equal(t, 140.23, FromMinorUnits(order.CalculateTotalMinor()))
}

func TestOrder_MarkShipped(t *testing.T) {
	order := &Order{Status: OrderStatusPending}

	order.MarkShipped("shippo", "TRK-1")

	assert.Equal(t, OrderStatusShipped, order.Status)
	assert.Equal(t, "shippo", order.Carrier)
	assert.Equal(t, "TRK-1", order.TrackingNumber)
}

func TestPaymentMethod_IsValid(t *testing.T) {
	assert.True(t, PaymentMethodCreditCard.IsValid())
	assert.True(t, PaymentMethodBankTransfer.IsValid())
	assert.False(t, PaymentMethod("Cash").IsValid())
}

func TestRole_Toggle(t *testing.T) {
	assert.Equal(t, RoleAdmin, RoleUser.Toggle())
	assert.Equal(t, RoleUser, RoleAdmin.Toggle())
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleAdmin, ParseRole(" Admin "))
	assert.Equal(t, RoleUser, ParseRole("user"))
	assert.Equal(t, RoleUser, ParseRole("superuser"))
	assert.Equal(t, RoleUser, ParseRole(""))
}
