// Package handler contains the HTTP handlers of the API server.
package handler

import (
	"time"

	"shopfront/internal/domain/entity"

	"github.com/google/uuid"
)

// UserView is the public shape of a user. The password hash is never serialized.
type UserView struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatar"`
	CoverURL  string    `json:"coverImage,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newUserView(u *entity.User) *UserView {
	if u == nil {
		return nil
	}

	return &UserView{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Username:  u.Username,
		Role:      u.Role.String(),
		AvatarURL: u.AvatarURL,
		CoverURL:  u.CoverURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type ProductView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newProductView(p *entity.Product) *ProductView {
	return &ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type OrderItemView struct {
	ProductID uuid.UUID `json:"product"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unitPrice"`
}

type OrderView struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user"`
	Items          []OrderItemView `json:"products"`
	TotalAmount    float64         `json:"totalAmount"`
	Status         string          `json:"status"`
	Carrier        string          `json:"carrier,omitempty"`
	TrackingNumber string          `json:"trackingNumber,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func newOrderView(o *entity.Order) *OrderView {
	items := make([]OrderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemView{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return &OrderView{
		ID:             o.ID,
		UserID:         o.UserID,
		Items:          items,
		TotalAmount:    o.TotalAmount,
		Status:         string(o.Status),
		Carrier:        o.Carrier,
		TrackingNumber: o.TrackingNumber,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

type PaymentView struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user"`
	OrderID          uuid.UUID `json:"order"`
	Amount           float64   `json:"amount"`
	Status           string    `json:"status"`
	Method           string    `json:"paymentMethod"`
	ProcessorPayment string    `json:"paymentIntentId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func newPaymentView(p *entity.Payment) *PaymentView {
	return &PaymentView{
		ID:               p.ID,
		UserID:           p.UserID,
		OrderID:          p.OrderID,
		Amount:           p.Amount,
		Status:           string(p.Status),
		Method:           string(p.Method),
		ProcessorPayment: p.ProcessorPayment,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func mapViews[T any, V any](items []T, view func(T) V) []V {
	out := make([]V, 0, len(items))
	for _, item := range items {
		out = append(out, view(item))
	}

	return out
}
