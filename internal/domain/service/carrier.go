package service

import (
	"context"

	"github.com/google/uuid"
)

// ShipmentItem is one parcel line sent to the carrier.
type ShipmentItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// ShipmentRequest describes an order to ship.
type ShipmentRequest struct {
	OrderID     uuid.UUID      `json:"order_id"`
	UserID      uuid.UUID      `json:"user_id"`
	Items       []ShipmentItem `json:"items"`
	TotalAmount float64        `json:"total_amount"`
}

// ShipmentConfirmation is the carrier's success response.
type ShipmentConfirmation struct {
	Status         string `json:"status"`
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"tracking_number"`
}

// Carrier registers shipments with an external shipping provider.
type Carrier interface {
	// RegisterShipment fails on any network error or non-2xx response.
	RegisterShipment(ctx context.Context, req *ShipmentRequest) (*ShipmentConfirmation, error)
}
