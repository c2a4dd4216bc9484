package service

import (
	"context"
	"time"
)

// ShipmentRetryEvent asks the shipment worker to register a Pending order with the carrier again.
type ShipmentRetryEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	OrderID    string    `json:"order_id"`
	UserID     string    `json:"user_id"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishShipmentRetry publishes a shipment retry event for async processing
	PublishShipmentRetry(ctx context.Context, event *ShipmentRetryEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
