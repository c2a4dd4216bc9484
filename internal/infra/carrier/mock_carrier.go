package carrier

import (
	"context"
	"log/slog"
	"strings"

	"shopfront/internal/domain/service"

	"github.com/google/uuid"
)

const mockCarrierName = "USPS"

// mockCarrier confirms every shipment with a generated tracking number.
type mockCarrier struct {
	logger *slog.Logger
}

// NewMockCarrier creates a carrier for local development.
func NewMockCarrier(logger *slog.Logger) service.Carrier {
	return &mockCarrier{logger: logger}
}

func (c *mockCarrier) RegisterShipment(ctx context.Context, shipment *service.ShipmentRequest) (*service.ShipmentConfirmation, error) {
	tracking := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])

	c.logger.DebugContext(ctx, "[MockCarrier] Shipment accepted",
		slog.String("order_id", shipment.OrderID.String()),
		slog.String("tracking_number", tracking),
	)

	return &service.ShipmentConfirmation{
		Status:         "SUCCESS",
		Carrier:        mockCarrierName,
		TrackingNumber: tracking,
	}, nil
}
