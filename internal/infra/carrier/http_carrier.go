// Package carrier registers shipments with the configured shipping provider.
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"shopfront/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	shipmentsPath = "/shipments"
	maxErrorBody  = 4 << 10
)

// httpCarrier talks to a Shippo-compatible REST API.
type httpCarrier struct {
	baseURL    string
	authScheme string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPCarrier builds a carrier client. Requests carry "Authorization: <authScheme> <token>".
// The client's Timeout bounds every call.
func NewHTTPCarrier(baseURL, authScheme, token string, httpClient *http.Client, logger *slog.Logger) service.Carrier {
	return &httpCarrier{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authScheme: authScheme,
		token:      token,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *httpCarrier) RegisterShipment(ctx context.Context, shipment *service.ShipmentRequest) (*service.ShipmentConfirmation, error) {
	body, err := json.Marshal(shipment)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+shipmentsPath, bytes.NewReader(body))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.authScheme+" "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "carrier request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return nil, errors.Errorf("carrier returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var confirmation service.ShipmentConfirmation
	if err := json.NewDecoder(resp.Body).Decode(&confirmation); err != nil {
		return nil, errors.Wrap(err, "failed to decode carrier response")
	}

	c.logger.InfoContext(ctx, "Shipment registered",
		slog.String("order_id", shipment.OrderID.String()),
		slog.String("carrier", confirmation.Carrier),
		slog.String("tracking_number", confirmation.TrackingNumber),
	)

	return &confirmation, nil
}
