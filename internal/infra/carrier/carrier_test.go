package carrier

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shopfront/config"
	"shopfront/internal/domain/constants"
	"shopfront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newShipment() *service.ShipmentRequest {
	return &service.ShipmentRequest{
		OrderID:     uuid.New(),
		UserID:      uuid.New(),
		Items:       []service.ShipmentItem{{ProductID: uuid.New(), Quantity: 2}},
		TotalAmount: 20,
	}
}

func TestHTTPCarrier_RegisterShipment(t *testing.T) {
	shipment := newShipment()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/shipments", r.URL.Path)
		assert.Equal(t, "ShippoToken secret", r.Header.Get("Authorization"))

		var got service.ShipmentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, shipment.OrderID, got.OrderID)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"Shipment","status":"SUCCESS","carrier":"USPS","tracking_number":"123456789"}`))
	}))
	defer server.Close()

	c := NewHTTPCarrier(server.URL+"/", "ShippoToken", "secret", server.Client(), testLogger())
	confirmation, err := c.RegisterShipment(context.Background(), shipment)
	require.NoError(t, err)
	assert.Equal(t, "USPS", confirmation.Carrier)
	assert.Equal(t, "123456789", confirmation.TrackingNumber)
}

func TestHTTPCarrier_AuthScheme(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"carrier":"UPS","tracking_number":"1Z"}`))
	}))
	defer server.Close()

	_, err := NewHTTPCarrier(server.URL, "Bearer", "secret", server.Client(), testLogger()).
		RegisterShipment(context.Background(), newShipment())
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", got)
}

func TestHTTPCarrier_Failures(t *testing.T) {
	t.Run("non-2xx", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := NewHTTPCarrier(server.URL, "ShippoToken", "t", server.Client(), testLogger()).
			RegisterShipment(context.Background(), newShipment())
		assert.ErrorContains(t, err, "429")
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}))
		defer server.Close()

		_, err := NewHTTPCarrier(server.URL, "ShippoToken", "t", &http.Client{Timeout: 20 * time.Millisecond}, testLogger()).
			RegisterShipment(context.Background(), newShipment())
		assert.Error(t, err)
	})

	t.Run("undecodable body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		}))
		defer server.Close()

		_, err := NewHTTPCarrier(server.URL, "ShippoToken", "t", server.Client(), testLogger()).
			RegisterShipment(context.Background(), newShipment())
		assert.ErrorContains(t, err, "decode")
	})
}

func TestMockCarrier(t *testing.T) {
	confirmation, err := NewMockCarrier(testLogger()).RegisterShipment(context.Background(), newShipment())
	require.NoError(t, err)
	assert.Equal(t, "USPS", confirmation.Carrier)
	assert.Len(t, confirmation.TrackingNumber, 12)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.CarrierConfig
		wantErr string
	}{
		{name: "defaults to mock"},
		{name: "mock", cfg: &config.CarrierConfig{Provider: constants.CarrierProviderMock}},
		{name: "http", cfg: &config.CarrierConfig{Provider: constants.CarrierProviderHTTP, BaseURL: "https://api.goshippo.com", AuthScheme: "ShippoToken", Timeout: time.Second}},
		{name: "http without auth scheme", cfg: &config.CarrierConfig{Provider: constants.CarrierProviderHTTP, BaseURL: "https://api.goshippo.com"}, wantErr: "auth scheme"},
		{name: "http without base url", cfg: &config.CarrierConfig{Provider: constants.CarrierProviderHTTP}, wantErr: "base URL"},
		{name: "unknown", cfg: &config.CarrierConfig{Provider: "pigeon"}, wantErr: "unknown carrier provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(Params{Config: &config.Config{Carrier: tt.cfg}, Logger: testLogger()})
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}
