package carrier

import (
	"log/slog"
	"net/http"

	"shopfront/config"
	"shopfront/internal/domain/constants"
	"shopfront/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params holds dependencies for the Carrier, injected by Fx
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// New selects the carrier implementation from configuration.
func New(params Params) (service.Carrier, error) {
	cfg := params.Config.Carrier
	if cfg == nil || cfg.Provider == "" || cfg.Provider == constants.CarrierProviderMock {
		params.Logger.Info("Using mock carrier")

		return NewMockCarrier(params.Logger), nil
	}

	if cfg.Provider != constants.CarrierProviderHTTP {
		return nil, errors.Errorf("unknown carrier provider: %s", cfg.Provider)
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("carrier base URL is required for http provider")
	}

	if cfg.AuthScheme == "" {
		return nil, errors.New("carrier auth scheme is required for http provider")
	}

	params.Logger.Info("Using HTTP carrier", slog.String("base_url", cfg.BaseURL), slog.String("auth_scheme", cfg.AuthScheme))

	return NewHTTPCarrier(cfg.BaseURL, cfg.AuthScheme, cfg.Token, &http.Client{Timeout: cfg.Timeout}, params.Logger), nil
}

// Module provides the carrier FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New),
)
