package payment

import (
	"log/slog"

	"shopfront/config"
	"shopfront/internal/domain/constants"
	"shopfront/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params holds dependencies for the PaymentProcessor, injected by Fx
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// New selects the processor implementation from configuration.
func New(params Params) (service.PaymentProcessor, error) {
	cfg := params.Config.PaymentProcessor
	if cfg == nil || cfg.Provider == "" || cfg.Provider == constants.PaymentProviderMock {
		params.Logger.Info("Using mock payment processor")

		return NewMockProcessor(params.Logger), nil
	}

	switch cfg.Provider {
	case constants.PaymentProviderStripe:
		params.Logger.Info("Using Stripe payment processor")

		return NewStripeProcessor(cfg.SecretKey, nil, params.Logger)
	default:
		return nil, errors.Errorf("unknown payment provider: %s", cfg.Provider)
	}
}

// Module provides the payment processor FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New),
)
