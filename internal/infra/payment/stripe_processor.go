// Package payment creates payment intents with the configured processor.
package payment

import (
	"context"
	"log/slog"

	"shopfront/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// stripeProcessor creates PaymentIntents through the Stripe API.
type stripeProcessor struct {
	client *paymentintent.Client
	logger *slog.Logger
}

// NewStripeProcessor builds a processor bound to backend. A nil backend uses the default Stripe API backend.
func NewStripeProcessor(secretKey string, backend stripe.Backend, logger *slog.Logger) (service.PaymentProcessor, error) {
	if secretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}

	return &stripeProcessor{
		client: &paymentintent.Client{B: backend, Key: secretKey},
		logger: logger,
	}, nil
}

func (p *stripeProcessor) CreatePaymentIntent(ctx context.Context, req *service.PaymentIntentRequest) (*service.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.Amount),
		Currency:           stripe.String(req.Currency),
		PaymentMethodTypes: stripe.StringSlice(req.PaymentMethodTypes),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := p.client.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return nil, &service.ProcessorError{
				StatusCode: stripeErr.HTTPStatusCode,
				Code:       string(stripeErr.Code),
				Msg:        stripeErr.Msg,
			}
		}

		return nil, &service.ProcessorError{Msg: err.Error()}
	}

	p.logger.InfoContext(ctx, "Payment intent created",
		slog.String("payment_intent", pi.ID),
		slog.String("status", string(pi.Status)),
		slog.Int64("amount", pi.Amount),
	)

	return &service.PaymentIntent{
		ID:       pi.ID,
		Status:   string(pi.Status),
		Amount:   pi.Amount,
		Currency: string(pi.Currency),
	}, nil
}
