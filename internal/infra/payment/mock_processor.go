package payment

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"shopfront/internal/domain/service"
)

const alphanumericChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// mockProcessor accepts every intent and returns a Stripe-shaped id.
type mockProcessor struct {
	logger *slog.Logger
}

// NewMockProcessor creates a processor for local development.
func NewMockProcessor(logger *slog.Logger) service.PaymentProcessor {
	return &mockProcessor{logger: logger}
}

func (p *mockProcessor) CreatePaymentIntent(ctx context.Context, req *service.PaymentIntentRequest) (*service.PaymentIntent, error) {
	if req.Amount <= 0 {
		return nil, &service.ProcessorError{StatusCode: 400, Code: "amount_too_small", Msg: "Amount must be at least 1 minor unit"}
	}

	id := "pi_mock_" + randomAlphanumeric(24)
	p.logger.DebugContext(ctx, "[MockProcessor] Payment intent created", slog.String("payment_intent", id))

	return &service.PaymentIntent{
		ID:       id,
		Status:   "requires_payment_method",
		Amount:   req.Amount,
		Currency: req.Currency,
	}, nil
}

func randomAlphanumeric(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = alphanumericChars[rand.IntN(len(alphanumericChars))]
	}

	return string(b)
}
