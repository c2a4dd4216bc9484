package service

import (
	"context"
	"fmt"
)

// PaymentIntentRequest asks the processor to create a payment intent.
type PaymentIntentRequest struct {
	Amount             int64 // Minor currency units.
	Currency           string
	PaymentMethodTypes []string
	Metadata           map[string]string
}

// PaymentIntent is the processor's confirmation.
type PaymentIntent struct {
	ID       string
	Status   string
	Amount   int64
	Currency string
}

// ProcessorError is a rejection reported by the payment processor.
type ProcessorError struct {
	StatusCode int    // HTTP status reported by the processor, 0 for transport failures.
	Code       string // Processor specific code, e.g. card_declined.
	Msg        string
}

func (e *ProcessorError) Error() string {
	return fmt.Sprintf("payment processor error (status %d, code %q): %s", e.StatusCode, e.Code, e.Msg)
}

// PaymentProcessor creates payment intents against an external processor.
type PaymentProcessor interface {
	CreatePaymentIntent(ctx context.Context, req *PaymentIntentRequest) (*PaymentIntent, error)
}
