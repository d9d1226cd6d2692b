package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// StripeAuthority implements Authority against Stripe PaymentIntents with
// manual capture.
type StripeAuthority struct {
	api *client.API
}

// NewStripeAuthority creates a StripeAuthority using the given secret key.
func NewStripeAuthority(secretKey string) *StripeAuthority {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeAuthority{api: api}
}

// Authorize creates and confirms a PaymentIntent with capture_method=manual,
// reserving the funds without transferring them.
func (a *StripeAuthority) Authorize(ctx context.Context, amount int64, paymentMethod string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethod:      stripe.String(paymentMethod),
		CaptureMethod:      stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
		ConfirmationMethod: stripe.String(string(stripe.PaymentIntentConfirmationMethodManual)),
		Confirm:            stripe.Bool(true),
	}
	params.Context = ctx

	pi, err := a.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe authorize: %w", err)
	}

	if pi.Status != stripe.PaymentIntentStatusRequiresCapture {
		return "", fmt.Errorf("stripe authorize: payment intent %s in unexpected status %s", pi.ID, pi.Status)
	}

	return pi.ID, nil
}

// Capture captures a previously authorized PaymentIntent.
func (a *StripeAuthority) Capture(ctx context.Context, authorizationID string) error {
	params := &stripe.PaymentIntentCaptureParams{}
	params.Context = ctx

	pi, err := a.api.PaymentIntents.Capture(authorizationID, params)
	if err != nil {
		return fmt.Errorf("stripe capture %s: %w", authorizationID, err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return fmt.Errorf("stripe capture %s: payment intent in status %s", authorizationID, pi.Status)
	}

	return nil
}
