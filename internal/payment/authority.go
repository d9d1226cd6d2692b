package payment

import "context"

// Authority is the interface for the external payment authority. It supports
// the two-phase flow the orchestrator depends on: reserve funds now
// (authorize with manual capture), transfer them later (capture).
type Authority interface {
	// Authorize reserves amount cents against the given payment method and
	// returns the authorization ID on success. No funds move.
	Authorize(ctx context.Context, amount int64, paymentMethod string) (string, error)

	// Capture transfers the funds previously reserved under authorizationID.
	Capture(ctx context.Context, authorizationID string) error
}
