package payment

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Payment methods the simulated authority declines, mirroring Stripe's test
// card tokens so local flows behave like test mode.
const (
	TestMethodDeclined = "pm_card_chargeDeclined"
)

// ErrDeclined is returned when the simulated authority refuses a payment method.
var ErrDeclined = errors.New("payment method declined")

// SimulatedAuthority is an in-process Authority for running without payment
// provider credentials. Authorizations succeed unless the payment method is a
// known declined token; captures succeed for any authorization it issued.
type SimulatedAuthority struct {
	mu         sync.Mutex
	authorized map[string]bool
}

// NewSimulatedAuthority creates a new SimulatedAuthority.
func NewSimulatedAuthority() *SimulatedAuthority {
	return &SimulatedAuthority{authorized: make(map[string]bool)}
}

func (a *SimulatedAuthority) Authorize(ctx context.Context, amount int64, paymentMethod string) (string, error) {
	if paymentMethod == TestMethodDeclined {
		return "", ErrDeclined
	}

	id := "auth_" + uuid.New().String()

	a.mu.Lock()
	a.authorized[id] = true
	a.mu.Unlock()

	return id, nil
}

func (a *SimulatedAuthority) Capture(ctx context.Context, authorizationID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.authorized[authorizationID] {
		return errors.New("unknown authorization id")
	}

	return nil
}
