package tests

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"tripfund/internal/domain"
	"tripfund/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK PAYMENT AUTHORITY
// ──────────────────────────────────────────────

// MockAuthority is a mock implementation of payment.Authority with failure
// injection and call accounting. Safe for concurrent use.
type MockAuthority struct {
	mu sync.Mutex

	// next authorization id suffix
	seq int

	// amounts by authorization id
	authorized map[string]int64

	// payment methods the authority declines at authorize time
	declinedMethods map[string]bool

	// authorization ids whose capture fails
	failCaptures map[string]bool

	// capture calls per authorization id
	captureCalls map[string]int

	// Counters for verification
	AuthorizeCallCount int32
	CaptureCallCount   int32
}

// NewMockAuthority creates a new mock payment authority.
func NewMockAuthority() *MockAuthority {
	return &MockAuthority{
		authorized:      make(map[string]int64),
		declinedMethods: make(map[string]bool),
		failCaptures:    make(map[string]bool),
		captureCalls:    make(map[string]int),
	}
}

// DeclineMethod makes Authorize fail for the given payment method.
func (m *MockAuthority) DeclineMethod(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.declinedMethods[method] = true
}

// FailCaptureFor makes Capture fail for the given authorization id.
func (m *MockAuthority) FailCaptureFor(authorizationID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failCaptures[authorizationID] = true
}

var errCaptureRefused = errors.New("capture refused")

func (m *MockAuthority) Authorize(ctx context.Context, amount int64, paymentMethod string) (string, error) {
	atomic.AddInt32(&m.AuthorizeCallCount, 1)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.declinedMethods[paymentMethod] {
		return "", errors.New("card declined")
	}

	m.seq++
	id := fmt.Sprintf("auth-%d", m.seq)
	m.authorized[id] = amount
	return id, nil
}

func (m *MockAuthority) Capture(ctx context.Context, authorizationID string) error {
	atomic.AddInt32(&m.CaptureCallCount, 1)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.authorized[authorizationID]; !ok {
		return errors.New("unknown authorization id")
	}

	m.captureCalls[authorizationID]++

	if m.failCaptures[authorizationID] {
		return errCaptureRefused
	}
	return nil
}

// CaptureCallsFor returns how many times Capture was called for an
// authorization id.
func (m *MockAuthority) CaptureCallsFor(authorizationID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.captureCalls[authorizationID]
}

// MaxCaptureCalls returns the highest per-authorization capture call count.
// Anything above 1 means a commitment was swept twice.
func (m *MockAuthority) MaxCaptureCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	max := 0
	for _, n := range m.captureCalls {
		if n > max {
			max = n
		}
	}
	return max
}

// ──────────────────────────────────────────────
// SWEEP-COUNTING TRIP REPOSITORY
// ──────────────────────────────────────────────

// CountingTripRepository wraps a TripRepository and counts crossing signals
// and settle transitions, so tests can assert the sweep fires exactly once.
type CountingTripRepository struct {
	repository.TripRepository

	CrossedCount int32
	SettledCount int32
}

// NewCountingTripRepository wraps the given repository.
func NewCountingTripRepository(inner repository.TripRepository) *CountingTripRepository {
	return &CountingTripRepository{TripRepository: inner}
}

func (r *CountingTripRepository) AddCommitted(ctx context.Context, id string, amount int64) (int64, bool, error) {
	newTotal, crossedNow, err := r.TripRepository.AddCommitted(ctx, id, amount)
	if crossedNow {
		atomic.AddInt32(&r.CrossedCount, 1)
	}
	return newTotal, crossedNow, err
}

func (r *CountingTripRepository) SetPhase(ctx context.Context, id string, phase domain.TripPhase) error {
	if phase == domain.TripPhaseSettled {
		atomic.AddInt32(&r.SettledCount, 1)
	}
	return r.TripRepository.SetPhase(ctx, id, phase)
}
