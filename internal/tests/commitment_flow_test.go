package tests

import (
	"context"
	"errors"
	"testing"

	"tripfund/internal/domain"
	"tripfund/internal/repository"
	"tripfund/internal/service"
)

// ──────────────────────────────────────────────
// 1. COMMITMENT FLOW
// ──────────────────────────────────────────────

func TestCommit_ThresholdCrossingCapturesEveryone(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	trip, err := f.trips.CreateTrip(ctx, 10000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Alice commits 3000: pending, total 3000, not crossed.
	alice, err := f.commitments.Commit(ctx, service.CommitRequest{
		TripID: trip.ID, TravelerName: "Alice", CommittedAmount: 3000, PaymentMethod: "pm_card_visa",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alice.Status != domain.CommitmentStatusPending {
		t.Errorf("expected pending, got %s", alice.Status)
	}

	// Bob commits 4000: pending, total 7000, not crossed.
	_, err = f.commitments.Commit(ctx, service.CommitRequest{
		TripID: trip.ID, TravelerName: "Bob", CommittedAmount: 4000, PaymentMethod: "pm_card_visa",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	status, err := f.trips.GetStatus(ctx, trip.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Trip.TotalCommitted != 7000 {
		t.Errorf("expected total 7000, got %d", status.Trip.TotalCommitted)
	}
	if status.Trip.ThresholdMet() {
		t.Error("threshold should not be met at 7000/10000")
	}
	for _, c := range status.Commitments {
		if c.Status != domain.CommitmentStatusPending {
			t.Errorf("commitment %s should still be pending, got %s", c.TravelerName, c.Status)
		}
	}
	if f.authority.CaptureCallCount != 0 {
		t.Errorf("no captures should have happened yet, got %d", f.authority.CaptureCallCount)
	}

	// Charlie commits 5000: total 12000, crossed, sweep runs.
	_, err = f.commitments.Commit(ctx, service.CommitRequest{
		TripID: trip.ID, TravelerName: "Charlie", CommittedAmount: 5000, PaymentMethod: "pm_card_visa",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	status, err = f.trips.GetStatus(ctx, trip.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Trip.TotalCommitted != 12000 {
		t.Errorf("expected total 12000, got %d", status.Trip.TotalCommitted)
	}
	if !status.Trip.ThresholdMet() {
		t.Error("threshold should be met")
	}
	if status.Trip.Phase != domain.TripPhaseSettled {
		t.Errorf("expected phase SETTLED, got %s", status.Trip.Phase)
	}
	if len(status.Commitments) != 3 {
		t.Fatalf("expected 3 commitments, got %d", len(status.Commitments))
	}
	for _, c := range status.Commitments {
		if c.Status != domain.CommitmentStatusCaptured {
			t.Errorf("commitment %s should be captured, got %s", c.TravelerName, c.Status)
		}
	}

	// Creation order preserved.
	if status.Commitments[0].TravelerName != "Alice" ||
		status.Commitments[1].TravelerName != "Bob" ||
		status.Commitments[2].TravelerName != "Charlie" {
		t.Error("commitments not in creation order")
	}

	if f.authority.CaptureCallCount != 3 {
		t.Errorf("expected 3 capture calls, got %d", f.authority.CaptureCallCount)
	}
}

func TestCommit_SingleCommitmentExceedingThresholdSweepsImmediately(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	trip, err := f.trips.CreateTrip(ctx, 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One commitment alone exceeding the threshold is treated like any
	// other crossing commit: immediate sweep of the one commitment.
	_, err = f.commitments.Commit(ctx, service.CommitRequest{
		TripID: trip.ID, TravelerName: "Whale", CommittedAmount: 9000, PaymentMethod: "pm_card_visa",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	status, err := f.trips.GetStatus(ctx, trip.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Trip.Phase != domain.TripPhaseSettled {
		t.Errorf("expected phase SETTLED, got %s", status.Trip.Phase)
	}
	if status.Commitments[0].Status != domain.CommitmentStatusCaptured {
		t.Errorf("expected captured, got %s", status.Commitments[0].Status)
	}
}

// ──────────────────────────────────────────────
// 2. AUTHORIZATION FAILURE
// ──────────────────────────────────────────────

func TestCommit_DeclinedAuthorizationLeavesNoTrace(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	f.authority.DeclineMethod("pm_card_chargeDeclined")

	trip, err := f.trips.CreateTrip(ctx, 10000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = f.commitments.Commit(ctx, service.CommitRequest{
		TripID: trip.ID, TravelerName: "Mallory", CommittedAmount: 3000, PaymentMethod: "pm_card_chargeDeclined",
	})
	if !errors.Is(err, service.ErrAuthorizationFailed) {
		t.Fatalf("expected ErrAuthorizationFailed, got %v", err)
	}

	status, err := f.trips.GetStatus(ctx, trip.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(status.Commitments) != 0 {
		t.Errorf("declined commit must not be recorded, found %d commitments", len(status.Commitments))
	}
	if status.Trip.TotalCommitted != 0 {
		t.Errorf("declined commit must not change the total, got %d", status.Trip.TotalCommitted)
	}
}

// ──────────────────────────────────────────────
// 3. PARTIAL CAPTURE FAILURE
// ──────────────────────────────────────────────

func TestCommit_PartialCaptureFailureStillSettles(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	trip, err := f.trips.CreateTrip(ctx, 10000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = f.commitments.Commit(ctx, service.CommitRequest{
		TripID: trip.ID, TravelerName: "Alice", CommittedAmount: 3000, PaymentMethod: "pm_card_visa",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bob, err := f.commitments.Commit(ctx, service.CommitRequest{
		TripID: trip.ID, TravelerName: "Bob", CommittedAmount: 4000, PaymentMethod: "pm_card_visa",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Bob's capture will fail; his siblings are unaffected.
	f.authority.FailCaptureFor(bob.AuthorizationID)

	_, err = f.commitments.Commit(ctx, service.CommitRequest{
		TripID: trip.ID, TravelerName: "Charlie", CommittedAmount: 5000, PaymentMethod: "pm_card_visa",
	})
	if err != nil {
		t.Fatalf("the crossing commit must not fail on a sibling's capture failure: %v", err)
	}

	status, err := f.trips.GetStatus(ctx, trip.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Trip.Phase != domain.TripPhaseSettled {
		t.Errorf("trip should settle despite a failed capture, got %s", status.Trip.Phase)
	}

	byName := make(map[string]domain.CommitmentStatus)
	for _, c := range status.Commitments {
		byName[c.TravelerName] = c.Status
	}
	if byName["Alice"] != domain.CommitmentStatusCaptured {
		t.Errorf("Alice should be captured, got %s", byName["Alice"])
	}
	if byName["Bob"] != domain.CommitmentStatusFailed {
		t.Errorf("Bob should be failed, got %s", byName["Bob"])
	}
	if byName["Charlie"] != domain.CommitmentStatusCaptured {
		t.Errorf("Charlie should be captured, got %s", byName["Charlie"])
	}

	// A failed capture does not retract the total.
	if status.Trip.TotalCommitted != 12000 {
		t.Errorf("expected total 12000, got %d", status.Trip.TotalCommitted)
	}
}

// ──────────────────────────────────────────────
// 4. IDEMPOTENT TRIGGER
// ──────────────────────────────────────────────

func TestCommit_AfterSettleNeverResweeps(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	trip, err := f.trips.CreateTrip(ctx, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = f.commitments.Commit(ctx, service.CommitRequest{
		TripID: trip.ID, TravelerName: "Alice", CommittedAmount: 1500, PaymentMethod: "pm_card_visa",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	capturesAfterSweep := f.authority.CaptureCallCount

	// Dana commits after the trip settled: recorded, counted, never swept.
	_, err = f.commitments.Commit(ctx, service.CommitRequest{
		TripID: trip.ID, TravelerName: "Dana", CommittedAmount: 2000, PaymentMethod: "pm_card_visa",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.authority.CaptureCallCount != capturesAfterSweep {
		t.Errorf("no captures may run after settle, got %d extra",
			f.authority.CaptureCallCount-capturesAfterSweep)
	}
	if f.tripRepo.CrossedCount != 1 {
		t.Errorf("crossing signal fired %d times, want 1", f.tripRepo.CrossedCount)
	}
	if f.tripRepo.SettledCount != 1 {
		t.Errorf("trip settled %d times, want 1", f.tripRepo.SettledCount)
	}

	status, err := f.trips.GetStatus(ctx, trip.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Total keeps growing even after settle.
	if status.Trip.TotalCommitted != 3500 {
		t.Errorf("expected total 3500, got %d", status.Trip.TotalCommitted)
	}

	// Monotonicity: Alice stays captured, Dana stays pending.
	byName := make(map[string]domain.CommitmentStatus)
	for _, c := range status.Commitments {
		byName[c.TravelerName] = c.Status
	}
	if byName["Alice"] != domain.CommitmentStatusCaptured {
		t.Errorf("Alice must remain captured, got %s", byName["Alice"])
	}
	if byName["Dana"] != domain.CommitmentStatusPending {
		t.Errorf("Dana must remain pending, got %s", byName["Dana"])
	}
}

// ──────────────────────────────────────────────
// 5. VALIDATION
// ──────────────────────────────────────────────

func TestCommit_Validation(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	trip, err := f.trips.CreateTrip(ctx, 10000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name    string
		req     service.CommitRequest
		wantErr error
	}{
		{
			name:    "empty trip id",
			req:     service.CommitRequest{TravelerName: "Alice", CommittedAmount: 100, PaymentMethod: "pm"},
			wantErr: service.ErrInvalidTripID,
		},
		{
			name:    "unknown trip",
			req:     service.CommitRequest{TripID: "nope", TravelerName: "Alice", CommittedAmount: 100, PaymentMethod: "pm"},
			wantErr: repository.ErrNotFound,
		},
		{
			name:    "zero amount",
			req:     service.CommitRequest{TripID: trip.ID, TravelerName: "Alice", CommittedAmount: 0, PaymentMethod: "pm"},
			wantErr: service.ErrInvalidCommitmentAmount,
		},
		{
			name:    "negative amount",
			req:     service.CommitRequest{TripID: trip.ID, TravelerName: "Alice", CommittedAmount: -500, PaymentMethod: "pm"},
			wantErr: service.ErrInvalidCommitmentAmount,
		},
		{
			name:    "blank traveler name",
			req:     service.CommitRequest{TripID: trip.ID, TravelerName: "   ", CommittedAmount: 100, PaymentMethod: "pm"},
			wantErr: service.ErrInvalidTravelerName,
		},
		{
			name:    "empty payment method",
			req:     service.CommitRequest{TripID: trip.ID, TravelerName: "Alice", CommittedAmount: 100},
			wantErr: service.ErrInvalidPaymentMethod,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.commitments.Commit(ctx, tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}

	// None of the rejected commits touched the authority or the ledger.
	if f.authority.AuthorizeCallCount != 0 {
		t.Errorf("rejected commits must not reach the authority, got %d calls", f.authority.AuthorizeCallCount)
	}
	status, err := f.trips.GetStatus(ctx, trip.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(status.Commitments) != 0 || status.Trip.TotalCommitted != 0 {
		t.Error("rejected commits must not mutate trip state")
	}
}
