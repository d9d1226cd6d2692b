package tests

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"tripfund/internal/domain"
	"tripfund/internal/service"
)

// ──────────────────────────────────────────────
// 6. CONCURRENT COMMITS
// ──────────────────────────────────────────────

func TestConcurrentCommits_TotalEqualsSumOfAmounts(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	// Threshold far above the combined commitments so no sweep interferes.
	trip, err := f.trips.CreateTrip(ctx, 1_000_000_00)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const travelers = 50
	var wantTotal int64
	for i := 0; i < travelers; i++ {
		wantTotal += int64(100 + i)
	}

	var wg sync.WaitGroup
	for i := 0; i < travelers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.commitments.Commit(ctx, service.CommitRequest{
				TripID:          trip.ID,
				TravelerName:    fmt.Sprintf("traveler-%d", i),
				CommittedAmount: int64(100 + i),
				PaymentMethod:   "pm_card_visa",
			})
			if err != nil {
				t.Errorf("commit %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	status, err := f.trips.GetStatus(ctx, trip.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Trip.TotalCommitted != wantTotal {
		t.Errorf("expected total %d, got %d", wantTotal, status.Trip.TotalCommitted)
	}
	if len(status.Commitments) != travelers {
		t.Errorf("expected %d commitments, got %d", travelers, len(status.Commitments))
	}
	for _, c := range status.Commitments {
		if c.Status != domain.CommitmentStatusPending {
			t.Errorf("commitment %s should be pending below threshold, got %s", c.TravelerName, c.Status)
		}
	}
}

func TestConcurrentCommits_SweepFiresExactlyOnce(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	// 20 travelers at 100 cents each against a 1000-cent threshold: the
	// crossing is guaranteed mid-flight, many commits race past it.
	trip, err := f.trips.CreateTrip(ctx, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const travelers = 20
	var wg sync.WaitGroup
	for i := 0; i < travelers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.commitments.Commit(ctx, service.CommitRequest{
				TripID:          trip.ID,
				TravelerName:    fmt.Sprintf("traveler-%d", i),
				CommittedAmount: 100,
				PaymentMethod:   "pm_card_visa",
			})
			if err != nil {
				t.Errorf("commit %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if f.tripRepo.CrossedCount != 1 {
		t.Errorf("crossing signal fired %d times, want exactly 1", f.tripRepo.CrossedCount)
	}
	if f.tripRepo.SettledCount != 1 {
		t.Errorf("trip settled %d times, want exactly 1", f.tripRepo.SettledCount)
	}
	if max := f.authority.MaxCaptureCalls(); max > 1 {
		t.Errorf("a commitment was captured %d times, want at most 1", max)
	}

	status, err := f.trips.GetStatus(ctx, trip.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Trip.Phase != domain.TripPhaseSettled {
		t.Errorf("expected phase SETTLED, got %s", status.Trip.Phase)
	}
	if status.Trip.TotalCommitted != travelers*100 {
		t.Errorf("expected total %d, got %d", travelers*100, status.Trip.TotalCommitted)
	}

	// Every commitment visible to the sweep was captured; commits that
	// landed after the sweep read the ledger stay pending forever. At
	// least the ten that crossed the threshold must have been swept, and
	// nothing may be failed.
	captured := 0
	for _, c := range status.Commitments {
		switch c.Status {
		case domain.CommitmentStatusCaptured:
			captured++
		case domain.CommitmentStatusFailed:
			t.Errorf("commitment %s failed, authority never declines in this test", c.TravelerName)
		}
	}
	if captured < 10 {
		t.Errorf("at least 10 commitments must be captured, got %d", captured)
	}
	if int32(captured) != f.authority.CaptureCallCount {
		t.Errorf("capture calls (%d) and captured commitments (%d) disagree",
			f.authority.CaptureCallCount, captured)
	}
}

func TestConcurrentCommits_TripsAreIndependent(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	tripA, err := f.trips.CreateTrip(ctx, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tripB, err := f.trips.CreateTrip(ctx, 1_000_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tripID := tripA.ID
			if i%2 == 0 {
				tripID = tripB.ID
			}
			_, err := f.commitments.Commit(ctx, service.CommitRequest{
				TripID:          tripID,
				TravelerName:    fmt.Sprintf("traveler-%d", i),
				CommittedAmount: 200,
				PaymentMethod:   "pm_card_visa",
			})
			if err != nil {
				t.Errorf("commit %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	statusA, err := f.trips.GetStatus(ctx, tripA.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	statusB, err := f.trips.GetStatus(ctx, tripB.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Trip A crossed its threshold and settled; trip B keeps collecting.
	if statusA.Trip.Phase != domain.TripPhaseSettled {
		t.Errorf("trip A should be settled, got %s", statusA.Trip.Phase)
	}
	if statusB.Trip.Phase != domain.TripPhaseCollecting {
		t.Errorf("trip B should still be collecting, got %s", statusB.Trip.Phase)
	}
	if statusB.Trip.TotalCommitted != 5*200 {
		t.Errorf("trip B total should be 1000, got %d", statusB.Trip.TotalCommitted)
	}
	for _, c := range statusB.Commitments {
		if c.Status != domain.CommitmentStatusPending {
			t.Errorf("trip B commitment %s should be pending, got %s", c.TravelerName, c.Status)
		}
	}
}
