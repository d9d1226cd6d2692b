package domain

import "time"

// TripPhase represents where a trip is in its funding lifecycle.
type TripPhase string

const (
	// TripPhaseCollecting means the trip is still gathering commitments.
	TripPhaseCollecting TripPhase = "COLLECTING"
	// TripPhaseCapturing means the threshold was just crossed and the
	// capture sweep is in progress.
	TripPhaseCapturing TripPhase = "CAPTURING"
	// TripPhaseSettled means the capture sweep has completed. Terminal.
	TripPhaseSettled TripPhase = "SETTLED"
)

// Trip represents a shared funding target. Amounts are integer cents;
// no floating-point money anywhere in the system.
type Trip struct {
	ID              string
	ThresholdAmount int64 // cents, immutable after creation
	TotalCommitted  int64 // cents, monotonically non-decreasing
	Phase           TripPhase
	CreatedAt       time.Time
}

// ThresholdMet reports whether the running total has reached the threshold.
// Derived, never stored.
func (t *Trip) ThresholdMet() bool {
	return t.TotalCommitted >= t.ThresholdAmount
}
