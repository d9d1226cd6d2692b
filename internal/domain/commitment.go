package domain

import "time"

// CommitmentStatus represents the current status of a traveler commitment.
type CommitmentStatus string

const (
	CommitmentStatusPending  CommitmentStatus = "pending"
	CommitmentStatusCaptured CommitmentStatus = "captured"
	CommitmentStatusFailed   CommitmentStatus = "failed"
)

// TravelerCommitment represents one traveler's pledge toward a trip, backed
// by an authorized-but-not-captured payment. A commitment only exists if
// authorization succeeded, so AuthorizationID is always set.
type TravelerCommitment struct {
	ID              string
	TripID          string
	TravelerName    string
	CommittedAmount int64 // cents, immutable
	AuthorizationID string
	Status          CommitmentStatus
	CreatedAt       time.Time
}
