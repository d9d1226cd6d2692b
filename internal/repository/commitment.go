package repository

import (
	"context"

	"tripfund/internal/domain"
)

// CommitmentRepository defines the storage operations for traveler
// commitments. Commitments are append-only; only their status mutates.
type CommitmentRepository interface {
	// Create appends a new commitment to its trip's ledger. Returns
	// ErrNotFound if the trip is unknown.
	Create(ctx context.Context, commitment *domain.TravelerCommitment) error

	// GetByID retrieves a commitment by ID.
	GetByID(ctx context.Context, id string) (*domain.TravelerCommitment, error)

	// ListByTrip retrieves a trip's commitments in creation order. Returns
	// ErrNotFound if the trip is unknown.
	ListByTrip(ctx context.Context, tripID string) ([]*domain.TravelerCommitment, error)

	// UpdateStatus overwrites a commitment's status. No transition check is
	// enforced here; the capture sweep is the only caller and writes each
	// commitment's status at most once.
	UpdateStatus(ctx context.Context, id string, status domain.CommitmentStatus) error
}
