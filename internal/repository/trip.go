package repository

import (
	"context"

	"tripfund/internal/domain"
)

// TripRepository defines the storage operations for trips.
type TripRepository interface {
	// Create registers a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// GetAll retrieves all trips in creation order.
	GetAll(ctx context.Context) ([]*domain.Trip, error)

	// AddCommitted atomically increments the trip's running total by amount
	// and reports whether this call moved the trip from below its threshold
	// to at-or-above it. crossedNow is true for exactly one call per trip;
	// when it is, the trip has already transitioned to the CAPTURING phase
	// inside the same critical section.
	AddCommitted(ctx context.Context, id string, amount int64) (newTotal int64, crossedNow bool, err error)

	// SetPhase updates the trip's lifecycle phase.
	SetPhase(ctx context.Context, id string, phase domain.TripPhase) error
}
