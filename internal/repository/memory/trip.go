package memory

import (
	"context"

	"tripfund/internal/domain"
	"tripfund/internal/repository"
)

// TripRepository is the in-memory implementation of repository.TripRepository.
type TripRepository struct {
	store *Store
}

// NewTripRepository creates a new TripRepository backed by the given store.
func NewTripRepository(store *Store) *TripRepository {
	return &TripRepository{store: store}
}

// Create registers a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.trips[trip.ID] = &tripRecord{trip: *trip}
	r.store.order = append(r.store.order, trip.ID)
	return nil
}

// GetByID retrieves a copy of the trip.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	rec, ok := r.store.record(id)
	if !ok {
		return nil, repository.ErrNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	trip := rec.trip
	return &trip, nil
}

// GetAll retrieves all trips in creation order.
func (r *TripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	r.store.mu.RLock()
	records := make([]*tripRecord, 0, len(r.store.order))
	for _, id := range r.store.order {
		records = append(records, r.store.trips[id])
	}
	r.store.mu.RUnlock()

	trips := make([]*domain.Trip, 0, len(records))
	for _, rec := range records {
		rec.mu.Lock()
		trip := rec.trip
		rec.mu.Unlock()
		trips = append(trips, &trip)
	}
	return trips, nil
}

// AddCommitted atomically increments the running total and detects the
// threshold crossing. The crossing check and the COLLECTING -> CAPTURING
// transition happen inside the per-trip critical section, so no two calls
// can both observe crossedNow even when racing.
func (r *TripRepository) AddCommitted(ctx context.Context, id string, amount int64) (int64, bool, error) {
	rec, ok := r.store.record(id)
	if !ok {
		return 0, false, repository.ErrNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.trip.TotalCommitted += amount

	crossedNow := rec.trip.Phase == domain.TripPhaseCollecting &&
		rec.trip.TotalCommitted >= rec.trip.ThresholdAmount
	if crossedNow {
		rec.trip.Phase = domain.TripPhaseCapturing
	}

	return rec.trip.TotalCommitted, crossedNow, nil
}

// SetPhase updates the trip's lifecycle phase.
func (r *TripRepository) SetPhase(ctx context.Context, id string, phase domain.TripPhase) error {
	rec, ok := r.store.record(id)
	if !ok {
		return repository.ErrNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.trip.Phase = phase
	return nil
}
