package memory

import (
	"context"

	"tripfund/internal/domain"
	"tripfund/internal/repository"
)

// CommitmentRepository is the in-memory implementation of
// repository.CommitmentRepository. Commitments live inside their trip's
// record; every access goes through the owning trip's mutex.
type CommitmentRepository struct {
	store *Store
}

// NewCommitmentRepository creates a new CommitmentRepository backed by the
// given store.
func NewCommitmentRepository(store *Store) *CommitmentRepository {
	return &CommitmentRepository{store: store}
}

// Create appends a commitment to its trip's ledger.
func (r *CommitmentRepository) Create(ctx context.Context, commitment *domain.TravelerCommitment) error {
	rec, ok := r.store.record(commitment.TripID)
	if !ok {
		return repository.ErrNotFound
	}

	r.store.mu.Lock()
	r.store.commitmentTr[commitment.ID] = commitment.TripID
	r.store.mu.Unlock()

	c := *commitment
	rec.mu.Lock()
	rec.ledger = append(rec.ledger, &c)
	rec.mu.Unlock()
	return nil
}

// GetByID retrieves a copy of a commitment.
func (r *CommitmentRepository) GetByID(ctx context.Context, id string) (*domain.TravelerCommitment, error) {
	r.store.mu.RLock()
	tripID, ok := r.store.commitmentTr[id]
	r.store.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}

	rec, ok := r.store.record(tripID)
	if !ok {
		return nil, repository.ErrNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, c := range rec.ledger {
		if c.ID == id {
			out := *c
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ListByTrip retrieves copies of a trip's commitments in creation order.
func (r *CommitmentRepository) ListByTrip(ctx context.Context, tripID string) ([]*domain.TravelerCommitment, error) {
	rec, ok := r.store.record(tripID)
	if !ok {
		return nil, repository.ErrNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	out := make([]*domain.TravelerCommitment, 0, len(rec.ledger))
	for _, c := range rec.ledger {
		copy := *c
		out = append(out, &copy)
	}
	return out, nil
}

// UpdateStatus overwrites a commitment's status.
func (r *CommitmentRepository) UpdateStatus(ctx context.Context, id string, status domain.CommitmentStatus) error {
	r.store.mu.RLock()
	tripID, ok := r.store.commitmentTr[id]
	r.store.mu.RUnlock()
	if !ok {
		return repository.ErrNotFound
	}

	rec, ok := r.store.record(tripID)
	if !ok {
		return repository.ErrNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, c := range rec.ledger {
		if c.ID == id {
			c.Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}
