package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tripfund/internal/domain"
	"tripfund/internal/repository"
)

// TripService handles trip creation and status queries.
type TripService struct {
	tripRepo       repository.TripRepository
	commitmentRepo repository.CommitmentRepository
}

// NewTripService creates a new TripService.
func NewTripService(tripRepo repository.TripRepository, commitmentRepo repository.CommitmentRepository) *TripService {
	return &TripService{
		tripRepo:       tripRepo,
		commitmentRepo: commitmentRepo,
	}
}

// CreateTrip registers a new trip with the given capture threshold in cents.
func (s *TripService) CreateTrip(ctx context.Context, thresholdAmount int64) (*domain.Trip, error) {
	if thresholdAmount <= 0 {
		return nil, ErrInvalidThreshold
	}

	trip := &domain.Trip{
		ID:              uuid.New().String(),
		ThresholdAmount: thresholdAmount,
		TotalCommitted:  0,
		Phase:           domain.TripPhaseCollecting,
		CreatedAt:       time.Now(),
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	return trip, nil
}

// GetTrip retrieves a trip by ID.
func (s *TripService) GetTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	return s.tripRepo.GetByID(ctx, tripID)
}

// GetAllTrips retrieves all trips in creation order.
func (s *TripService) GetAllTrips(ctx context.Context) ([]*domain.Trip, error) {
	return s.tripRepo.GetAll(ctx)
}

// TripStatus is the full funding picture of one trip.
type TripStatus struct {
	Trip        *domain.Trip
	Commitments []*domain.TravelerCommitment
}

// GetStatus retrieves a trip together with its commitments in creation order.
func (s *TripService) GetStatus(ctx context.Context, tripID string) (*TripStatus, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	commitments, err := s.commitmentRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	return &TripStatus{
		Trip:        trip,
		Commitments: commitments,
	}, nil
}
