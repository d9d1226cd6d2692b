package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tripfund/internal/domain"
	"tripfund/internal/payment"
	"tripfund/internal/repository"
)

// CommitmentService orchestrates traveler commitments: it authorizes the
// payment, records the commitment, maintains the trip's running total, and
// runs the capture sweep on the one commit that crosses the threshold.
type CommitmentService struct {
	tripRepo            repository.TripRepository
	commitmentRepo      repository.CommitmentRepository
	authority           payment.Authority
	notificationService *NotificationService
}

// NewCommitmentService creates a new CommitmentService.
func NewCommitmentService(
	tripRepo repository.TripRepository,
	commitmentRepo repository.CommitmentRepository,
	authority payment.Authority,
	notificationService *NotificationService,
) *CommitmentService {
	return &CommitmentService{
		tripRepo:            tripRepo,
		commitmentRepo:      commitmentRepo,
		authority:           authority,
		notificationService: notificationService,
	}
}

// CommitRequest contains the parameters for committing to a trip.
type CommitRequest struct {
	TripID          string
	TravelerName    string
	CommittedAmount int64 // cents
	PaymentMethod   string
}

// Commit records a traveler's pledge toward a trip.
//
// The payment is authorized before any trip state mutates: if the authority
// declines, the commit leaves no trace. On success the commitment is
// appended to the ledger and then the running total is incremented, so the
// commitment that triggers the sweep is always visible to it. If this call
// is the one that crosses the threshold, the capture sweep runs
// synchronously before returning. The returned commitment reflects its
// status at creation time (pending); callers re-query for post-sweep status.
func (s *CommitmentService) Commit(ctx context.Context, req CommitRequest) (*domain.TravelerCommitment, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}
	if strings.TrimSpace(req.TravelerName) == "" {
		return nil, ErrInvalidTravelerName
	}
	if req.CommittedAmount <= 0 {
		return nil, ErrInvalidCommitmentAmount
	}
	if req.PaymentMethod == "" {
		return nil, ErrInvalidPaymentMethod
	}

	// Reject unknown trips before touching the traveler's card.
	if _, err := s.tripRepo.GetByID(ctx, req.TripID); err != nil {
		return nil, err
	}

	// Authorize outside any trip lock; this is network I/O.
	authorizationID, err := s.authority.Authorize(ctx, req.CommittedAmount, req.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthorizationFailed, err)
	}

	commitment := &domain.TravelerCommitment{
		ID:              uuid.New().String(),
		TripID:          req.TripID,
		TravelerName:    req.TravelerName,
		CommittedAmount: req.CommittedAmount,
		AuthorizationID: authorizationID,
		Status:          domain.CommitmentStatusPending,
		CreatedAt:       time.Now(),
	}

	// Append before adding to the total so the sweep always sees the
	// commitment that triggered it.
	if err := s.commitmentRepo.Create(ctx, commitment); err != nil {
		return nil, err
	}

	newTotal, crossedNow, err := s.tripRepo.AddCommitted(ctx, req.TripID, req.CommittedAmount)
	if err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyCommitmentCreated(ctx, commitment, newTotal)
	}

	if crossedNow {
		if s.notificationService != nil {
			_ = s.notificationService.NotifyThresholdReached(ctx, req.TripID, newTotal)
		}
		s.sweep(ctx, req.TripID)
	}

	return commitment, nil
}

// GetCommitment retrieves a commitment by ID.
func (s *CommitmentService) GetCommitment(ctx context.Context, commitmentID string) (*domain.TravelerCommitment, error) {
	if commitmentID == "" {
		return nil, repository.ErrNotFound
	}

	return s.commitmentRepo.GetByID(ctx, commitmentID)
}

// sweep captures every pending commitment under the trip. It runs at most
// once per trip: only the single AddCommitted call that observed crossedNow
// reaches here, and the trip is already in the CAPTURING phase.
//
// Captures fan out concurrently, one goroutine per commitment. Outcomes are
// independent: a failed capture marks that commitment failed and leaves its
// siblings alone. The trip settles regardless of how many captures failed.
func (s *CommitmentService) sweep(ctx context.Context, tripID string) {
	commitments, err := s.commitmentRepo.ListByTrip(ctx, tripID)
	if err != nil {
		log.Printf("capture sweep: listing commitments for trip %s: %v", tripID, err)
		return
	}

	var wg sync.WaitGroup
	for _, c := range commitments {
		if c.Status != domain.CommitmentStatusPending {
			continue
		}

		wg.Add(1)
		go func(c *domain.TravelerCommitment) {
			defer wg.Done()
			s.capture(ctx, c)
		}(c)
	}
	wg.Wait()

	if err := s.tripRepo.SetPhase(ctx, tripID, domain.TripPhaseSettled); err != nil {
		log.Printf("capture sweep: settling trip %s: %v", tripID, err)
	}
}

// capture resolves a single commitment. Each commitment's status is written
// exactly once, by this goroutine, so concurrent captures never contend.
func (s *CommitmentService) capture(ctx context.Context, c *domain.TravelerCommitment) {
	if err := s.authority.Capture(ctx, c.AuthorizationID); err != nil {
		log.Printf("capture failed for commitment %s (traveler %s): %v", c.ID, c.TravelerName, err)
		if updateErr := s.commitmentRepo.UpdateStatus(ctx, c.ID, domain.CommitmentStatusFailed); updateErr != nil {
			log.Printf("marking commitment %s failed: %v", c.ID, updateErr)
		}
		if s.notificationService != nil {
			_ = s.notificationService.NotifyCaptureFailed(ctx, c)
		}
		return
	}

	if err := s.commitmentRepo.UpdateStatus(ctx, c.ID, domain.CommitmentStatusCaptured); err != nil {
		log.Printf("marking commitment %s captured: %v", c.ID, err)
		return
	}
	if s.notificationService != nil {
		_ = s.notificationService.NotifyCaptureSucceeded(ctx, c)
	}
}
