package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripfund/internal/domain"
	"tripfund/internal/service"
)

// CommitmentHandler handles HTTP requests for traveler commitments.
type CommitmentHandler struct {
	commitmentService *service.CommitmentService
}

// NewCommitmentHandler creates a new CommitmentHandler.
func NewCommitmentHandler(commitmentService *service.CommitmentService) *CommitmentHandler {
	return &CommitmentHandler{commitmentService: commitmentService}
}

// CommitRequest is the HTTP request body for committing to a trip.
type CommitRequest struct {
	TravelerName    string `json:"traveler_name"`
	CommittedAmount int64  `json:"committed_amount"`
	PaymentMethod   string `json:"payment_method"`
}

// CommitmentResponse is the HTTP response for commitment operations.
type CommitmentResponse struct {
	CommitmentID    string `json:"commitment_id"`
	TripID          string `json:"trip_id"`
	TravelerName    string `json:"traveler_name"`
	CommittedAmount int64  `json:"committed_amount"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
}

// Commit handles POST /v1/trips/:id/commitments
func (h *CommitmentHandler) Commit(c *gin.Context) {
	tripID := c.Param("id")

	var req CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	commitment, err := h.commitmentService.Commit(c.Request.Context(), service.CommitRequest{
		TripID:          tripID,
		TravelerName:    req.TravelerName,
		CommittedAmount: req.CommittedAmount,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	// Status reflects creation time; a sweep triggered by this commit may
	// already have resolved it. Callers re-query the trip status.
	respondJSON(c, http.StatusCreated, toCommitmentResponse(commitment))
}

// GetCommitment handles GET /v1/commitments/:id
func (h *CommitmentHandler) GetCommitment(c *gin.Context) {
	commitmentID := c.Param("id")

	commitment, err := h.commitmentService.GetCommitment(c.Request.Context(), commitmentID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toCommitmentResponse(commitment))
}

func toCommitmentResponse(commitment *domain.TravelerCommitment) CommitmentResponse {
	return CommitmentResponse{
		CommitmentID:    commitment.ID,
		TripID:          commitment.TripID,
		TravelerName:    commitment.TravelerName,
		CommittedAmount: commitment.CommittedAmount,
		Status:          string(commitment.Status),
		CreatedAt:       commitment.CreatedAt.Format(time.RFC3339),
	}
}
