package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripfund/internal/domain"
	"tripfund/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// CreateTripRequest is the HTTP request body for creating a trip.
type CreateTripRequest struct {
	ThresholdAmount int64 `json:"threshold_amount"`
}

// TripResponse is the HTTP response for trip operations.
type TripResponse struct {
	TripID          string `json:"trip_id"`
	ThresholdAmount int64  `json:"threshold_amount"`
	TotalCommitted  int64  `json:"total_committed"`
	Phase           string `json:"phase"`
	CreatedAt       string `json:"created_at"`
}

// TripStatusResponse is the HTTP response for the trip status query.
type TripStatusResponse struct {
	TripID          string               `json:"trip_id"`
	ThresholdAmount int64                `json:"threshold_amount"`
	TotalCommitted  int64                `json:"total_committed"`
	ThresholdMet    bool                 `json:"threshold_met"`
	Phase           string               `json:"phase"`
	Commitments     []CommitmentResponse `json:"commitments"`
}

// CreateTrip handles POST /v1/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), req.ThresholdAmount)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toTripResponse(trip))
}

// GetAll handles GET /v1/trips
func (h *TripHandler) GetAll(c *gin.Context) {
	trips, err := h.tripService.GetAllTrips(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]TripResponse, 0, len(trips))
	for _, trip := range trips {
		responses = append(responses, toTripResponse(trip))
	}

	respondJSON(c, http.StatusOK, responses)
}

// GetStatus handles GET /v1/trips/:id/status
func (h *TripHandler) GetStatus(c *gin.Context) {
	tripID := c.Param("id")

	status, err := h.tripService.GetStatus(c.Request.Context(), tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	commitments := make([]CommitmentResponse, 0, len(status.Commitments))
	for _, commitment := range status.Commitments {
		commitments = append(commitments, toCommitmentResponse(commitment))
	}

	respondJSON(c, http.StatusOK, TripStatusResponse{
		TripID:          status.Trip.ID,
		ThresholdAmount: status.Trip.ThresholdAmount,
		TotalCommitted:  status.Trip.TotalCommitted,
		ThresholdMet:    status.Trip.ThresholdMet(),
		Phase:           string(status.Trip.Phase),
		Commitments:     commitments,
	})
}

func toTripResponse(trip *domain.Trip) TripResponse {
	return TripResponse{
		TripID:          trip.ID,
		ThresholdAmount: trip.ThresholdAmount,
		TotalCommitted:  trip.TotalCommitted,
		Phase:           string(trip.Phase),
		CreatedAt:       trip.CreatedAt.Format(time.RFC3339),
	}
}
