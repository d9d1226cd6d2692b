package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripfund/internal/repository"
	"tripfund/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidThreshold),
		errors.Is(err, service.ErrInvalidTripID),
		errors.Is(err, service.ErrInvalidCommitmentAmount),
		errors.Is(err, service.ErrInvalidTravelerName),
		errors.Is(err, service.ErrInvalidPaymentMethod):
		return http.StatusBadRequest

	// The authority declined the card.
	case errors.Is(err, service.ErrAuthorizationFailed):
		return http.StatusPaymentRequired

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
