package service

import "errors"

var (
	// ErrInvalidThreshold is returned when a trip's threshold amount is not positive.
	ErrInvalidThreshold = errors.New("threshold amount must be positive")

	// ErrInvalidTripID is returned when trip ID is empty.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrInvalidCommitmentAmount is returned when a commitment amount is not positive.
	ErrInvalidCommitmentAmount = errors.New("commitment amount must be positive")

	// ErrInvalidTravelerName is returned when traveler name is empty.
	ErrInvalidTravelerName = errors.New("invalid traveler name")

	// ErrInvalidPaymentMethod is returned when the payment method token is empty.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrAuthorizationFailed is returned when the payment authority refuses
	// to authorize a commitment. The commit leaves no trace in the ledger.
	ErrAuthorizationFailed = errors.New("payment authorization failed")
)
