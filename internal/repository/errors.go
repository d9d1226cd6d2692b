package repository

import "errors"

var (
	// ErrNotFound is returned when a trip or commitment does not exist.
	ErrNotFound = errors.New("entity not found")
)
