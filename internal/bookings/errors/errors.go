package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrAlreadyCancelled = errors.New("booking already cancelled")

	ErrNoSeats = errors.New("not enough seats available")
)
