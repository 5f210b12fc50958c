package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrInvalidListingID = errors.New("invalid listing ID format")

	ErrDatesTaken = errors.New("listing is already booked for the selected dates")

	ErrLockHeld = errors.New("booking lock is held by another submission")
)
