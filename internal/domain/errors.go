package domain

import "errors"

// Sentinel errors returned by the persistence layer for conditions the
// engines turn into caller-facing failures. They are detected with
// errors.Is at the service boundary.
var (
	// ErrCapacityExceeded: the demand cell already holds workerQuantity
	// live bookings for the requested (week, year).
	ErrCapacityExceeded = errors.New("shift is fully booked")

	// ErrDuplicateBooking: the user already holds a live booking on the
	// demand cell for the requested (week, year).
	ErrDuplicateBooking = errors.New("user is already booked for this shift")

	// ErrSwapExists: a swap record already exists for the unordered pair of
	// bookings, in either direction.
	ErrSwapExists = errors.New("a swap already exists for these two shifts")

	// ErrSwapResolved: the swap left PENDING before this resolution; the
	// compare-and-swap on status matched no row.
	ErrSwapResolved = errors.New("swap has already been resolved")
)
