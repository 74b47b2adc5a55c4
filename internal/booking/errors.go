package booking

import (
	"errors"

	"github.com/iliyamo/hotel-reservation/internal/stay"
)

// Workflow errors.  Each one names a single failure kind; callers
// compare with errors.Is.
var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomUnavailable     = errors.New("room is not available")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrPersistenceFailed   = errors.New("persistence failed")
	ErrInvalidCustomer     = errors.New("customer name is required")
	ErrInvalidRoom         = errors.New("room type is required and rate must not be negative")
	ErrTotalTooLarge       = errors.New("stay total is too large")

	ErrInvertedRange = stay.ErrInvertedRange
	ErrPastCheckIn   = stay.ErrPastCheckIn
)
