package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Slot errors
	ErrSlotNotFound    = errors.New("slot not found")
	ErrSlotHasBookings = errors.New("slot has active bookings")
	ErrSlotInPast      = errors.New("slot date is in the past")

	// Capacity errors
	ErrSlotFull            = errors.New("slot is fully booked")
	ErrServiceTypeMismatch = errors.New("service type not accepted by slot")

	// Booking errors
	ErrBookingNotFound = errors.New("booking not found")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
