package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Showtime errors
	ErrShowtimeNotFound = errors.New("showtime not found")

	// Booking errors
	ErrBookingNotFound      = errors.New("booking not found")
	ErrSeatConflict         = errors.New("seat conflict")
	ErrBookingExpired       = errors.New("booking expired")
	ErrInvalidBookingStatus = errors.New("invalid booking status")
	ErrNotBookingOwner      = errors.New("not booking owner")

	// Payment errors
	ErrPaymentFailed     = errors.New("payment failed")
	ErrInvalidCardDetail = errors.New("invalid card details")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
