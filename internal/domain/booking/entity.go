package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoSeatsSelected   = errors.New("at least one seat must be selected")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

// Booking is one reservation attempt against a showtime. It owns its
// status lifecycle exclusively: temporary is the only non-terminal state,
// and completed/cancelled never change again.
type Booking struct {
	id            uuid.UUID
	userID        uuid.UUID
	showtimeID    uuid.UUID
	seats         []SeatSelection
	totalAmount   Money
	status        Status
	paymentStatus PaymentStatus
	ticketNumber  *TicketNumber
	expiresAt     *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

// NewHold creates a temporary booking expiring at now + holdFor.
func NewHold(userID, showtimeID uuid.UUID, seats []SeatSelection, totalAmount Money, now time.Time, holdFor time.Duration) (*Booking, error) {
	if len(seats) == 0 {
		return nil, ErrNoSeatsSelected
	}
	expiresAt := now.Add(holdFor)
	return &Booking{
		id:            uuid.New(),
		userID:        userID,
		showtimeID:    showtimeID,
		seats:         seats,
		totalAmount:   totalAmount,
		status:        StatusTemporary,
		paymentStatus: PaymentPending,
		expiresAt:     &expiresAt,
	}, nil
}

func Reconstruct(
	id, userID, showtimeID uuid.UUID,
	seats []SeatSelection,
	totalAmount Money,
	status Status,
	paymentStatus PaymentStatus,
	ticketNumber *TicketNumber,
	expiresAt *time.Time,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		userID:        userID,
		showtimeID:    showtimeID,
		seats:         seats,
		totalAmount:   totalAmount,
		status:        status,
		paymentStatus: paymentStatus,
		ticketNumber:  ticketNumber,
		expiresAt:     expiresAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (b *Booking) IsTemporary() bool {
	return b.status == StatusTemporary
}

// IsExpired reports whether a temporary hold's expiry has elapsed.
// Terminal bookings never expire.
func (b *Booking) IsExpired(now time.Time) bool {
	if b.status != StatusTemporary || b.expiresAt == nil {
		return false
	}
	return !b.expiresAt.After(now)
}

// HasActiveClaim reports whether this booking's seat claims count against
// the showtime inventory: completed, or temporary and unexpired.
func (b *Booking) HasActiveClaim(now time.Time) bool {
	if b.status == StatusCompleted {
		return true
	}
	return b.status == StatusTemporary && !b.IsExpired(now)
}

// Complete finalizes payment: only an unexpired temporary hold may complete.
func (b *Booking) Complete(ticket TicketNumber, now time.Time) error {
	if b.status != StatusTemporary {
		return ErrInvalidTransition
	}
	if b.IsExpired(now) {
		return ErrInvalidTransition
	}
	b.status = StatusCompleted
	b.paymentStatus = PaymentCompleted
	b.ticketNumber = &ticket
	b.expiresAt = nil
	return nil
}

// Cancel moves a temporary hold to cancelled and fails its payment.
// Used by explicit cancellation, lazy expiry, and the reclaimer alike.
func (b *Booking) Cancel() error {
	if b.status != StatusTemporary {
		return ErrInvalidTransition
	}
	b.status = StatusCancelled
	b.paymentStatus = PaymentFailed
	b.expiresAt = nil
	return nil
}

// MarkPaymentFailed records a failed payment attempt without touching the
// hold itself; the booking stays temporary and remains reclaimable.
func (b *Booking) MarkPaymentFailed() error {
	if b.status != StatusTemporary {
		return ErrInvalidTransition
	}
	b.paymentStatus = PaymentFailed
	return nil
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) UserID() uuid.UUID            { return b.userID }
func (b *Booking) ShowtimeID() uuid.UUID        { return b.showtimeID }
func (b *Booking) Seats() []SeatSelection       { return b.seats }
func (b *Booking) TotalAmount() Money           { return b.totalAmount }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) TicketNumber() *TicketNumber  { return b.ticketNumber }
func (b *Booking) ExpiresAt() *time.Time        { return b.expiresAt }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }
