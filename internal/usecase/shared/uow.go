package shared

import (
	"context"
	"time"

	"cinebook/internal/domain/booking"
	"cinebook/internal/domain/payment"
	"cinebook/internal/domain/user"
	"cinebook/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads outside transactions
	CommandReads() CommandReads
}

// Tx exposes the write repositories bound to one open transaction. Every
// multi-step mutation of bookings, claims and payments goes through here;
// the read-check-write sequence is atomic against all other paths.
type Tx interface {
	Bookings() BookingRepository
	Claims() SeatClaimRepository
	Payments() PaymentRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	ShowtimeByID(ctx context.Context, id uuid.UUID) (*ShowtimeSnapshot, error)
	// ExpiredHoldIDs lists candidate bookings for reclamation. The predicate
	// is re-checked per booking at commit time via CancelIfExpired.
	ExpiredHoldIDs(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
}

// Minimal snapshot for command read operations
type ShowtimeSnapshot struct {
	ID         uuid.UUID
	MovieTitle string
	ScreenName string
	StartsAt   time.Time
}

type UserSnapshot struct {
	ID      uuid.UUID
	Email   string
	Name    string
	Phone   string
	IsGuest bool
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// FindForUpdate locks the booking row for the duration of the transaction.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// Save persists status, payment status, ticket number and expiry.
	Save(ctx context.Context, b *booking.Booking) error
	// CancelIfExpired cancels the booking only if it is still a temporary
	// hold whose expiry has elapsed; reports whether a row changed.
	CancelIfExpired(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
}

// SeatClaimRepository is the inventory ledger: per-showtime seat claims
// referencing the booking that holds them. Reserve and Release are
// idempotent under retry; Reserve fails with a duplicate-key repository
// error when any requested seat is claimed by another booking.
type SeatClaimRepository interface {
	Reserve(ctx context.Context, showtimeID uuid.UUID, seatIDs []uuid.UUID, bookingID uuid.UUID, now time.Time) error
	Release(ctx context.Context, showtimeID uuid.UUID, seatIDs []uuid.UUID, bookingID uuid.UUID) error
	ReleaseAllForBooking(ctx context.Context, bookingID uuid.UUID) error
	// FindActiveConflicts returns requested seat ids already claimed by a
	// completed booking or an unexpired temporary one.
	FindActiveConflicts(ctx context.Context, showtimeID uuid.UUID, seatIDs []uuid.UUID, now time.Time) ([]uuid.UUID, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *payment.Payment) error
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*UserSnapshot, error)
	Create(ctx context.Context, u *user.User) error
	UpdatePhone(ctx context.Context, id uuid.UUID, phone string) error
}
