package repository

import (
	"context"
	"time"

	"cinebook/internal/domain/booking"
	"cinebook/internal/infra"
	"cinebook/internal/infra/db"

	"github.com/google/uuid"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	const query = `
		INSERT INTO bookings (
			id, user_id, showtime_id, total_amount_cents,
			status, payment_status, expires_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
	`

	_, err := r.db.Exec(ctx, query,
		b.ID(),
		b.UserID(),
		b.ShowtimeID(),
		b.TotalAmount().Cents(),
		b.Status().String(),
		b.PaymentStatus().String(),
		b.ExpiresAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}

	const seatQuery = `
		INSERT INTO booking_seats (booking_id, seat_id, seat_row, seat_number, seat_type, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i, seat := range b.Seats() {
		_, err := r.db.Exec(ctx, seatQuery,
			b.ID(), seat.SeatID(), seat.Row(), seat.Number(), seat.SeatType().String(), i,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to create booking seat", err)
		}
	}

	return nil
}

func (r *BookingRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	const query = `
		SELECT id, user_id, showtime_id, total_amount_cents,
		       status, payment_status, ticket_number, expires_at,
		       created_at, updated_at
		FROM bookings
		WHERE id = $1
		FOR UPDATE
	`

	var (
		bookingID, userID, showtimeID uuid.UUID
		totalCents                    int64
		status, paymentStatus         string
		ticketNumber                  *string
		expiresAt                     *time.Time
		createdAt, updatedAt          time.Time
	)

	err := r.db.QueryRow(ctx, query, id).Scan(
		&bookingID, &userID, &showtimeID, &totalCents,
		&status, &paymentStatus, &ticketNumber, &expiresAt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking for update", err)
	}

	seats, err := r.findSeats(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	amount, err := booking.NewMoney(totalCents)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt booking amount", err)
	}

	var ticket *booking.TicketNumber
	if ticketNumber != nil {
		t, err := booking.ParseTicketNumber(*ticketNumber)
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt ticket number", err)
		}
		ticket = &t
	}

	return booking.Reconstruct(
		bookingID, userID, showtimeID,
		seats, amount,
		booking.Status(status), booking.PaymentStatus(paymentStatus),
		ticket, expiresAt, createdAt, updatedAt,
	), nil
}

func (r *BookingRepository) findSeats(ctx context.Context, bookingID uuid.UUID) ([]booking.SeatSelection, error) {
	const query = `
		SELECT seat_id, seat_row, seat_number, seat_type
		FROM booking_seats
		WHERE booking_id = $1
		ORDER BY position
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking seats", err)
	}
	defer rows.Close()

	var seats []booking.SeatSelection
	for rows.Next() {
		var (
			seatID   uuid.UUID
			row      string
			number   int
			seatType string
		)
		if err := rows.Scan(&seatID, &row, &number, &seatType); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking seat", err)
		}
		seat, err := booking.NewSeatSelection(seatID, row, number, booking.SeatType(seatType))
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt booking seat", err)
		}
		seats = append(seats, seat)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking seats", err)
	}

	return seats, nil
}

func (r *BookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	const query = `
		UPDATE bookings
		SET status = $2, payment_status = $3, ticket_number = $4,
		    expires_at = $5, updated_at = now()
		WHERE id = $1
	`

	var ticketNumber *string
	if t := b.TicketNumber(); t != nil {
		s := t.String()
		ticketNumber = &s
	}

	_, err := r.db.Exec(ctx, query,
		b.ID(),
		b.Status().String(),
		b.PaymentStatus().String(),
		ticketNumber,
		b.ExpiresAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save booking", err)
	}

	return nil
}

// CancelIfExpired re-checks the reclamation predicate inside the caller's
// transaction, so a booking finalized or cancelled concurrently is skipped.
func (r *BookingRepository) CancelIfExpired(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	const query = `
		UPDATE bookings
		SET status = 'cancelled', payment_status = 'failed',
		    expires_at = NULL, updated_at = now()
		WHERE id = $1 AND status = 'temporary' AND expires_at <= $2
	`

	tag, err := r.db.Exec(ctx, query, id, now)
	if err != nil {
		return false, infra.WrapRepoErr("failed to cancel expired booking", err)
	}

	return tag.RowsAffected() > 0, nil
}
