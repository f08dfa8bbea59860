package readstore

import (
	"context"
	"time"

	"cinebook/internal/infra"
	"cinebook/internal/infra/db"
	"cinebook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	const query = `
		SELECT b.id, b.user_id, u.name, u.email,
		       b.showtime_id, s.movie_title, s.screen_name, s.starts_at,
		       b.total_amount_cents, b.status, b.payment_status,
		       b.ticket_number, b.expires_at, b.created_at, b.updated_at
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		JOIN showtimes s ON s.id = b.showtime_id
		WHERE b.id = $1
	`

	var view queries.BookingView
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.UserID, &view.UserName, &view.UserEmail,
		&view.ShowtimeID, &view.MovieTitle, &view.ScreenName, &view.StartsAt,
		&view.TotalAmountCents, &view.Status, &view.PaymentStatus,
		&view.TicketNumber, &view.ExpiresAt, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	seats, err := r.findSeats(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Seats = seats

	pay, err := r.findPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Payment = pay

	return &view, nil
}

func (r *BookingReadStore) findSeats(ctx context.Context, bookingID uuid.UUID) ([]queries.SeatView, error) {
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

	var seats []queries.SeatView
	for rows.Next() {
		var seat queries.SeatView
		if err := rows.Scan(&seat.SeatID, &seat.Row, &seat.Number, &seat.SeatType); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking seat", err)
		}
		seats = append(seats, seat)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking seats", err)
	}

	return seats, nil
}

func (r *BookingReadStore) findPayment(ctx context.Context, bookingID uuid.UUID) (*queries.PaymentView, error) {
	const query = `
		SELECT id, amount_cents, last_four, expiry_month, expiry_year,
		       status, transaction_id, created_at
		FROM payments
		WHERE booking_id = $1
	`

	var pay queries.PaymentView
	err := r.db.QueryRow(ctx, query, bookingID).Scan(
		&pay.ID, &pay.AmountCents, &pay.LastFour, &pay.ExpiryMonth, &pay.ExpiryYear,
		&pay.Status, &pay.TransactionID, &pay.CreatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find booking payment", err)
	}

	return &pay, nil
}

func (r *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	const query = `
		SELECT b.id, s.movie_title, s.screen_name, s.starts_at,
		       b.status, b.total_amount_cents,
		       (SELECT count(*) FROM booking_seats bs WHERE bs.booking_id = b.id),
		       b.created_at
		FROM bookings b
		JOIN showtimes s ON s.id = b.showtime_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by user", err)
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(
			&item.ID, &item.MovieTitle, &item.ScreenName, &item.StartsAt,
			&item.Status, &item.TotalAmountCents, &item.SeatCount, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking list", err)
	}

	return items, nil
}

// FindExpiredHoldIDs lists temporary bookings whose expiry has elapsed.
// Candidates only: the reclaimer re-checks the predicate transactionally.
func (r *BookingReadStore) FindExpiredHoldIDs(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	const query = `
		SELECT id
		FROM bookings
		WHERE status = 'temporary' AND expires_at <= $1
		ORDER BY expires_at
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find expired holds", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan expired hold", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read expired holds", err)
	}

	return ids, nil
}
