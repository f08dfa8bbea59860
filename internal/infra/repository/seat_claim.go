package repository

import (
	"context"
	"time"

	"cinebook/internal/infra"
	"cinebook/internal/infra/db"

	"github.com/google/uuid"
)

// SeatClaimRepository is the inventory ledger over the seat_claims table.
// UNIQUE(showtime_id, seat_id) is the correctness backstop: at most one
// claim row can exist per seat, so the winner of two concurrent reserves
// is decided by the storage layer, not by process-local locking. Claims
// from bookings that are no longer active are purged in-transaction
// before inserting, which keeps the unique slot available to new holds
// even when the reclaimer has not swept yet.
type SeatClaimRepository struct {
	db db.DBTX
}

func NewSeatClaimRepository(dbtx db.DBTX) *SeatClaimRepository {
	return &SeatClaimRepository{db: dbtx}
}

func (r *SeatClaimRepository) Reserve(ctx context.Context, showtimeID uuid.UUID, seatIDs []uuid.UUID, bookingID uuid.UUID, now time.Time) error {
	if err := r.purgeInactive(ctx, showtimeID, seatIDs, now); err != nil {
		return err
	}

	const insertQuery = `
		INSERT INTO seat_claims (showtime_id, seat_id, booking_id, created_at)
		SELECT $1, unnest($2::uuid[]), $3, now()
		ON CONFLICT (showtime_id, seat_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, insertQuery, showtimeID, seatIDs, bookingID); err != nil {
		return infra.WrapRepoErr("failed to reserve seats", err)
	}

	// A concurrent reserve may have taken some seats between the purge and
	// the insert; verify every requested seat is now claimed by us. Counting
	// instead of checking rows-affected keeps Reserve idempotent under retry.
	const verifyQuery = `
		SELECT count(*)
		FROM seat_claims
		WHERE showtime_id = $1 AND seat_id = ANY($2::uuid[]) AND booking_id = $3
	`
	var owned int
	if err := r.db.QueryRow(ctx, verifyQuery, showtimeID, seatIDs, bookingID).Scan(&owned); err != nil {
		return infra.WrapRepoErr("failed to verify seat claims", err)
	}
	if owned != len(seatIDs) {
		return infra.WrapRepoErr("seat already claimed by another booking", nil, infra.KindDuplicateKey)
	}

	return nil
}

func (r *SeatClaimRepository) purgeInactive(ctx context.Context, showtimeID uuid.UUID, seatIDs []uuid.UUID, now time.Time) error {
	const query = `
		DELETE FROM seat_claims sc
		USING bookings b
		WHERE sc.booking_id = b.id
		  AND sc.showtime_id = $1
		  AND sc.seat_id = ANY($2::uuid[])
		  AND NOT (b.status = 'completed'
		           OR (b.status = 'temporary' AND b.expires_at > $3))
	`

	if _, err := r.db.Exec(ctx, query, showtimeID, seatIDs, now); err != nil {
		return infra.WrapRepoErr("failed to purge inactive claims", err)
	}

	return nil
}

func (r *SeatClaimRepository) Release(ctx context.Context, showtimeID uuid.UUID, seatIDs []uuid.UUID, bookingID uuid.UUID) error {
	const query = `
		DELETE FROM seat_claims
		WHERE showtime_id = $1 AND seat_id = ANY($2::uuid[]) AND booking_id = $3
	`

	_, err := r.db.Exec(ctx, query, showtimeID, seatIDs, bookingID)
	if err != nil {
		return infra.WrapRepoErr("failed to release seats", err)
	}

	return nil
}

func (r *SeatClaimRepository) ReleaseAllForBooking(ctx context.Context, bookingID uuid.UUID) error {
	const query = `DELETE FROM seat_claims WHERE booking_id = $1`

	_, err := r.db.Exec(ctx, query, bookingID)
	if err != nil {
		return infra.WrapRepoErr("failed to release booking seats", err)
	}

	return nil
}

func (r *SeatClaimRepository) FindActiveConflicts(ctx context.Context, showtimeID uuid.UUID, seatIDs []uuid.UUID, now time.Time) ([]uuid.UUID, error) {
	const query = `
		SELECT DISTINCT sc.seat_id
		FROM seat_claims sc
		JOIN bookings b ON b.id = sc.booking_id
		WHERE sc.showtime_id = $1
		  AND sc.seat_id = ANY($2::uuid[])
		  AND (b.status = 'completed'
		       OR (b.status = 'temporary' AND b.expires_at > $3))
	`

	rows, err := r.db.Query(ctx, query, showtimeID, seatIDs, now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query active claims", err)
	}
	defer rows.Close()

	var conflicts []uuid.UUID
	for rows.Next() {
		var seatID uuid.UUID
		if err := rows.Scan(&seatID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan active claim", err)
		}
		conflicts = append(conflicts, seatID)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read active claims", err)
	}

	return conflicts, nil
}
