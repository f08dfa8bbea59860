package queries

import (
	"context"

	"cinebook/internal/domain/user"
	"cinebook/internal/infra"
	"cinebook/internal/pkg/clock"
	"cinebook/internal/pkg/errs"
	"cinebook/internal/usecase/shared"

	"github.com/google/uuid"
)

// List pagination bounds; an out-of-range limit is clamped, never an
// error, so the stored LIMIT always fits int32.
const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

type BookingQueries interface {
	// GetByID returns the booking with resolved showtime, identity, seats
	// and payment. An expired temporary hold is lazily cancelled first, so
	// reads never observe a stale active hold.
	GetByID(ctx context.Context, actor Actor, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*BookingListItem, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBookingQueries(store BookingReadStore, uow shared.UnitOfWork, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{
		store: store,
		uow:   uow,
		clock: clk,
	}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor Actor, id uuid.UUID) (*BookingView, error) {
	if err := q.expireLazily(ctx, id); err != nil {
		return nil, err
	}

	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if actor.ID != view.UserID && actor.Role != user.RoleAdmin {
		return nil, errs.ErrNotBookingOwner
	}

	return view, nil
}

// expireLazily runs the same transactional re-check as the background
// reclaimer; a booking touched concurrently is simply skipped.
func (q *bookingQueriesImpl) expireLazily(ctx context.Context, id uuid.UUID) error {
	return q.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expired, err := tx.Bookings().CancelIfExpired(ctx, id, q.clock.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if expired {
			if err := tx.Claims().ReleaseAllForBooking(ctx, id); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*BookingListItem, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	items, err := q.store.FindByUserID(ctx, userID, int32(limit))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return items, nil
}
