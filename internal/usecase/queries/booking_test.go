//go:build unit

package queries_test

import (
	"context"
	"math"
	"testing"
	"time"

	"cinebook/internal/domain/booking"
	"cinebook/internal/domain/user"
	"cinebook/internal/infra"
	"cinebook/internal/infra/db"
	"cinebook/internal/pkg/clock"
	"cinebook/internal/pkg/errs"
	"cinebook/internal/usecase/queries"
	"cinebook/internal/usecase/shared"
	"cinebook/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The read path only needs the lazy-expiry slice of the unit of work:
// CancelIfExpired plus claim release.

type readState struct {
	view       *queries.BookingView
	expiresAt  time.Time
	isTerminal bool
	cancelled  int
	released   int
	items      []*queries.BookingListItem
	lastLimit  int32
}

type readUoW struct {
	state *readState
}

func (u *readUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &readTx{state: u.state})
}

func (u *readUoW) WithDB(_ context.Context, _ func(ctx context.Context, db db.DBTX) error) error {
	panic("not used in query tests")
}

func (u *readUoW) CommandReads() shared.CommandReads { panic("not used in query tests") }

type readTx struct {
	state *readState
}

func (t *readTx) Bookings() shared.BookingRepository { return &readBookingRepo{state: t.state} }
func (t *readTx) Claims() shared.SeatClaimRepository { return &readClaimRepo{state: t.state} }
func (t *readTx) Payments() shared.PaymentRepository { panic("not used") }
func (t *readTx) Users() shared.UserRepository       { panic("not used") }
func (t *readTx) Reads() shared.CommandReads         { panic("not used") }
func (t *readTx) DB() db.DBTX                        { return nil }

type readBookingRepo struct {
	state *readState
}

func (r *readBookingRepo) Create(_ context.Context, _ *booking.Booking) error { panic("not used") }

func (r *readBookingRepo) FindForUpdate(_ context.Context, _ uuid.UUID) (*booking.Booking, error) {
	panic("not used")
}

func (r *readBookingRepo) Save(_ context.Context, _ *booking.Booking) error { panic("not used") }

func (r *readBookingRepo) CancelIfExpired(_ context.Context, _ uuid.UUID, now time.Time) (bool, error) {
	if r.state.isTerminal || r.state.expiresAt.After(now) {
		return false, nil
	}
	r.state.cancelled++
	r.state.view.Status = "cancelled"
	r.state.view.PaymentStatus = "failed"
	r.state.view.ExpiresAt = nil
	return true, nil
}

type readClaimRepo struct {
	state *readState
}

func (r *readClaimRepo) Reserve(_ context.Context, _ uuid.UUID, _ []uuid.UUID, _ uuid.UUID, _ time.Time) error {
	panic("not used")
}

func (r *readClaimRepo) Release(_ context.Context, _ uuid.UUID, _ []uuid.UUID, _ uuid.UUID) error {
	panic("not used")
}

func (r *readClaimRepo) ReleaseAllForBooking(_ context.Context, _ uuid.UUID) error {
	r.state.released++
	return nil
}

func (r *readClaimRepo) FindActiveConflicts(_ context.Context, _ uuid.UUID, _ []uuid.UUID, _ time.Time) ([]uuid.UUID, error) {
	panic("not used")
}

type readStore struct {
	state    *readState
	notFound bool
}

func (s *readStore) FindByID(_ context.Context, _ uuid.UUID) (*queries.BookingView, error) {
	if s.notFound {
		return nil, infra.WrapRepoErr("booking not found", pgx.ErrNoRows)
	}
	return s.state.view, nil
}

func (s *readStore) FindByUserID(_ context.Context, _ uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	s.state.lastLimit = limit
	return s.state.items, nil
}

func newQueryFixture(t *testing.T, notFound bool) (*readState, *clock.MockClock, queries.BookingQueries) {
	t.Helper()

	t0 := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	b := builder.NewBookingBuilder()
	view := b.BuildView()

	state := &readState{
		view:      view,
		expiresAt: *view.ExpiresAt,
	}
	clk := clock.NewMockClock(t0)
	q := queries.NewBookingQueries(&readStore{state: state, notFound: notFound}, &readUoW{state: state}, clk)
	return state, clk, q
}

func TestGetByID(t *testing.T) {
	t.Run("owner reads an active hold", func(t *testing.T) {
		state, _, q := newQueryFixture(t, false)
		actor := queries.Actor{ID: state.view.UserID, Role: user.RoleCustomer}

		view, err := q.GetByID(context.Background(), actor, state.view.ID)
		require.NoError(t, err)
		if diff := cmp.Diff(state.view, view); diff != "" {
			t.Errorf("BookingView mismatch (-want +got):\n%s", diff)
		}
		assert.Zero(t, state.cancelled, "unexpired hold is not touched")
	})

	t.Run("expired hold is cancelled before the read", func(t *testing.T) {
		state, clk, q := newQueryFixture(t, false)
		clk.Add(11 * time.Minute)
		actor := queries.Actor{ID: state.view.UserID, Role: user.RoleCustomer}

		view, err := q.GetByID(context.Background(), actor, state.view.ID)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", view.Status)
		assert.Equal(t, "failed", view.PaymentStatus)
		assert.Nil(t, view.ExpiresAt)
		assert.Equal(t, 1, state.released)
	})

	t.Run("admin reads someone else's booking", func(t *testing.T) {
		state, _, q := newQueryFixture(t, false)
		actor := queries.Actor{ID: uuid.New(), Role: user.RoleAdmin}

		_, err := q.GetByID(context.Background(), actor, state.view.ID)
		require.NoError(t, err)
	})

	t.Run("other customers are rejected", func(t *testing.T) {
		state, _, q := newQueryFixture(t, false)
		actor := queries.Actor{ID: uuid.New(), Role: user.RoleCustomer}

		_, err := q.GetByID(context.Background(), actor, state.view.ID)
		assert.ErrorIs(t, err, errs.ErrNotBookingOwner)
	})

	t.Run("unknown booking", func(t *testing.T) {
		state, _, q := newQueryFixture(t, true)
		actor := queries.Actor{ID: state.view.UserID, Role: user.RoleCustomer}

		_, err := q.GetByID(context.Background(), actor, uuid.New())
		assert.ErrorIs(t, err, errs.ErrBookingNotFound)
	})
}

func TestListByUser(t *testing.T) {
	t.Run("applies the default limit", func(t *testing.T) {
		state, _, q := newQueryFixture(t, false)
		state.items = []*queries.BookingListItem{{ID: uuid.New()}}

		items, err := q.ListByUser(context.Background(), uuid.New(), 0)
		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, int32(50), state.lastLimit)
	})

	t.Run("passes an explicit limit", func(t *testing.T) {
		state, _, q := newQueryFixture(t, false)

		_, err := q.ListByUser(context.Background(), uuid.New(), 5)
		require.NoError(t, err)
		assert.Equal(t, int32(5), state.lastLimit)
	})

	t.Run("clamps an oversized limit", func(t *testing.T) {
		state, _, q := newQueryFixture(t, false)

		// Larger than int32; an unclamped conversion would go negative.
		_, err := q.ListByUser(context.Background(), uuid.New(), math.MaxInt32+1)
		require.NoError(t, err)
		assert.Equal(t, int32(200), state.lastLimit)
	})
}
