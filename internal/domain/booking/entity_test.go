//go:build unit

package booking_test

import (
	"testing"
	"time"

	"cinebook/internal/domain/booking"
	"cinebook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHold(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		actual, err := b.BuildHold()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, b.UserID, actual.UserID())
		assert.Equal(t, b.ShowtimeID, actual.ShowtimeID())
		assert.Len(t, actual.Seats(), 2)
		assert.Equal(t, booking.StatusTemporary, actual.Status())
		assert.Equal(t, booking.PaymentPending, actual.PaymentStatus())
		assert.Nil(t, actual.TicketNumber())

		require.NotNil(t, actual.ExpiresAt())
		assert.Equal(t, b.Now.Add(10*time.Minute), *actual.ExpiresAt())
	})

	t.Run("no seats selected", func(t *testing.T) {
		b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Seats = nil
		})
		actual, err := b.BuildHold()
		assert.ErrorIs(t, err, booking.ErrNoSeatsSelected)
		assert.Nil(t, actual)
	})
}

func TestBookingExpiry(t *testing.T) {
	b := builder.NewBookingBuilder()
	hold, err := b.BuildHold()
	require.NoError(t, err)

	t.Run("not expired before the deadline", func(t *testing.T) {
		assert.False(t, hold.IsExpired(b.Now))
		assert.False(t, hold.IsExpired(b.Now.Add(10*time.Minute-time.Second)))
		assert.True(t, hold.HasActiveClaim(b.Now))
	})

	t.Run("expired exactly at the deadline", func(t *testing.T) {
		assert.True(t, hold.IsExpired(b.Now.Add(10*time.Minute)))
		assert.True(t, hold.IsExpired(b.Now.Add(11*time.Minute)))
		assert.False(t, hold.HasActiveClaim(b.Now.Add(10*time.Minute)))
	})

	t.Run("terminal bookings never expire", func(t *testing.T) {
		cancelled, buildErr := b.BuildHold()
		require.NoError(t, buildErr)
		require.NoError(t, cancelled.Cancel())

		assert.False(t, cancelled.IsExpired(b.Now.Add(time.Hour)))
		assert.False(t, cancelled.HasActiveClaim(b.Now))
	})
}

func TestComplete(t *testing.T) {
	b := builder.NewBookingBuilder()
	ticket, err := booking.GenerateTicketNumber(b.Now)
	require.NoError(t, err)

	t.Run("completes an unexpired temporary hold", func(t *testing.T) {
		hold, buildErr := b.BuildHold()
		require.NoError(t, buildErr)

		require.NoError(t, hold.Complete(ticket, b.Now.Add(5*time.Minute)))
		assert.Equal(t, booking.StatusCompleted, hold.Status())
		assert.Equal(t, booking.PaymentCompleted, hold.PaymentStatus())
		require.NotNil(t, hold.TicketNumber())
		assert.Equal(t, ticket.String(), hold.TicketNumber().String())
		assert.Nil(t, hold.ExpiresAt())
	})

	t.Run("rejects completion after expiry", func(t *testing.T) {
		hold, buildErr := b.BuildHold()
		require.NoError(t, buildErr)

		err := hold.Complete(ticket, b.Now.Add(10*time.Minute))
		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
		assert.Equal(t, booking.StatusTemporary, hold.Status())
	})

	t.Run("completed booking is immutable", func(t *testing.T) {
		hold, buildErr := b.BuildHold()
		require.NoError(t, buildErr)
		require.NoError(t, hold.Complete(ticket, b.Now))

		assert.ErrorIs(t, hold.Complete(ticket, b.Now), booking.ErrInvalidTransition)
		assert.ErrorIs(t, hold.Cancel(), booking.ErrInvalidTransition)
		assert.ErrorIs(t, hold.MarkPaymentFailed(), booking.ErrInvalidTransition)
	})
}

func TestCancel(t *testing.T) {
	b := builder.NewBookingBuilder()

	t.Run("cancels a temporary hold", func(t *testing.T) {
		hold, err := b.BuildHold()
		require.NoError(t, err)

		require.NoError(t, hold.Cancel())
		assert.Equal(t, booking.StatusCancelled, hold.Status())
		assert.Equal(t, booking.PaymentFailed, hold.PaymentStatus())
		assert.Nil(t, hold.ExpiresAt())
	})

	t.Run("cancelled booking is immutable", func(t *testing.T) {
		hold, err := b.BuildHold()
		require.NoError(t, err)
		require.NoError(t, hold.Cancel())

		assert.ErrorIs(t, hold.Cancel(), booking.ErrInvalidTransition)

		ticket, err := booking.GenerateTicketNumber(b.Now)
		require.NoError(t, err)
		assert.ErrorIs(t, hold.Complete(ticket, b.Now), booking.ErrInvalidTransition)
	})
}

func TestMarkPaymentFailed(t *testing.T) {
	b := builder.NewBookingBuilder()
	hold, err := b.BuildHold()
	require.NoError(t, err)

	// A failed payment attempt does not consume the hold
	require.NoError(t, hold.MarkPaymentFailed())
	assert.Equal(t, booking.StatusTemporary, hold.Status())
	assert.Equal(t, booking.PaymentFailed, hold.PaymentStatus())
	require.NotNil(t, hold.ExpiresAt())
}
