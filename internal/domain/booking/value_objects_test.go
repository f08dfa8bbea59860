//go:build unit

package booking_test

import (
	"regexp"
	"testing"
	"time"

	"cinebook/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("accepts zero and positive amounts", func(t *testing.T) {
		m, err := booking.NewMoney(0)
		require.NoError(t, err)
		assert.True(t, m.IsZero())

		m, err = booking.NewMoney(3000)
		require.NoError(t, err)
		assert.Equal(t, int64(3000), m.Cents())
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := booking.NewMoney(-1)
		assert.ErrorIs(t, err, booking.ErrNegativeAmount)
	})
}

func TestNewSeatSelection(t *testing.T) {
	seatID := uuid.New()

	cases := []struct {
		name     string
		seatID   uuid.UUID
		row      string
		number   int
		seatType string
		errIs    error
	}{
		{name: "valid regular seat", seatID: seatID, row: "A", number: 1, seatType: "REGULAR"},
		{name: "valid vip seat", seatID: seatID, row: "J", number: 12, seatType: "VIP"},
		{name: "valid accessible seat", seatID: seatID, row: "B", number: 3, seatType: "ACCESSIBLE"},
		{name: "empty row", seatID: seatID, row: "", number: 1, seatType: "REGULAR", errIs: booking.ErrEmptySeatRow},
		{name: "zero seat number", seatID: seatID, row: "A", number: 0, seatType: "REGULAR", errIs: booking.ErrInvalidSeatNumber},
		{name: "negative seat number", seatID: seatID, row: "A", number: -2, seatType: "REGULAR", errIs: booking.ErrInvalidSeatNumber},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seatType, err := booking.NewSeatType(tc.seatType)
			require.NoError(t, err)

			sel, err := booking.NewSeatSelection(tc.seatID, tc.row, tc.number, seatType)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.seatID, sel.SeatID())
		})
	}

	t.Run("unknown seat type", func(t *testing.T) {
		_, err := booking.NewSeatType("BALCONY")
		assert.ErrorIs(t, err, booking.ErrInvalidSeatType)
	})

	t.Run("label combines row and number", func(t *testing.T) {
		seatType, err := booking.NewSeatType("REGULAR")
		require.NoError(t, err)
		sel, err := booking.NewSeatSelection(seatID, "C", 14, seatType)
		require.NoError(t, err)
		assert.Equal(t, "C14", sel.Label())
	})
}

func TestGenerateTicketNumber(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	format := regexp.MustCompile(`^TKT-20250615-[A-Z0-9]{6}$`)

	for i := 0; i < 20; i++ {
		ticket, err := booking.GenerateTicketNumber(now)
		require.NoError(t, err)
		assert.Regexp(t, format, ticket.String())
	}
}

func TestParseTicketNumber(t *testing.T) {
	cases := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "valid ticket", input: "TKT-20250615-A1B2C3", valid: true},
		{name: "lowercase suffix", input: "TKT-20250615-a1b2c3", valid: false},
		{name: "short suffix", input: "TKT-20250615-A1B2C", valid: false},
		{name: "missing prefix", input: "20250615-A1B2C3", valid: false},
		{name: "malformed date", input: "TKT-2025615-A1B2C3", valid: false},
		{name: "empty", input: "", valid: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ticket, err := booking.ParseTicketNumber(tc.input)
			if !tc.valid {
				assert.ErrorIs(t, err, booking.ErrInvalidTicketNumber)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.input, ticket.String())
		})
	}
}
