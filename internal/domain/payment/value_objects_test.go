//go:build unit

package payment_test

import (
	"strings"
	"testing"

	"cinebook/internal/domain/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCardDetails(t *testing.T) {
	validNumber := "4242424242424242"

	cases := []struct {
		name   string
		number string
		expiry string
		cvv    string
		errIs  error
	}{
		{name: "valid card", number: validNumber, expiry: "12/28", cvv: "123"},
		{name: "valid card with surrounding spaces", number: "  " + validNumber + "  ", expiry: " 01/30 ", cvv: " 456 "},
		{name: "15 digit number", number: validNumber[:15], expiry: "12/28", cvv: "123", errIs: payment.ErrInvalidCardNumber},
		{name: "17 digit number", number: validNumber + "4", expiry: "12/28", cvv: "123", errIs: payment.ErrInvalidCardNumber},
		{name: "number with letters", number: "4242abcd42424242", expiry: "12/28", cvv: "123", errIs: payment.ErrInvalidCardNumber},
		{name: "empty number", number: "", expiry: "12/28", cvv: "123", errIs: payment.ErrInvalidCardNumber},
		{name: "expiry missing separator", number: validNumber, expiry: "1228", cvv: "123", errIs: payment.ErrInvalidExpiry},
		{name: "expiry single digit month", number: validNumber, expiry: "1/28", cvv: "123", errIs: payment.ErrInvalidExpiry},
		{name: "expiry month zero", number: validNumber, expiry: "00/28", cvv: "123", errIs: payment.ErrInvalidExpiry},
		{name: "expiry month thirteen", number: validNumber, expiry: "13/28", cvv: "123", errIs: payment.ErrInvalidExpiry},
		{name: "expiry non-numeric", number: validNumber, expiry: "ab/cd", cvv: "123", errIs: payment.ErrInvalidExpiry},
		{name: "cvv too short", number: validNumber, expiry: "12/28", cvv: "12", errIs: payment.ErrInvalidCVV},
		{name: "cvv too long", number: validNumber, expiry: "12/28", cvv: "1234", errIs: payment.ErrInvalidCVV},
		{name: "cvv non-numeric", number: validNumber, expiry: "12/28", cvv: "12a", errIs: payment.ErrInvalidCVV},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			card, err := payment.NewCardDetails(tc.number, tc.expiry, tc.cvv)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "4242", card.LastFour())
		})
	}

	t.Run("parses expiry into month and year", func(t *testing.T) {
		card, err := payment.NewCardDetails(validNumber, "07/29", "999")
		require.NoError(t, err)
		assert.Equal(t, 7, card.ExpiryMonth())
		assert.Equal(t, 29, card.ExpiryYear())
	})
}

func TestNewTransactionID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		txn := payment.NewTransactionID()
		assert.True(t, strings.HasPrefix(txn.String(), "TXN-"))
		assert.False(t, seen[txn.String()], "transaction ids must be unique")
		seen[txn.String()] = true
	}
}
