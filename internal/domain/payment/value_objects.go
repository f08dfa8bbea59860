package payment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidCardNumber = errors.New("card number must be exactly 16 digits")
	ErrInvalidExpiry     = errors.New("expiry date must be in MM/YY format")
	ErrInvalidCVV        = errors.New("cvv must be exactly 3 digits")
)

// CardDetails is a validated payment instrument. The full card number is
// kept only long enough to authorize; everything persisted goes through
// the masked accessors.
type CardDetails struct {
	number      string
	expiryMonth int
	expiryYear  int
	cvv         string
}

func NewCardDetails(number, expiry, cvv string) (CardDetails, error) {
	number = strings.TrimSpace(number)
	if len(number) != 16 || !isDigits(number) {
		return CardDetails{}, ErrInvalidCardNumber
	}

	month, year, err := parseExpiry(expiry)
	if err != nil {
		return CardDetails{}, err
	}

	cvv = strings.TrimSpace(cvv)
	if len(cvv) != 3 || !isDigits(cvv) {
		return CardDetails{}, ErrInvalidCVV
	}

	return CardDetails{
		number:      number,
		expiryMonth: month,
		expiryYear:  year,
		cvv:         cvv,
	}, nil
}

func (c CardDetails) LastFour() string {
	return c.number[len(c.number)-4:]
}

func (c CardDetails) ExpiryMonth() int { return c.expiryMonth }
func (c CardDetails) ExpiryYear() int  { return c.expiryYear }

func parseExpiry(expiry string) (month, year int, err error) {
	parts := strings.Split(strings.TrimSpace(expiry), "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, ErrInvalidExpiry
	}
	if !isDigits(parts[0]) || !isDigits(parts[1]) {
		return 0, 0, ErrInvalidExpiry
	}
	month, _ = strconv.Atoi(parts[0])
	year, _ = strconv.Atoi(parts[1])
	if month < 1 || month > 12 {
		return 0, 0, ErrInvalidExpiry
	}
	return month, year, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

type TransactionID struct {
	value string
}

func NewTransactionID() TransactionID {
	return TransactionID{value: fmt.Sprintf("TXN-%s", uuid.NewString())}
}

func (t TransactionID) String() string {
	return t.value
}
