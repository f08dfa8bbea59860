package booking

import (
	"crypto/rand"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNegativeAmount      = errors.New("amount cannot be negative")
	ErrInvalidSeatType     = errors.New("invalid seat type")
	ErrEmptySeatRow        = errors.New("seat row cannot be empty")
	ErrInvalidSeatNumber   = errors.New("seat number must be positive")
	ErrInvalidTicketNumber = errors.New("invalid ticket number format")
)

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

// SeatSelection is one requested seat with its layout metadata.
// Layout data (row, number, type) is read-only input from the showtime's
// seat map; the selection only carries it through to the booking record.
type SeatSelection struct {
	seatID   uuid.UUID
	row      string
	number   int
	seatType SeatType
}

func NewSeatSelection(seatID uuid.UUID, row string, number int, seatType SeatType) (SeatSelection, error) {
	if seatID == uuid.Nil {
		return SeatSelection{}, errors.New("seat id cannot be nil")
	}
	if row == "" {
		return SeatSelection{}, ErrEmptySeatRow
	}
	if number <= 0 {
		return SeatSelection{}, ErrInvalidSeatNumber
	}
	if !seatType.IsValid() {
		return SeatSelection{}, ErrInvalidSeatType
	}
	return SeatSelection{
		seatID:   seatID,
		row:      row,
		number:   number,
		seatType: seatType,
	}, nil
}

func (s SeatSelection) SeatID() uuid.UUID  { return s.seatID }
func (s SeatSelection) Row() string        { return s.row }
func (s SeatSelection) Number() int        { return s.number }
func (s SeatSelection) SeatType() SeatType { return s.seatType }

func (s SeatSelection) Label() string {
	return fmt.Sprintf("%s%d", s.row, s.number)
}

// SeatIDs extracts the seat ids of a selection list, preserving order.
func SeatIDs(seats []SeatSelection) []uuid.UUID {
	ids := make([]uuid.UUID, len(seats))
	for i, s := range seats {
		ids[i] = s.SeatID()
	}
	return ids
}

const (
	ticketPrefix      = "TKT"
	ticketSuffixLen   = 6
	ticketSuffixChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var ticketNumberRegex = regexp.MustCompile(`^TKT-\d{8}-[A-Z0-9]{6}$`)

type TicketNumber struct {
	value string
}

// GenerateTicketNumber builds a candidate ticket number for the given day.
// The random suffix is low-entropy, so uniqueness is enforced by the
// storage layer and callers retry on collision.
func GenerateTicketNumber(now time.Time) (TicketNumber, error) {
	buf := make([]byte, ticketSuffixLen)
	if _, err := rand.Read(buf); err != nil {
		return TicketNumber{}, err
	}
	suffix := make([]byte, ticketSuffixLen)
	for i, b := range buf {
		suffix[i] = ticketSuffixChars[int(b)%len(ticketSuffixChars)]
	}
	value := fmt.Sprintf("%s-%s-%s", ticketPrefix, now.Format("20060102"), suffix)
	return TicketNumber{value: value}, nil
}

func ParseTicketNumber(s string) (TicketNumber, error) {
	if !ticketNumberRegex.MatchString(s) {
		return TicketNumber{}, ErrInvalidTicketNumber
	}
	return TicketNumber{value: s}, nil
}

func (t TicketNumber) String() string {
	return t.value
}
