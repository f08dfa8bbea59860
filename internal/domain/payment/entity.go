package payment

import (
	"time"

	"cinebook/internal/domain/booking"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// Payment is the one-to-one record of a completed booking's charge.
// Immutable after creation except Status on reconciliation.
type Payment struct {
	id            uuid.UUID
	bookingID     uuid.UUID
	amount        booking.Money
	lastFour      string
	expiryMonth   int
	expiryYear    int
	status        Status
	transactionID TransactionID
	createdAt     time.Time
}

// NewCompleted records a successful local authorization.
func NewCompleted(bookingID uuid.UUID, amount booking.Money, card CardDetails, txnID TransactionID) *Payment {
	return &Payment{
		id:            uuid.New(),
		bookingID:     bookingID,
		amount:        amount,
		lastFour:      card.LastFour(),
		expiryMonth:   card.ExpiryMonth(),
		expiryYear:    card.ExpiryYear(),
		status:        StatusCompleted,
		transactionID: txnID,
	}
}

func (p *Payment) ID() uuid.UUID                { return p.id }
func (p *Payment) BookingID() uuid.UUID         { return p.bookingID }
func (p *Payment) Amount() booking.Money        { return p.amount }
func (p *Payment) LastFour() string             { return p.lastFour }
func (p *Payment) ExpiryMonth() int             { return p.expiryMonth }
func (p *Payment) ExpiryYear() int              { return p.expiryYear }
func (p *Payment) Status() Status               { return p.status }
func (p *Payment) TransactionID() TransactionID { return p.transactionID }
func (p *Payment) CreatedAt() time.Time         { return p.createdAt }
