package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID               uuid.UUID    `json:"id"`
	UserID           uuid.UUID    `json:"user_id"`
	UserName         string       `json:"user_name"`
	UserEmail        string       `json:"user_email"`
	ShowtimeID       uuid.UUID    `json:"showtime_id"`
	MovieTitle       string       `json:"movie_title"`
	ScreenName       string       `json:"screen_name"`
	StartsAt         time.Time    `json:"starts_at"`
	Seats            []SeatView   `json:"seats"`
	TotalAmountCents int64        `json:"total_amount_cents"`
	Status           string       `json:"status"`
	PaymentStatus    string       `json:"payment_status"`
	TicketNumber     *string      `json:"ticket_number,omitempty"`
	ExpiresAt        *time.Time   `json:"expires_at,omitempty"`
	Payment          *PaymentView `json:"payment,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

type SeatView struct {
	SeatID   uuid.UUID `json:"seat_id"`
	Row      string    `json:"row"`
	Number   int       `json:"number"`
	SeatType string    `json:"seat_type"`
}

type PaymentView struct {
	ID            uuid.UUID `json:"id"`
	AmountCents   int64     `json:"amount_cents"`
	LastFour      string    `json:"last_four"`
	ExpiryMonth   int       `json:"expiry_month"`
	ExpiryYear    int       `json:"expiry_year"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}

type BookingListItem struct {
	ID               uuid.UUID `json:"id"`
	MovieTitle       string    `json:"movie_title"`
	ScreenName       string    `json:"screen_name"`
	StartsAt         time.Time `json:"starts_at"`
	Status           string    `json:"status"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	SeatCount        int       `json:"seat_count"`
	CreatedAt        time.Time `json:"created_at"`
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	IsGuest      bool      `json:"is_guest"`
}
