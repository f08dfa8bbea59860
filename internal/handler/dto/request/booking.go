package request

import (
	"strings"

	"cinebook/internal/domain/booking"
	"cinebook/internal/domain/user"

	"github.com/google/uuid"
)

type SeatRequest struct {
	SeatID   uuid.UUID `json:"seat_id" binding:"required"`
	Row      string    `json:"row" binding:"required"`
	Number   int       `json:"number" binding:"required,min=1"`
	SeatType string    `json:"seat_type" binding:"required"`
}

type GuestInfoRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
}

type CreateBookingRequest struct {
	ShowtimeID       uuid.UUID         `json:"showtime_id" binding:"required"`
	Seats            []SeatRequest     `json:"seats" binding:"required,min=1,dive"`
	TotalAmountCents int64             `json:"total_amount_cents" binding:"min=0"`
	GuestInfo        *GuestInfoRequest `json:"guest_info,omitempty"`
}

func (r CreateBookingRequest) ToSeatSelections() ([]booking.SeatSelection, error) {
	seats := make([]booking.SeatSelection, 0, len(r.Seats))
	for _, s := range r.Seats {
		seatType, err := booking.NewSeatType(s.SeatType)
		if err != nil {
			return nil, err
		}
		sel, err := booking.NewSeatSelection(s.SeatID, strings.TrimSpace(s.Row), s.Number, seatType)
		if err != nil {
			return nil, err
		}
		seats = append(seats, sel)
	}
	return seats, nil
}

func (r CreateBookingRequest) ToGuestContact() (*user.GuestContact, error) {
	if r.GuestInfo == nil {
		return nil, nil
	}
	contact, err := user.NewGuestContact(r.GuestInfo.Name, r.GuestInfo.Email, r.GuestInfo.Phone)
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

type CompleteBookingRequest struct {
	CardNumber string `json:"card_number" binding:"required"`
	Expiry     string `json:"expiry" binding:"required"`
	CVV        string `json:"cvv" binding:"required"`
}
