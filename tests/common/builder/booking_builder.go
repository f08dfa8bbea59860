//go:build unit || e2e

package builder

import (
	"time"

	dombooking "cinebook/internal/domain/booking"
	reqdto "cinebook/internal/handler/dto/request"
	"cinebook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	UserID           uuid.UUID
	UserName         string
	UserEmail        string
	ShowtimeID       uuid.UUID
	MovieTitle       string
	ScreenName       string
	StartsAt         time.Time
	Seats            []SeatSpec
	TotalAmountCents int64
	Now              time.Time
	HoldFor          time.Duration
}

type SeatSpec struct {
	SeatID   uuid.UUID
	Row      string
	Number   int
	SeatType string
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		UserID:     uuid.New(),
		UserName:   "Test Customer",
		UserEmail:  "customer@example.com",
		ShowtimeID: uuid.New(),
		MovieTitle: "Interstellar",
		ScreenName: "Screen 1",
		StartsAt:   now.Add(3 * time.Hour),
		Seats: []SeatSpec{
			{SeatID: uuid.New(), Row: "A", Number: 1, SeatType: "REGULAR"},
			{SeatID: uuid.New(), Row: "A", Number: 2, SeatType: "REGULAR"},
		},
		TotalAmountCents: 3000,
		Now:              now,
		HoldFor:          10 * time.Minute,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildSeatSelections() ([]dombooking.SeatSelection, error) {
	seats := make([]dombooking.SeatSelection, 0, len(b.Seats))
	for _, s := range b.Seats {
		seatType, err := dombooking.NewSeatType(s.SeatType)
		if err != nil {
			return nil, err
		}
		sel, err := dombooking.NewSeatSelection(s.SeatID, s.Row, s.Number, seatType)
		if err != nil {
			return nil, err
		}
		seats = append(seats, sel)
	}
	return seats, nil
}

func (b *BookingBuilder) BuildHold() (*dombooking.Booking, error) {
	seats, err := b.BuildSeatSelections()
	if err != nil {
		return nil, err
	}
	amount, err := dombooking.NewMoney(b.TotalAmountCents)
	if err != nil {
		return nil, err
	}
	return dombooking.NewHold(b.UserID, b.ShowtimeID, seats, amount, b.Now, b.HoldFor)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	seats := make([]reqdto.SeatRequest, 0, len(b.Seats))
	for _, s := range b.Seats {
		seats = append(seats, reqdto.SeatRequest{
			SeatID:   s.SeatID,
			Row:      s.Row,
			Number:   s.Number,
			SeatType: s.SeatType,
		})
	}
	return reqdto.CreateBookingRequest{
		ShowtimeID:       b.ShowtimeID,
		Seats:            seats,
		TotalAmountCents: b.TotalAmountCents,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	seats := make([]queries.SeatView, 0, len(b.Seats))
	for _, s := range b.Seats {
		seats = append(seats, queries.SeatView{
			SeatID:   s.SeatID,
			Row:      s.Row,
			Number:   s.Number,
			SeatType: s.SeatType,
		})
	}
	expiresAt := b.Now.Add(b.HoldFor)
	return &queries.BookingView{
		ID:               uuid.New(),
		UserID:           b.UserID,
		UserName:         b.UserName,
		UserEmail:        b.UserEmail,
		ShowtimeID:       b.ShowtimeID,
		MovieTitle:       b.MovieTitle,
		ScreenName:       b.ScreenName,
		StartsAt:         b.StartsAt,
		Seats:            seats,
		TotalAmountCents: b.TotalAmountCents,
		Status:           string(dombooking.StatusTemporary),
		PaymentStatus:    string(dombooking.PaymentPending),
		ExpiresAt:        &expiresAt,
		CreatedAt:        b.Now,
		UpdatedAt:        b.Now,
	}
}
