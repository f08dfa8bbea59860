package response

import (
	"time"

	"cinebook/internal/usecase/commands"
	"cinebook/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateBookingResponse struct {
	BookingID uuid.UUID `json:"bookingId"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type SeatResponse struct {
	SeatID   uuid.UUID `json:"seatId"`
	Row      string    `json:"row"`
	Number   int       `json:"number"`
	SeatType string    `json:"seatType"`
}

type PaymentResponse struct {
	ID            uuid.UUID `json:"id"`
	AmountCents   int64     `json:"amountCents"`
	LastFour      string    `json:"lastFour"`
	ExpiryMonth   int       `json:"expiryMonth"`
	ExpiryYear    int       `json:"expiryYear"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transactionId"`
	CreatedAt     time.Time `json:"createdAt"`
}

type BookingResponse struct {
	ID               uuid.UUID        `json:"id"`
	UserID           uuid.UUID        `json:"userId"`
	UserName         string           `json:"userName"`
	UserEmail        string           `json:"userEmail"`
	ShowtimeID       uuid.UUID        `json:"showtimeId"`
	MovieTitle       string           `json:"movieTitle"`
	ScreenName       string           `json:"screenName"`
	StartsAt         time.Time        `json:"startsAt"`
	Seats            []SeatResponse   `json:"seats"`
	TotalAmountCents int64            `json:"totalAmountCents"`
	Status           string           `json:"status"`
	PaymentStatus    string           `json:"paymentStatus"`
	TicketNumber     *string          `json:"ticketNumber,omitempty"`
	ExpiresAt        *time.Time       `json:"expiresAt,omitempty"`
	Payment          *PaymentResponse `json:"payment,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

type BookingListResponse struct {
	ID               uuid.UUID `json:"id"`
	MovieTitle       string    `json:"movieTitle"`
	ScreenName       string    `json:"screenName"`
	StartsAt         time.Time `json:"startsAt"`
	Status           string    `json:"status"`
	TotalAmountCents int64     `json:"totalAmountCents"`
	SeatCount        int       `json:"seatCount"`
	CreatedAt        time.Time `json:"createdAt"`
}

func FromCreateBookingResult(res *commands.CreateBookingResult) *CreateBookingResponse {
	return &CreateBookingResponse{
		BookingID: res.BookingID,
		Status:    string(res.Status),
		ExpiresAt: res.ExpiresAt,
	}
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	seats := make([]SeatResponse, 0, len(rm.Seats))
	for _, s := range rm.Seats {
		seats = append(seats, SeatResponse{
			SeatID:   s.SeatID,
			Row:      s.Row,
			Number:   s.Number,
			SeatType: s.SeatType,
		})
	}

	var paymentResp *PaymentResponse
	if rm.Payment != nil {
		paymentResp = &PaymentResponse{
			ID:            rm.Payment.ID,
			AmountCents:   rm.Payment.AmountCents,
			LastFour:      rm.Payment.LastFour,
			ExpiryMonth:   rm.Payment.ExpiryMonth,
			ExpiryYear:    rm.Payment.ExpiryYear,
			Status:        rm.Payment.Status,
			TransactionID: rm.Payment.TransactionID,
			CreatedAt:     rm.Payment.CreatedAt,
		}
	}

	return &BookingResponse{
		ID:               rm.ID,
		UserID:           rm.UserID,
		UserName:         rm.UserName,
		UserEmail:        rm.UserEmail,
		ShowtimeID:       rm.ShowtimeID,
		MovieTitle:       rm.MovieTitle,
		ScreenName:       rm.ScreenName,
		StartsAt:         rm.StartsAt,
		Seats:            seats,
		TotalAmountCents: rm.TotalAmountCents,
		Status:           rm.Status,
		PaymentStatus:    rm.PaymentStatus,
		TicketNumber:     rm.TicketNumber,
		ExpiresAt:        rm.ExpiresAt,
		Payment:          paymentResp,
		CreatedAt:        rm.CreatedAt,
		UpdatedAt:        rm.UpdatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:               rm.ID,
		MovieTitle:       rm.MovieTitle,
		ScreenName:       rm.ScreenName,
		StartsAt:         rm.StartsAt,
		Status:           rm.Status,
		TotalAmountCents: rm.TotalAmountCents,
		SeatCount:        rm.SeatCount,
		CreatedAt:        rm.CreatedAt,
	}
}
