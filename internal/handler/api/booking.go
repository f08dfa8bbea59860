package api

import (
	"net/http"
	"strconv"

	"cinebook/internal/domain/booking"
	reqdto "cinebook/internal/handler/dto/request"
	resdto "cinebook/internal/handler/dto/response"
	"cinebook/internal/handler/httperr"
	"cinebook/internal/handler/middleware"
	"cinebook/internal/pkg/errs"
	"cinebook/internal/usecase/commands"
	"cinebook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Place a temporary hold on seats for a showtime. Guests pass guest_info instead of authenticating.
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_REQUEST", "Invalid request format", nil)
		return
	}

	seats, err := req.ToSeatSelections()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	totalAmount, err := booking.NewMoney(req.TotalAmountCents)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_REQUEST", "Total amount must not be negative", nil)
		return
	}

	in := commands.CreateBookingInput{
		ShowtimeID:  req.ShowtimeID,
		Seats:       seats,
		TotalAmount: totalAmount,
	}

	if userID, ok := middleware.GetUserID(c); ok {
		in.UserID = &userID
	} else {
		contact, guestErr := req.ToGuestContact()
		if guestErr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, guestErr, "INVALID_REQUEST", guestErr.Error(), nil)
			return
		}
		if contact == nil {
			httperr.AbortWithError(c, http.StatusBadRequest, errs.ErrDomainValidation, "INVALID_REQUEST",
				"Either authenticate or provide guest_info", nil)
			return
		}
		in.Guest = contact
	}

	result, err := h.bookingCommands.CreateBooking(c.Request.Context(), in)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrShowtimeNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "SHOWTIME_NOT_FOUND", "Showtime not found", nil)
		case errs.Is(err, errs.ErrSeatConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "SEAT_CONFLICT",
				"One or more selected seats are no longer available", nil)
		case errs.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_REQUEST", err.Error(), nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "", "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCreateBookingResult(result))
}

// @Summary Complete booking
// @Description Finalize a temporary booking by paying with a card. Issues a ticket number on success.
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.CompleteBookingRequest true "Card details"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Router /bookings/{id}/complete [post]
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_REQUEST", "Invalid booking ID format", nil)
		return
	}

	var req reqdto.CompleteBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "INVALID_REQUEST", "Invalid request format", nil)
		return
	}

	result, err := h.bookingCommands.CompleteBooking(c.Request.Context(), commands.CompleteBookingInput{
		BookingID:  id,
		CardNumber: req.CardNumber,
		Expiry:     req.Expiry,
		CVV:        req.CVV,
	})
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "BOOKING_NOT_FOUND", "Booking not found", nil)
		case errs.Is(err, errs.ErrBookingExpired):
			httperr.AbortWithError(c, http.StatusGone, err, "BOOKING_EXPIRED",
				"Booking hold has expired and the seats were released", nil)
		case errs.Is(err, errs.ErrInvalidBookingStatus):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_BOOKING_STATUS",
				"Booking is not awaiting payment", nil)
		case errs.Is(err, errs.ErrPaymentFailed):
			// Card-format failures and authorizer declines share one code;
			// the message carries the concrete reason.
			httperr.AbortWithError(c, http.StatusBadRequest, err, "PAYMENT_FAILED", err.Error(), nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "", "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(result.Booking))
}

// @Summary Cancel booking
// @Description Cancel a temporary booking and release its seats. Owner or admin only.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_REQUEST", "Invalid booking ID format", nil)
		return
	}

	actor, ok := currentActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.ErrDomainValidation, "",
			"Internal server error", nil)
		return
	}

	if err := h.bookingCommands.CancelBooking(c.Request.Context(), id, actor); err != nil {
		switch {
		case errs.Is(err, errs.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "BOOKING_NOT_FOUND", "Booking not found", nil)
		case errs.Is(err, errs.ErrNotBookingOwner):
			httperr.AbortWithError(c, http.StatusForbidden, err, "FORBIDDEN",
				"Only the booking owner or an admin can cancel", nil)
		case errs.Is(err, errs.ErrInvalidBookingStatus):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_BOOKING_STATUS",
				"Only temporary bookings can be cancelled", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "", "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// @Summary Get booking
// @Description Get booking by ID with seats and payment. Owner or admin only.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_REQUEST", "Invalid booking ID format", nil)
		return
	}

	actor, ok := currentActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.ErrDomainValidation, "",
			"Internal server error", nil)
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), queries.Actor{ID: actor.ID, Role: actor.Role}, id)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "BOOKING_NOT_FOUND", "Booking not found", nil)
		case errs.Is(err, errs.ErrNotBookingOwner):
			httperr.AbortWithError(c, http.StatusForbidden, err, "FORBIDDEN",
				"Only the booking owner or an admin can view this booking", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "", "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List own bookings
// @Description List the authenticated user's bookings, newest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of items (default 50)"
// @Success 200 {array} resdto.BookingListResponse
// @Failure 401 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.ErrDomainValidation, "",
			"Internal server error", nil)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			httperr.AbortWithError(c, http.StatusBadRequest, errs.ErrDomainValidation, "INVALID_REQUEST",
				"limit must be a non-negative integer", nil)
			return
		}
		limit = parsed
	}

	items, err := h.bookingQueries.ListByUser(c.Request.Context(), actor.ID, limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "", "Internal server error", nil)
		return
	}

	responses := make([]*resdto.BookingListResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, resdto.FromBookingListItem(item))
	}
	c.JSON(http.StatusOK, responses)
}

func currentActor(c *gin.Context) (commands.Actor, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return commands.Actor{}, false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		return commands.Actor{}, false
	}
	return commands.Actor{ID: userID, Role: role}, true
}
