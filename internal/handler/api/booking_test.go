//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"cinebook/internal/domain/payment"
	"cinebook/internal/domain/user"
	"cinebook/internal/handler/api"
	resdto "cinebook/internal/handler/dto/response"
	"cinebook/internal/pkg/errs"
	"cinebook/internal/usecase/commands"
	"cinebook/internal/usecase/queries"
	"cinebook/tests/common/builder"
	"cinebook/tests/common/httptest"
	"cinebook/tests/common/testutil"
	commandsmock "cinebook/tests/mock/commands"
	queriesmock "cinebook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	userID       uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	requireAuth := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleCustomer)
		c.Next()
	}
	optionalAuth := func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.userID)
			c.Set("user_role", user.RoleCustomer)
		}
		c.Next()
	}

	// Setup routes
	s.router.POST("/bookings", optionalAuth, s.handler.CreateBooking)
	s.router.POST("/bookings/:id/complete", optionalAuth, s.handler.CompleteBooking)
	s.router.GET("/bookings", requireAuth, s.handler.ListBookings)
	s.router.GET("/bookings/:id", requireAuth, s.handler.GetBooking)
	s.router.POST("/bookings/:id/cancel", requireAuth, s.handler.CancelBooking)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// ================================================================================
// CreateBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"
	b := builder.NewBookingBuilder()
	reqBody := b.BuildCreateRequestDTO()
	expected := &commands.CreateBookingResult{
		BookingID: uuid.New(),
		ExpiresAt: b.Now.Add(b.HoldFor),
		Status:    "temporary",
	}

	s.Run("authenticated user books seats", func() {
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.CreateBookingInput) (*commands.CreateBookingResult, error) {
				s.Require().NotNil(in.UserID)
				s.Equal(s.userID, *in.UserID)
				s.Nil(in.Guest)
				return expected, nil
			})

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		var resp resdto.CreateBookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		s.Equal(expected.BookingID, resp.BookingID)
		s.Equal("temporary", resp.Status)
	})

	s.Run("guest books with guest_info", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("guest_info", map[string]any{
			"name":  "Guest One",
			"email": "guest@example.com",
			"phone": "090-1111-2222",
		}))

		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.CreateBookingInput) (*commands.CreateBookingResult, error) {
				s.Nil(in.UserID)
				s.Require().NotNil(in.Guest)
				s.Equal("guest@example.com", in.Guest.Email().Value())
				return expected, nil
			})

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, nil)
	})

	s.Run("anonymous without guest_info is rejected", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorCode(s.T(), w, http.StatusBadRequest, "INVALID_REQUEST")
	})

	s.Run("empty seat list is rejected by binding", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("seats", []any{}))
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "token")
		httptest.AssertErrorCode(s.T(), w, http.StatusBadRequest, "INVALID_REQUEST")
	})

	s.Run("unknown showtime", func() {
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrShowtimeNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
		httptest.AssertErrorCode(s.T(), w, http.StatusNotFound, "SHOWTIME_NOT_FOUND")
	})

	s.Run("seat conflict", func() {
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrSeatConflict)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
		httptest.AssertErrorCode(s.T(), w, http.StatusConflict, "SEAT_CONFLICT")
	})
}

// ================================================================================
// CompleteBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCompleteBooking() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/complete"
	cardBody := map[string]any{
		"card_number": "4242424242424242",
		"expiry":      "12/28",
		"cvv":         "123",
	}

	s.Run("returns the completed booking", func() {
		view := builder.NewBookingBuilder().BuildView()
		view.Status = "completed"
		s.mockCommands.EXPECT().
			CompleteBooking(gomock.Any(), commands.CompleteBookingInput{
				BookingID:  bookingID,
				CardNumber: "4242424242424242",
				Expiry:     "12/28",
				CVV:        "123",
			}).
			Return(&commands.CompleteBookingResult{Booking: view}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, cardBody, "")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("completed", resp.Status)
	})

	s.Run("expired hold is gone", func() {
		s.mockCommands.EXPECT().
			CompleteBooking(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrBookingExpired)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, cardBody, "")
		httptest.AssertErrorCode(s.T(), w, http.StatusGone, "BOOKING_EXPIRED")
	})

	s.Run("invalid card details", func() {
		// Shape produced by CompleteBooking for a format failure: the
		// concrete card error marked with both payment sentinels.
		cardErr := errs.Mark(payment.ErrInvalidCardNumber, errs.ErrInvalidCardDetail)
		s.mockCommands.EXPECT().
			CompleteBooking(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(cardErr, errs.ErrPaymentFailed))

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, cardBody, "")
		httptest.AssertErrorCode(s.T(), w, http.StatusBadRequest, "PAYMENT_FAILED")
	})

	s.Run("payment declined", func() {
		s.mockCommands.EXPECT().
			CompleteBooking(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("card declined"), errs.ErrPaymentFailed))

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, cardBody, "")
		httptest.AssertErrorCode(s.T(), w, http.StatusBadRequest, "PAYMENT_FAILED")
	})

	s.Run("already finalized booking", func() {
		s.mockCommands.EXPECT().
			CompleteBooking(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrInvalidBookingStatus)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, cardBody, "")
		httptest.AssertErrorCode(s.T(), w, http.StatusBadRequest, "INVALID_BOOKING_STATUS")
	})

	s.Run("unknown booking", func() {
		s.mockCommands.EXPECT().
			CompleteBooking(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrBookingNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, cardBody, "")
		httptest.AssertErrorCode(s.T(), w, http.StatusNotFound, "BOOKING_NOT_FOUND")
	})

	s.Run("malformed booking id", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/not-a-uuid/complete", cardBody, "")
		httptest.AssertErrorCode(s.T(), w, http.StatusBadRequest, "INVALID_REQUEST")
	})

	s.Run("missing card fields", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"card_number": "4242424242424242"}, "")
		httptest.AssertErrorCode(s.T(), w, http.StatusBadRequest, "INVALID_REQUEST")
	})
}

// ================================================================================
// GetBooking / ListBookings / CancelBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestGetBooking() {
	view := builder.NewBookingBuilder().BuildView()
	url := "/bookings/" + view.ID.String()

	s.Run("owner reads own booking", func() {
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), queries.Actor{ID: s.userID, Role: user.RoleCustomer}, view.ID).
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(view.ID, resp.ID)
		s.Len(resp.Seats, 2)
	})

	s.Run("requires authentication", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("foreign booking is forbidden", func() {
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), gomock.Any(), view.ID).
			Return(nil, errs.ErrNotBookingOwner)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		httptest.AssertErrorCode(s.T(), w, http.StatusForbidden, "FORBIDDEN")
	})

	s.Run("unknown booking", func() {
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), gomock.Any(), view.ID).
			Return(nil, errs.ErrBookingNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		httptest.AssertErrorCode(s.T(), w, http.StatusNotFound, "BOOKING_NOT_FOUND")
	})
}

func (s *BookingHandlerTestSuite) TestListBookings() {
	s.Run("lists own bookings", func() {
		items := []*queries.BookingListItem{
			{ID: uuid.New(), MovieTitle: "Interstellar", Status: "completed", SeatCount: 2},
		}
		s.mockQueries.EXPECT().
			ListByUser(gomock.Any(), s.userID, 0).
			Return(items, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "token")

		var resp []resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp, 1)
		s.Equal("Interstellar", resp[0].MovieTitle)
	})

	s.Run("passes the limit through", func() {
		s.mockQueries.EXPECT().
			ListByUser(gomock.Any(), s.userID, 5).
			Return(nil, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?limit=5", nil, "token")
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("rejects a negative limit", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?limit=-1", nil, "token")
		httptest.AssertErrorCode(s.T(), w, http.StatusBadRequest, "INVALID_REQUEST")
	})
}

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/cancel"

	s.Run("cancels own booking", func() {
		s.mockCommands.EXPECT().
			CancelBooking(gomock.Any(), bookingID, commands.Actor{ID: s.userID, Role: user.RoleCustomer}).
			Return(nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("foreign booking is forbidden", func() {
		s.mockCommands.EXPECT().
			CancelBooking(gomock.Any(), bookingID, gomock.Any()).
			Return(errs.ErrNotBookingOwner)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		httptest.AssertErrorCode(s.T(), w, http.StatusForbidden, "FORBIDDEN")
	})

	s.Run("terminal booking cannot be cancelled", func() {
		s.mockCommands.EXPECT().
			CancelBooking(gomock.Any(), bookingID, gomock.Any()).
			Return(errs.ErrInvalidBookingStatus)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		httptest.AssertErrorCode(s.T(), w, http.StatusBadRequest, "INVALID_BOOKING_STATUS")
	})

	s.Run("unknown booking", func() {
		s.mockCommands.EXPECT().
			CancelBooking(gomock.Any(), bookingID, gomock.Any()).
			Return(errs.ErrBookingNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		httptest.AssertErrorCode(s.T(), w, http.StatusNotFound, "BOOKING_NOT_FOUND")
	})
}
