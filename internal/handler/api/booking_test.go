//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"slotbooker/internal/domain/actor"
	"slotbooker/internal/handler/api"
	resdto "slotbooker/internal/handler/dto/response"
	"slotbooker/internal/pkg/errs"
	"slotbooker/internal/usecase/queries"
	httptestutil "slotbooker/tests/common/httptest"
	commandsmock "slotbooker/tests/mock/commands"
	queriesmock "slotbooker/tests/mock/queries"

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
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", actor.RoleCustomer)
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, s.handler.CreateBooking)
	s.router.GET("/bookings", authMiddleware, s.handler.ListBookings)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.GetBooking)
	s.router.POST("/bookings/:id/cancel", authMiddleware, s.handler.CancelBooking)
	s.router.POST("/bookings/:id/confirm", authMiddleware, s.handler.ConfirmBooking)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func validBookingBody(slotID uuid.UUID) map[string]any {
	return map[string]any{
		"slotId":        slotID.String(),
		"serviceType":   "installation",
		"customerName":  "Jordan Baker",
		"customerEmail": "jordan.baker@example.com",
	}
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	s.Run("created", func() {
		slotID := uuid.New()
		view := &queries.BookingView{ID: uuid.New(), SlotID: slotID, Status: "requested"}
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(view, nil)

		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", validBookingBody(slotID), "token")

		var res resdto.BookingResponse
		httptestutil.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
		s.Equal(view.ID, res.ID)
		s.Equal("requested", res.Status)
	})

	s.Run("requires authentication", func() {
		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", validBookingBody(uuid.New()), "")
		httptestutil.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("malformed body", func() {
		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", map[string]any{"slotId": "nope"}, "token")
		httptestutil.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error mapping", func() {
		cases := []struct {
			name       string
			commandErr error
			expectCode int
			expectMsg  string
		}{
			{name: "slot not found", commandErr: errs.ErrSlotNotFound, expectCode: http.StatusNotFound, expectMsg: "Slot not found"},
			{name: "slot full", commandErr: errs.ErrSlotFull, expectCode: http.StatusConflict, expectMsg: "fully booked"},
			{name: "service type mismatch", commandErr: errs.ErrServiceTypeMismatch, expectCode: http.StatusUnprocessableEntity, expectMsg: "not accepted"},
			{name: "slot in past", commandErr: errs.ErrSlotInPast, expectCode: http.StatusUnprocessableEntity, expectMsg: "in the past"},
			{name: "invalid details", commandErr: errs.ErrDomainValidation, expectCode: http.StatusBadRequest, expectMsg: "Invalid booking details"},
			{name: "infrastructure failure", commandErr: errs.New("boom"), expectCode: http.StatusInternalServerError, expectMsg: "Internal server error"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(nil, tc.commandErr)

				w := httptestutil.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", validBookingBody(uuid.New()), "token")
				httptestutil.AssertErrorResponse(s.T(), w, tc.expectCode, tc.expectMsg)
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	s.Run("found", func() {
		id := uuid.New()
		view := &queries.BookingView{ID: id, Status: "confirmed"}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(view, nil)

		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+id.String(), nil, "token")

		var res resdto.BookingResponse
		httptestutil.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Equal(id, res.ID)
	})

	s.Run("not found", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(nil, errs.ErrBookingNotFound)

		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+id.String(), nil, "token")
		httptestutil.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Booking not found")
	})

	s.Run("invalid id", func() {
		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "token")
		httptestutil.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid booking ID")
	})
}

func (s *BookingHandlerTestSuite) TestListBookings() {
	s.Run("lists customer bookings", func() {
		views := []*queries.BookingView{
			{ID: uuid.New(), Status: "requested"},
			{ID: uuid.New(), Status: "cancelled"},
		}
		s.mockQueries.EXPECT().ListByCustomerEmail(gomock.Any(), "jordan.baker@example.com").Return(views, nil)

		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?email=jordan.baker@example.com", nil, "token")

		var res []resdto.BookingResponse
		httptestutil.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Require().Len(res, 2)
		s.Equal(views[0].ID, res[0].ID)
	})

	s.Run("no bookings yields an empty array", func() {
		s.mockQueries.EXPECT().ListByCustomerEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)

		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?email=nobody@example.com", nil, "token")
		s.Equal(http.StatusOK, w.Code)
		s.JSONEq("[]", w.Body.String())
	})

	s.Run("missing email", func() {
		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "token")
		httptestutil.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Missing 'email'")
	})
}

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	s.Run("cancelled", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), id).Return(nil)

		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+id.String()+"/cancel", nil, "token")
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("not found", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), id).Return(errs.ErrBookingNotFound)

		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+id.String()+"/cancel", nil, "token")
		httptestutil.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Booking not found")
	})
}

func (s *BookingHandlerTestSuite) TestConfirmBooking() {
	s.Run("confirmed", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().ConfirmBooking(gomock.Any(), id).Return(nil)

		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+id.String()+"/confirm", nil, "token")
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("cancelled booking cannot be confirmed", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().ConfirmBooking(gomock.Any(), id).Return(errs.Mark(errs.New("cancelled"), errs.ErrDomainValidation))

		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+id.String()+"/confirm", nil, "token")
		httptestutil.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "cannot be confirmed")
	})
}
