//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

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

type SlotHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSlotCommands
	mockQueries  *queriesmock.MockSlotQueries
	handler      *api.SlotHandler
}

func (s *SlotHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSlotCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSlotQueries(s.mockCtrl)
	s.handler = api.NewSlotHandler(s.mockCommands, s.mockQueries)

	// Mock admin middleware for testing
	adminMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", actor.RoleAdmin)
		c.Next()
	}

	admin := s.router.Group("/admin", adminMiddleware)
	admin.POST("/slots", s.handler.CreateSlot)
	admin.GET("/slots", s.handler.ListSlots)
	admin.PATCH("/slots/:id", s.handler.UpdateSlotMetadata)
	admin.DELETE("/slots/:id", s.handler.DeleteSlot)
}

func (s *SlotHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSlotHandlerSuite(t *testing.T) {
	suite.Run(t, new(SlotHandlerTestSuite))
}

func sampleSlotView() *queries.SlotView {
	return &queries.SlotView{
		ID:           uuid.New(),
		Date:         "2026-03-11",
		StartTime:    "10:00",
		EndTime:      "11:00",
		MaxBookings:  2,
		ServiceTypes: []string{"installation"},
		CreatedAt:    time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func (s *SlotHandlerTestSuite) TestCreateSlot() {
	body := map[string]any{
		"date":         "2026-03-11",
		"startTime":    "10:00",
		"endTime":      "11:00",
		"maxBookings":  2,
		"serviceTypes": []string{"installation"},
	}

	s.Run("created", func() {
		view := sampleSlotView()
		s.mockCommands.EXPECT().CreateSlot(gomock.Any(), gomock.Any()).Return(view, nil)

		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/slots", body, "token")

		var res resdto.SlotResponse
		httptestutil.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
		s.Equal(view.ID, res.ID)
		s.Equal(int32(2), res.MaxBookings)
		s.Equal(int32(0), res.BookedCount)
	})

	s.Run("requires authentication", func() {
		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/slots", body, "")
		httptestutil.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("missing required fields", func() {
		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/slots", map[string]any{"date": "2026-03-11"}, "token")
		httptestutil.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("rejected slot definition", func() {
		s.mockCommands.EXPECT().CreateSlot(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("past date"), errs.ErrDomainValidation))

		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/slots", body, "token")
		httptestutil.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid slot definition")
	})
}

func (s *SlotHandlerTestSuite) TestListSlots() {
	s.Run("lists slots in range", func() {
		views := []*queries.SlotView{sampleSlotView(), sampleSlotView()}
		s.mockQueries.EXPECT().ListByDateRange(gomock.Any(), gomock.Any(), gomock.Any(), "repair").Return(views, nil)

		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodGet,
			"/admin/slots?from=2026-03-10&to=2026-03-14&service_type=repair", nil, "token")

		var res []resdto.SlotResponse
		httptestutil.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Len(res, 2)
	})

	s.Run("missing range parameters", func() {
		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/slots", nil, "token")
		httptestutil.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid 'from' date")
	})
}

func (s *SlotHandlerTestSuite) TestUpdateSlotMetadata() {
	s.Run("updated", func() {
		view := sampleSlotView()
		s.mockCommands.EXPECT().UpdateSlotMetadata(gomock.Any(), view.ID, gomock.Any()).Return(view, nil)

		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodPatch,
			"/admin/slots/"+view.ID.String(), map[string]any{"note": "gate code 4711"}, "token")

		var res resdto.SlotResponse
		httptestutil.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Equal(view.ID, res.ID)
	})

	s.Run("not found", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().UpdateSlotMetadata(gomock.Any(), id, gomock.Any()).Return(nil, errs.ErrSlotNotFound)

		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodPatch,
			"/admin/slots/"+id.String(), map[string]any{"note": "x"}, "token")
		httptestutil.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Slot not found")
	})
}

func (s *SlotHandlerTestSuite) TestDeleteSlot() {
	s.Run("deleted", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().DeleteSlot(gomock.Any(), id).Return(nil)

		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/slots/"+id.String(), nil, "token")
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("slot with bookings is refused", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().DeleteSlot(gomock.Any(), id).Return(errs.ErrSlotHasBookings)

		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/slots/"+id.String(), nil, "token")
		httptestutil.AssertErrorResponse(s.T(), w, http.StatusConflict, "active bookings")
	})

	s.Run("not found", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().DeleteSlot(gomock.Any(), id).Return(errs.ErrSlotNotFound)

		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/slots/"+id.String(), nil, "token")
		httptestutil.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Slot not found")
	})

	s.Run("invalid id", func() {
		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/slots/nope", nil, "token")
		httptestutil.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid slot ID")
	})
}
