//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"slotbooker/internal/handler/api"
	resdto "slotbooker/internal/handler/dto/response"
	"slotbooker/internal/pkg/errs"
	"slotbooker/internal/usecase/queries"
	httptestutil "slotbooker/tests/common/httptest"
	queriesmock "slotbooker/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
	handler     *api.AvailabilityHandler
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewAvailabilityHandler(s.mockQueries)

	// availability is the public surface, no auth middleware
	s.router.GET("/availability", s.handler.Search)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestSearch() {
	s.Run("returns grouped days", func() {
		days := []queries.DayAvailability{
			{
				Date: "2026-03-11",
				Slots: []queries.AvailableSlot{
					{ID: uuid.New(), StartTime: "10:00", EndTime: "11:00", Remaining: 2, ServiceTypes: []string{"installation"}},
				},
			},
		}
		s.mockQueries.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any(), "installation").Return(days, nil)

		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodGet,
			"/availability?from=2026-03-10&to=2026-03-14&service_type=installation", nil, "")

		var res []resdto.DayAvailabilityResponse
		httptestutil.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Require().Len(res, 1)
		s.Equal("2026-03-11", res[0].Date)
		s.Require().Len(res[0].Slots, 1)
		s.Equal(int32(2), res[0].Slots[0].Remaining)
	})

	s.Run("empty result is an empty array", func() {
		s.mockQueries.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any(), "").Return(nil, nil)

		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodGet,
			"/availability?from=2026-03-10&to=2026-03-14", nil, "")

		s.Equal(http.StatusOK, w.Code)
		s.JSONEq("[]", w.Body.String())
	})

	s.Run("missing from parameter", func() {
		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodGet, "/availability?to=2026-03-14", nil, "")
		httptestutil.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid 'from' date")
	})

	s.Run("malformed to parameter", func() {
		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodGet, "/availability?from=2026-03-10&to=tomorrow", nil, "")
		httptestutil.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid 'to' date")
	})

	s.Run("inverted range", func() {
		s.mockQueries.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any(), "").
			Return(nil, errs.Mark(errs.New("inverted range"), errs.ErrDomainValidation))

		w := httptestutil.PerformRequest(s.T(), s.router, http.MethodGet,
			"/availability?from=2026-03-14&to=2026-03-10", nil, "")
		httptestutil.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid date range")
	})
}
