package api

import (
	"errors"
	"net/http"

	resdto "slotbooker/internal/handler/dto/response"
	"slotbooker/internal/pkg/errs"
	"slotbooker/internal/pkg/patch"
	"slotbooker/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availability queries.AvailabilityQueries
}

func NewAvailabilityHandler(availability queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availability: availability,
	}
}

// @Summary Search availability
// @Description Slots with spare capacity in a date range, grouped by date
// @Tags availability
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Param service_type query string false "Service type filter"
// @Success 200 {array} resdto.DayAvailabilityResponse
// @Failure 400 {object} map[string]string
// @Router /availability [get]
func (h *AvailabilityHandler) Search(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	serviceType := patch.Coalesce(queryParam(c, "service_type"), "")

	days, err := h.availability.Search(c.Request.Context(), from, to, serviceType)
	if err != nil {
		if errors.Is(err, errs.ErrDomainValidation) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date range",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromDayAvailability(days))
}
