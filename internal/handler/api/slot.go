package api

import (
	"errors"
	"net/http"

	reqdto "slotbooker/internal/handler/dto/request"
	resdto "slotbooker/internal/handler/dto/response"
	"slotbooker/internal/domain/slot"
	"slotbooker/internal/pkg/errs"
	"slotbooker/internal/pkg/patch"
	"slotbooker/internal/usecase/commands"
	"slotbooker/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SlotHandler struct {
	slotCommands commands.SlotCommands
	slotQueries  queries.SlotQueries
}

func NewSlotHandler(slotCommands commands.SlotCommands, slotQueries queries.SlotQueries) *SlotHandler {
	return &SlotHandler{
		slotCommands: slotCommands,
		slotQueries:  slotQueries,
	}
}

// @Summary Create slot
// @Description Publish a bookable time window with a capacity ceiling
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSlotRequest true "Slot definition"
// @Success 201 {object} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/slots [post]
func (h *SlotHandler) CreateSlot(c *gin.Context) {
	var req reqdto.CreateSlotRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.slotCommands.CreateSlot(c.Request.Context(), req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid slot definition",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromSlotView(view))
}

// @Summary List slots
// @Description List slots in an inclusive date range, booked counts included
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Param service_type query string false "Service type filter"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Router /admin/slots [get]
func (h *SlotHandler) ListSlots(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	serviceType := patch.Coalesce(queryParam(c, "service_type"), "")

	views, err := h.slotQueries.ListByDateRange(c.Request.Context(), from, to, serviceType)
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

	response := make([]*resdto.SlotResponse, len(views))
	for i, view := range views {
		response[i] = resdto.FromSlotView(view)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Update slot metadata
// @Description Update note and accepted service types; capacity counters are untouchable here
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Param request body reqdto.UpdateSlotMetadataRequest true "Metadata patch"
// @Success 200 {object} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/slots/{id} [patch]
func (h *SlotHandler) UpdateSlotMetadata(c *gin.Context) {
	id, ok := parseSlotID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateSlotMetadataRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.slotCommands.UpdateSlotMetadata(c.Request.Context(), id, req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrSlotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Slot not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromSlotView(view))
}

// @Summary Delete slot
// @Description Delete a slot; refused while it has active bookings
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/slots/{id} [delete]
func (h *SlotHandler) DeleteSlot(c *gin.Context) {
	id, ok := parseSlotID(c)
	if !ok {
		return
	}

	if err := h.slotCommands.DeleteSlot(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, errs.ErrSlotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Slot not found",
			})
		case errors.Is(err, errs.ErrSlotHasBookings):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Slot has active bookings",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func parseSlotID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid slot ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

func parseDateRange(c *gin.Context) (slot.Date, slot.Date, bool) {
	from, err := slot.ParseDate(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid 'from' date, expected YYYY-MM-DD",
		})
		return slot.Date{}, slot.Date{}, false
	}

	to, err := slot.ParseDate(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid 'to' date, expected YYYY-MM-DD",
		})
		return slot.Date{}, slot.Date{}, false
	}

	return from, to, true
}

func queryParam(c *gin.Context, name string) *string {
	if value, ok := c.GetQuery(name); ok {
		return &value
	}
	return nil
}
