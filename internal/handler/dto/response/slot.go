package response

import (
	"time"

	"slotbooker/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotResponse struct {
	ID           uuid.UUID `json:"id"`
	Date         string    `json:"date"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	MaxBookings  int32     `json:"maxBookings"`
	BookedCount  int32     `json:"bookedCount"`
	ServiceTypes []string  `json:"serviceTypes"`
	Note         *string   `json:"note,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func FromSlotView(view *queries.SlotView) *SlotResponse {
	return &SlotResponse{
		ID:           view.ID,
		Date:         view.Date,
		StartTime:    view.StartTime,
		EndTime:      view.EndTime,
		MaxBookings:  view.MaxBookings,
		BookedCount:  view.BookedCount,
		ServiceTypes: view.ServiceTypes,
		Note:         view.Note,
		CreatedAt:    view.CreatedAt,
		UpdatedAt:    view.UpdatedAt,
	}
}
