package response

import (
	"time"

	"slotbooker/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	SlotID          uuid.UUID `json:"slotId"`
	SlotDate        string    `json:"slotDate"`
	SlotStartTime   string    `json:"slotStartTime"`
	SlotEndTime     string    `json:"slotEndTime"`
	ServiceType     string    `json:"serviceType"`
	CustomerName    string    `json:"customerName"`
	CustomerEmail   string    `json:"customerEmail"`
	CustomerPhone   *string   `json:"customerPhone,omitempty"`
	CustomerAddress *string   `json:"customerAddress,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	result := make([]*BookingResponse, len(views))
	for i, view := range views {
		result[i] = FromBookingView(view)
	}
	return result
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:              view.ID,
		SlotID:          view.SlotID,
		SlotDate:        view.SlotDate,
		SlotStartTime:   view.SlotStartTime,
		SlotEndTime:     view.SlotEndTime,
		ServiceType:     view.ServiceType,
		CustomerName:    view.CustomerName,
		CustomerEmail:   view.CustomerEmail,
		CustomerPhone:   view.CustomerPhone,
		CustomerAddress: view.CustomerAddress,
		Status:          view.Status,
		CreatedAt:       view.CreatedAt,
		UpdatedAt:       view.UpdatedAt,
	}
}
