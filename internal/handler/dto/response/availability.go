package response

import (
	"slotbooker/internal/usecase/queries"

	"github.com/google/uuid"
)

type AvailableSlotResponse struct {
	ID           uuid.UUID `json:"id"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	Remaining    int32     `json:"remaining"`
	ServiceTypes []string  `json:"serviceTypes"`
}

type DayAvailabilityResponse struct {
	Date  string                  `json:"date"`
	Slots []AvailableSlotResponse `json:"slots"`
}

func FromDayAvailability(days []queries.DayAvailability) []DayAvailabilityResponse {
	result := make([]DayAvailabilityResponse, len(days))
	for i, day := range days {
		slots := make([]AvailableSlotResponse, len(day.Slots))
		for j, s := range day.Slots {
			slots[j] = AvailableSlotResponse{
				ID:           s.ID,
				StartTime:    s.StartTime,
				EndTime:      s.EndTime,
				Remaining:    s.Remaining,
				ServiceTypes: s.ServiceTypes,
			}
		}
		result[i] = DayAvailabilityResponse{Date: day.Date, Slots: slots}
	}
	return result
}
