package request

import (
	"slotbooker/internal/usecase/commands"
)

type CreateSlotRequest struct {
	Date         string   `json:"date" binding:"required"`
	StartTime    string   `json:"startTime" binding:"required"`
	EndTime      string   `json:"endTime" binding:"required"`
	MaxBookings  int32    `json:"maxBookings" binding:"required"`
	ServiceTypes []string `json:"serviceTypes"`
	Note         string   `json:"note"`
}

func (r CreateSlotRequest) ToParams() commands.CreateSlotParams {
	return commands.CreateSlotParams{
		Date:         r.Date,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		MaxBookings:  r.MaxBookings,
		ServiceTypes: r.ServiceTypes,
		Note:         r.Note,
	}
}

type UpdateSlotMetadataRequest struct {
	Note         *string   `json:"note"`
	ServiceTypes *[]string `json:"serviceTypes"`
}

func (r UpdateSlotMetadataRequest) ToParams() commands.UpdateSlotMetadataParams {
	return commands.UpdateSlotMetadataParams{
		Note:         r.Note,
		ServiceTypes: r.ServiceTypes,
	}
}
