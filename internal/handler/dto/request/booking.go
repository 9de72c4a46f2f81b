package request

import (
	"slotbooker/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	SlotID          uuid.UUID `json:"slotId" binding:"required"`
	ServiceType     string    `json:"serviceType" binding:"required"`
	CustomerName    string    `json:"customerName" binding:"required"`
	CustomerEmail   string    `json:"customerEmail" binding:"required"`
	CustomerPhone   string    `json:"customerPhone"`
	CustomerAddress string    `json:"customerAddress"`
}

func (r CreateBookingRequest) ToParams() commands.CreateBookingParams {
	return commands.CreateBookingParams{
		SlotID:          r.SlotID,
		ServiceType:     r.ServiceType,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		CustomerAddress: r.CustomerAddress,
	}
}
