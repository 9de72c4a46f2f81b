package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

// SlotView represents read-optimized slot data for the admin catalog.
type SlotView struct {
	ID           uuid.UUID `json:"id"`
	Date         string    `json:"date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	MaxBookings  int32     `json:"max_bookings"`
	BookedCount  int32     `json:"booked_count"`
	ServiceTypes []string  `json:"service_types"`
	Note         *string   `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AvailableSlot is a customer-facing projection of a slot with spare
// capacity. Booked counts are not exposed, only what remains.
type AvailableSlot struct {
	ID           uuid.UUID `json:"id"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Remaining    int32     `json:"remaining"`
	ServiceTypes []string  `json:"service_types"`
}

// DayAvailability groups available slots under their calendar date.
type DayAvailability struct {
	Date  string          `json:"date"`
	Slots []AvailableSlot `json:"slots"`
}

// BookingView represents read-optimized booking data.
type BookingView struct {
	ID              uuid.UUID `json:"id"`
	SlotID          uuid.UUID `json:"slot_id"`
	SlotDate        string    `json:"slot_date"`
	SlotStartTime   string    `json:"slot_start_time"`
	SlotEndTime     string    `json:"slot_end_time"`
	ServiceType     string    `json:"service_type"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerPhone   *string   `json:"customer_phone,omitempty"`
	CustomerAddress *string   `json:"customer_address,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
