package slot

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNonPositiveCapacity = errors.New("max bookings must be positive")
	ErrDateInPast          = errors.New("slot date cannot be in the past")
	ErrCapacityCorrupted   = errors.New("booked count outside capacity bounds")
)

type Slot struct {
	id           uuid.UUID
	date         Date
	window       Window
	maxBookings  int32
	bookedCount  int32
	serviceTypes ServiceTypes
	note         Note
	createdAt    time.Time
	updatedAt    time.Time
}

func NewSlot(
	now time.Time,
	date Date,
	window Window,
	maxBookings int32,
	serviceTypes ServiceTypes,
	note Note,
) (*Slot, error) {
	if maxBookings <= 0 {
		return nil, ErrNonPositiveCapacity
	}
	if date.Before(NewDate(now)) {
		return nil, ErrDateInPast
	}

	return &Slot{
		id:           uuid.New(),
		date:         date,
		window:       window,
		maxBookings:  maxBookings,
		bookedCount:  0,
		serviceTypes: serviceTypes,
		note:         note,
	}, nil
}

func ReconstructSlot(
	id uuid.UUID,
	date Date,
	window Window,
	maxBookings, bookedCount int32,
	serviceTypes ServiceTypes,
	note Note,
	createdAt, updatedAt time.Time,
) (*Slot, error) {
	if bookedCount < 0 || bookedCount > maxBookings {
		return nil, ErrCapacityCorrupted
	}
	return &Slot{
		id:           id,
		date:         date,
		window:       window,
		maxBookings:  maxBookings,
		bookedCount:  bookedCount,
		serviceTypes: serviceTypes,
		note:         note,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (s *Slot) HasCapacity() bool {
	return s.bookedCount < s.maxBookings
}

func (s *Slot) Remaining() int32 {
	return s.maxBookings - s.bookedCount
}

func (s *Slot) AcceptsServiceType(serviceType string) bool {
	return s.serviceTypes.Accepts(serviceType)
}

// IsAvailableFor reports whether a customer requesting the given service
// type could book this slot today. An empty serviceType expresses no
// preference and matches any slot. Availability is always derived, never
// stored.
func (s *Slot) IsAvailableFor(serviceType string, today Date) bool {
	if !s.HasCapacity() || s.date.Before(today) {
		return false
	}
	return serviceType == "" || s.AcceptsServiceType(serviceType)
}

func (s *Slot) IsEmpty() bool {
	return s.bookedCount == 0
}

func (s *Slot) ID() uuid.UUID              { return s.id }
func (s *Slot) Date() Date                 { return s.date }
func (s *Slot) Window() Window             { return s.window }
func (s *Slot) MaxBookings() int32         { return s.maxBookings }
func (s *Slot) BookedCount() int32         { return s.bookedCount }
func (s *Slot) ServiceTypes() ServiceTypes { return s.serviceTypes }
func (s *Slot) Note() Note                 { return s.note }
func (s *Slot) CreatedAt() time.Time       { return s.createdAt }
func (s *Slot) UpdatedAt() time.Time       { return s.updatedAt }
