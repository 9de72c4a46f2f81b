package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus    = errors.New("invalid booking status")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
)

type Booking struct {
	id          uuid.UUID
	slotID      uuid.UUID
	serviceType ServiceType
	contact     CustomerContact
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

func NewBooking(slotID uuid.UUID, serviceType ServiceType, contact CustomerContact) *Booking {
	return &Booking{
		id:          uuid.New(),
		slotID:      slotID,
		serviceType: serviceType,
		contact:     contact,
		status:      StatusRequested,
	}
}

func ReconstructBooking(
	id, slotID uuid.UUID,
	serviceType ServiceType,
	contact CustomerContact,
	status Status,
	createdAt, updatedAt time.Time,
) (*Booking, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Booking{
		id:          id,
		slotID:      slotID,
		serviceType: serviceType,
		contact:     contact,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

// Cancel transitions the booking into cancelled. Cancelling an already
// cancelled booking returns ErrAlreadyCancelled so the caller can treat it as
// an idempotent no-op without releasing capacity twice.
func (b *Booking) Cancel() error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	b.status = StatusCancelled
	return nil
}

func (b *Booking) Confirm() error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	b.status = StatusConfirmed
	return nil
}

func (b *Booking) HoldsCapacity() bool {
	return b.status.HoldsCapacity()
}

func (b *Booking) IsCancelled() bool {
	return b.status == StatusCancelled
}

func (b *Booking) ID() uuid.UUID            { return b.id }
func (b *Booking) SlotID() uuid.UUID        { return b.slotID }
func (b *Booking) ServiceType() ServiceType { return b.serviceType }
func (b *Booking) Contact() CustomerContact { return b.contact }
func (b *Booking) Status() Status           { return b.status }
func (b *Booking) CreatedAt() time.Time     { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time     { return b.updatedAt }
