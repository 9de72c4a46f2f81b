package builder

import (
	"slotbooker/internal/domain/booking"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	slotID      uuid.UUID
	serviceType string
	name        string
	email       string
	phone       string
	address     string
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		slotID:      uuid.New(),
		serviceType: "installation",
		name:        "Jordan Baker",
		email:       "jordan.baker@example.com",
		phone:       "+1-555-0134",
		address:     "12 Harbor Lane",
	}
}

func (b *BookingBuilder) WithSlotID(id uuid.UUID) *BookingBuilder {
	b.slotID = id
	return b
}

func (b *BookingBuilder) WithServiceType(serviceType string) *BookingBuilder {
	b.serviceType = serviceType
	return b
}

func (b *BookingBuilder) WithName(name string) *BookingBuilder {
	b.name = name
	return b
}

func (b *BookingBuilder) WithEmail(email string) *BookingBuilder {
	b.email = email
	return b
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	serviceType, err := booking.NewServiceType(b.serviceType)
	if err != nil {
		return nil, err
	}

	contact, err := booking.NewCustomerContact(b.name, b.email, b.phone, b.address)
	if err != nil {
		return nil, err
	}

	return booking.NewBooking(b.slotID, serviceType, contact), nil
}
