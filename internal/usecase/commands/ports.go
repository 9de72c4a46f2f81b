package commands

import (
	"context"

	"slotbooker/internal/domain/booking"
	"slotbooker/internal/domain/slot"

	"github.com/google/uuid"
)

// SlotRepository is the catalog-facing write surface of the slot store. It
// carries no capacity primitives; those belong to the reservation engine's
// claim store (internal/usecase/reserve).
type SlotRepository interface {
	Create(ctx context.Context, s *slot.Slot) error
	FindByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error)
	UpdateMetadata(ctx context.Context, id uuid.UUID, note slot.Note, serviceTypes slot.ServiceTypes) error
	// Delete fails with KindConflict while the slot has active bookings and
	// KindNotFound when it does not exist. The emptiness check and the delete
	// are one atomic store operation.
	Delete(ctx context.Context, id uuid.UUID) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error
	// Cancel transitions the booking to cancelled status; the check and the
	// write are one atomic store operation. It reports false when the booking
	// was already cancelled, so of any number of concurrent cancels exactly
	// one observes the transition.
	Cancel(ctx context.Context, id uuid.UUID) (bool, error)
}

// Notifier delivers best-effort customer notifications. Failures are logged
// by callers and never roll back the triggering operation.
type Notifier interface {
	BookingCreated(ctx context.Context, b *booking.Booking) error
	BookingCancelled(ctx context.Context, b *booking.Booking) error
}
