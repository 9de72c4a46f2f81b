package reserve

import (
	"context"
	"log/slog"

	"slotbooker/internal/domain/slot"
	"slotbooker/internal/infra"
	"slotbooker/internal/pkg/clock"
	"slotbooker/internal/pkg/errs"

	"github.com/google/uuid"
)

// ClaimStore is the capacity side of the slot store. The claim primitives are
// deliberately absent from the catalog-facing repository interface: this
// package is the only consumer, so booked counts cannot be mutated anywhere
// else.
//
// TryClaim must behave as a single indivisible compare-and-increment against
// concurrent callers on the same slot: "if bookedCount < maxBookings then
// increment, else fail" in one atomic step. Release is the symmetric
// decrement, clamped at zero.
type ClaimStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error)
	TryClaim(ctx context.Context, id uuid.UUID) error
	Release(ctx context.Context, id uuid.UUID) error
}

// Engine is the sole authority for changing a slot's booked count.
type Engine interface {
	// Reserve claims one unit of the slot's capacity. It fails with
	// errs.ErrSlotNotFound, errs.ErrSlotInPast, errs.ErrServiceTypeMismatch
	// or errs.ErrSlotFull; any other error is an infrastructure failure.
	Reserve(ctx context.Context, slotID uuid.UUID, serviceType string) error

	// Release returns one unit of capacity. Idempotent: releasing a slot with
	// no outstanding claim logs a warning and succeeds, and never drives the
	// booked count negative.
	Release(ctx context.Context, slotID uuid.UUID) error
}

type engineImpl struct {
	store ClaimStore
	clock clock.Clock
}

func NewEngine(store ClaimStore, clock clock.Clock) Engine {
	return &engineImpl{
		store: store,
		clock: clock,
	}
}

func (e *engineImpl) Reserve(ctx context.Context, slotID uuid.UUID, serviceType string) error {
	target, err := e.store.FindByID(ctx, slotID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrSlotNotFound
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	today := slot.NewDate(e.clock.Now())
	if target.Date().Before(today) {
		return errs.ErrSlotInPast
	}

	if !target.AcceptsServiceType(serviceType) {
		return errs.ErrServiceTypeMismatch
	}

	// The compatibility checks above are advisory reads; the capacity check
	// and increment happen in one atomic store operation. Two racing requests
	// for the last unit both reach TryClaim and exactly one wins.
	if err := e.store.TryClaim(ctx, slotID); err != nil {
		switch {
		case infra.IsKind(err, infra.KindCapacityExceeded):
			return errs.ErrSlotFull
		case infra.IsKind(err, infra.KindNotFound):
			return errs.ErrSlotNotFound
		default:
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}

	return nil
}

func (e *engineImpl) Release(ctx context.Context, slotID uuid.UUID) error {
	if err := e.store.Release(ctx, slotID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			slog.Warn("release against unknown slot", "slot_id", slotID)
			return nil
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}
