package commands

import (
	"context"
	"log/slog"

	"slotbooker/internal/domain/booking"
	"slotbooker/internal/infra"
	"slotbooker/internal/pkg/errs"
	"slotbooker/internal/usecase/queries"
	"slotbooker/internal/usecase/reserve"

	"github.com/google/uuid"
)

type CreateBookingParams struct {
	SlotID          uuid.UUID
	ServiceType     string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
}

type BookingCommands interface {
	// CreateBooking claims one unit of slot capacity and materializes the
	// claim as a booking record in requested status.
	CreateBooking(ctx context.Context, params CreateBookingParams) (*queries.BookingView, error)

	// CancelBooking is idempotent: cancelling an already cancelled booking
	// succeeds without releasing capacity again.
	CancelBooking(ctx context.Context, id uuid.UUID) error

	// ConfirmBooking is the staff acknowledgement of a requested booking.
	// It has no effect on capacity.
	ConfirmBooking(ctx context.Context, id uuid.UUID) error
}

type bookingCommandsImpl struct {
	bookingRepo    BookingRepository
	engine         reserve.Engine
	bookingQueries queries.BookingQueries
	notifier       Notifier
}

func NewBookingCommands(
	bookingRepo BookingRepository,
	engine reserve.Engine,
	bookingQueries queries.BookingQueries,
	notifier Notifier,
) BookingCommands {
	return &bookingCommandsImpl{
		bookingRepo:    bookingRepo,
		engine:         engine,
		bookingQueries: bookingQueries,
		notifier:       notifier,
	}
}

func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, params CreateBookingParams) (*queries.BookingView, error) {
	serviceType, err := booking.NewServiceType(params.ServiceType)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	contact, err := booking.NewCustomerContact(
		params.CustomerName,
		params.CustomerEmail,
		params.CustomerPhone,
		params.CustomerAddress,
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	// Reserve is the prepare step; persisting the booking is the commit. The
	// two stores share no transaction, so a failed commit must run the
	// explicit abort below.
	if err := c.engine.Reserve(ctx, params.SlotID, serviceType.String()); err != nil {
		return nil, err
	}

	entity := booking.NewBooking(params.SlotID, serviceType, contact)

	if err := c.bookingRepo.Create(ctx, entity); err != nil {
		c.compensateRelease(ctx, params.SlotID)
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if notifyErr := c.notifier.BookingCreated(ctx, entity); notifyErr != nil {
		slog.Warn("booking created notification failed",
			"booking_id", entity.ID(), "error", notifyErr.Error())
	}

	// Read-after-write: return the full view including slot details
	view, err := c.bookingQueries.GetByID(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return view, nil
}

func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, id uuid.UUID) error {
	entity, err := c.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrBookingNotFound
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	// The store transition is the serialization point: of any number of
	// concurrent cancels of the same booking, exactly one sees the
	// requested-to-cancelled edge and releases capacity. Marking cancelled
	// before releasing means a crash between the two strands one unit of
	// capacity instead of risking a double booking; reconciliation can
	// recompute booked counts from live booking rows.
	cancelled, err := c.bookingRepo.Cancel(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrBookingNotFound
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !cancelled {
		// Already cancelled: the capacity was released the first time.
		return nil
	}

	if err := c.engine.Release(ctx, entity.SlotID()); err != nil {
		slog.Error("capacity release after cancellation failed, unit stranded until reconciliation",
			"booking_id", id, "slot_id", entity.SlotID(), "error", err.Error())
	}

	if notifyErr := c.notifier.BookingCancelled(ctx, entity); notifyErr != nil {
		slog.Warn("booking cancelled notification failed",
			"booking_id", id, "error", notifyErr.Error())
	}

	return nil
}

func (c *bookingCommandsImpl) ConfirmBooking(ctx context.Context, id uuid.UUID) error {
	entity, err := c.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrBookingNotFound
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := entity.Confirm(); err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := c.bookingRepo.UpdateStatus(ctx, id, booking.StatusConfirmed); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return nil
}

func (c *bookingCommandsImpl) compensateRelease(ctx context.Context, slotID uuid.UUID) {
	if err := c.engine.Release(ctx, slotID); err != nil {
		slog.Error("compensating release failed, capacity unit stranded",
			"slot_id", slotID, "error", err.Error())
	}
}
