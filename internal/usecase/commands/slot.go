package commands

import (
	"context"

	"slotbooker/internal/domain/slot"
	"slotbooker/internal/infra"
	"slotbooker/internal/pkg/clock"
	"slotbooker/internal/pkg/errs"
	"slotbooker/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateSlotParams struct {
	Date         string
	StartTime    string
	EndTime      string
	MaxBookings  int32
	ServiceTypes []string
	Note         string
}

type UpdateSlotMetadataParams struct {
	Note         *string
	ServiceTypes *[]string
}

type SlotCommands interface {
	CreateSlot(ctx context.Context, params CreateSlotParams) (*queries.SlotView, error)
	UpdateSlotMetadata(ctx context.Context, id uuid.UUID, params UpdateSlotMetadataParams) (*queries.SlotView, error)
	// DeleteSlot removes an empty slot. A slot with active bookings is
	// refused with errs.ErrSlotHasBookings so bookings are never orphaned.
	DeleteSlot(ctx context.Context, id uuid.UUID) error
}

type slotCommandsImpl struct {
	slotRepo SlotRepository
	clock    clock.Clock
}

func NewSlotCommands(slotRepo SlotRepository, clock clock.Clock) SlotCommands {
	return &slotCommandsImpl{
		slotRepo: slotRepo,
		clock:    clock,
	}
}

func (c *slotCommandsImpl) CreateSlot(ctx context.Context, params CreateSlotParams) (*queries.SlotView, error) {
	date, err := slot.ParseDate(params.Date)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	window, err := slot.ParseWindow(params.StartTime, params.EndTime)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	entity, err := slot.NewSlot(
		c.clock.Now(),
		date,
		window,
		params.MaxBookings,
		slot.NewServiceTypes(params.ServiceTypes),
		slot.NewNote(params.Note),
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := c.slotRepo.Create(ctx, entity); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	created, err := c.slotRepo.FindByID(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return queries.SlotToView(created), nil
}

func (c *slotCommandsImpl) UpdateSlotMetadata(ctx context.Context, id uuid.UUID, params UpdateSlotMetadataParams) (*queries.SlotView, error) {
	current, err := c.slotRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrSlotNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	note := current.Note()
	if params.Note != nil {
		note = slot.NewNote(*params.Note)
	}

	serviceTypes := current.ServiceTypes()
	if params.ServiceTypes != nil {
		serviceTypes = slot.NewServiceTypes(*params.ServiceTypes)
	}

	if err := c.slotRepo.UpdateMetadata(ctx, id, note, serviceTypes); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	updated, err := c.slotRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return queries.SlotToView(updated), nil
}

func (c *slotCommandsImpl) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	if err := c.slotRepo.Delete(ctx, id); err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return errs.ErrSlotNotFound
		case infra.IsKind(err, infra.KindConflict):
			return errs.ErrSlotHasBookings
		default:
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}
	return nil
}
