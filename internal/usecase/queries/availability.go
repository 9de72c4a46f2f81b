package queries

import (
	"context"
	"sort"

	"slotbooker/internal/domain/slot"
	"slotbooker/internal/pkg/clock"
	"slotbooker/internal/pkg/errs"
)

// SlotReadStore is the read path into the slot store. Results are unordered
// at this layer; ordering is applied here.
type SlotReadStore interface {
	ListByDateRange(ctx context.Context, from, to slot.Date, serviceType string) ([]*slot.Slot, error)
}

type AvailabilityQueries interface {
	// Search returns slots with spare capacity in the inclusive date range,
	// grouped by date in chronological order, slots within a date ordered by
	// start time. Dates without available slots are absent from the result.
	Search(ctx context.Context, from, to slot.Date, serviceType string) ([]DayAvailability, error)
}

type SlotQueries interface {
	ListByDateRange(ctx context.Context, from, to slot.Date, serviceType string) ([]*SlotView, error)
}

type availabilityQueriesImpl struct {
	store SlotReadStore
	clock clock.Clock
}

func NewAvailabilityQueries(store SlotReadStore, clock clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{
		store: store,
		clock: clock,
	}
}

func (q *availabilityQueriesImpl) Search(ctx context.Context, from, to slot.Date, serviceType string) ([]DayAvailability, error) {
	if to.Before(from) {
		return nil, errs.Mark(slot.ErrInvalidDate, errs.ErrDomainValidation)
	}

	slots, err := q.store.ListByDateRange(ctx, from, to, serviceType)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	today := slot.NewDate(q.clock.Now())

	byDate := make(map[string][]AvailableSlot)
	for _, s := range slots {
		if !s.IsAvailableFor(serviceType, today) {
			continue
		}
		key := s.Date().String()
		byDate[key] = append(byDate[key], AvailableSlot{
			ID:           s.ID(),
			StartTime:    s.Window().Start().String(),
			EndTime:      s.Window().End().String(),
			Remaining:    s.Remaining(),
			ServiceTypes: s.ServiceTypes().Values(),
		})
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	result := make([]DayAvailability, 0, len(dates))
	for _, date := range dates {
		daySlots := byDate[date]
		sort.Slice(daySlots, func(i, j int) bool {
			return daySlots[i].StartTime < daySlots[j].StartTime
		})
		result = append(result, DayAvailability{Date: date, Slots: daySlots})
	}

	return result, nil
}

type slotQueriesImpl struct {
	store SlotReadStore
}

func NewSlotQueries(store SlotReadStore) SlotQueries {
	return &slotQueriesImpl{store: store}
}

func (q *slotQueriesImpl) ListByDateRange(ctx context.Context, from, to slot.Date, serviceType string) ([]*SlotView, error) {
	if to.Before(from) {
		return nil, errs.Mark(slot.ErrInvalidDate, errs.ErrDomainValidation)
	}

	slots, err := q.store.ListByDateRange(ctx, from, to, serviceType)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].Date().Equal(slots[j].Date()) {
			return slots[i].Date().Before(slots[j].Date())
		}
		return slots[i].Window().Start().Before(slots[j].Window().Start())
	})

	result := make([]*SlotView, len(slots))
	for i, s := range slots {
		result[i] = SlotToView(s)
	}
	return result, nil
}

func SlotToView(s *slot.Slot) *SlotView {
	var note *string
	if !s.Note().IsEmpty() {
		v := s.Note().String()
		note = &v
	}
	return &SlotView{
		ID:           s.ID(),
		Date:         s.Date().String(),
		StartTime:    s.Window().Start().String(),
		EndTime:      s.Window().End().String(),
		MaxBookings:  s.MaxBookings(),
		BookedCount:  s.BookedCount(),
		ServiceTypes: s.ServiceTypes().Values(),
		Note:         note,
		CreatedAt:    s.CreatedAt(),
		UpdatedAt:    s.UpdatedAt(),
	}
}
