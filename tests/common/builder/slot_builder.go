package builder

import (
	"time"

	"slotbooker/internal/domain/slot"
)

// SlotBuilder assembles valid slot entities for tests; mutate individual
// fields to drive validation cases.
type SlotBuilder struct {
	now          time.Time
	date         string
	startTime    string
	endTime      string
	maxBookings  int32
	serviceTypes []string
	note         string
}

func NewSlotBuilder() *SlotBuilder {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &SlotBuilder{
		now:          now,
		date:         "2026-03-11",
		startTime:    "10:00",
		endTime:      "11:00",
		maxBookings:  2,
		serviceTypes: []string{"installation"},
		note:         "",
	}
}

func (b *SlotBuilder) WithNow(now time.Time) *SlotBuilder {
	b.now = now
	return b
}

func (b *SlotBuilder) WithDate(date string) *SlotBuilder {
	b.date = date
	return b
}

func (b *SlotBuilder) WithWindow(start, end string) *SlotBuilder {
	b.startTime = start
	b.endTime = end
	return b
}

func (b *SlotBuilder) WithMaxBookings(max int32) *SlotBuilder {
	b.maxBookings = max
	return b
}

func (b *SlotBuilder) WithServiceTypes(tags ...string) *SlotBuilder {
	b.serviceTypes = tags
	return b
}

func (b *SlotBuilder) WithNote(note string) *SlotBuilder {
	b.note = note
	return b
}

func (b *SlotBuilder) BuildDomain() (*slot.Slot, error) {
	date, err := slot.ParseDate(b.date)
	if err != nil {
		return nil, err
	}

	window, err := slot.ParseWindow(b.startTime, b.endTime)
	if err != nil {
		return nil, err
	}

	return slot.NewSlot(
		b.now,
		date,
		window,
		b.maxBookings,
		slot.NewServiceTypes(b.serviceTypes),
		slot.NewNote(b.note),
	)
}
