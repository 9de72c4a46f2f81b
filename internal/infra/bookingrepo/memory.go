package bookingrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"slotbooker/internal/domain/booking"
	"slotbooker/internal/domain/slot"
	"slotbooker/internal/infra"
	"slotbooker/internal/pkg/clock"
	"slotbooker/internal/usecase/queries"

	"github.com/google/uuid"
)

type bookingRecord struct {
	slotID      uuid.UUID
	serviceType booking.ServiceType
	contact     booking.CustomerContact
	status      booking.Status
	createdAt   time.Time
	updatedAt   time.Time
}

// SlotFinder supplies slot details for booking views. The memory slot store
// satisfies it.
type SlotFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error)
}

type MemoryStore struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]*bookingRecord
	slots    SlotFinder
	clock    clock.Clock
}

func NewMemoryStore(slots SlotFinder, clock clock.Clock) *MemoryStore {
	return &MemoryStore{
		bookings: make(map[uuid.UUID]*bookingRecord),
		slots:    slots,
		clock:    clock,
	}
}

func (r *MemoryStore) Create(_ context.Context, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[b.ID()]; ok {
		return infra.WrapRepoErr("booking already exists", nil, infra.KindDuplicateKey)
	}

	now := r.clock.Now()
	r.bookings[b.ID()] = &bookingRecord{
		slotID:      b.SlotID(),
		serviceType: b.ServiceType(),
		contact:     b.Contact(),
		status:      b.Status(),
		createdAt:   now,
		updatedAt:   now,
	}
	return nil
}

func (r *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	return booking.ReconstructBooking(id, rec.slotID, rec.serviceType, rec.contact, rec.status, rec.createdAt, rec.updatedAt)
}

func (r *MemoryStore) UpdateStatus(_ context.Context, id uuid.UUID, status booking.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.bookings[id]
	if !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	rec.status = status
	rec.updatedAt = r.clock.Now()
	return nil
}

// Cancel checks and transitions under the store lock, so concurrent cancels
// of the same booking resolve to exactly one winner.
func (r *MemoryStore) Cancel(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.bookings[id]
	if !ok {
		return false, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	if rec.status == booking.StatusCancelled {
		return false, nil
	}

	rec.status = booking.StatusCancelled
	rec.updatedAt = r.clock.Now()
	return true, nil
}

// MemoryReadStore projects booking views from the same records.
type MemoryReadStore struct {
	store *MemoryStore
}

func NewMemoryReadStore(store *MemoryStore) *MemoryReadStore {
	return &MemoryReadStore{store: store}
}

func (r *MemoryReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	r.store.mu.RLock()
	rec, ok := r.store.bookings[id]
	r.store.mu.RUnlock()
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	return r.toView(ctx, id, rec)
}

func (r *MemoryReadStore) FindByCustomerEmail(ctx context.Context, email string) ([]*queries.BookingView, error) {
	r.store.mu.RLock()
	matches := make(map[uuid.UUID]*bookingRecord)
	for id, rec := range r.store.bookings {
		if rec.contact.Email() == email {
			matches[id] = rec
		}
	}
	r.store.mu.RUnlock()

	result := make([]*queries.BookingView, 0, len(matches))
	for id, rec := range matches {
		view, err := r.toView(ctx, id, rec)
		if err != nil {
			return nil, err
		}
		result = append(result, view)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MemoryReadStore) toView(ctx context.Context, id uuid.UUID, rec *bookingRecord) (*queries.BookingView, error) {
	s, err := r.store.slots.FindByID(ctx, rec.slotID)
	if err != nil {
		return nil, infra.WrapRepoErr("slot for booking not found", err)
	}

	var phone, address *string
	if v := rec.contact.Phone(); v != "" {
		phone = &v
	}
	if v := rec.contact.Address(); v != "" {
		address = &v
	}

	return &queries.BookingView{
		ID:              id,
		SlotID:          rec.slotID,
		SlotDate:        s.Date().String(),
		SlotStartTime:   s.Window().Start().String(),
		SlotEndTime:     s.Window().End().String(),
		ServiceType:     rec.serviceType.String(),
		CustomerName:    rec.contact.Name(),
		CustomerEmail:   rec.contact.Email(),
		CustomerPhone:   phone,
		CustomerAddress: address,
		Status:          rec.status.String(),
		CreatedAt:       rec.createdAt,
		UpdatedAt:       rec.updatedAt,
	}, nil
}
