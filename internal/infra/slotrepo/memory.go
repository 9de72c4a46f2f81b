package slotrepo

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"slotbooker/internal/domain/slot"
	"slotbooker/internal/infra"
	"slotbooker/internal/pkg/clock"

	"github.com/google/uuid"
)

type slotRecord struct {
	mu sync.Mutex
	// deleted is set by Delete under both locks. Callers fetch records under
	// r.mu but mutate under rec.mu only; a claim that fetched the record
	// before removal must see the tombstone, not revive the slot.
	deleted      bool
	date         slot.Date
	window       slot.Window
	maxBookings  int32
	bookedCount  int32
	serviceTypes slot.ServiceTypes
	note         slot.Note
	createdAt    time.Time
	updatedAt    time.Time
}

// MemoryStore realizes the slot store contract in process. Each slot carries
// its own mutex, so claims against different slots never contend; the
// check-and-increment inside TryClaim runs entirely under the per-slot lock.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[uuid.UUID]*slotRecord
	clock clock.Clock
}

func NewMemoryStore(clock clock.Clock) *MemoryStore {
	return &MemoryStore{
		slots: make(map[uuid.UUID]*slotRecord),
		clock: clock,
	}
}

func (r *MemoryStore) Create(_ context.Context, s *slot.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.slots[s.ID()]; ok {
		return infra.WrapRepoErr("slot already exists", nil, infra.KindDuplicateKey)
	}

	now := r.clock.Now()
	r.slots[s.ID()] = &slotRecord{
		date:         s.Date(),
		window:       s.Window(),
		maxBookings:  s.MaxBookings(),
		bookedCount:  s.BookedCount(),
		serviceTypes: s.ServiceTypes(),
		note:         s.Note(),
		createdAt:    now,
		updatedAt:    now,
	}
	return nil
}

func (r *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*slot.Slot, error) {
	r.mu.RLock()
	rec, ok := r.slots[id]
	r.mu.RUnlock()
	if !ok {
		return nil, infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.deleted {
		return nil, infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	return rec.toEntity(id)
}

func (r *MemoryStore) ListByDateRange(_ context.Context, from, to slot.Date, serviceType string) ([]*slot.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*slot.Slot
	for id, rec := range r.slots {
		rec.mu.Lock()
		inRange := !rec.date.Before(from) && !rec.date.After(to)
		accepts := serviceType == "" || rec.serviceTypes.Accepts(serviceType)
		var entity *slot.Slot
		var err error
		if inRange && accepts {
			entity, err = rec.toEntity(id)
		}
		rec.mu.Unlock()

		if err != nil {
			return nil, infra.WrapRepoErr("failed to materialize slot", err)
		}
		if entity != nil {
			result = append(result, entity)
		}
	}
	return result, nil
}

func (r *MemoryStore) UpdateMetadata(_ context.Context, id uuid.UUID, note slot.Note, serviceTypes slot.ServiceTypes) error {
	r.mu.RLock()
	rec, ok := r.slots[id]
	r.mu.RUnlock()
	if !ok {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.deleted {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	rec.note = note
	rec.serviceTypes = serviceTypes
	rec.updatedAt = r.clock.Now()
	return nil
}

func (r *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.slots[id]
	if !ok {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.bookedCount > 0 {
		return infra.WrapRepoErr("slot has active bookings", nil, infra.KindConflict)
	}

	rec.deleted = true
	delete(r.slots, id)
	return nil
}

func (r *MemoryStore) TryClaim(_ context.Context, id uuid.UUID) error {
	r.mu.RLock()
	rec, ok := r.slots[id]
	r.mu.RUnlock()
	if !ok {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	return rec.claim(r.clock.Now())
}

func (r *MemoryStore) Release(_ context.Context, id uuid.UUID) error {
	r.mu.RLock()
	rec, ok := r.slots[id]
	r.mu.RUnlock()
	if !ok {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	return rec.release(r.clock.Now(), id)
}

func (rec *slotRecord) claim(now time.Time) error {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.deleted {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	if rec.bookedCount >= rec.maxBookings {
		return infra.WrapRepoErr("slot capacity exceeded", nil, infra.KindCapacityExceeded)
	}
	rec.bookedCount++
	rec.updatedAt = now
	return nil
}

func (rec *slotRecord) release(now time.Time, id uuid.UUID) error {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.deleted {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	if rec.bookedCount == 0 {
		slog.Warn("release on slot with zero booked count", "slot_id", id)
		return nil
	}
	rec.bookedCount--
	rec.updatedAt = now
	return nil
}

func (rec *slotRecord) toEntity(id uuid.UUID) (*slot.Slot, error) {
	return slot.ReconstructSlot(
		id,
		rec.date,
		rec.window,
		rec.maxBookings,
		rec.bookedCount,
		rec.serviceTypes,
		rec.note,
		rec.createdAt,
		rec.updatedAt,
	)
}
