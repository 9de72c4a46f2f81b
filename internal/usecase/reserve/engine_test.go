//go:build unit

package reserve_test

import (
	"context"
	"testing"
	"time"

	"slotbooker/internal/infra/slotrepo"
	"slotbooker/internal/pkg/clock"
	"slotbooker/internal/pkg/errs"
	"slotbooker/internal/usecase/reserve"
	"slotbooker/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type engineFixture struct {
	engine reserve.Engine
	store  *slotrepo.MemoryStore
	clock  *clock.MockClock
}

func newEngineFixture() *engineFixture {
	mc := clock.NewMockClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	store := slotrepo.NewMemoryStore(mc)
	return &engineFixture{
		engine: reserve.NewEngine(store, mc),
		store:  store,
		clock:  mc,
	}
}

func (f *engineFixture) seed(t *testing.T, mutate func(*builder.SlotBuilder)) uuid.UUID {
	t.Helper()
	b := builder.NewSlotBuilder()
	if mutate != nil {
		mutate(b)
	}
	s, err := b.BuildDomain()
	require.NoError(t, err)
	require.NoError(t, f.store.Create(context.Background(), s))
	return s.ID()
}

func TestEngineReserve(t *testing.T) {
	ctx := context.Background()

	t.Run("claims one unit on success", func(t *testing.T) {
		f := newEngineFixture()
		id := f.seed(t, nil)

		require.NoError(t, f.engine.Reserve(ctx, id, "installation"))

		found, err := f.store.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int32(1), found.BookedCount())
	})

	t.Run("unknown slot", func(t *testing.T) {
		f := newEngineFixture()
		err := f.engine.Reserve(ctx, uuid.New(), "installation")
		require.ErrorIs(t, err, errs.ErrSlotNotFound)
	})

	t.Run("slot date has passed", func(t *testing.T) {
		f := newEngineFixture()
		id := f.seed(t, nil)

		f.clock.Set(time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC))

		err := f.engine.Reserve(ctx, id, "installation")
		require.ErrorIs(t, err, errs.ErrSlotInPast)
	})

	t.Run("reservable on the slot's own date", func(t *testing.T) {
		f := newEngineFixture()
		id := f.seed(t, nil)

		f.clock.Set(time.Date(2026, 3, 11, 23, 0, 0, 0, time.UTC))

		require.NoError(t, f.engine.Reserve(ctx, id, "installation"))
	})

	t.Run("service type not accepted", func(t *testing.T) {
		f := newEngineFixture()
		id := f.seed(t, func(b *builder.SlotBuilder) { b.WithServiceTypes("repair") })

		err := f.engine.Reserve(ctx, id, "installation")
		require.ErrorIs(t, err, errs.ErrServiceTypeMismatch)

		// a rejected reserve must not consume capacity
		found, err := f.store.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int32(0), found.BookedCount())
	})

	t.Run("open service type set accepts anything", func(t *testing.T) {
		f := newEngineFixture()
		id := f.seed(t, func(b *builder.SlotBuilder) { b.WithServiceTypes() })

		require.NoError(t, f.engine.Reserve(ctx, id, "maintenance"))
	})

	t.Run("full slot", func(t *testing.T) {
		f := newEngineFixture()
		id := f.seed(t, func(b *builder.SlotBuilder) { b.WithMaxBookings(1) })

		require.NoError(t, f.engine.Reserve(ctx, id, "installation"))
		err := f.engine.Reserve(ctx, id, "installation")
		require.ErrorIs(t, err, errs.ErrSlotFull)
	})
}

func TestEngineRelease(t *testing.T) {
	ctx := context.Background()

	t.Run("returns a claimed unit", func(t *testing.T) {
		f := newEngineFixture()
		id := f.seed(t, func(b *builder.SlotBuilder) { b.WithMaxBookings(1) })

		require.NoError(t, f.engine.Reserve(ctx, id, "installation"))
		require.NoError(t, f.engine.Release(ctx, id))
		require.NoError(t, f.engine.Reserve(ctx, id, "installation"))
	})

	t.Run("release with no outstanding claim succeeds", func(t *testing.T) {
		f := newEngineFixture()
		id := f.seed(t, nil)

		require.NoError(t, f.engine.Release(ctx, id))

		found, err := f.store.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int32(0), found.BookedCount())
	})

	t.Run("release against unknown slot succeeds", func(t *testing.T) {
		f := newEngineFixture()
		require.NoError(t, f.engine.Release(ctx, uuid.New()))
	})
}
