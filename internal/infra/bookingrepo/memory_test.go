//go:build unit

package bookingrepo_test

import (
	"context"
	"testing"
	"time"

	"slotbooker/internal/domain/booking"
	"slotbooker/internal/infra"
	"slotbooker/internal/infra/bookingrepo"
	"slotbooker/internal/infra/slotrepo"
	"slotbooker/internal/pkg/clock"
	"slotbooker/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoreWithBooking(t *testing.T) (*bookingrepo.MemoryStore, uuid.UUID) {
	t.Helper()

	mc := clock.NewMockClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	store := bookingrepo.NewMemoryStore(slotrepo.NewMemoryStore(mc), mc)

	b, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), b))
	return store, b.ID()
}

func TestMemoryStoreCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("first cancel wins the transition", func(t *testing.T) {
		store, id := newStoreWithBooking(t)

		cancelled, err := store.Cancel(ctx, id)
		require.NoError(t, err)
		assert.True(t, cancelled)

		b, err := store.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("repeat cancel reports no transition", func(t *testing.T) {
		store, id := newStoreWithBooking(t)

		cancelled, err := store.Cancel(ctx, id)
		require.NoError(t, err)
		require.True(t, cancelled)

		cancelled, err = store.Cancel(ctx, id)
		require.NoError(t, err)
		assert.False(t, cancelled)
	})

	t.Run("unknown booking", func(t *testing.T) {
		store, _ := newStoreWithBooking(t)

		_, err := store.Cancel(ctx, uuid.New())
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}
