//go:build unit

package slotrepo

import (
	"context"
	"testing"
	"time"

	"slotbooker/internal/infra"
	"slotbooker/internal/pkg/clock"
	"slotbooker/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A claim can fetch its record under the map lock and then lose the record
// lock to a completing Delete. The late claim must see the tombstone instead
// of incrementing an orphaned record.
func TestClaimRacingDeleteSeesTombstone(t *testing.T) {
	ctx := context.Background()
	mc := clock.NewMockClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	store := NewMemoryStore(mc)

	s, err := builder.NewSlotBuilder().BuildDomain()
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, s))

	// the claimer's map fetch, before Delete removes the entry
	store.mu.RLock()
	rec := store.slots[s.ID()]
	store.mu.RUnlock()

	require.NoError(t, store.Delete(ctx, s.ID()))

	err = rec.claim(mc.Now())
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
	assert.Zero(t, rec.bookedCount)

	err = rec.release(mc.Now(), s.ID())
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}
