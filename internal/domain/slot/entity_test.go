//go:build unit

package slot_test

import (
	"testing"
	"time"

	"slotbooker/internal/domain/slot"
	"slotbooker/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.SlotBuilder)
	errIs  error
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewSlotBuilder()
			if tc.mutate != nil {
				tc.mutate(b)
			}
			actual, err := b.BuildDomain()
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, actual)
		})
	}
}

func TestSlot(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewSlotBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "2026-03-11", actual.Date().String())
		assert.Equal(t, "10:00", actual.Window().Start().String())
		assert.Equal(t, "11:00", actual.Window().End().String())
		assert.Equal(t, int32(2), actual.MaxBookings())
		assert.Equal(t, int32(0), actual.BookedCount())
		assert.True(t, actual.IsEmpty())
		assert.True(t, actual.HasCapacity())
	})

	t.Run("capacity validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "minimum valid capacity",
				mutate: func(b *builder.SlotBuilder) { b.WithMaxBookings(1) },
			},
			{
				name:   "zero capacity",
				mutate: func(b *builder.SlotBuilder) { b.WithMaxBookings(0) },
				errIs:  slot.ErrNonPositiveCapacity,
			},
			{
				name:   "negative capacity",
				mutate: func(b *builder.SlotBuilder) { b.WithMaxBookings(-3) },
				errIs:  slot.ErrNonPositiveCapacity,
			},
		})
	})

	t.Run("date validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "today is allowed",
				mutate: func(b *builder.SlotBuilder) { b.WithDate("2026-03-10") },
			},
			{
				name:   "yesterday is rejected",
				mutate: func(b *builder.SlotBuilder) { b.WithDate("2026-03-09") },
				errIs:  slot.ErrDateInPast,
			},
			{
				name:   "malformed date",
				mutate: func(b *builder.SlotBuilder) { b.WithDate("11-03-2026") },
				errIs:  slot.ErrInvalidDate,
			},
		})
	})

	t.Run("window validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "start equals end",
				mutate: func(b *builder.SlotBuilder) { b.WithWindow("10:00", "10:00") },
				errIs:  slot.ErrInvalidWindow,
			},
			{
				name:   "start after end",
				mutate: func(b *builder.SlotBuilder) { b.WithWindow("11:00", "10:00") },
				errIs:  slot.ErrInvalidWindow,
			},
			{
				name:   "malformed start time",
				mutate: func(b *builder.SlotBuilder) { b.WithWindow("25:99", "10:00") },
				errIs:  slot.ErrInvalidTimeOfDay,
			},
		})
	})
}

func TestSlotAvailability(t *testing.T) {
	today, err := slot.ParseDate("2026-03-10")
	require.NoError(t, err)

	t.Run("available for accepted service type", func(t *testing.T) {
		s, err := builder.NewSlotBuilder().WithServiceTypes("installation", "repair").BuildDomain()
		require.NoError(t, err)

		assert.True(t, s.IsAvailableFor("installation", today))
		assert.True(t, s.IsAvailableFor("repair", today))
		assert.False(t, s.IsAvailableFor("maintenance", today))
	})

	t.Run("empty service type set accepts anything", func(t *testing.T) {
		s, err := builder.NewSlotBuilder().WithServiceTypes().BuildDomain()
		require.NoError(t, err)

		assert.True(t, s.IsAvailableFor("anything", today))
	})

	t.Run("empty requested type matches tagged slots", func(t *testing.T) {
		s, err := builder.NewSlotBuilder().WithServiceTypes("installation").BuildDomain()
		require.NoError(t, err)

		assert.True(t, s.IsAvailableFor("", today))
	})

	t.Run("not available once date has passed", func(t *testing.T) {
		s, err := builder.NewSlotBuilder().WithDate("2026-03-11").BuildDomain()
		require.NoError(t, err)

		later, err := slot.ParseDate("2026-03-12")
		require.NoError(t, err)
		assert.False(t, s.IsAvailableFor("installation", later))
	})
}

func TestReconstructSlot(t *testing.T) {
	date, err := slot.ParseDate("2026-03-11")
	require.NoError(t, err)
	window, err := slot.ParseWindow("10:00", "11:00")
	require.NoError(t, err)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("full slot reports no capacity", func(t *testing.T) {
		s, err := slot.ReconstructSlot(uuid.New(), date, window, 2, 2, slot.NewServiceTypes(nil), slot.NewNote(""), now, now)
		require.NoError(t, err)

		assert.False(t, s.HasCapacity())
		assert.Equal(t, int32(0), s.Remaining())
		assert.False(t, s.IsAvailableFor("installation", slot.NewDate(now)))
	})

	t.Run("booked count above ceiling is rejected", func(t *testing.T) {
		_, err := slot.ReconstructSlot(uuid.New(), date, window, 2, 3, slot.NewServiceTypes(nil), slot.NewNote(""), now, now)
		require.ErrorIs(t, err, slot.ErrCapacityCorrupted)
	})

	t.Run("negative booked count is rejected", func(t *testing.T) {
		_, err := slot.ReconstructSlot(uuid.New(), date, window, 2, -1, slot.NewServiceTypes(nil), slot.NewNote(""), now, now)
		require.ErrorIs(t, err, slot.ErrCapacityCorrupted)
	})
}
