package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisense-health/scheduler/internal/application/services"
	"github.com/medisense-health/scheduler/internal/domain/entities"
	apperrors "github.com/medisense-health/scheduler/pkg/errors"
)

func slotAt(clock string) entities.TimeSlot {
	return entities.TimeSlot{
		Date:     "2025-06-15",
		Time:     clock,
		Type:     entities.SlotTypeStandard,
		Duration: "30 min",
	}
}

func TestRankingService_SelectNearest(t *testing.T) {
	ranking := services.NewRankingService()

	t.Run("chooses minimum distance", func(t *testing.T) {
		hospitals := []entities.Hospital{
			{Name: "Far", DistanceKm: 5.0},
			{Name: "Near", DistanceKm: 1.2},
			{Name: "Middle", DistanceKm: 3.3},
		}

		nearest, err := ranking.SelectNearest(hospitals)
		require.NoError(t, err)
		assert.Equal(t, "Near", nearest.Name)

		for _, h := range hospitals {
			assert.LessOrEqual(t, nearest.DistanceKm, h.DistanceKm)
		}
	})

	t.Run("ties resolve to earliest index", func(t *testing.T) {
		hospitals := []entities.Hospital{
			{Name: "First", DistanceKm: 2.0},
			{Name: "Second", DistanceKm: 2.0},
		}

		nearest, err := ranking.SelectNearest(hospitals)
		require.NoError(t, err)
		assert.Equal(t, "First", nearest.Name)
	})

	t.Run("deterministic for a given order", func(t *testing.T) {
		hospitals := []entities.Hospital{
			{Name: "B", DistanceKm: 4.0},
			{Name: "A", DistanceKm: 1.0},
		}

		for i := 0; i < 5; i++ {
			nearest, err := ranking.SelectNearest(hospitals)
			require.NoError(t, err)
			assert.Equal(t, "A", nearest.Name)
		}
	})

	t.Run("empty list yields no-candidates error", func(t *testing.T) {
		_, err := ranking.SelectNearest(nil)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNoCandidates))
	})
}

func TestRankingService_SelectEarliestSlot(t *testing.T) {
	ranking := services.NewRankingService()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)

	t.Run("chooses minimum parsed time", func(t *testing.T) {
		hospital := &entities.Hospital{
			Slots: []entities.TimeSlot{slotAt("02:00 PM"), slotAt("09:00 AM"), slotAt("11:30 AM")},
		}

		slot := ranking.SelectEarliestSlot(hospital, now)
		assert.Equal(t, "09:00 AM", slot.Time)
	})

	t.Run("ties resolve to earliest index", func(t *testing.T) {
		first := slotAt("09:00 AM")
		first.ID = "tie-1"
		second := slotAt("09:00 AM")
		second.ID = "tie-2"

		hospital := &entities.Hospital{
			Slots: []entities.TimeSlot{slotAt("02:00 PM"), first, second},
		}

		slot := ranking.SelectEarliestSlot(hospital, now)
		assert.Equal(t, "tie-1", slot.ID)
	})

	t.Run("unparseable time falls back to first slot", func(t *testing.T) {
		first := slotAt("02:00 PM")
		first.ID = "first"
		broken := slotAt("25:99")

		hospital := &entities.Hospital{
			Slots: []entities.TimeSlot{first, broken, slotAt("09:00 AM")},
		}

		slot := ranking.SelectEarliestSlot(hospital, now)
		assert.Equal(t, "first", slot.ID)
	})

	t.Run("empty slot list synthesizes default", func(t *testing.T) {
		slot := ranking.SelectEarliestSlot(&entities.Hospital{}, now)

		assert.Equal(t, "999", slot.ID)
		assert.Equal(t, "2025-06-15", slot.Date)
		assert.Equal(t, "09:00 AM", slot.Time)
		assert.Equal(t, entities.SlotTypeStandard, slot.Type)
		assert.Equal(t, "30 min", slot.Duration)
	})
}

func TestRankingService_Choose(t *testing.T) {
	ranking := services.NewRankingService()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)

	hospitals := []entities.Hospital{
		{Name: "Far", DistanceKm: 7.0, Slots: []entities.TimeSlot{slotAt("08:00 AM")}},
		{Name: "Near", DistanceKm: 0.9, Slots: []entities.TimeSlot{slotAt("02:00 PM"), slotAt("10:00 AM")}},
	}

	hospital, slot, err := ranking.Choose(hospitals, now)
	require.NoError(t, err)

	assert.Equal(t, "Near", hospital.Name)
	assert.Equal(t, "10:00 AM", slot.Time)
}
