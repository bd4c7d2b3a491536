package services

import (
	"time"

	"github.com/medisense-health/scheduler/internal/domain/entities"
	apperrors "github.com/medisense-health/scheduler/pkg/errors"
	"github.com/medisense-health/scheduler/pkg/timeutil"
)

// RankingService picks the hospital and slot for automatic booking. Both
// selections are stable left-to-right folds, so the result is identical for
// a given candidate order.
type RankingService struct{}

// NewRankingService creates a new ranking service
func NewRankingService() *RankingService {
	return &RankingService{}
}

// SelectNearest returns the candidate with the minimum distance. Ties keep
// the earliest list index. An empty list yields a NO_CANDIDATES error, which
// the workflow recovers from by returning to mode selection.
func (s *RankingService) SelectNearest(hospitals []entities.Hospital) (*entities.Hospital, error) {
	if len(hospitals) == 0 {
		return nil, apperrors.NewNoCandidatesError("no hospital candidates available")
	}

	nearest := &hospitals[0]
	for i := 1; i < len(hospitals); i++ {
		if hospitals[i].DistanceKm < nearest.DistanceKm {
			nearest = &hospitals[i]
		}
	}
	return nearest, nil
}

// SelectEarliestSlot returns the slot with the minimum parsed clock time,
// ties keeping the earliest list index. An unparseable slot time anywhere in
// the list falls back to the first slot; an empty list synthesizes a default
// slot dated today so automatic booking can always complete.
func (s *RankingService) SelectEarliestSlot(hospital *entities.Hospital, now time.Time) entities.TimeSlot {
	if len(hospital.Slots) == 0 {
		return fallbackSlot(now)
	}

	earliest := hospital.Slots[0]
	earliestMinutes, err := timeutil.ParseClockTime(earliest.Time)
	if err != nil {
		return hospital.Slots[0]
	}

	for _, slot := range hospital.Slots[1:] {
		minutes, err := timeutil.ParseClockTime(slot.Time)
		if err != nil {
			return hospital.Slots[0]
		}
		if minutes < earliestMinutes {
			earliest = slot
			earliestMinutes = minutes
		}
	}
	return earliest
}

// Choose runs both selections for automatic booking.
func (s *RankingService) Choose(hospitals []entities.Hospital, now time.Time) (*entities.Hospital, entities.TimeSlot, error) {
	nearest, err := s.SelectNearest(hospitals)
	if err != nil {
		return nil, entities.TimeSlot{}, err
	}
	return nearest, s.SelectEarliestSlot(nearest, now), nil
}

func fallbackSlot(now time.Time) entities.TimeSlot {
	return entities.TimeSlot{
		ID:       "999",
		Date:     timeutil.FormatSlotDate(now),
		Time:     "09:00 AM",
		Type:     entities.SlotTypeStandard,
		Duration: "30 min",
	}
}
