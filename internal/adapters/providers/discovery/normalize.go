package discovery

import (
	"fmt"
	"time"

	"github.com/medisense-health/scheduler/internal/domain/entities"
	"github.com/medisense-health/scheduler/pkg/timeutil"
)

// Defaults for fields the discovery service is allowed to omit. The response
// is loosely typed on the wire; everything entering the engine is filled in
// here so downstream code never shape-checks.
const (
	defaultName           = "Nearby Hospital"
	defaultAddress        = "Address unavailable"
	defaultSpecialization = "General Medicine"
	defaultWaitTime       = "20–40 mins"
	defaultRating         = 4.0
)

// Normalize converts the discovery service's optional-field payload into
// well-formed hospitals. Position in the response drives the synthetic ids
// and the distance fallback, so the output is deterministic for a given
// payload.
func Normalize(resp entities.DiscoveryResponse, now time.Time) []entities.Hospital {
	hospitals := make([]entities.Hospital, 0, len(resp.Hospitals))
	today := timeutil.FormatSlotDate(now)

	for i, h := range resp.Hospitals {
		hospital := entities.Hospital{
			ID:             fmt.Sprintf("%d", i+1),
			Name:           h.Name,
			Address:        h.Address,
			Specialization: h.Specialization,
			Rating:         defaultRating,
			WaitTime:       h.WaitTime,
		}

		if hospital.Name == "" {
			hospital.Name = defaultName
		}
		if hospital.Address == "" {
			hospital.Address = defaultAddress
		}
		if hospital.Specialization == "" {
			hospital.Specialization = defaultSpecialization
		}
		if hospital.WaitTime == "" {
			hospital.WaitTime = defaultWaitTime
		}
		if h.Distance != nil && *h.Distance >= 0 {
			hospital.DistanceKm = *h.Distance
		} else {
			hospital.DistanceKm = 2 + float64(i)*0.5
		}
		if h.Rating != nil {
			hospital.Rating = *h.Rating
		}
		if h.ReviewCount != nil {
			hospital.ReviewCount = *h.ReviewCount
		}

		if len(h.AvailableSlots) > 0 {
			hospital.Slots = normalizeSlots(h.AvailableSlots, today)
		} else {
			hospital.Slots = defaultSlots(i, today)
		}

		hospitals = append(hospitals, hospital)
	}

	return hospitals
}

func normalizeSlots(slots []entities.DiscoverySlot, today string) []entities.TimeSlot {
	out := make([]entities.TimeSlot, 0, len(slots))
	for j, s := range slots {
		slot := entities.TimeSlot{
			ID:       s.ID,
			Date:     s.Date,
			Time:     s.Time,
			Type:     entities.SlotType(s.Type),
			Duration: s.Duration,
		}
		if slot.ID == "" {
			slot.ID = fmt.Sprintf("%d", j+1)
		}
		if slot.Date == "" {
			slot.Date = today
		}
		if slot.Type != entities.SlotTypeUrgent {
			slot.Type = entities.SlotTypeStandard
		}
		if slot.Duration == "" {
			slot.Duration = "30 min"
		}
		out = append(out, slot)
	}
	return out
}

// defaultSlots mirrors the pair of placeholder slots the portal has always
// synthesized for hospitals that arrive without availability.
func defaultSlots(i int, today string) []entities.TimeSlot {
	return []entities.TimeSlot{
		{
			ID:       fmt.Sprintf("%d", 100+i),
			Date:     today,
			Time:     "10:30 AM",
			Type:     entities.SlotTypeStandard,
			Duration: "30 min",
		},
		{
			ID:       fmt.Sprintf("%d", 200+i),
			Date:     today,
			Time:     "03:00 PM",
			Type:     entities.SlotTypeStandard,
			Duration: "30 min",
		},
	}
}
