package discovery

import (
	"context"
	"time"

	"github.com/medisense-health/scheduler/internal/domain/entities"
	"github.com/medisense-health/scheduler/internal/domain/providers"
	"github.com/medisense-health/scheduler/pkg/timeutil"
)

// MockAdapter provides deterministic hospital candidates for local
// development, without the external discovery service.
type MockAdapter struct{}

// NewMockAdapter creates a mock discovery provider.
func NewMockAdapter() providers.HospitalDiscoveryProvider {
	return &MockAdapter{}
}

// FindNearby returns a fixed candidate list with today's slots.
func (m *MockAdapter) FindNearby(ctx context.Context, req entities.DiscoveryRequest) ([]entities.Hospital, error) {
	today := timeutil.FormatSlotDate(time.Now())

	return []entities.Hospital{
		{
			ID:             "1",
			Name:           "City General Hospital",
			Address:        "12 Harbor Road",
			DistanceKm:     2.4,
			Specialization: "General Medicine",
			Rating:         4.3,
			ReviewCount:    128,
			WaitTime:       "20–40 mins",
			Slots: []entities.TimeSlot{
				{ID: "101", Date: today, Time: "10:30 AM", Type: entities.SlotTypeStandard, Duration: "30 min"},
				{ID: "102", Date: today, Time: "03:00 PM", Type: entities.SlotTypeStandard, Duration: "30 min"},
			},
		},
		{
			ID:             "2",
			Name:           "St. Anne Medical Center",
			Address:        "48 Elm Street",
			DistanceKm:     1.1,
			Specialization: "Cardiology",
			Rating:         4.6,
			ReviewCount:    212,
			WaitTime:       "10–25 mins",
			Slots: []entities.TimeSlot{
				{ID: "201", Date: today, Time: "09:00 AM", Type: entities.SlotTypeUrgent, Duration: "30 min"},
				{ID: "202", Date: today, Time: "11:15 AM", Type: entities.SlotTypeStandard, Duration: "30 min"},
			},
		},
	}, nil
}
