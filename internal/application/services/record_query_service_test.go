package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/medisense-health/scheduler/internal/domain/entities"
	"github.com/medisense-health/scheduler/pkg/timeutil"
)

func queryRecord(id, hospital, specialization, date string) entities.AppointmentRecord {
	r := recordOn(id, date)
	r.Hospital.Name = hospital
	r.Hospital.Specialization = specialization
	return r
}

func recordIDs(records []entities.AppointmentRecord) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestRecordQueryService_SearchMatchesAnyField(t *testing.T) {
	svc := NewRecordQueryService()
	today := timeutil.DayFloor(time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local))

	byName := queryRecord("A1", "Cardio Center", "General Medicine", "2026-09-05")
	bySpec := queryRecord("A2", "City General", "Cardiology", "2026-09-05")
	byConf := queryRecord("A3", "City General", "General Medicine", "2026-09-05")
	byConf.ConfirmationNumber = "MCCARDIO77"
	bySymptoms := queryRecord("A4", "City General", "General Medicine", "2026-09-05")
	bySymptoms.Symptoms = "cardiovascular discomfort"
	noMatch := queryRecord("A5", "City General", "Orthopedics", "2026-09-05")
	noMatch.ConfirmationNumber = "MC0000000"

	all := []entities.AppointmentRecord{byName, bySpec, byConf, bySymptoms, noMatch}

	got := svc.QueryAt(all, QueryCriteria{Search: "CARDIO"}, today)
	assert.ElementsMatch(t, []string{"A1", "A2", "A3", "A4"}, recordIDs(got))

	// Empty search matches everything.
	got = svc.QueryAt(all, QueryCriteria{}, today)
	assert.Len(t, got, 5)
}

func TestRecordQueryService_FiltersCompose(t *testing.T) {
	svc := NewRecordQueryService()
	today := timeutil.DayFloor(time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local))

	// 5 records: 2 match "cardio", 3 are upcoming; the intersection is one.
	records := []entities.AppointmentRecord{
		queryRecord("A1", "Cardio Center", "Cardiology", "2026-09-05"),  // cardio, upcoming
		queryRecord("A2", "Cardio Center", "Cardiology", "2026-08-20"),  // cardio, completed
		queryRecord("A3", "City General", "Orthopedics", "2026-09-03"),  // upcoming
		queryRecord("A4", "City General", "Orthopedics", "2026-09-10"),  // upcoming
		queryRecord("A5", "City General", "Orthopedics", "2026-08-01"),  // completed
	}

	got := svc.QueryAt(records, QueryCriteria{Search: "cardio", Status: "upcoming"}, today)
	assert.Equal(t, []string{"A1"}, recordIDs(got))
}

func TestRecordQueryService_StatusUsesDerivedValue(t *testing.T) {
	svc := NewRecordQueryService()
	today := timeutil.DayFloor(time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local))

	past := queryRecord("A1", "City General", "General Medicine", "2026-08-25")
	cancelled := queryRecord("A2", "City General", "General Medicine", "2026-09-10")
	cancelled.Status = entities.RecordStatusCancelled
	future := queryRecord("A3", "City General", "General Medicine", "2026-09-10")

	records := []entities.AppointmentRecord{past, cancelled, future}

	assert.Equal(t, []string{"A1"}, recordIDs(svc.QueryAt(records, QueryCriteria{Status: "completed"}, today)))
	assert.Equal(t, []string{"A2"}, recordIDs(svc.QueryAt(records, QueryCriteria{Status: "cancelled"}, today)))
	assert.Equal(t, []string{"A3"}, recordIDs(svc.QueryAt(records, QueryCriteria{Status: "upcoming"}, today)))
	assert.Len(t, svc.QueryAt(records, QueryCriteria{Status: "all"}, today), 3)
}

func TestRecordQueryService_DateBuckets(t *testing.T) {
	svc := NewRecordQueryService()
	today := timeutil.DayFloor(time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local))

	records := []entities.AppointmentRecord{
		queryRecord("PAST", "City General", "General Medicine", "2026-08-31"),
		queryRecord("TODAY", "City General", "General Medicine", "2026-09-01"),
		queryRecord("FUTURE", "City General", "General Medicine", "2026-09-02"),
	}

	assert.Equal(t, []string{"TODAY"}, recordIDs(svc.QueryAt(records, QueryCriteria{DateBucket: "today"}, today)))
	assert.Equal(t, []string{"FUTURE", "TODAY"}, recordIDs(svc.QueryAt(records, QueryCriteria{DateBucket: "upcoming"}, today)))
	assert.Equal(t, []string{"PAST"}, recordIDs(svc.QueryAt(records, QueryCriteria{DateBucket: "past"}, today)))
}

func TestRecordQueryService_SortDescendingStable(t *testing.T) {
	svc := NewRecordQueryService()
	today := timeutil.DayFloor(time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local))

	records := []entities.AppointmentRecord{
		queryRecord("A1", "City General", "General Medicine", "2026-09-03"),
		queryRecord("A2", "City General", "General Medicine", "2026-09-10"),
		queryRecord("A3", "City General", "General Medicine", "2026-09-03"),
		queryRecord("A4", "City General", "General Medicine", "2026-09-07"),
	}

	got := svc.QueryAt(records, QueryCriteria{}, today)
	// Descending by date; A1 and A3 share a date and keep stored order.
	assert.Equal(t, []string{"A2", "A4", "A1", "A3"}, recordIDs(got))
}

func TestRecordQueryService_DoesNotMutateInput(t *testing.T) {
	svc := NewRecordQueryService()
	today := timeutil.DayFloor(time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local))

	records := []entities.AppointmentRecord{
		queryRecord("A1", "City General", "General Medicine", "2026-09-03"),
		queryRecord("A2", "City General", "General Medicine", "2026-09-10"),
	}

	_ = svc.QueryAt(records, QueryCriteria{}, today)
	assert.Equal(t, []string{"A1", "A2"}, recordIDs(records))
}
