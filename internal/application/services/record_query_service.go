package services

import (
	"sort"
	"strings"
	"time"

	"github.com/medisense-health/scheduler/internal/domain/entities"
	"github.com/medisense-health/scheduler/pkg/timeutil"
)

// Filter wildcard accepted by both the status and date-bucket criteria.
const FilterAll = "all"

// Date buckets accepted by QueryCriteria.DateBucket.
const (
	DateBucketToday    = "today"
	DateBucketUpcoming = "upcoming"
	DateBucketPast     = "past"
)

// QueryCriteria narrows a record collection. Empty fields and the "all"
// wildcard bypass their filter.
type QueryCriteria struct {
	Search     string `json:"search"`
	Status     string `json:"status"`
	DateBucket string `json:"dateBucket"`
}

// RecordQueryService filters and orders record collections. It is a pure
// function of (collection, criteria, today) and never mutates its input.
type RecordQueryService struct{}

// NewRecordQueryService creates a record query service
func NewRecordQueryService() *RecordQueryService {
	return &RecordQueryService{}
}

// Query applies the text, status and date-bucket filters as a conjunction,
// then sorts descending by slot date. The sort is stable so records sharing
// a date keep their stored order.
func (s *RecordQueryService) Query(records []entities.AppointmentRecord, criteria QueryCriteria) []entities.AppointmentRecord {
	return s.QueryAt(records, criteria, timeutil.DayFloor(time.Now()))
}

// QueryAt is Query with an explicit "today" anchor for the status
// derivation and date buckets.
func (s *RecordQueryService) QueryAt(records []entities.AppointmentRecord, criteria QueryCriteria, today time.Time) []entities.AppointmentRecord {
	today = timeutil.DayFloor(today)

	matched := make([]entities.AppointmentRecord, 0, len(records))
	for _, record := range records {
		if !matchesSearch(record, criteria.Search) {
			continue
		}
		if !matchesStatus(record, criteria.Status, today) {
			continue
		}
		if !matchesDateBucket(record, criteria.DateBucket, today) {
			continue
		}
		matched = append(matched, record)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		di, erri := timeutil.ParseSlotDate(matched[i].Slot.Date)
		dj, errj := timeutil.ParseSlotDate(matched[j].Slot.Date)
		if erri != nil || errj != nil {
			// Undated records sink below dated ones.
			return errj != nil && erri == nil
		}
		return di.After(dj)
	})
	return matched
}

// matchesSearch reports whether any searchable field contains term,
// ignoring case. An empty term matches everything.
func matchesSearch(record entities.AppointmentRecord, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}

	fields := []string{
		record.Hospital.Name,
		record.Hospital.Specialization,
		record.ConfirmationNumber,
		record.Symptoms,
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func matchesStatus(record entities.AppointmentRecord, status string, today time.Time) bool {
	if status == "" || strings.EqualFold(status, FilterAll) {
		return true
	}
	return strings.EqualFold(string(DeriveStatusAt(record, today)), status)
}

func matchesDateBucket(record entities.AppointmentRecord, bucket string, today time.Time) bool {
	if bucket == "" || strings.EqualFold(bucket, FilterAll) {
		return true
	}

	slotDay, err := timeutil.ParseSlotDate(record.Slot.Date)
	if err != nil {
		return false
	}

	switch strings.ToLower(bucket) {
	case DateBucketToday:
		return slotDay.Equal(today)
	case DateBucketUpcoming:
		return !slotDay.Before(today)
	case DateBucketPast:
		return slotDay.Before(today)
	default:
		return true
	}
}
