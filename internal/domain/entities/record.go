package entities

import "time"

// RecordStatus represents a record's lifecycle state. Only Completed and
// Cancelled are ever stored, as explicit overrides; Upcoming is always
// derived from the slot date and never written to storage.
type RecordStatus string

const (
	RecordStatusUpcoming  RecordStatus = "upcoming"
	RecordStatusCompleted RecordStatus = "completed"
	RecordStatusCancelled RecordStatus = "cancelled"
)

// HospitalSnapshot is the subset of hospital fields frozen into a record at
// booking time, so later discovery results cannot rewrite history.
type HospitalSnapshot struct {
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	DistanceKm     float64 `json:"distanceKm"`
	Specialization string  `json:"specialization"`
	Rating         float64 `json:"rating"`
	WaitTime       string  `json:"waitTime"`
}

// AppointmentRecord is the durable outcome of a completed booking session.
type AppointmentRecord struct {
	ID                 string           `json:"id"`
	Hospital           HospitalSnapshot `json:"hospital"`
	Slot               TimeSlot         `json:"slot"`
	ConfirmationNumber string           `json:"confirmationNumber"`
	BookedAt           time.Time        `json:"bookedAt"`
	Symptoms           string           `json:"symptoms,omitempty"`
	Status             RecordStatus     `json:"status,omitempty"`
}

// SnapshotOf freezes the record-relevant fields of a hospital.
func SnapshotOf(h Hospital) HospitalSnapshot {
	return HospitalSnapshot{
		Name:           h.Name,
		Address:        h.Address,
		DistanceKm:     h.DistanceKm,
		Specialization: h.Specialization,
		Rating:         h.Rating,
		WaitTime:       h.WaitTime,
	}
}

// RecordStats summarizes a collection by derived status.
type RecordStats struct {
	Total     int `json:"total"`
	Upcoming  int `json:"upcoming"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}
