package entities

// SlotType classifies a bookable time window
type SlotType string

const (
	SlotTypeStandard SlotType = "Standard"
	SlotTypeUrgent   SlotType = "Urgent"
)

// TimeSlot represents a bookable time window at a hospital. Slots are
// immutable once fetched from the discovery service; Date is the YYYY-MM-DD
// wire format and Time a 12-hour clock string such as "10:30 AM".
type TimeSlot struct {
	ID       string   `json:"id"`
	Date     string   `json:"date"`
	Time     string   `json:"time"`
	Type     SlotType `json:"type"`
	Duration string   `json:"duration"`
}

// Hospital represents a candidate hospital returned by the discovery
// service. The engine treats it as read-only input.
type Hospital struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Address        string     `json:"address"`
	DistanceKm     float64    `json:"distanceKm"`
	Specialization string     `json:"specialization"`
	Rating         float64    `json:"rating"`
	ReviewCount    int        `json:"reviewCount"`
	WaitTime       string     `json:"waitTime"`
	Slots          []TimeSlot `json:"slots"`
}
