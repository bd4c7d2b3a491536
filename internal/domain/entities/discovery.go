package entities

// DiscoveryRequest is the query sent to the hospital discovery service.
type DiscoveryRequest struct {
	Symptoms  string  `json:"symptoms"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusKm  float64 `json:"radiusKm,omitempty"`
}

// DiscoverySlot mirrors the discovery service's slot shape. Every field is
// optional on the wire; adapters fill defaults before the slot enters the
// engine.
type DiscoverySlot struct {
	ID       string `json:"id,omitempty"`
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
	Type     string `json:"type,omitempty"`
	Duration string `json:"duration,omitempty"`
}

// DiscoveryHospital mirrors the discovery service's hospital shape.
type DiscoveryHospital struct {
	Name           string          `json:"name,omitempty"`
	Address        string          `json:"address,omitempty"`
	Distance       *float64        `json:"distance,omitempty"`
	Specialization string          `json:"specialization,omitempty"`
	Rating         *float64        `json:"rating,omitempty"`
	ReviewCount    *int            `json:"reviewCount,omitempty"`
	WaitTime       string          `json:"waitTime,omitempty"`
	AvailableSlots []DiscoverySlot `json:"availableSlots,omitempty"`
}

// DiscoveryResponse is the discovery service's top-level payload.
type DiscoveryResponse struct {
	Hospitals []DiscoveryHospital `json:"hospitals"`
}

// SeverityResponse is the symptom analysis service's payload.
type SeverityResponse struct {
	SeverityScore  float64                `json:"severity_score"`
	RiskLevel      string                 `json:"risk_level"`
	AISummary      string                 `json:"ai_summary"`
	Recommendation SeverityRecommendation `json:"recommendation"`
}

// SeverityRecommendation is the analysis service's suggested next step.
type SeverityRecommendation struct {
	Action  string `json:"action,omitempty"`
	Urgency string `json:"urgency,omitempty"`
}
