package entities

import "time"

// BookingMode selects manual or automatic booking
type BookingMode string

const (
	ModeUnselected BookingMode = ""
	ModeAuto       BookingMode = "auto"
	ModeManual     BookingMode = "manual"
)

// BookingStep is a state of the booking wizard
type BookingStep string

const (
	StepModeSelect     BookingStep = "mode_select"
	StepHospitalSelect BookingStep = "hospital_select"
	StepSlotSelect     BookingStep = "slot_select"
	StepConfirm        BookingStep = "confirm"
	StepComplete       BookingStep = "complete"
)

// ModeRecommendation is the urgency policy output. It only biases which
// mode the view emphasizes and never forces a transition.
type ModeRecommendation string

const (
	RecommendAuto ModeRecommendation = "auto"
	SuggestAuto   ModeRecommendation = "recommended-auto"
	NeutralManual ModeRecommendation = "manual"
)

// SeverityContext carries the symptom analysis attached to a session.
type SeverityContext struct {
	Score     float64 `json:"severity_score"`
	RiskLevel string  `json:"risk_level"`
	Summary   string  `json:"ai_summary"`
}

// BookingSession is one run of the booking wizard, created when the user
// enters the scheduler and discarded on completion or abandonment.
// SelectedSlot is only ever set after SelectedHospital, except in auto mode
// where ranking sets both atomically.
type BookingSession struct {
	ID               string           `json:"id"`
	Mode             BookingMode      `json:"mode"`
	Step             BookingStep      `json:"step"`
	SelectedHospital *Hospital        `json:"selectedHospital,omitempty"`
	SelectedSlot     *TimeSlot        `json:"selectedSlot,omitempty"`
	ProgressLog      []string         `json:"progressLog"`
	Notice           string           `json:"notice,omitempty"`
	Symptoms         string           `json:"symptoms,omitempty"`
	Severity         *SeverityContext `json:"severity,omitempty"`
	Record           *AppointmentRecord `json:"record,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
}
