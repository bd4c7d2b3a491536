package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/medisense-health/scheduler/internal/domain/entities"
	"github.com/medisense-health/scheduler/internal/domain/providers"
	"github.com/medisense-health/scheduler/internal/infrastructure/observability"
	apperrors "github.com/medisense-health/scheduler/pkg/errors"
)

// Severity thresholds for the mode recommendation policy.
const (
	severityRecommendAuto = 8.0
	severitySuggestAuto   = 5.0
)

const confirmationAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// BookingService runs booking wizard sessions. Sessions are transient and
// in-memory; only the AppointmentRecord created at completion is durable.
type BookingService struct {
	mu        sync.Mutex
	sessions  map[string]*entities.BookingSession
	ranking   *RankingService
	records   *RecordService
	discovery providers.HospitalDiscoveryProvider
	severity  providers.SeverityProvider
	metrics   *observability.Metrics
}

// NewBookingService creates a booking service. severity may be nil, in which
// case sessions carry no severity context.
func NewBookingService(
	ranking *RankingService,
	records *RecordService,
	discovery providers.HospitalDiscoveryProvider,
	severity providers.SeverityProvider,
	metrics *observability.Metrics,
) *BookingService {
	return &BookingService{
		sessions:  make(map[string]*entities.BookingSession),
		ranking:   ranking,
		records:   records,
		discovery: discovery,
		severity:  severity,
		metrics:   metrics,
	}
}

// CreateSession starts a fresh wizard run at mode selection. Symptom
// analysis is best-effort: a failing severity collaborator never blocks
// session creation.
func (s *BookingService) CreateSession(ctx context.Context, symptoms string) *entities.BookingSession {
	session := &entities.BookingSession{
		ID:        uuid.New().String(),
		Mode:      entities.ModeUnselected,
		Step:      entities.StepModeSelect,
		Symptoms:  symptoms,
		CreatedAt: time.Now().UTC(),
	}

	if s.severity != nil && symptoms != "" {
		severity, err := s.severity.Analyze(ctx, symptoms)
		if err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).
				Str("session_id", session.ID).
				Msg("symptom analysis unavailable, continuing without severity context")
		} else {
			session.Severity = severity
		}
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return cloneSession(session)
}

// GetSession returns a snapshot of a session
func (s *BookingService) GetSession(id string) (*entities.BookingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("session %s not found", id))
	}
	return cloneSession(session), nil
}

// AbandonSession discards a session. Persisted records are never touched.
func (s *BookingService) AbandonSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("session %s not found", id))
	}
	delete(s.sessions, id)
	return nil
}

// RecommendMode maps a severity context to the mode the view should
// emphasize. It never forces a transition.
func (s *BookingService) RecommendMode(severity *entities.SeverityContext) entities.ModeRecommendation {
	if severity == nil {
		return entities.NeutralManual
	}
	switch {
	case severity.Score >= severityRecommendAuto:
		return entities.RecommendAuto
	case severity.Score >= severitySuggestAuto:
		return entities.SuggestAuto
	default:
		return entities.NeutralManual
	}
}

// ChooseAutoMode runs the whole automatic path: fetch candidates (unless the
// caller supplied them), rank, book, complete. On an empty candidate list
// the session returns to mode selection with a user-facing notice instead of
// failing the wizard.
func (s *BookingService) ChooseAutoMode(ctx context.Context, sessionID string, req entities.DiscoveryRequest, hospitals []entities.Hospital) (*entities.BookingSession, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("session %s not found", sessionID))
	}
	if session.Step != entities.StepModeSelect || session.Mode != entities.ModeUnselected {
		s.mu.Unlock()
		return nil, apperrors.NewIllegalStateError(fmt.Sprintf("cannot start automatic booking from step %s", session.Step))
	}

	// Claiming the mode keeps other transitions out while the session is
	// suspended on the discovery fetch; abandon remains possible.
	session.Mode = entities.ModeAuto
	session.Notice = ""
	session.ProgressLog = append(session.ProgressLog, "Analyzing symptoms...")
	session.ProgressLog = append(session.ProgressLog, "Finding best hospital...")
	if req.Symptoms == "" {
		req.Symptoms = session.Symptoms
	}
	s.mu.Unlock()

	if len(hospitals) == 0 {
		fetched, err := s.discovery.FindNearby(ctx, req)
		if err != nil {
			return s.resetToModeSelect(sessionID, "Could not reach the hospital discovery service. Please try again."), err
		}
		hospitals = fetched
	}

	hospital, slot, err := s.ranking.Choose(hospitals, time.Now())
	if err != nil {
		return s.resetToModeSelect(sessionID, "No hospitals available right now. Please try again or book manually."), err
	}

	s.mu.Lock()
	session, ok = s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("session %s abandoned during booking", sessionID))
	}

	chosen := *hospital
	session.SelectedHospital = &chosen
	session.SelectedSlot = &slot
	session.ProgressLog = append(session.ProgressLog, "Selected: "+chosen.Name)
	session.ProgressLog = append(session.ProgressLog, "Selected time: "+slot.Time)

	record := newRecord(session)
	s.mu.Unlock()

	if err := s.records.Append(ctx, record); err != nil {
		return s.resetToModeSelect(sessionID, "Could not save the appointment. Please try again."), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok = s.sessions[sessionID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("session %s abandoned during booking", sessionID))
	}
	session.ProgressLog = append(session.ProgressLog, "Appointment confirmed!")
	session.Record = &record
	session.Step = entities.StepComplete

	observability.RecordBookingMetric(ctx, s.metrics, string(entities.ModeAuto))
	return cloneSession(session), nil
}

// ChooseManualMode moves a fresh session onto the manual path
func (s *BookingService) ChooseManualMode(sessionID string) (*entities.BookingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("session %s not found", sessionID))
	}
	if session.Step != entities.StepModeSelect || session.Mode != entities.ModeUnselected {
		return nil, apperrors.NewIllegalStateError(fmt.Sprintf("cannot choose manual mode from step %s", session.Step))
	}

	session.Mode = entities.ModeManual
	session.Step = entities.StepHospitalSelect
	session.Notice = ""
	return cloneSession(session), nil
}

// PickHospital records the hospital choice and advances to slot selection
func (s *BookingService) PickHospital(sessionID string, hospital entities.Hospital) (*entities.BookingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("session %s not found", sessionID))
	}
	if session.Step != entities.StepHospitalSelect {
		return nil, apperrors.NewIllegalStateError(fmt.Sprintf("cannot pick a hospital from step %s", session.Step))
	}

	session.SelectedHospital = &hospital
	session.SelectedSlot = nil
	session.Step = entities.StepSlotSelect
	return cloneSession(session), nil
}

// PickSlot records the slot choice. The session stays in slot selection so
// the choice can be changed until ConfirmStepAdvance.
func (s *BookingService) PickSlot(sessionID string, slot entities.TimeSlot) (*entities.BookingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("session %s not found", sessionID))
	}
	if session.Step != entities.StepSlotSelect || session.SelectedHospital == nil {
		return nil, apperrors.NewIllegalStateError(fmt.Sprintf("cannot pick a slot from step %s", session.Step))
	}

	session.SelectedSlot = &slot
	return cloneSession(session), nil
}

// ConfirmStepAdvance moves a session with a chosen slot to confirmation
func (s *BookingService) ConfirmStepAdvance(sessionID string) (*entities.BookingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("session %s not found", sessionID))
	}
	if session.Step != entities.StepSlotSelect || session.SelectedSlot == nil {
		return nil, apperrors.NewIllegalStateError(fmt.Sprintf("cannot advance to confirmation from step %s", session.Step))
	}

	session.Step = entities.StepConfirm
	return cloneSession(session), nil
}

// ConfirmBooking creates the durable record and completes the session
func (s *BookingService) ConfirmBooking(ctx context.Context, sessionID string) (*entities.BookingSession, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("session %s not found", sessionID))
	}
	if session.Step != entities.StepConfirm {
		s.mu.Unlock()
		return nil, apperrors.NewIllegalStateError(fmt.Sprintf("cannot confirm a booking from step %s", session.Step))
	}

	record := newRecord(session)
	s.mu.Unlock()

	if err := s.records.Append(ctx, record); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok = s.sessions[sessionID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("session %s abandoned during booking", sessionID))
	}
	session.ProgressLog = append(session.ProgressLog, "Appointment confirmed!")
	session.Record = &record
	session.Step = entities.StepComplete

	observability.RecordBookingMetric(ctx, s.metrics, string(entities.ModeManual))
	return cloneSession(session), nil
}

// resetToModeSelect returns a session to the initial step after a
// recoverable automatic-booking failure.
func (s *BookingService) resetToModeSelect(sessionID, notice string) *entities.BookingSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	session.Mode = entities.ModeUnselected
	session.Step = entities.StepModeSelect
	session.SelectedHospital = nil
	session.SelectedSlot = nil
	session.Notice = notice
	return cloneSession(session)
}

// newRecord snapshots a session's choices into a durable record. Callers
// hold s.mu and guarantee hospital and slot are set.
func newRecord(session *entities.BookingSession) entities.AppointmentRecord {
	return entities.AppointmentRecord{
		ID:                 fmt.Sprintf("APT-%d", time.Now().UnixMilli()),
		Hospital:           entities.SnapshotOf(*session.SelectedHospital),
		Slot:               *session.SelectedSlot,
		ConfirmationNumber: newConfirmationNumber(),
		BookedAt:           time.Now().UTC(),
		Symptoms:           session.Symptoms,
	}
}

// newConfirmationNumber returns an opaque short code. Uniqueness is
// best-effort; record ids, not confirmation numbers, identify records.
func newConfirmationNumber() string {
	code := make([]byte, 7)
	for i := range code {
		code[i] = confirmationAlphabet[rand.IntN(len(confirmationAlphabet))]
	}
	return "MC" + string(code)
}

// cloneSession snapshots a session so callers never share the map's
// mutable state.
func cloneSession(session *entities.BookingSession) *entities.BookingSession {
	clone := *session
	clone.ProgressLog = append([]string(nil), session.ProgressLog...)
	if session.SelectedHospital != nil {
		h := *session.SelectedHospital
		h.Slots = append([]entities.TimeSlot(nil), session.SelectedHospital.Slots...)
		clone.SelectedHospital = &h
	}
	if session.SelectedSlot != nil {
		slot := *session.SelectedSlot
		clone.SelectedSlot = &slot
	}
	if session.Severity != nil {
		sev := *session.Severity
		clone.Severity = &sev
	}
	if session.Record != nil {
		record := *session.Record
		clone.Record = &record
	}
	return &clone
}
