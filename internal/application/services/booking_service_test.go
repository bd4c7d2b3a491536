package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/medisense-health/scheduler/internal/adapters/storage"
	"github.com/medisense-health/scheduler/internal/domain/entities"
	apperrors "github.com/medisense-health/scheduler/pkg/errors"
	"github.com/medisense-health/scheduler/pkg/timeutil"
)

type mockDiscoveryProvider struct {
	mock.Mock
}

func (m *mockDiscoveryProvider) FindNearby(ctx context.Context, req entities.DiscoveryRequest) ([]entities.Hospital, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Hospital), args.Error(1)
}

type mockSeverityProvider struct {
	mock.Mock
}

func (m *mockSeverityProvider) Analyze(ctx context.Context, symptoms string) (*entities.SeverityContext, error) {
	args := m.Called(ctx, symptoms)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SeverityContext), args.Error(1)
}

func testHospital(id, name string, distance float64, slots ...entities.TimeSlot) entities.Hospital {
	return entities.Hospital{
		ID:             id,
		Name:           name,
		Address:        "1 Main St",
		DistanceKm:     distance,
		Specialization: "General Medicine",
		Rating:         4.0,
		WaitTime:       "20–40 mins",
		Slots:          slots,
	}
}

func testSlot(id, clock string) entities.TimeSlot {
	return entities.TimeSlot{
		ID:       id,
		Date:     timeutil.FormatSlotDate(time.Now()),
		Time:     clock,
		Type:     entities.SlotTypeStandard,
		Duration: "30 min",
	}
}

func newBookingFixture(discovery *mockDiscoveryProvider, severity *mockSeverityProvider) (*BookingService, *RecordService) {
	records := NewRecordService(storage.NewMemoryAdapter(), "healthRecords", nil)
	if discovery == nil {
		discovery = new(mockDiscoveryProvider)
	}
	if severity == nil {
		return NewBookingService(NewRankingService(), records, discovery, nil, nil), records
	}
	return NewBookingService(NewRankingService(), records, discovery, severity, nil), records
}

func TestBookingService_ManualFlowCompletes(t *testing.T) {
	booking, records := newBookingFixture(nil, nil)
	ctx := context.Background()

	hospital := testHospital("1", "City General Hospital", 2.4, testSlot("10", "10:30 AM"))
	slot := hospital.Slots[0]

	session := booking.CreateSession(ctx, "mild headache")
	require.Equal(t, entities.StepModeSelect, session.Step)

	session, err := booking.ChooseManualMode(session.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StepHospitalSelect, session.Step)
	assert.Equal(t, entities.ModeManual, session.Mode)

	session, err = booking.PickHospital(session.ID, hospital)
	require.NoError(t, err)
	assert.Equal(t, entities.StepSlotSelect, session.Step)

	session, err = booking.PickSlot(session.ID, slot)
	require.NoError(t, err)
	// Slot choice can still change before advancing.
	assert.Equal(t, entities.StepSlotSelect, session.Step)

	session, err = booking.ConfirmStepAdvance(session.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StepConfirm, session.Step)

	session, err = booking.ConfirmBooking(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StepComplete, session.Step)
	require.NotNil(t, session.Record)
	assert.Equal(t, hospital.Name, session.Record.Hospital.Name)
	assert.Equal(t, slot, session.Record.Slot)
	assert.Equal(t, "mild headache", session.Record.Symptoms)

	stored, err := records.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, session.Record.ID, stored[0].ID)
	assert.Regexp(t, regexp.MustCompile(`^APT-\d+$`), stored[0].ID)
	assert.Regexp(t, regexp.MustCompile(`^MC[0-9A-Z]{7}$`), stored[0].ConfirmationNumber)
}

func TestBookingService_AutoFlowCompletes(t *testing.T) {
	discovery := new(mockDiscoveryProvider)
	booking, records := newBookingFixture(discovery, nil)
	ctx := context.Background()

	far := testHospital("1", "Far Hospital", 8.0, testSlot("20", "08:00 AM"))
	near := testHospital("2", "Near Hospital", 1.2, testSlot("30", "02:00 PM"), testSlot("31", "09:15 AM"))
	discovery.On("FindNearby", mock.Anything, mock.Anything).Return([]entities.Hospital{far, near}, nil)

	session := booking.CreateSession(ctx, "chest pain")
	session, err := booking.ChooseAutoMode(ctx, session.ID, entities.DiscoveryRequest{Latitude: 6.5, Longitude: 3.3}, nil)
	require.NoError(t, err)

	assert.Equal(t, entities.StepComplete, session.Step)
	require.NotNil(t, session.SelectedHospital)
	assert.Equal(t, "Near Hospital", session.SelectedHospital.Name)
	require.NotNil(t, session.SelectedSlot)
	assert.Equal(t, "09:15 AM", session.SelectedSlot.Time)

	assert.Equal(t, []string{
		"Analyzing symptoms...",
		"Finding best hospital...",
		"Selected: Near Hospital",
		"Selected time: 09:15 AM",
		"Appointment confirmed!",
	}, session.ProgressLog)

	stored, err := records.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Near Hospital", stored[0].Hospital.Name)
	discovery.AssertExpectations(t)
}

func TestBookingService_AutoFlowUsesSuppliedCandidates(t *testing.T) {
	discovery := new(mockDiscoveryProvider)
	booking, _ := newBookingFixture(discovery, nil)
	ctx := context.Background()

	supplied := []entities.Hospital{testHospital("1", "Preloaded Hospital", 3.0, testSlot("10", "11:00 AM"))}

	session := booking.CreateSession(ctx, "fever")
	session, err := booking.ChooseAutoMode(ctx, session.ID, entities.DiscoveryRequest{}, supplied)
	require.NoError(t, err)
	assert.Equal(t, entities.StepComplete, session.Step)
	assert.Equal(t, "Preloaded Hospital", session.SelectedHospital.Name)
	discovery.AssertNotCalled(t, "FindNearby", mock.Anything, mock.Anything)
}

func TestBookingService_AutoFlowNoCandidatesRecovers(t *testing.T) {
	discovery := new(mockDiscoveryProvider)
	booking, records := newBookingFixture(discovery, nil)
	ctx := context.Background()

	discovery.On("FindNearby", mock.Anything, mock.Anything).Return([]entities.Hospital{}, nil)

	session := booking.CreateSession(ctx, "fever")
	session, err := booking.ChooseAutoMode(ctx, session.ID, entities.DiscoveryRequest{}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNoCandidates))

	// The session is back at mode selection with a notice, not stuck.
	require.NotNil(t, session)
	assert.Equal(t, entities.StepModeSelect, session.Step)
	assert.Equal(t, entities.ModeUnselected, session.Mode)
	assert.NotEmpty(t, session.Notice)
	assert.Nil(t, session.SelectedHospital)

	stored, listErr := records.List(ctx)
	require.NoError(t, listErr)
	assert.Empty(t, stored)

	// A fresh attempt is allowed after the reset.
	_, err = booking.ChooseManualMode(session.ID)
	require.NoError(t, err)
}

func TestBookingService_AutoFlowDiscoveryFailureRecovers(t *testing.T) {
	discovery := new(mockDiscoveryProvider)
	booking, _ := newBookingFixture(discovery, nil)
	ctx := context.Background()

	discovery.On("FindNearby", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewExternalError("hospital discovery service unavailable", errors.New("connection refused")))

	session := booking.CreateSession(ctx, "fever")
	session, err := booking.ChooseAutoMode(ctx, session.ID, entities.DiscoveryRequest{}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
	assert.Equal(t, entities.StepModeSelect, session.Step)
	assert.NotEmpty(t, session.Notice)
}

func TestBookingService_IllegalTransitions(t *testing.T) {
	booking, _ := newBookingFixture(nil, nil)
	ctx := context.Background()

	session := booking.CreateSession(ctx, "")

	// pickSlot straight from mode selection is a caller bug.
	_, err := booking.PickSlot(session.ID, testSlot("10", "10:30 AM"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeIllegalState))

	// State is unchanged by the rejected transition.
	current, err := booking.GetSession(session.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StepModeSelect, current.Step)
	assert.Nil(t, current.SelectedSlot)

	_, err = booking.ConfirmStepAdvance(session.ID)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeIllegalState))

	_, err = booking.ConfirmBooking(ctx, session.ID)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeIllegalState))

	// Once a mode is chosen, choosing again is rejected.
	_, err = booking.ChooseManualMode(session.ID)
	require.NoError(t, err)
	_, err = booking.ChooseManualMode(session.ID)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeIllegalState))
	_, err = booking.ChooseAutoMode(ctx, session.ID, entities.DiscoveryRequest{}, nil)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeIllegalState))
}

func TestBookingService_AbandonSession(t *testing.T) {
	booking, _ := newBookingFixture(nil, nil)
	ctx := context.Background()

	session := booking.CreateSession(ctx, "")
	require.NoError(t, booking.AbandonSession(session.ID))

	_, err := booking.GetSession(session.ID)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	err = booking.AbandonSession(session.ID)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestBookingService_SeverityAttachedBestEffort(t *testing.T) {
	severity := new(mockSeverityProvider)
	severity.On("Analyze", mock.Anything, "chest pain").
		Return(&entities.SeverityContext{Score: 9.0, RiskLevel: "HIGH", Summary: "urgent"}, nil)
	booking, _ := newBookingFixture(nil, severity)

	session := booking.CreateSession(context.Background(), "chest pain")
	require.NotNil(t, session.Severity)
	assert.Equal(t, 9.0, session.Severity.Score)

	// A failing analyzer never blocks session creation.
	failing := new(mockSeverityProvider)
	failing.On("Analyze", mock.Anything, mock.Anything).
		Return(nil, errors.New("service down"))
	booking, _ = newBookingFixture(nil, failing)

	session = booking.CreateSession(context.Background(), "chest pain")
	assert.Nil(t, session.Severity)
	assert.Equal(t, entities.StepModeSelect, session.Step)
}

func TestBookingService_RecommendMode(t *testing.T) {
	booking, _ := newBookingFixture(nil, nil)

	tests := []struct {
		name     string
		severity *entities.SeverityContext
		want     entities.ModeRecommendation
	}{
		{"no context", nil, entities.NeutralManual},
		{"low severity", &entities.SeverityContext{Score: 3.0}, entities.NeutralManual},
		{"boundary suggests auto", &entities.SeverityContext{Score: 5.0}, entities.SuggestAuto},
		{"moderate suggests auto", &entities.SeverityContext{Score: 7.9}, entities.SuggestAuto},
		{"boundary recommends auto", &entities.SeverityContext{Score: 8.0}, entities.RecommendAuto},
		{"critical recommends auto", &entities.SeverityContext{Score: 10.0}, entities.RecommendAuto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.RecommendMode(tt.severity))
		})
	}
}
