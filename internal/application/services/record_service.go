package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/medisense-health/scheduler/internal/domain/entities"
	"github.com/medisense-health/scheduler/internal/domain/providers"
	"github.com/medisense-health/scheduler/internal/infrastructure/observability"
	apperrors "github.com/medisense-health/scheduler/pkg/errors"
	"github.com/medisense-health/scheduler/pkg/timeutil"
)

// RecordService owns the persisted collection of appointment records. The
// collection lives as one JSON blob under a fixed key; every mutation is a
// whole-collection rewrite. A record's "upcoming" state is never stored, it
// is derived on every read so the passage of time reclassifies records
// without a migration step.
type RecordService struct {
	mu         sync.Mutex
	store      providers.BlobStore
	key        string
	metrics    *observability.Metrics
	clearToken string
}

// NewRecordService creates a record service persisting under key
func NewRecordService(store providers.BlobStore, key string, metrics *observability.Metrics) *RecordService {
	return &RecordService{
		store:   store,
		key:     key,
		metrics: metrics,
	}
}

// List returns the full collection in stored order
func (s *RecordService) List(ctx context.Context) ([]entities.AppointmentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Append adds a record and persists the whole collection. Ids are
// time-derived, so a collision indicates a broken generator and is surfaced
// as a hard failure.
func (s *RecordService) Append(ctx context.Context, record entities.AppointmentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return err
	}

	for _, existing := range records {
		if existing.ID == record.ID {
			return apperrors.NewDuplicateIDError(fmt.Sprintf("record id %s already exists", record.ID))
		}
	}

	return s.persist(ctx, append(records, record), "append")
}

// SetStatus rewrites the matching record's explicit status override.
// Only completed and cancelled may be stored; upcoming is always derived.
func (s *RecordService) SetStatus(ctx context.Context, id string, status entities.RecordStatus) error {
	if status != entities.RecordStatusCompleted && status != entities.RecordStatusCancelled {
		return apperrors.NewValidationError(fmt.Sprintf("status %q cannot be stored", status))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ID == id {
			records[i].Status = status
			return s.persist(ctx, records, "set_status")
		}
	}
	return apperrors.NewNotFoundError(fmt.Sprintf("record %s not found", id))
}

// Remove deletes a single record
func (s *RecordService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := records[:0]
	found := false
	for _, record := range records {
		if record.ID == id {
			found = true
			continue
		}
		kept = append(kept, record)
	}
	if !found {
		return apperrors.NewNotFoundError(fmt.Sprintf("record %s not found", id))
	}

	return s.persist(ctx, kept, "remove")
}

// RequestClear opens the two-step clear gate and returns a confirmation
// token. A new request supersedes any pending one.
func (s *RecordService) RequestClear() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearToken = uuid.New().String()
	return s.clearToken
}

// ConfirmClear deletes the whole collection if token matches the pending
// clear request.
func (s *RecordService) ConfirmClear(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.clearToken == "" || token != s.clearToken {
		return apperrors.NewValidationError("no matching clear request pending")
	}
	s.clearToken = ""

	if err := s.store.Remove(ctx, s.key); err != nil {
		return apperrors.NewInternalError("failed to clear records", err)
	}
	observability.RecordStoreWriteMetric(ctx, s.metrics, "clear")
	return nil
}

// DeriveStatus computes a record's lifecycle state as of today
func (s *RecordService) DeriveStatus(record entities.AppointmentRecord) entities.RecordStatus {
	return DeriveStatusAt(record, timeutil.DayFloor(time.Now()))
}

// DeriveStatusAt is the pure derivation: an explicit cancelled override
// wins, then records dated before today read as completed, everything else
// as upcoming. The result is never written back to storage.
func DeriveStatusAt(record entities.AppointmentRecord, today time.Time) entities.RecordStatus {
	if record.Status == entities.RecordStatusCancelled {
		return entities.RecordStatusCancelled
	}

	slotDay, err := timeutil.ParseSlotDate(record.Slot.Date)
	if err != nil {
		// An unreadable date cannot prove the appointment has passed.
		return entities.RecordStatusUpcoming
	}

	if slotDay.Before(timeutil.DayFloor(today)) {
		return entities.RecordStatusCompleted
	}
	return entities.RecordStatusUpcoming
}

// Stats summarizes the collection by derived status
func (s *RecordService) Stats(ctx context.Context) (entities.RecordStats, error) {
	records, err := s.List(ctx)
	if err != nil {
		return entities.RecordStats{}, err
	}

	today := timeutil.DayFloor(time.Now())
	stats := entities.RecordStats{Total: len(records)}
	for _, record := range records {
		switch DeriveStatusAt(record, today) {
		case entities.RecordStatusUpcoming:
			stats.Upcoming++
		case entities.RecordStatusCompleted:
			stats.Completed++
		case entities.RecordStatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

// ExportArchive serializes the full collection as an indented JSON document
func (s *RecordService) ExportArchive(ctx context.Context) ([]byte, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	archive, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode archive", err)
	}
	return archive, nil
}

// ImportArchive replaces the collection with the records in a previously
// exported archive.
func (s *RecordService) ImportArchive(ctx context.Context, archive []byte) (int, error) {
	var records []entities.AppointmentRecord
	if err := json.Unmarshal(archive, &records); err != nil {
		return 0, apperrors.NewFormatError("archive is not a valid record collection")
	}

	seen := make(map[string]bool, len(records))
	for _, record := range records {
		if record.ID == "" {
			return 0, apperrors.NewValidationError("archive contains a record without an id")
		}
		if seen[record.ID] {
			return 0, apperrors.NewDuplicateIDError(fmt.Sprintf("archive contains duplicate id %s", record.ID))
		}
		seen[record.ID] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, records, "import"); err != nil {
		return 0, err
	}
	return len(records), nil
}

// Get returns one record by id
func (s *RecordService) Get(ctx context.Context, id string) (*entities.AppointmentRecord, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("record %s not found", id))
}

// load reads the collection; callers hold s.mu.
func (s *RecordService) load(ctx context.Context) ([]entities.AppointmentRecord, error) {
	blob, err := s.store.Get(ctx, s.key)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load records", err)
	}
	if len(blob) == 0 {
		return nil, nil
	}

	var records []entities.AppointmentRecord
	if err := json.Unmarshal(blob, &records); err != nil {
		return nil, apperrors.NewInternalError("stored record collection is corrupt", err)
	}
	return records, nil
}

// persist rewrites the collection; callers hold s.mu.
func (s *RecordService) persist(ctx context.Context, records []entities.AppointmentRecord, operation string) error {
	blob, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return apperrors.NewInternalError("failed to encode records", err)
	}
	if err := s.store.Set(ctx, s.key, blob); err != nil {
		return apperrors.NewInternalError("failed to persist records", err)
	}
	observability.RecordStoreWriteMetric(ctx, s.metrics, operation)
	return nil
}
