package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/medisense-health/scheduler/internal/domain/entities"
	apperrors "github.com/medisense-health/scheduler/pkg/errors"
	"github.com/medisense-health/scheduler/pkg/timeutil"
)

const calendarEventDuration = 30 * time.Minute

// CalendarExporter renders appointment records as iCalendar documents
type CalendarExporter struct {
	productName string
	domain      string
}

// NewCalendarExporter creates an exporter branded with productName and
// the uid domain suffix.
func NewCalendarExporter(productName, domain string) *CalendarExporter {
	return &CalendarExporter{
		productName: productName,
		domain:      domain,
	}
}

// Export renders a record as a single-VEVENT VCALENDAR document. Every
// event spans a fixed 30 minutes regardless of the slot's advertised
// duration; the stored duration is display copy, not schedule data.
func (e *CalendarExporter) Export(record entities.AppointmentRecord, now time.Time) ([]byte, error) {
	if record.ConfirmationNumber == "" {
		return nil, apperrors.NewValidationError("record has no confirmation number")
	}

	start, err := timeutil.SlotStart(record.Slot.Date, record.Slot.Time)
	if err != nil {
		return nil, err
	}
	end := start.Add(calendarEventDuration)

	description := fmt.Sprintf(
		"Appointment confirmation: %s\\nSpecialization: %s\\nAddress: %s",
		record.ConfirmationNumber,
		escapeICSText(record.Hospital.Specialization),
		escapeICSText(record.Hospital.Address),
	)

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		fmt.Sprintf("PRODID:-//%s//EN", e.productName),
		"BEGIN:VEVENT",
		fmt.Sprintf("UID:%s@%s", record.ConfirmationNumber, e.domain),
		"DTSTAMP:" + formatICSTime(now),
		"DTSTART:" + formatICSTime(start),
		"DTEND:" + formatICSTime(end),
		"SUMMARY:Appointment at " + escapeICSText(record.Hospital.Name),
		"DESCRIPTION:" + description,
		"LOCATION:" + escapeICSText(record.Hospital.Address),
		"END:VEVENT",
		"END:VCALENDAR",
	}
	return []byte(strings.Join(lines, "\n")), nil
}

// formatICSTime renders UTC basic format, e.g. 20260115T143000Z
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICSText escapes the characters RFC 5545 reserves in TEXT values
func escapeICSText(s string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return replacer.Replace(s)
}
