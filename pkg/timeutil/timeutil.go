package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/medisense-health/scheduler/pkg/errors"
)

// SlotDateLayout is the wire format for slot dates.
const SlotDateLayout = "2006-01-02"

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s+([AaPp][Mm])$`)

// ParseClockTime parses a 12-hour clock string such as "9:00 AM" or "03:15 PM"
// into minutes since midnight. 12 AM maps to 0 and 12 PM maps to 720.
// Any other shape yields a FORMAT error, which callers recover from by
// substituting a fallback slot rather than failing the workflow.
func ParseClockTime(s string) (int, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, apperrors.NewFormatError(fmt.Sprintf("invalid clock time %q", s))
	}

	hours, err := strconv.Atoi(m[1])
	if err != nil || hours < 1 || hours > 12 {
		return 0, apperrors.NewFormatError(fmt.Sprintf("invalid hour in clock time %q", s))
	}
	minutes, err := strconv.Atoi(m[2])
	if err != nil || minutes > 59 {
		return 0, apperrors.NewFormatError(fmt.Sprintf("invalid minute in clock time %q", s))
	}

	period := strings.ToUpper(m[3])
	if period == "PM" && hours != 12 {
		hours += 12
	}
	if period == "AM" && hours == 12 {
		hours = 0
	}

	return hours*60 + minutes, nil
}

// DayFloor truncates a timestamp to local calendar-day granularity.
func DayFloor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseSlotDate parses a slot date in the YYYY-MM-DD wire format into a
// local-midnight timestamp.
func ParseSlotDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(SlotDateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, apperrors.NewFormatError(fmt.Sprintf("invalid slot date %q", s))
	}
	return t, nil
}

// FormatSlotDate renders a timestamp in the YYYY-MM-DD wire format.
func FormatSlotDate(t time.Time) string {
	return t.Format(SlotDateLayout)
}

// SlotStart combines a slot date and a 12-hour clock string into a single
// local timestamp.
func SlotStart(date, clock string) (time.Time, error) {
	day, err := ParseSlotDate(date)
	if err != nil {
		return time.Time{}, err
	}
	minutes, err := ParseClockTime(clock)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(minutes) * time.Minute), nil
}
