// Package timeslot projects week-day-relative shift templates onto concrete
// calendar instants. A demand cell stores a weekday and a 12-hour clock
// string; a booking adds an (ISO week, year) pair; projection turns the
// four-tuple into a time.Time.
package timeslot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
)

var (
	ErrInvalidClock = errors.New("invalid clock time, expected \"h:mm AM|PM\"")
	ErrPastDate     = errors.New("cannot book a shift for a past date")
)

// ParseClock parses "h:mm AM|PM" into a 24-hour (hour, minute). "12:00 AM"
// is midnight, "12:00 PM" is noon.
func ParseClock(clock string) (int, int, error) {
	parts := strings.Fields(clock)
	if len(parts) != 2 {
		return 0, 0, ErrInvalidClock
	}
	marker := strings.ToUpper(parts[1])
	if marker != "AM" && marker != "PM" {
		return 0, 0, ErrInvalidClock
	}

	hm := strings.Split(parts[0], ":")
	if len(hm) != 2 {
		return 0, 0, ErrInvalidClock
	}
	hour, err := strconv.Atoi(hm[0])
	if err != nil || hour < 1 || hour > 12 {
		return 0, 0, ErrInvalidClock
	}
	minute, err := strconv.Atoi(hm[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, ErrInvalidClock
	}

	if marker == "AM" && hour == 12 {
		hour = 0
	}
	if marker == "PM" && hour != 12 {
		hour += 12
	}
	return hour, minute, nil
}

// FormatClock renders a 24-hour (hour, minute) back into "h:mm AM|PM".
func FormatClock(hour, minute int) string {
	marker := "AM"
	h := hour
	switch {
	case hour == 0:
		h = 12
	case hour == 12:
		marker = "PM"
	case hour > 12:
		h = hour - 12
		marker = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, marker)
}

// ProjectShiftTime anchors (clock, year, isoWeek, weekday) to a concrete
// instant. It uses the "January 4th is always in ISO week 1" rule: the week
// containing Jan 4 is week 1, weeks run SUNDAY..SATURDAY with the Sunday
// preceding the ISO Monday.
func ProjectShiftTime(clock string, year, week int, day domain.Weekday) (time.Time, error) {
	hour, minute, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}

	anchor := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	dow := int(anchor.Weekday())
	if dow == 0 {
		dow = 7
	}
	offset := dow - day.Index()
	dayOfMonth := week*7 - offset - 3

	return time.Date(year, time.January, dayOfMonth, hour, minute, 0, 0, time.UTC), nil
}

// ShiftWeek is the inverse of the week placement above: it recovers the
// (year, isoWeek) a projected instant belongs to. A Sunday counts toward the
// upcoming ISO week, matching ProjectShiftTime's SUNDAY..SATURDAY layout.
func ShiftWeek(t time.Time) (int, int) {
	if t.Weekday() == time.Sunday {
		t = t.AddDate(0, 0, 1)
	}
	return t.ISOWeek()
}

// AssertBookableWindow fails with ErrPastDate when the target (week, year)
// or the fully projected instant lies before now. Both the booking engine
// and the swap engine call this before committing any booking change.
func AssertBookableWindow(now time.Time, clock string, year, week int, day domain.Weekday) error {
	nowYear, nowWeek := now.ISOWeek()
	if year < nowYear {
		return ErrPastDate
	}
	if year == nowYear && week < nowWeek {
		return ErrPastDate
	}

	projected, err := ProjectShiftTime(clock, year, week, day)
	if err != nil {
		return err
	}
	if projected.Before(now) {
		return ErrPastDate
	}
	return nil
}

// HourDifference returns to-from in fractional hours.
func HourDifference(from, to time.Time) float64 {
	return to.Sub(from).Hours()
}

// DayHourDifference splits to-from into whole days and leftover whole hours.
func DayHourDifference(from, to time.Time) (int, int) {
	d := to.Sub(from)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) - days*24
	return days, hours
}

// TimeFrame renders the display string stored on a time-off request,
// e.g. "3 day(s), 5 hour(s)". Computed once at create/edit time.
func TimeFrame(from, to time.Time) string {
	days, hours := DayHourDifference(from, to)
	return fmt.Sprintf("%d day(s), %d hour(s)", days, hours)
}

// Clock supplies the current time so week defaulting and past-date checks
// stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
