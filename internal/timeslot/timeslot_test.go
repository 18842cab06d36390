package timeslot

import (
	"errors"
	"testing"
	"time"

	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in     string
		hour   int
		minute int
		ok     bool
	}{
		{"9:00 AM", 9, 0, true},
		{"9:30 PM", 21, 30, true},
		{"12:00 AM", 0, 0, true},
		{"12:00 PM", 12, 0, true},
		{"12:45 pm", 12, 45, true},
		{"1:05 AM", 1, 5, true},
		{"9:00", 0, 0, false},
		{"9:00 XX", 0, 0, false},
		{"13:00 PM", 0, 0, false},
		{"0:10 AM", 0, 0, false},
		{"9:60 AM", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range cases {
		hour, minute, err := ParseClock(tt.in)
		if tt.ok && err != nil {
			t.Fatalf("ParseClock(%q) unexpected error: %v", tt.in, err)
		}
		if !tt.ok {
			if !errors.Is(err, ErrInvalidClock) {
				t.Fatalf("ParseClock(%q) error = %v, want ErrInvalidClock", tt.in, err)
			}
			continue
		}
		if hour != tt.hour || minute != tt.minute {
			t.Fatalf("ParseClock(%q) = (%d, %d), want (%d, %d)", tt.in, hour, minute, tt.hour, tt.minute)
		}
	}
}

func TestProjectShiftTime(t *testing.T) {
	cases := []struct {
		clock string
		year  int
		week  int
		day   domain.Weekday
		want  time.Time
	}{
		// ISO week 1 of 2025 starts Monday 2024-12-30.
		{"9:00 AM", 2025, 1, domain.Monday, time.Date(2024, time.December, 30, 9, 0, 0, 0, time.UTC)},
		{"9:00 AM", 2025, 1, domain.Sunday, time.Date(2024, time.December, 29, 9, 0, 0, 0, time.UTC)},
		{"5:00 PM", 2025, 1, domain.Saturday, time.Date(2025, time.January, 4, 17, 0, 0, 0, time.UTC)},
		{"9:00 AM", 2025, 10, domain.Monday, time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)},
		{"12:00 AM", 2024, 1, domain.Thursday, time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range cases {
		got, err := ProjectShiftTime(tt.clock, tt.year, tt.week, tt.day)
		if err != nil {
			t.Fatalf("ProjectShiftTime(%q, %d, %d, %s) error: %v", tt.clock, tt.year, tt.week, tt.day, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("ProjectShiftTime(%q, %d, %d, %s) = %s, want %s", tt.clock, tt.year, tt.week, tt.day, got, tt.want)
		}
	}

	if _, err := ProjectShiftTime("9:00 XX", 2025, 1, domain.Monday); !errors.Is(err, ErrInvalidClock) {
		t.Fatalf("expected ErrInvalidClock, got %v", err)
	}
}

// Projection composed with its inverse recovers the original inputs for
// every weekday and AM/PM combination.
func TestProjectionRoundTrip(t *testing.T) {
	days := []domain.Weekday{
		domain.Sunday, domain.Monday, domain.Tuesday, domain.Wednesday,
		domain.Thursday, domain.Friday, domain.Saturday,
	}
	clocks := []string{"12:00 AM", "6:15 AM", "11:59 AM", "12:00 PM", "3:30 PM", "11:45 PM"}

	for _, day := range days {
		for _, clock := range clocks {
			for _, week := range []int{2, 10, 26, 40} {
				projected, err := ProjectShiftTime(clock, 2025, week, day)
				if err != nil {
					t.Fatalf("ProjectShiftTime(%q, 2025, %d, %s) error: %v", clock, week, day, err)
				}

				if got := int(projected.Weekday()); got != day.Index() {
					t.Fatalf("weekday of %s = %d, want %d (%s)", projected, got, day.Index(), day)
				}
				year, gotWeek := ShiftWeek(projected)
				if year != 2025 || gotWeek != week {
					t.Fatalf("ShiftWeek(%s) = (%d, %d), want (2025, %d)", projected, year, gotWeek, week)
				}
				if got := FormatClock(projected.Hour(), projected.Minute()); got != clock {
					t.Fatalf("FormatClock round trip = %q, want %q", got, clock)
				}
			}
		}
	}
}

func TestAssertBookableWindow(t *testing.T) {
	// Wednesday of ISO week 10, 2025.
	now := time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		clock string
		year  int
		week  int
		day   domain.Weekday
		err   error
	}{
		{"past year", "9:00 AM", 2024, 50, domain.Friday, ErrPastDate},
		{"past week same year", "9:00 AM", 2025, 9, domain.Friday, ErrPastDate},
		{"past day same week", "9:00 AM", 2025, 10, domain.Monday, ErrPastDate},
		{"past hour same day", "9:00 AM", 2025, 10, domain.Wednesday, ErrPastDate},
		{"later same day", "5:00 PM", 2025, 10, domain.Wednesday, nil},
		{"later same week", "9:00 AM", 2025, 10, domain.Saturday, nil},
		{"next week", "9:00 AM", 2025, 11, domain.Monday, nil},
		{"early week of next year", "9:00 AM", 2026, 1, domain.Monday, nil},
		{"bad clock", "9:00 XX", 2025, 11, domain.Monday, ErrInvalidClock},
	}

	for _, tt := range cases {
		err := AssertBookableWindow(now, tt.clock, tt.year, tt.week, tt.day)
		if !errors.Is(err, tt.err) {
			t.Fatalf("%s: AssertBookableWindow = %v, want %v", tt.name, err, tt.err)
		}
	}
}

func TestDayHourDifference(t *testing.T) {
	from := time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.June, 4, 13, 30, 0, 0, time.UTC)

	days, hours := DayHourDifference(from, to)
	if days != 3 || hours != 5 {
		t.Fatalf("DayHourDifference = (%d, %d), want (3, 5)", days, hours)
	}

	if got := TimeFrame(from, to); got != "3 day(s), 5 hour(s)" {
		t.Fatalf("TimeFrame = %q", got)
	}

	if got := HourDifference(from, from.Add(90*time.Minute)); got != 1.5 {
		t.Fatalf("HourDifference = %v, want 1.5", got)
	}
}
