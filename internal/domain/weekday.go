package domain

import "fmt"

// Weekday is the day-of-week slot a demand cell applies to. The template is
// week-day-relative, not calendar-anchored, so this is stored as text.
type Weekday string

const (
	Sunday    Weekday = "SUNDAY"
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
)

var weekdayIndex = map[Weekday]int{
	Sunday:    0,
	Monday:    1,
	Tuesday:   2,
	Wednesday: 3,
	Thursday:  4,
	Friday:    5,
	Saturday:  6,
}

// Index returns the fixed SUNDAY=0 .. SATURDAY=6 ordering used to sort
// demand cells and to project a shift onto a calendar week.
func (w Weekday) Index() int {
	return weekdayIndex[w]
}

func (w Weekday) Valid() bool {
	_, ok := weekdayIndex[w]
	return ok
}

func ParseWeekday(s string) (Weekday, error) {
	w := Weekday(s)
	if !w.Valid() {
		return "", fmt.Errorf("unknown weekday %q", s)
	}
	return w, nil
}
