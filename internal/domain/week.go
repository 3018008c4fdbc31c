package domain

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used at every boundary.
const DateLayout = "2006-01-02"

// DaysPerWeek is the length of the Saturday-first day cycle.
const DaysPerWeek = 7

// DayIndex is a day of the week where Saturday is 0 and Friday is 6.
type DayIndex int

const (
	Saturday DayIndex = iota
	Sunday
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
)

var dayNames = [DaysPerWeek]string{
	"Saturday", "Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday",
}

// Valid reports whether d is within 0..6.
func (d DayIndex) Valid() bool {
	return d >= Saturday && d <= Friday
}

func (d DayIndex) String() string {
	if !d.Valid() {
		return fmt.Sprintf("DayIndex(%d)", int(d))
	}
	return dayNames[d]
}

// DayIndexOf maps the calendar weekday of t (in t's own location) onto the
// Saturday-first index. time.Weekday counts from Sunday=0, so Saturday (6)
// wraps to 0 and every other day shifts up by one.
func DayIndexOf(t time.Time) DayIndex {
	return DayIndex((int(t.Weekday()) + 1) % DaysPerWeek)
}

// WeekStartFor returns midnight of the Saturday on or before t, in t's location.
func WeekStartFor(t time.Time) time.Time {
	day := TruncateToDay(t)
	return day.AddDate(0, 0, -int(DayIndexOf(day)))
}

// WeekEndFor returns the Friday that closes the week opened by start.
func WeekEndFor(start time.Time) time.Time {
	return TruncateToDay(start).AddDate(0, 0, DaysPerWeek-1)
}

// TruncateToDay drops the clock part of t while keeping its location.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD) as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be in YYYY-MM-DD format", s)
	}
	return t, nil
}
