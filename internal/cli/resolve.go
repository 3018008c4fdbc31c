package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/studyweek/internal/domain"
)

// calendarDate converts a wall-clock instant to UTC midnight of its local
// calendar date, the form dates are stored and compared in.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// resolveDate parses YYYY-MM-DD, or returns today when value is empty.
func resolveDate(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return calendarDate(now), nil
	}
	return domain.ParseDate(value)
}

// resolveWeek returns the Saturday opening the week that contains value
// (or today when empty). Any day of the week is accepted.
func resolveWeek(value string, now time.Time) (time.Time, error) {
	d, err := resolveDate(value, now)
	if err != nil {
		return time.Time{}, err
	}
	return domain.WeekStartFor(d), nil
}

// parseDay accepts a Saturday-first index (0-6) or a day name such as
// "sat", "Monday" or "fri".
func parseDay(value string) (domain.DayIndex, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if n, err := strconv.Atoi(v); err == nil {
		d := domain.DayIndex(n)
		if !d.Valid() {
			return 0, fmt.Errorf("day %d out of range: use 0 (Saturday) to 6 (Friday)", n)
		}
		return d, nil
	}
	if len(v) >= 3 {
		for d := domain.Saturday; d <= domain.Friday; d++ {
			if strings.HasPrefix(strings.ToLower(d.String()), v) {
				return d, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown day %q: use 0-6 or a day name", value)
}

// parseAt reads the --at flag. Empty means "now" and is returned as nil so
// the service stamps it. Accepted forms: RFC3339, "YYYY-MM-DD HH:MM" and
// "HH:MM" (today), the last two in the local zone.
func parseAt(value string, now time.Time) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	loc := now.Location()
	if t, err := time.ParseInLocation("2006-01-02 15:04", value, loc); err == nil {
		return &t, nil
	}
	if clock, err := time.ParseInLocation("15:04", value, loc); err == nil {
		y, m, d := now.Date()
		t := time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, loc)
		return &t, nil
	}
	return nil, fmt.Errorf("invalid --at %q: use RFC3339, \"YYYY-MM-DD HH:MM\" or \"HH:MM\"", value)
}
