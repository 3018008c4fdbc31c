package domain

import (
	"fmt"
	"math"
)

// ValidationError reports a record rejected at the ingestion boundary.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ValidateFocusRating checks that r is an integer on the 1..5 scale.
func ValidateFocusRating(r int) error {
	if r < MinFocusRating || r > MaxFocusRating {
		return invalid("focus_rating", "must be between %d and %d, got %d", MinFocusRating, MaxFocusRating, r)
	}
	return nil
}

func (t *Task) Validate() error {
	if t.UserID == "" {
		return invalid("user_id", "is required")
	}
	if t.Title == "" {
		return invalid("title", "is required")
	}
	return nil
}

func (b *ScheduleBlock) Validate() error {
	if b.UserID == "" {
		return invalid("user_id", "is required")
	}
	if !b.DayOfWeek.Valid() {
		return invalid("day", "must be between 0 (Saturday) and 6 (Friday), got %d", int(b.DayOfWeek))
	}
	if b.StartHour < 0 || b.StartHour > 23 {
		return invalid("hour", "must be between 0 and 23, got %d", b.StartHour)
	}
	if !(b.DurationHours > 0) || math.IsInf(b.DurationHours, 0) {
		return invalid("duration", "must be a positive number of hours")
	}
	if b.WeekStart.IsZero() {
		return invalid("week_start", "is required")
	}
	if DayIndexOf(b.WeekStart) != Saturday {
		return invalid("week_start", "%s is a %s, weeks start on Saturday",
			b.WeekStart.Format(DateLayout), b.WeekStart.Weekday())
	}
	return nil
}

func (s *FocusSession) Validate() error {
	if s.UserID == "" {
		return invalid("user_id", "is required")
	}
	if s.BlockID == "" {
		return invalid("session_id", "is required")
	}
	if s.ActualMinutes < 0 {
		return invalid("actual_minutes", "must be a non-negative number, got %d", s.ActualMinutes)
	}
	return ValidateFocusRating(s.FocusRating)
}

func (e *ManualEntry) Validate() error {
	if e.UserID == "" {
		return invalid("user_id", "is required")
	}
	if e.TaskID == "" {
		return invalid("task_id", "is required")
	}
	if e.Minutes < 0 {
		return invalid("minutes", "must be a non-negative number, got %d", e.Minutes)
	}
	return ValidateFocusRating(e.FocusRating)
}
