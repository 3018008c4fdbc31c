package domain

import "time"

// FocusSession is a completed focus-timer run. BlockID points at the
// scheduled block the timer was started from.
type FocusSession struct {
	ID            string
	UserID        string
	BlockID       string
	OccurredAt    *time.Time
	ActualMinutes int
	FocusRating   int
	Note          string
	CreatedAt     time.Time
}

// ManualEntry is user-reported work logged without a timer.
type ManualEntry struct {
	ID          string
	UserID      string
	TaskID      string
	OccurredAt  *time.Time
	Minutes     int
	FocusRating int
	Note        string
	CreatedAt   time.Time
}
