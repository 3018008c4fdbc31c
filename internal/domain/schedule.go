package domain

import "time"

// ScheduleBlock is one planned study block inside a Saturday-first week.
type ScheduleBlock struct {
	ID            string
	UserID        string
	TaskID        string
	Title         string
	WeekStart     time.Time
	DayOfWeek     DayIndex
	StartHour     int
	DurationHours float64
	CreatedAt     time.Time
}
