package app

import (
	"time"

	"github.com/alexanderramin/studyweek/internal/domain"
	"github.com/alexanderramin/studyweek/internal/reflection"
)

type DashboardRequest struct {
	UserID string
	// Date selects the day; zero means today.
	Date time.Time
}

type DashboardResponse struct {
	UserID      string
	Date        time.Time
	WeekStart   time.Time
	Today       domain.DayIndex
	TodayBlocks []*domain.ScheduleBlock
	WeekBlocks  []*domain.ScheduleBlock
	Progress    reflection.DayProgress
	// PlannedTodayHours is the sum of today's block durations.
	PlannedTodayHours float64
}
