package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/studyweek/internal/app"
	"github.com/alexanderramin/studyweek/internal/domain"
	"github.com/alexanderramin/studyweek/internal/reflection"
	"github.com/alexanderramin/studyweek/internal/repository"
)

type dashboardService struct {
	blocks   repository.ScheduleRepo
	sessions repository.FocusSessionRepo
	entries  repository.ManualEntryRepo
	observer UseCaseObserver
	now      func() time.Time
}

func NewDashboardService(
	blocks repository.ScheduleRepo,
	sessions repository.FocusSessionRepo,
	entries repository.ManualEntryRepo,
	observers ...UseCaseObserver,
) DashboardService {
	return &dashboardService{
		blocks:   blocks,
		sessions: sessions,
		entries:  entries,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

// Dashboard returns the week containing req.Date with the day's blocks and
// the progress logged on that calendar date.
func (s *dashboardService) Dashboard(ctx context.Context, req app.DashboardRequest) (resp *app.DashboardResponse, err error) {
	defer observe(ctx, s.observer, "dashboard", time.Now(), map[string]any{"user_id": req.UserID}, &err)

	if req.UserID == "" {
		return nil, &domain.ValidationError{Field: "user_id", Message: "is required"}
	}
	date := req.Date
	if date.IsZero() {
		date = s.now()
	}
	date = domain.TruncateToDay(date)
	weekStart := domain.WeekStartFor(date)
	today := domain.DayIndexOf(date)

	week, err := s.blocks.ListByWeek(ctx, req.UserID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("loading week schedule: %w", err)
	}
	todayBlocks, err := s.blocks.ListByDay(ctx, req.UserID, weekStart, today)
	if err != nil {
		return nil, fmt.Errorf("loading today's schedule: %w", err)
	}
	sessions, err := s.sessions.ListByUserBetween(ctx, req.UserID, date, date)
	if err != nil {
		return nil, fmt.Errorf("loading today's sessions: %w", err)
	}
	entries, err := s.entries.ListByUserBetween(ctx, req.UserID, date, date)
	if err != nil {
		return nil, fmt.Errorf("loading today's manual entries: %w", err)
	}

	return &app.DashboardResponse{
		UserID:            req.UserID,
		Date:              date,
		WeekStart:         weekStart,
		Today:             today,
		TodayBlocks:       todayBlocks,
		WeekBlocks:        week,
		Progress:          reflection.SummarizeDay(values(sessions), values(entries)),
		PlannedTodayHours: reflection.PlannedHours(values(todayBlocks)),
	}, nil
}
