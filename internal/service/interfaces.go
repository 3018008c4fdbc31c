package service

import (
	"context"
	"time"

	"github.com/alexanderramin/studyweek/internal/app"
	"github.com/alexanderramin/studyweek/internal/domain"
)

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Task, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	Delete(ctx context.Context, id string) error
}

type ScheduleService interface {
	Add(ctx context.Context, b *domain.ScheduleBlock) error
	ListWeek(ctx context.Context, userID string, weekStart time.Time) ([]*domain.ScheduleBlock, error)
	ListDay(ctx context.Context, userID string, date time.Time) ([]*domain.ScheduleBlock, error)
	Delete(ctx context.Context, id string) error
}

// SessionService is the ingestion boundary for focus sessions and manual
// progress. Records that fail validation are rejected with
// *app.ValidationError and never written.
type SessionService interface {
	app.LogFocusSessionUseCase
	app.LogManualProgressUseCase
	ListSessions(ctx context.Context, userID string, from, to time.Time) ([]*domain.FocusSession, error)
	ListManualEntries(ctx context.Context, userID string, from, to time.Time) ([]*domain.ManualEntry, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteManualEntry(ctx context.Context, id string) error
}

type DashboardService interface {
	app.DashboardUseCase
}

// ReflectService builds weekly reflections and remembers the last complete
// one per user and week.
type ReflectService interface {
	app.ReflectUseCase
	LastKnown(userID string, weekStart time.Time) (*app.ReflectResponse, bool)
}
