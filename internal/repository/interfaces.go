package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/studyweek/internal/domain"
)

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Task, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	Delete(ctx context.Context, id string) error
}

type ScheduleRepo interface {
	Create(ctx context.Context, b *domain.ScheduleBlock) error
	GetByID(ctx context.Context, id string) (*domain.ScheduleBlock, error)
	ListByWeek(ctx context.Context, userID string, weekStart time.Time) ([]*domain.ScheduleBlock, error)
	ListByDay(ctx context.Context, userID string, weekStart time.Time, day domain.DayIndex) ([]*domain.ScheduleBlock, error)
	Delete(ctx context.Context, id string) error
}

// FocusSessionRepo stores timed sessions. ListByUserBetween filters on the
// session's own calendar date, inclusive on both ends.
type FocusSessionRepo interface {
	Create(ctx context.Context, s *domain.FocusSession) error
	GetByID(ctx context.Context, id string) (*domain.FocusSession, error)
	ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]*domain.FocusSession, error)
	Delete(ctx context.Context, id string) error
}

type ManualEntryRepo interface {
	Create(ctx context.Context, e *domain.ManualEntry) error
	GetByID(ctx context.Context, id string) (*domain.ManualEntry, error)
	ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]*domain.ManualEntry, error)
	Delete(ctx context.Context, id string) error
}
