package service

import (
	"context"
	"time"

	"github.com/alexanderramin/studyweek/internal/domain"
	"github.com/alexanderramin/studyweek/internal/repository"
	"github.com/google/uuid"
)

type scheduleService struct {
	blocks repository.ScheduleRepo
	tasks  repository.TaskRepo
}

func NewScheduleService(blocks repository.ScheduleRepo, tasks repository.TaskRepo) ScheduleService {
	return &scheduleService{blocks: blocks, tasks: tasks}
}

// Add stores a block. When TaskID is set and Title is empty the block takes
// the task's title.
func (s *scheduleService) Add(ctx context.Context, b *domain.ScheduleBlock) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if b.TaskID != "" {
		task, err := s.tasks.GetByID(ctx, b.TaskID)
		if err != nil {
			return taskLookupError(err)
		}
		if task.UserID != b.UserID {
			return &domain.ValidationError{Field: "task_id", Message: "task belongs to another user"}
		}
		if b.Title == "" {
			b.Title = task.Title
		}
	}
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	b.CreatedAt = time.Now().UTC()
	return s.blocks.Create(ctx, b)
}

func (s *scheduleService) ListWeek(ctx context.Context, userID string, weekStart time.Time) ([]*domain.ScheduleBlock, error) {
	return s.blocks.ListByWeek(ctx, userID, domain.WeekStartFor(weekStart))
}

func (s *scheduleService) ListDay(ctx context.Context, userID string, date time.Time) ([]*domain.ScheduleBlock, error) {
	return s.blocks.ListByDay(ctx, userID, domain.WeekStartFor(date), domain.DayIndexOf(date))
}

func (s *scheduleService) Delete(ctx context.Context, id string) error {
	return s.blocks.Delete(ctx, id)
}
