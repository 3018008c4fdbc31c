package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/studyweek/internal/db"
	"github.com/alexanderramin/studyweek/internal/domain"
	"github.com/alexanderramin/studyweek/internal/metrics"
	"github.com/alexanderramin/studyweek/internal/repository"
	"github.com/google/uuid"
)

type sessionService struct {
	sessions repository.FocusSessionRepo
	entries  repository.ManualEntryRepo
	uow      db.UnitOfWork
	metrics  *metrics.Metrics
	observer UseCaseObserver
	now      func() time.Time
}

func NewSessionService(
	sessions repository.FocusSessionRepo,
	entries repository.ManualEntryRepo,
	uow db.UnitOfWork,
	m *metrics.Metrics,
	observers ...UseCaseObserver,
) SessionService {
	return &sessionService{
		sessions: sessions,
		entries:  entries,
		uow:      uow,
		metrics:  m,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *sessionService) LogFocusSession(ctx context.Context, session *domain.FocusSession) (err error) {
	defer observe(ctx, s.observer, "log-focus-session", time.Now(), map[string]any{
		"user_id": session.UserID,
		"minutes": session.ActualMinutes,
	}, &err)

	if err = session.Validate(); err != nil {
		return err
	}
	s.stamp(&session.ID, &session.OccurredAt, &session.CreatedAt)

	if err = s.sessions.Create(ctx, session); err != nil {
		return err
	}
	s.metrics.RecordEntryLogged(string(domain.SourceTimer))
	return nil
}

// LogManualProgress checks that the task exists and belongs to the user in
// the same transaction that writes the entry.
func (s *sessionService) LogManualProgress(ctx context.Context, entry *domain.ManualEntry) (err error) {
	defer observe(ctx, s.observer, "log-manual-progress", time.Now(), map[string]any{
		"user_id": entry.UserID,
		"task_id": entry.TaskID,
		"minutes": entry.Minutes,
	}, &err)

	if err = entry.Validate(); err != nil {
		return err
	}
	s.stamp(&entry.ID, &entry.OccurredAt, &entry.CreatedAt)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		task, err := repository.NewSQLiteTaskRepo(tx).GetByID(ctx, entry.TaskID)
		if err != nil {
			return taskLookupError(err)
		}
		if task.UserID != entry.UserID {
			return &domain.ValidationError{Field: "task_id", Message: "task belongs to another user"}
		}
		return repository.NewSQLiteManualEntryRepo(tx).Create(ctx, entry)
	})
	if err != nil {
		return err
	}
	s.metrics.RecordEntryLogged(string(domain.SourceManual))
	return nil
}

func (s *sessionService) ListSessions(ctx context.Context, userID string, from, to time.Time) ([]*domain.FocusSession, error) {
	return s.sessions.ListByUserBetween(ctx, userID, from, to)
}

func (s *sessionService) ListManualEntries(ctx context.Context, userID string, from, to time.Time) ([]*domain.ManualEntry, error) {
	return s.entries.ListByUserBetween(ctx, userID, from, to)
}

func (s *sessionService) DeleteSession(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

func (s *sessionService) DeleteManualEntry(ctx context.Context, id string) error {
	return s.entries.Delete(ctx, id)
}

// stamp fills server-assigned fields. A missing or zero timestamp means "now".
func (s *sessionService) stamp(id *string, occurredAt **time.Time, createdAt *time.Time) {
	now := s.now()
	if *id == "" {
		*id = uuid.New().String()
	}
	if *occurredAt == nil || (*occurredAt).IsZero() {
		*occurredAt = &now
	}
	*createdAt = now.UTC()
}

// taskLookupError turns a missing task into a validation failure.
func taskLookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &domain.ValidationError{Field: "task_id", Message: "task not found"}
	}
	return fmt.Errorf("loading task: %w", err)
}
