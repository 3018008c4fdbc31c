package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/studyweek/internal/db"
	"github.com/alexanderramin/studyweek/internal/domain"
	"github.com/alexanderramin/studyweek/internal/repository"
	"github.com/alexanderramin/studyweek/internal/testutil"
)

type testRepos struct {
	tasks    *repository.SQLiteTaskRepo
	blocks   *repository.SQLiteScheduleRepo
	sessions *repository.SQLiteFocusSessionRepo
	entries  *repository.SQLiteManualEntryRepo
	uow      db.UnitOfWork
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testRepos{
		tasks:    repository.NewSQLiteTaskRepo(database),
		blocks:   repository.NewSQLiteScheduleRepo(database),
		sessions: repository.NewSQLiteFocusSessionRepo(database),
		entries:  repository.NewSQLiteManualEntryRepo(database),
		uow:      testutil.NewTestUoW(database),
	}
}

var errStorageDown = errors.New("storage down")

type failingScheduleRepo struct {
	repository.ScheduleRepo
	err error
}

func (f failingScheduleRepo) ListByWeek(context.Context, string, time.Time) ([]*domain.ScheduleBlock, error) {
	return nil, f.err
}

type failingSessionRepo struct {
	repository.FocusSessionRepo
	err error
}

func (f failingSessionRepo) ListByUserBetween(context.Context, string, time.Time, time.Time) ([]*domain.FocusSession, error) {
	return nil, f.err
}

type failingEntryRepo struct {
	repository.ManualEntryRepo
	err error
}

func (f failingEntryRepo) ListByUserBetween(context.Context, string, time.Time, time.Time) ([]*domain.ManualEntry, error) {
	return nil, f.err
}

type failingTaskRepo struct {
	repository.TaskRepo
	err error
}

func (f failingTaskRepo) CountByUser(context.Context, string) (int, error) {
	return 0, f.err
}

// blockingSessionRepo waits for its context to end, then reports why.
type blockingSessionRepo struct {
	repository.FocusSessionRepo
}

func (blockingSessionRepo) ListByUserBetween(ctx context.Context, _ string, _, _ time.Time) ([]*domain.FocusSession, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// recordingObserver keeps every event it sees.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}
