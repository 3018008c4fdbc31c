package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/studyweek/internal/app"
	"github.com/alexanderramin/studyweek/internal/domain"
	"github.com/alexanderramin/studyweek/internal/metrics"
	"github.com/alexanderramin/studyweek/internal/repository"
	"github.com/alexanderramin/studyweek/internal/testutil"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFocusSession_Stores(t *testing.T) {
	r := setupRepos(t)
	m := metrics.New(prometheus.NewRegistry())
	svc := NewSessionService(r.sessions, r.entries, r.uow, m)
	ctx := context.Background()

	at := testutil.At(domain.Monday, 20, 0)
	s := &domain.FocusSession{
		UserID:        testutil.TestUserID,
		BlockID:       "block-7",
		OccurredAt:    &at,
		ActualMinutes: 25,
		FocusRating:   4,
		Note:          "flow",
	}
	require.NoError(t, svc.LogFocusSession(ctx, s))
	assert.NotEmpty(t, s.ID)

	stored, err := r.sessions.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "block-7", stored.BlockID)
	assert.Equal(t, 25, stored.ActualMinutes)
	assert.True(t, at.Equal(*stored.OccurredAt))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.EntriesLoggedTotal.WithLabelValues("timer")))
}

func TestLogFocusSession_DefaultsTimestampToNow(t *testing.T) {
	r := setupRepos(t)
	svc := NewSessionService(r.sessions, r.entries, r.uow, nil)
	fixed := time.Date(2025, 3, 18, 7, 45, 0, 0, time.UTC)
	svc.(*sessionService).now = func() time.Time { return fixed }
	ctx := context.Background()

	s := &domain.FocusSession{UserID: testutil.TestUserID, BlockID: "b", ActualMinutes: 30, FocusRating: 3}
	require.NoError(t, svc.LogFocusSession(ctx, s))

	stored, err := r.sessions.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.OccurredAt)
	assert.True(t, fixed.Equal(*stored.OccurredAt))
}

func TestLogFocusSession_ZeroTimestampMeansNow(t *testing.T) {
	r := setupRepos(t)
	svc := NewSessionService(r.sessions, r.entries, r.uow, nil)
	fixed := time.Date(2025, 3, 18, 7, 45, 0, 0, time.UTC)
	svc.(*sessionService).now = func() time.Time { return fixed }
	ctx := context.Background()

	s := &domain.FocusSession{UserID: testutil.TestUserID, BlockID: "b", OccurredAt: &time.Time{}, ActualMinutes: 30, FocusRating: 3}
	require.NoError(t, svc.LogFocusSession(ctx, s))

	stored, err := r.sessions.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.OccurredAt)
	assert.True(t, fixed.Equal(*stored.OccurredAt))

	listed, err := r.sessions.ListByUserBetween(ctx, testutil.TestUserID, testutil.TestWeekStart, domain.WeekEndFor(testutil.TestWeekStart))
	require.NoError(t, err)
	assert.Len(t, listed, 1, "the session is visible to week queries")
}

func TestLogManualProgress_ZeroTimestampMeansNow(t *testing.T) {
	r := setupRepos(t)
	svc := NewSessionService(r.sessions, r.entries, r.uow, nil)
	fixed := time.Date(2025, 3, 19, 16, 0, 0, 0, time.UTC)
	svc.(*sessionService).now = func() time.Time { return fixed }
	ctx := context.Background()

	task := testutil.NewTestTask("Physics")
	require.NoError(t, r.tasks.Create(ctx, task))

	e := &domain.ManualEntry{UserID: testutil.TestUserID, TaskID: task.ID, OccurredAt: &time.Time{}, Minutes: 40, FocusRating: 4}
	require.NoError(t, svc.LogManualProgress(ctx, e))

	listed, err := r.entries.ListByUserBetween(ctx, testutil.TestUserID, testutil.TestWeekStart, domain.WeekEndFor(testutil.TestWeekStart))
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].OccurredAt)
	assert.True(t, fixed.Equal(*listed[0].OccurredAt))
}

func TestLogFocusSession_RejectsInvalid(t *testing.T) {
	r := setupRepos(t)
	svc := NewSessionService(r.sessions, r.entries, r.uow, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		session domain.FocusSession
		field   string
	}{
		{"missing user", domain.FocusSession{BlockID: "b", ActualMinutes: 10, FocusRating: 3}, "user_id"},
		{"missing session", domain.FocusSession{UserID: "u", ActualMinutes: 10, FocusRating: 3}, "session_id"},
		{"negative minutes", domain.FocusSession{UserID: "u", BlockID: "b", ActualMinutes: -1, FocusRating: 3}, "actual_minutes"},
		{"rating zero", domain.FocusSession{UserID: "u", BlockID: "b", ActualMinutes: 10, FocusRating: 0}, "focus_rating"},
		{"rating six", domain.FocusSession{UserID: "u", BlockID: "b", ActualMinutes: 10, FocusRating: 6}, "focus_rating"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.session
			err := svc.LogFocusSession(ctx, &s)
			var verr *app.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.Empty(t, s.ID, "rejected sessions are not stamped")
		})
	}

	list, err := r.sessions.ListByUserBetween(ctx, "u", time.Time{}, time.Now().AddDate(1, 0, 0))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLogManualProgress_Stores(t *testing.T) {
	r := setupRepos(t)
	svc := NewSessionService(r.sessions, r.entries, r.uow, nil)
	ctx := context.Background()

	task := testutil.NewTestTask("Thesis")
	require.NoError(t, r.tasks.Create(ctx, task))

	at := testutil.At(domain.Sunday, 14, 0)
	e := &domain.ManualEntry{UserID: testutil.TestUserID, TaskID: task.ID, OccurredAt: &at, Minutes: 90, FocusRating: 3}
	require.NoError(t, svc.LogManualProgress(ctx, e))

	list, err := svc.ListManualEntries(ctx, testutil.TestUserID, testutil.TestWeekStart, domain.WeekEndFor(testutil.TestWeekStart))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 90, list[0].Minutes)
}

func TestLogManualProgress_TaskMustExistAndBelongToUser(t *testing.T) {
	r := setupRepos(t)
	svc := NewSessionService(r.sessions, r.entries, r.uow, nil)
	ctx := context.Background()

	other := testutil.NewTestTask("Someone else's", testutil.WithTaskUser("user-2"))
	require.NoError(t, r.tasks.Create(ctx, other))

	missing := &domain.ManualEntry{UserID: testutil.TestUserID, TaskID: "missing", Minutes: 10, FocusRating: 3}
	err := svc.LogManualProgress(ctx, missing)
	var verr *app.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "task_id", verr.Field)
	assert.Contains(t, verr.Message, "not found")

	foreign := &domain.ManualEntry{UserID: testutil.TestUserID, TaskID: other.ID, Minutes: 10, FocusRating: 3}
	err = svc.LogManualProgress(ctx, foreign)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "another user")

	_, err = r.entries.GetByID(ctx, foreign.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLogManualProgress_RejectsInvalidRating(t *testing.T) {
	r := setupRepos(t)
	svc := NewSessionService(r.sessions, r.entries, r.uow, nil)

	err := svc.LogManualProgress(context.Background(), &domain.ManualEntry{UserID: "u", TaskID: "t", Minutes: 10, FocusRating: 9})
	assert.True(t, app.IsInvalidArgument(err))
}

func TestLogManualProgress_RollsBackOnWriteFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	tasks := repository.NewSQLiteTaskRepo(database)
	entries := repository.NewSQLiteManualEntryRepo(database)

	task := testutil.NewTestTask("Lab report")
	require.NoError(t, tasks.Create(ctx, task))

	injected := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 1, Err: injected}
	svc := NewSessionService(repository.NewSQLiteFocusSessionRepo(database), entries, uow, nil)

	e := &domain.ManualEntry{UserID: testutil.TestUserID, TaskID: task.ID, Minutes: 30, FocusRating: 4}
	err := svc.LogManualProgress(ctx, e)
	require.ErrorIs(t, err, injected)
	assert.False(t, app.IsInvalidArgument(err))

	_, err = entries.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionService_ListAndDelete(t *testing.T) {
	r := setupRepos(t)
	svc := NewSessionService(r.sessions, r.entries, r.uow, nil)
	ctx := context.Background()

	s := testutil.NewTestSession(testutil.At(domain.Saturday, 9, 0), 25, 5)
	require.NoError(t, svc.LogFocusSession(ctx, s))

	list, err := svc.ListSessions(ctx, testutil.TestUserID, testutil.TestWeekStart, domain.WeekEndFor(testutil.TestWeekStart))
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.DeleteSession(ctx, s.ID))
	assert.ErrorIs(t, svc.DeleteSession(ctx, s.ID), repository.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteManualEntry(ctx, "missing"), repository.ErrNotFound)
}

func TestSessionService_ObservesUseCases(t *testing.T) {
	r := setupRepos(t)
	obs := &recordingObserver{}
	svc := NewSessionService(r.sessions, r.entries, r.uow, nil, obs)
	ctx := context.Background()

	_ = svc.LogFocusSession(ctx, &domain.FocusSession{UserID: "u", BlockID: "b", FocusRating: 0})
	ev := obs.last()
	assert.Equal(t, "log-focus-session", ev.Name)
	assert.False(t, ev.Success)
	assert.Error(t, ev.Err)

	require.NoError(t, svc.LogFocusSession(ctx, testutil.NewTestSession(testutil.At(domain.Monday, 9, 0), 25, 4)))
	assert.True(t, obs.last().Success)
}
