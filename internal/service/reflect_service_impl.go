package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/studyweek/internal/app"
	"github.com/alexanderramin/studyweek/internal/domain"
	"github.com/alexanderramin/studyweek/internal/metrics"
	"github.com/alexanderramin/studyweek/internal/reflection"
	"github.com/alexanderramin/studyweek/internal/repository"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultFetchTimeout = 5 * time.Second
	DefaultCacheSize    = 128
)

// ReflectConfig tunes the weekly reflection use case. Zero values take the
// package defaults.
type ReflectConfig struct {
	FetchTimeout time.Duration
	CacheSize    int
}

type reflectKey struct {
	userID    string
	weekStart string
}

type reflectService struct {
	blocks   repository.ScheduleRepo
	sessions repository.FocusSessionRepo
	entries  repository.ManualEntryRepo
	tasks    repository.TaskRepo

	timeout time.Duration
	cache   *lru.Cache[reflectKey, app.ReflectResponse]

	logger   *zap.Logger
	metrics  *metrics.Metrics
	observer UseCaseObserver
	now      func() time.Time
}

func NewReflectService(
	blocks repository.ScheduleRepo,
	sessions repository.FocusSessionRepo,
	entries repository.ManualEntryRepo,
	tasks repository.TaskRepo,
	cfg ReflectConfig,
	logger *zap.Logger,
	m *metrics.Metrics,
	observers ...UseCaseObserver,
) (ReflectService, error) {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cache, err := lru.New[reflectKey, app.ReflectResponse](cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	return &reflectService{
		blocks:   blocks,
		sessions: sessions,
		entries:  entries,
		tasks:    tasks,
		timeout:  cfg.FetchTimeout,
		cache:    cache,
		logger:   logger,
		metrics:  m,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}, nil
}

// Reflect loads one week of activity and reduces it to a WeeklySummary.
//
// The schedule is mandatory: failing to read it returns UPSTREAM_UNAVAILABLE.
// Sessions, manual entries and the task count are optional: a failed read is
// replaced by an empty value and named in DegradedSources.
func (s *reflectService) Reflect(ctx context.Context, req app.ReflectRequest) (resp *app.ReflectResponse, err error) {
	fields := map[string]any{"user_id": req.UserID}
	defer observe(ctx, s.observer, "weekly-reflect", time.Now(), fields, &err)

	if strings.TrimSpace(req.UserID) == "" {
		return nil, &app.ReflectError{Code: app.ReflectErrInvalidArgument, Message: "user_id is required"}
	}
	if req.WeekStart.IsZero() {
		return nil, &app.ReflectError{Code: app.ReflectErrInvalidArgument, Message: "week_start is required"}
	}
	weekStart := domain.WeekStartFor(req.WeekStart)
	weekEnd := domain.WeekEndFor(weekStart)
	if req.WeekEnd != nil {
		end := domain.TruncateToDay(*req.WeekEnd)
		if end.Before(domain.TruncateToDay(req.WeekStart)) {
			return nil, &app.ReflectError{Code: app.ReflectErrInvalidArgument, Message: "week_end is before week_start"}
		}
		weekEnd = end
	}
	fields["week_start"] = weekStart.Format(domain.DateLayout)

	in, degraded, err := s.fetch(ctx, req.UserID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	fields["degraded"] = len(degraded)

	summary := reflection.Summarize(in)
	resp = &app.ReflectResponse{
		UserID:          req.UserID,
		WeekStart:       weekStart,
		WeekEnd:         weekEnd,
		Summary:         summary,
		CompletionRate:  summary.CompletionRate(),
		Message:         "",
		DegradedSources: degraded,
		GeneratedAt:     s.now().UTC(),
	}
	// Only complete full-week summaries are memoized; a narrowed window
	// must not replace the week's figures.
	if !resp.Degraded() && weekEnd.Equal(domain.WeekEndFor(weekStart)) {
		s.cache.Add(keyFor(req.UserID, weekStart), *resp)
	}
	return resp, nil
}

// LastKnown returns the most recent complete reflection for the week
// containing weekStart, if one is still cached.
func (s *reflectService) LastKnown(userID string, weekStart time.Time) (*app.ReflectResponse, bool) {
	cached, ok := s.cache.Get(keyFor(userID, domain.WeekStartFor(weekStart)))
	s.metrics.RecordCacheLookup(ok)
	if !ok {
		return nil, false
	}
	return &cached, true
}

// fetch runs the four reads concurrently under the configured timeout.
func (s *reflectService) fetch(ctx context.Context, userID string, weekStart, weekEnd time.Time) (reflection.Input, []string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		blocks    []*domain.ScheduleBlock
		sessions  []*domain.FocusSession
		entries   []*domain.ManualEntry
		taskCount int

		sessionsErr, entriesErr, tasksErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		blocks, err = s.blocks.ListByWeek(gctx, userID, weekStart)
		return err
	})
	// Optional sources never fail the group so they cannot cancel the schedule read.
	g.Go(func() error {
		sessions, sessionsErr = s.sessions.ListByUserBetween(gctx, userID, weekStart, weekEnd)
		return nil
	})
	g.Go(func() error {
		entries, entriesErr = s.entries.ListByUserBetween(gctx, userID, weekStart, weekEnd)
		return nil
	})
	g.Go(func() error {
		taskCount, tasksErr = s.tasks.CountByUser(gctx, userID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return reflection.Input{}, nil, &app.ReflectError{
			Code:    app.ReflectErrUpstreamUnavailable,
			Message: "could not load schedule",
			Source:  app.SourceSchedule,
			Err:     err,
		}
	}

	var degraded []string
	degrade := func(source string, err error) bool {
		if err == nil {
			return false
		}
		degraded = append(degraded, source)
		s.metrics.RecordDegraded(source)
		s.logger.Warn("reflection source degraded",
			zap.String("source", source),
			zap.String("user_id", userID),
			zap.String("week_start", weekStart.Format(domain.DateLayout)),
			zap.Error(err),
		)
		return true
	}
	if degrade(app.SourceSessions, sessionsErr) {
		sessions = nil
	}
	if degrade(app.SourceManualEntries, entriesErr) {
		entries = nil
	}
	if degrade(app.SourceTasks, tasksErr) {
		taskCount = 0
	}

	return reflection.Input{
		UserID:         userID,
		WeekStart:      weekStart,
		WeekEnd:        weekEnd,
		Blocks:         values(blocks),
		Sessions:       values(sessions),
		Entries:        values(entries),
		TotalTaskCount: taskCount,
	}, degraded, nil
}

func keyFor(userID string, weekStart time.Time) reflectKey {
	return reflectKey{userID: userID, weekStart: weekStart.Format(domain.DateLayout)}
}
