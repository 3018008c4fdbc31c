package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/studyweek/internal/app"
	"github.com/alexanderramin/studyweek/internal/domain"
	"github.com/alexanderramin/studyweek/internal/metrics"
	"github.com/alexanderramin/studyweek/internal/repository"
	"github.com/alexanderramin/studyweek/internal/service"
	"github.com/alexanderramin/studyweek/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	server *Server
	tasks  *repository.SQLiteTaskRepo
	blocks *repository.SQLiteScheduleRepo
	svcs   Services
}

func setupTestServer(t *testing.T) testServer {
	t.Helper()
	database := testutil.NewTestDB(t)
	tasks := repository.NewSQLiteTaskRepo(database)
	blocks := repository.NewSQLiteScheduleRepo(database)
	sessions := repository.NewSQLiteFocusSessionRepo(database)
	entries := repository.NewSQLiteManualEntryRepo(database)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	obs := service.NewMetricsUseCaseObserver(m)
	reflectSvc, err := service.NewReflectService(blocks, sessions, entries, tasks, service.ReflectConfig{}, zap.NewNop(), m, obs)
	require.NoError(t, err)

	svcs := Services{
		Reflect:   reflectSvc,
		Sessions:  service.NewSessionService(sessions, entries, testutil.NewTestUoW(database), m, obs),
		Dashboard: service.NewDashboardService(blocks, sessions, entries, obs),
	}
	server, err := NewServer(svcs, zap.NewNop(), m, reg, nil)
	require.NoError(t, err)
	return testServer{server: server, tasks: tasks, blocks: blocks, svcs: svcs}
}

func postJSON(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return postRaw(s, path, string(raw))
}

func postRaw(s *Server, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestNewServer(t *testing.T) {
	t.Run("returns error when logger is nil", func(t *testing.T) {
		ts := setupTestServer(t)
		_, err := NewServer(ts.svcs, nil, nil, nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "logger is required")
	})

	t.Run("returns error when a service is missing", func(t *testing.T) {
		_, err := NewServer(Services{}, zap.NewNop(), nil, nil, nil)
		assert.Error(t, err)
	})

	t.Run("uses defaults when config is nil", func(t *testing.T) {
		ts := setupTestServer(t)
		assert.Equal(t, "localhost", ts.server.config.Host)
		assert.Equal(t, 8080, ts.server.config.Port)
	})
}

func TestHandleHealth(t *testing.T) {
	ts := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[HealthResponse](t, rec).Status)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestWeeklyReflect(t *testing.T) {
	ctx := context.Background()

	t.Run("summarizes the requested week", func(t *testing.T) {
		ts := setupTestServer(t)
		task := testutil.NewTestTask("Calculus")
		require.NoError(t, ts.tasks.Create(ctx, task))
		require.NoError(t, ts.blocks.Create(ctx, testutil.NewTestBlock(domain.Saturday, 2)))
		sun := testutil.NewTestBlock(domain.Sunday, 1.5)
		require.NoError(t, ts.blocks.Create(ctx, sun))

		rec := postJSON(t, ts.server, "/functions/v1/log_pomodoro", map[string]any{
			"user_id": testutil.TestUserID, "session_id": sun.ID,
			"actual_minutes": 60, "focus_rating": 4,
			"occurred_at": testutil.At(domain.Saturday, 10, 0),
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		rec = postJSON(t, ts.server, "/functions/v1/log_manual_progress", map[string]any{
			"user_id": testutil.TestUserID, "task_id": task.ID,
			"minutes": 30, "focus_rating": 5,
			"occurred_at": testutil.At(domain.Sunday, 14, 0),
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = postJSON(t, ts.server, "/functions/v1/weekly_reflect", WeeklyReflectRequest{
			UserID:    testutil.TestUserID,
			WeekStart: "2025-03-15",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		resp := decode[WeeklyReflectResponse](t, rec)
		assert.Equal(t, 3.5, resp.PlannedHours)
		assert.Equal(t, 1.5, resp.ActualHours)
		assert.Equal(t, 4.5, resp.AvgFocus)
		assert.Equal(t, "morning", resp.BestTime)
		assert.Equal(t, [7]float64{4, 5, 0, 0, 0, 0, 0}, resp.DailyFocus)
		assert.Equal(t, 2, resp.CompletedTasks)
		assert.Equal(t, 1, resp.TotalTasks)
		assert.Equal(t, 43, resp.CompletionRate)
		assert.Equal(t, "", resp.AIMessage)
		assert.Empty(t, resp.DegradedSources)
		assert.Equal(t, "2025-03-15", resp.WeekStart)
		assert.Equal(t, "2025-03-21", resp.WeekEnd)
	})

	t.Run("degraded_sources is an empty array, not null", func(t *testing.T) {
		ts := setupTestServer(t)
		rec := postJSON(t, ts.server, "/functions/v1/weekly_reflect", WeeklyReflectRequest{
			UserID: "nobody", WeekStart: "2025-03-15",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"degraded_sources":[]`)
		assert.Contains(t, rec.Body.String(), `"best_time":"unknown"`)
	})

	t.Run("missing user_id is a 400", func(t *testing.T) {
		ts := setupTestServer(t)
		rec := postJSON(t, ts.server, "/functions/v1/weekly_reflect", WeeklyReflectRequest{WeekStart: "2025-03-15"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		body := decode[ErrorResponse](t, rec)
		assert.Equal(t, "INVALID_ARGUMENT", body.Code)
		assert.Equal(t, "user_id is required", body.Error)
	})

	t.Run("malformed dates are a 400", func(t *testing.T) {
		ts := setupTestServer(t)
		rec := postJSON(t, ts.server, "/functions/v1/weekly_reflect", WeeklyReflectRequest{
			UserID: "u", WeekStart: "15/03/2025",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[ErrorResponse](t, rec).Error, "week_start")
	})

	t.Run("week_end before week_start is a 400", func(t *testing.T) {
		ts := setupTestServer(t)
		rec := postJSON(t, ts.server, "/functions/v1/weekly_reflect", WeeklyReflectRequest{
			UserID: "u", WeekStart: "2025-03-15", WeekEnd: "2025-03-10",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid JSON is a 400", func(t *testing.T) {
		ts := setupTestServer(t)
		rec := postRaw(ts.server, "/functions/v1/weekly_reflect", "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid request body", decode[ErrorResponse](t, rec).Error)
	})
}

type unavailableReflect struct {
	cached *app.ReflectResponse
}

func (u unavailableReflect) Reflect(context.Context, app.ReflectRequest) (*app.ReflectResponse, error) {
	return nil, &app.ReflectError{
		Code:    app.ReflectErrUpstreamUnavailable,
		Message: "could not load schedule",
		Source:  app.SourceSchedule,
		Err:     context.DeadlineExceeded,
	}
}

func (u unavailableReflect) LastKnown(string, time.Time) (*app.ReflectResponse, bool) {
	return u.cached, u.cached != nil
}

func TestWeeklyReflect_UpstreamUnavailable(t *testing.T) {
	base := setupTestServer(t)

	t.Run("503 without a cached summary", func(t *testing.T) {
		svcs := base.svcs
		svcs.Reflect = unavailableReflect{}
		server, err := NewServer(svcs, zap.NewNop(), nil, nil, nil)
		require.NoError(t, err)

		rec := postJSON(t, server, "/functions/v1/weekly_reflect", WeeklyReflectRequest{UserID: "u", WeekStart: "2025-03-15"})
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		body := decode[ErrorResponse](t, rec)
		assert.Equal(t, "UPSTREAM_UNAVAILABLE", body.Code)
		assert.Equal(t, "schedule", body.Source)
		assert.Nil(t, body.Cached)
	})

	t.Run("503 carries the last known summary", func(t *testing.T) {
		svcs := base.svcs
		svcs.Reflect = unavailableReflect{cached: &app.ReflectResponse{
			UserID:         "u",
			WeekStart:      testutil.TestWeekStart,
			WeekEnd:        domain.WeekEndFor(testutil.TestWeekStart),
			Summary:        domain.WeeklySummary{PlannedHours: 10, ActualHours: 5, BestTimeOfDay: domain.TimeEvening},
			CompletionRate: 50,
		}}
		server, err := NewServer(svcs, zap.NewNop(), nil, nil, nil)
		require.NoError(t, err)

		rec := postJSON(t, server, "/functions/v1/weekly_reflect", WeeklyReflectRequest{UserID: "u", WeekStart: "2025-03-15"})
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		body := decode[ErrorResponse](t, rec)
		require.NotNil(t, body.Cached)
		assert.Equal(t, 10.0, body.Cached.PlannedHours)
		assert.Equal(t, 50, body.Cached.CompletionRate)
		assert.Equal(t, "evening", body.Cached.BestTime)
	})
}

func TestLogPomodoro(t *testing.T) {
	ts := setupTestServer(t)

	t.Run("stores the session and echoes it", func(t *testing.T) {
		rec := postJSON(t, ts.server, "/functions/v1/log_pomodoro", map[string]any{
			"user_id": "u", "session_id": "block-9", "actual_minutes": 25, "focus_rating": 3, "note": "ok",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		resp := decode[LogResponse](t, rec)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Data.ID)
		assert.Equal(t, "block-9", resp.Data.SessionID)
		assert.Equal(t, 25, resp.Data.Minutes)
		require.NotNil(t, resp.Data.Note)
		assert.Equal(t, "ok", *resp.Data.Note)
		assert.False(t, resp.Data.LoggedAt.IsZero())
	})

	t.Run("empty note is null", func(t *testing.T) {
		rec := postJSON(t, ts.server, "/functions/v1/log_pomodoro", map[string]any{
			"user_id": "u", "session_id": "block-9", "actual_minutes": 25, "focus_rating": 3,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"note":null`)
	})

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing session_id", `{"user_id":"u","actual_minutes":25,"focus_rating":3}`, "session_id"},
		{"missing user_id", `{"session_id":"b","actual_minutes":25,"focus_rating":3}`, "user_id"},
		{"missing minutes", `{"user_id":"u","session_id":"b","focus_rating":3}`, "actual_minutes"},
		{"negative minutes", `{"user_id":"u","session_id":"b","actual_minutes":-1,"focus_rating":3}`, "actual_minutes"},
		{"missing rating", `{"user_id":"u","session_id":"b","actual_minutes":25}`, "focus_rating"},
		{"rating too high", `{"user_id":"u","session_id":"b","actual_minutes":25,"focus_rating":6}`, "focus_rating"},
		{"rating zero", `{"user_id":"u","session_id":"b","actual_minutes":25,"focus_rating":0}`, "focus_rating"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := postRaw(ts.server, "/functions/v1/log_pomodoro", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode[ErrorResponse](t, rec).Error, tc.field)
		})
	}

	t.Run("fractional minutes are rejected", func(t *testing.T) {
		rec := postRaw(ts.server, "/functions/v1/log_pomodoro", `{"user_id":"u","session_id":"b","actual_minutes":2.5,"focus_rating":3}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogManualProgress(t *testing.T) {
	ts := setupTestServer(t)
	task := testutil.NewTestTask("Physics")
	require.NoError(t, ts.tasks.Create(context.Background(), task))

	t.Run("stores the entry", func(t *testing.T) {
		rec := postJSON(t, ts.server, "/functions/v1/log_manual_progress", map[string]any{
			"user_id": testutil.TestUserID, "task_id": task.ID, "minutes": 45, "focus_rating": 4,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		resp := decode[LogResponse](t, rec)
		assert.Equal(t, task.ID, resp.Data.TaskID)
		assert.Equal(t, 45, resp.Data.Minutes)
	})

	t.Run("unknown task is a 400", func(t *testing.T) {
		rec := postJSON(t, ts.server, "/functions/v1/log_manual_progress", map[string]any{
			"user_id": testutil.TestUserID, "task_id": "missing", "minutes": 45, "focus_rating": 4,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[ErrorResponse](t, rec).Error, "task_id")
	})

	t.Run("another user's task is a 400", func(t *testing.T) {
		rec := postJSON(t, ts.server, "/functions/v1/log_manual_progress", map[string]any{
			"user_id": "someone-else", "task_id": task.ID, "minutes": 45, "focus_rating": 4,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing minutes is a 400", func(t *testing.T) {
		rec := postRaw(ts.server, "/functions/v1/log_manual_progress", `{"user_id":"u","task_id":"t","focus_rating":4}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[ErrorResponse](t, rec).Error, "minutes")
	})
}

func TestGetDashboardData(t *testing.T) {
	ctx := context.Background()
	ts := setupTestServer(t)
	require.NoError(t, ts.blocks.Create(ctx, testutil.NewTestBlock(domain.Saturday, 2, testutil.WithStartHour(9))))
	require.NoError(t, ts.blocks.Create(ctx, testutil.NewTestBlock(domain.Saturday, 1.5, testutil.WithStartHour(14))))
	require.NoError(t, ts.blocks.Create(ctx, testutil.NewTestBlock(domain.Monday, 3)))

	rec := postJSON(t, ts.server, "/functions/v1/log_pomodoro", map[string]any{
		"user_id": testutil.TestUserID, "session_id": "b", "actual_minutes": 50, "focus_rating": 4,
		"occurred_at": testutil.At(domain.Saturday, 9, 30),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("returns today's blocks and progress", func(t *testing.T) {
		rec := postJSON(t, ts.server, "/functions/v1/get_dashboard_data", DashboardRequest{
			UserID: testutil.TestUserID, Date: "2025-03-15",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		resp := decode[DashboardResponse](t, rec)
		assert.Equal(t, 0, resp.Today)
		assert.Equal(t, "2025-03-15", resp.WeekStart)
		require.Len(t, resp.TodaySessions, 2)
		assert.Equal(t, 9, resp.TodaySessions[0].Hour)
		assert.Equal(t, 14, resp.TodaySessions[1].Hour)
		assert.Len(t, resp.Schedule, 3)
		assert.Equal(t, 3.5, resp.PlannedTodayHours)
		assert.Equal(t, 50, resp.TodayProgress.TotalMinutes)
		assert.Equal(t, 4.0, resp.TodayProgress.AvgFocus)
		assert.Equal(t, 1, resp.TodayProgress.EntryCount)
	})

	t.Run("mid-week date maps to the Saturday-first index", func(t *testing.T) {
		rec := postJSON(t, ts.server, "/functions/v1/get_dashboard_data", DashboardRequest{
			UserID: testutil.TestUserID, Date: "2025-03-17",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode[DashboardResponse](t, rec)
		assert.Equal(t, int(domain.Monday), resp.Today)
		assert.Equal(t, "2025-03-15", resp.WeekStart)
		assert.Len(t, resp.TodaySessions, 1)
		assert.Equal(t, 0, resp.TodayProgress.EntryCount)
	})

	t.Run("missing user_id is a 400", func(t *testing.T) {
		rec := postJSON(t, ts.server, "/functions/v1/get_dashboard_data", DashboardRequest{Date: "2025-03-15"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCORSPreflight(t *testing.T) {
	ts := setupTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/functions/v1/weekly_reflect", nil)
	req.Header.Set(echo.HeaderOrigin, "https://planner.example")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestMetricsEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	postRaw(ts.server, "/functions/v1/weekly_reflect", "{}")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `studyweek_http_requests_total{method="POST",route="/functions/v1/weekly_reflect",status="400"} 1`)
	assert.Contains(t, body, "studyweek_use_case_total")
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	ts := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/nope", bytes.NewReader(nil))
	rec := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, decode[ErrorResponse](t, rec).Error)
}
