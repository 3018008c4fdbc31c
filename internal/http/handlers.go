package http

import (
	"net/http"
	"time"

	"github.com/alexanderramin/studyweek/internal/app"
	"github.com/alexanderramin/studyweek/internal/domain"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (s *Server) handleWeeklyReflect(c echo.Context) error {
	var req WeeklyReflectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	weekStart := s.now()
	if req.WeekStart != "" {
		d, err := parseDateField("week_start", req.WeekStart)
		if err != nil {
			return err
		}
		weekStart = d
	}
	reflectReq := app.NewReflectRequest(req.UserID, weekStart)
	if req.WeekEnd != "" {
		d, err := parseDateField("week_end", req.WeekEnd)
		if err != nil {
			return err
		}
		reflectReq.WeekEnd = &d
	}

	resp, err := s.reflect.Reflect(c.Request().Context(), reflectReq)
	if err != nil {
		if app.IsUpstreamUnavailable(err) {
			return s.upstreamFailure(c, err, req.UserID, weekStart)
		}
		return err
	}
	return c.JSON(http.StatusOK, toWeeklyReflectResponse(resp))
}

// upstreamFailure answers 503 and attaches the last complete reflection for
// the week when one is cached.
func (s *Server) upstreamFailure(c echo.Context, err error, userID string, weekStart time.Time) error {
	status, body := s.errorBody(err)
	if cached, ok := s.reflect.LastKnown(userID, weekStart); ok {
		r := toWeeklyReflectResponse(cached)
		body.Cached = &r
	}
	s.logger.Warn("weekly reflection unavailable",
		zap.String("user_id", userID),
		zap.Bool("cached", body.Cached != nil),
		zap.Error(err),
	)
	return c.JSON(status, body)
}

func (s *Server) handleLogPomodoro(c echo.Context) error {
	var req LogPomodoroRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ActualMinutes == nil {
		return &app.ValidationError{Field: "actual_minutes", Message: "is required"}
	}
	if req.FocusRating == nil {
		return &app.ValidationError{Field: "focus_rating", Message: "is required"}
	}

	session := &domain.FocusSession{
		UserID:        req.UserID,
		BlockID:       req.SessionID,
		OccurredAt:    req.OccurredAt,
		ActualMinutes: *req.ActualMinutes,
		FocusRating:   *req.FocusRating,
		Note:          req.Note,
	}
	if err := s.sessions.LogFocusSession(c.Request().Context(), session); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, LogResponse{
		Success: true,
		Message: "session logged",
		Data: LoggedEntry{
			ID:          session.ID,
			UserID:      session.UserID,
			SessionID:   session.BlockID,
			Minutes:     session.ActualMinutes,
			FocusRating: session.FocusRating,
			Note:        optionalNote(session.Note),
			OccurredAt:  *session.OccurredAt,
			LoggedAt:    session.CreatedAt,
		},
	})
}

func (s *Server) handleLogManualProgress(c echo.Context) error {
	var req LogManualProgressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Minutes == nil {
		return &app.ValidationError{Field: "minutes", Message: "is required"}
	}
	if req.FocusRating == nil {
		return &app.ValidationError{Field: "focus_rating", Message: "is required"}
	}

	entry := &domain.ManualEntry{
		UserID:      req.UserID,
		TaskID:      req.TaskID,
		OccurredAt:  req.OccurredAt,
		Minutes:     *req.Minutes,
		FocusRating: *req.FocusRating,
		Note:        req.Note,
	}
	if err := s.sessions.LogManualProgress(c.Request().Context(), entry); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, LogResponse{
		Success: true,
		Message: "progress logged",
		Data: LoggedEntry{
			ID:          entry.ID,
			UserID:      entry.UserID,
			TaskID:      entry.TaskID,
			Minutes:     entry.Minutes,
			FocusRating: entry.FocusRating,
			Note:        optionalNote(entry.Note),
			OccurredAt:  *entry.OccurredAt,
			LoggedAt:    entry.CreatedAt,
		},
	})
}

func (s *Server) handleDashboard(c echo.Context) error {
	var req DashboardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	dashReq := app.DashboardRequest{UserID: req.UserID}
	if req.Date != "" {
		d, err := parseDateField("date", req.Date)
		if err != nil {
			return err
		}
		dashReq.Date = d
	}

	resp, err := s.dashboard.Dashboard(c.Request().Context(), dashReq)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDashboardResponse(resp))
}

func parseDateField(field, value string) (time.Time, error) {
	d, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, &app.ValidationError{Field: field, Message: "must be in YYYY-MM-DD format"}
	}
	return d, nil
}

func optionalNote(note string) *string {
	if note == "" {
		return nil
	}
	return &note
}

func toWeeklyReflectResponse(r *app.ReflectResponse) WeeklyReflectResponse {
	degraded := r.DegradedSources
	if degraded == nil {
		degraded = []string{}
	}
	return WeeklyReflectResponse{
		PlannedHours:    r.Summary.PlannedHours,
		ActualHours:     r.Summary.ActualHours,
		AvgFocus:        r.Summary.AvgFocus,
		BestTime:        string(r.Summary.BestTimeOfDay),
		DailyFocus:      r.Summary.DailyFocusAverage,
		CompletedTasks:  r.Summary.CompletedEntryCount,
		TotalTasks:      r.Summary.TotalTaskCount,
		CompletionRate:  r.CompletionRate,
		AIMessage:       r.Message,
		DegradedSources: degraded,
		WeekStart:       r.WeekStart.Format(domain.DateLayout),
		WeekEnd:         r.WeekEnd.Format(domain.DateLayout),
		GeneratedAt:     r.GeneratedAt,
	}
}

func toDashboardResponse(r *app.DashboardResponse) DashboardResponse {
	return DashboardResponse{
		Date:          r.Date.Format(domain.DateLayout),
		WeekStart:     r.WeekStart.Format(domain.DateLayout),
		Today:         int(r.Today),
		TodaySessions: toScheduledBlocks(r.TodayBlocks),
		TodayProgress: TodayProgress{
			TotalMinutes: r.Progress.TotalMinutes,
			AvgFocus:     r.Progress.AvgFocus,
			EntryCount:   r.Progress.EntryCount,
		},
		PlannedTodayHours: r.PlannedTodayHours,
		Schedule:          toScheduledBlocks(r.WeekBlocks),
	}
}

func toScheduledBlocks(blocks []*domain.ScheduleBlock) []ScheduledBlock {
	out := make([]ScheduledBlock, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, ScheduledBlock{
			ID:       b.ID,
			Day:      int(b.DayOfWeek),
			Hour:     b.StartHour,
			Task:     b.Title,
			TaskID:   b.TaskID,
			Duration: b.DurationHours,
		})
	}
	return out
}
