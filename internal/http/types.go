package http

import "time"

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Source string `json:"source,omitempty"`
	// Cached carries the last complete reflection when a live one failed.
	Cached *WeeklyReflectResponse `json:"cached,omitempty"`
}

// WeeklyReflectRequest is the body of POST /functions/v1/weekly_reflect.
// Dates are YYYY-MM-DD; an empty week_start means the current week.
type WeeklyReflectRequest struct {
	UserID    string `json:"user_id"`
	WeekStart string `json:"week_start"`
	WeekEnd   string `json:"week_end"`
}

type WeeklyReflectResponse struct {
	PlannedHours    float64    `json:"planned_hours"`
	ActualHours     float64    `json:"actual_hours"`
	AvgFocus        float64    `json:"avg_focus"`
	BestTime        string     `json:"best_time"`
	DailyFocus      [7]float64 `json:"daily_focus"`
	CompletedTasks  int        `json:"completed_tasks"`
	TotalTasks      int        `json:"total_tasks"`
	CompletionRate  int        `json:"completion_rate"`
	AIMessage       string     `json:"ai_message"`
	DegradedSources []string   `json:"degraded_sources"`
	WeekStart       string     `json:"week_start"`
	WeekEnd         string     `json:"week_end"`
	GeneratedAt     time.Time  `json:"generated_at"`
}

// LogPomodoroRequest is the body of POST /functions/v1/log_pomodoro.
// SessionID names the schedule block the timer ran against. Pointer fields
// distinguish "missing" from zero.
type LogPomodoroRequest struct {
	UserID        string     `json:"user_id"`
	SessionID     string     `json:"session_id"`
	ActualMinutes *int       `json:"actual_minutes"`
	FocusRating   *int       `json:"focus_rating"`
	Note          string     `json:"note"`
	OccurredAt    *time.Time `json:"occurred_at"`
}

// LogManualProgressRequest is the body of POST /functions/v1/log_manual_progress.
type LogManualProgressRequest struct {
	UserID      string     `json:"user_id"`
	TaskID      string     `json:"task_id"`
	Minutes     *int       `json:"minutes"`
	FocusRating *int       `json:"focus_rating"`
	Note        string     `json:"note"`
	OccurredAt  *time.Time `json:"occurred_at"`
}

type LogResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    LoggedEntry `json:"data"`
}

// LoggedEntry echoes what was stored. Exactly one of SessionID and TaskID
// is set.
type LoggedEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	SessionID   string    `json:"session_id,omitempty"`
	TaskID      string    `json:"task_id,omitempty"`
	Minutes     int       `json:"minutes"`
	FocusRating int       `json:"focus_rating"`
	Note        *string   `json:"note"`
	OccurredAt  time.Time `json:"occurred_at"`
	LoggedAt    time.Time `json:"logged_at"`
}

// DashboardRequest is the body of POST /functions/v1/get_dashboard_data.
// An empty date means today.
type DashboardRequest struct {
	UserID string `json:"user_id"`
	Date   string `json:"date"`
}

type DashboardResponse struct {
	Date              string           `json:"date"`
	WeekStart         string           `json:"week_start"`
	Today             int              `json:"today"`
	TodaySessions     []ScheduledBlock `json:"today_sessions"`
	TodayProgress     TodayProgress    `json:"today_progress"`
	PlannedTodayHours float64          `json:"planned_today_hours"`
	Schedule          []ScheduledBlock `json:"schedule"`
}

type ScheduledBlock struct {
	ID       string  `json:"id"`
	Day      int     `json:"day"`
	Hour     int     `json:"hour"`
	Task     string  `json:"task"`
	TaskID   string  `json:"task_id,omitempty"`
	Duration float64 `json:"duration"`
}

type TodayProgress struct {
	TotalMinutes int     `json:"total_minutes"`
	AvgFocus     float64 `json:"avg_focus"`
	EntryCount   int     `json:"entry_count"`
}
