package app

import (
	"time"

	"github.com/alexanderramin/studyweek/internal/domain"
)

// Data sources read by the weekly reflection.
const (
	SourceSchedule      = "schedule"
	SourceSessions      = "sessions"
	SourceManualEntries = "manual_entries"
	SourceTasks         = "tasks"
)

type ReflectRequest struct {
	UserID    string
	WeekStart time.Time
	// WeekEnd defaults to WeekStart + 6 days when nil.
	WeekEnd *time.Time
}

func NewReflectRequest(userID string, weekStart time.Time) ReflectRequest {
	return ReflectRequest{UserID: userID, WeekStart: weekStart}
}

type ReflectResponse struct {
	UserID         string
	WeekStart      time.Time
	WeekEnd        time.Time
	Summary        domain.WeeklySummary
	CompletionRate int
	// Message is reserved for an externally generated note; always empty here.
	Message         string
	DegradedSources []string
	GeneratedAt     time.Time
}

// Degraded reports whether any optional source was replaced by an empty value.
func (r *ReflectResponse) Degraded() bool {
	return len(r.DegradedSources) > 0
}

type ReflectErrorCode string

const (
	ReflectErrInvalidArgument     ReflectErrorCode = "INVALID_ARGUMENT"
	ReflectErrUpstreamUnavailable ReflectErrorCode = "UPSTREAM_UNAVAILABLE"
)

type ReflectError struct {
	Code    ReflectErrorCode
	Message string
	Source  string
	Err     error
}

func (e *ReflectError) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Source != "" {
		msg += " (" + e.Source + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ReflectError) Unwrap() error {
	return e.Err
}
