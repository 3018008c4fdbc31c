package testutil

import (
	"time"

	"github.com/alexanderramin/studyweek/internal/domain"
	"github.com/google/uuid"
)

// TestUserID is the owner used by fixtures unless overridden.
const TestUserID = "user-1"

// TestWeekStart is a Saturday.
var TestWeekStart = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

// At returns a timestamp inside TestWeekStart's week.
func At(day domain.DayIndex, hour, minute int) time.Time {
	return TestWeekStart.AddDate(0, 0, int(day)).
		Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskUser(userID string) TaskOption {
	return func(t *domain.Task) {
		t.UserID = userID
	}
}

func NewTestTask(title string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:        uuid.New().String(),
		UserID:    TestUserID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ScheduleBlock options
type BlockOption func(*domain.ScheduleBlock)

func WithBlockUser(userID string) BlockOption {
	return func(b *domain.ScheduleBlock) {
		b.UserID = userID
	}
}

func WithBlockTask(taskID string) BlockOption {
	return func(b *domain.ScheduleBlock) {
		b.TaskID = taskID
	}
}

func WithStartHour(h int) BlockOption {
	return func(b *domain.ScheduleBlock) {
		b.StartHour = h
	}
}

func WithWeekStart(d time.Time) BlockOption {
	return func(b *domain.ScheduleBlock) {
		b.WeekStart = d
	}
}

func NewTestBlock(day domain.DayIndex, hours float64, opts ...BlockOption) *domain.ScheduleBlock {
	b := &domain.ScheduleBlock{
		ID:            uuid.New().String(),
		UserID:        TestUserID,
		Title:         "Study",
		WeekStart:     TestWeekStart,
		DayOfWeek:     day,
		StartHour:     9,
		DurationHours: hours,
		CreatedAt:     time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FocusSession options
type SessionOption func(*domain.FocusSession)

func WithSessionUser(userID string) SessionOption {
	return func(s *domain.FocusSession) {
		s.UserID = userID
	}
}

func WithBlockID(id string) SessionOption {
	return func(s *domain.FocusSession) {
		s.BlockID = id
	}
}

func WithNote(n string) SessionOption {
	return func(s *domain.FocusSession) {
		s.Note = n
	}
}

func WithoutTimestamp() SessionOption {
	return func(s *domain.FocusSession) {
		s.OccurredAt = nil
	}
}

func NewTestSession(at time.Time, minutes, rating int, opts ...SessionOption) *domain.FocusSession {
	s := &domain.FocusSession{
		ID:            uuid.New().String(),
		UserID:        TestUserID,
		BlockID:       "block-1",
		OccurredAt:    &at,
		ActualMinutes: minutes,
		FocusRating:   rating,
		CreatedAt:     time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ManualEntry options
type EntryOption func(*domain.ManualEntry)

func WithEntryUser(userID string) EntryOption {
	return func(e *domain.ManualEntry) {
		e.UserID = userID
	}
}

func WithEntryNote(n string) EntryOption {
	return func(e *domain.ManualEntry) {
		e.Note = n
	}
}

func NewTestEntry(taskID string, at time.Time, minutes, rating int, opts ...EntryOption) *domain.ManualEntry {
	e := &domain.ManualEntry{
		ID:          uuid.New().String(),
		UserID:      TestUserID,
		TaskID:      taskID,
		OccurredAt:  &at,
		Minutes:     minutes,
		FocusRating: rating,
		CreatedAt:   time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
