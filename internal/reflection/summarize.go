// Package reflection reduces a week of planned blocks and logged focus work
// into a WeeklySummary. Everything here is pure: no I/O, no clocks, no
// shared state.
package reflection

import (
	"math"
	"time"

	"github.com/alexanderramin/studyweek/internal/domain"
)

// Input is everything Summarize needs for one user and one week.
//
// WeekStart and WeekEnd describe the window the caller used to select
// Sessions and Entries. Summarize does not filter by them again.
type Input struct {
	UserID         string
	WeekStart      time.Time
	WeekEnd        time.Time
	Blocks         []domain.ScheduleBlock
	Sessions       []domain.FocusSession
	Entries        []domain.ManualEntry
	TotalTaskCount int
}

// Summarize computes the weekly summary. It never fails: records with a
// missing timestamp, missing rating or negative duration are left out of
// the aggregates they cannot contribute to.
func Summarize(in Input) domain.WeeklySummary {
	t := fold(combine(in.Sessions, in.Entries))

	best := domain.TimeUnknown
	if hour, ok := t.hours.busiest(); ok {
		best = TimeOfDayForHour(hour)
	}

	return domain.WeeklySummary{
		PlannedHours:        roundTenth(PlannedHours(in.Blocks)),
		ActualHours:         roundTenth(float64(t.minutes) / 60),
		AvgFocus:            t.overall.mean(),
		BestTimeOfDay:       best,
		DailyFocusAverage:   t.days.averages(),
		CompletedEntryCount: len(in.Sessions) + len(in.Entries),
		TotalTaskCount:      in.TotalTaskCount,
	}
}

// PlannedHours sums block durations at full precision. Negative or
// non-finite durations contribute nothing.
func PlannedHours(blocks []domain.ScheduleBlock) float64 {
	var total float64
	for _, b := range blocks {
		d := b.DurationHours
		if !(d > 0) || math.IsInf(d, 0) {
			continue
		}
		total += d
	}
	return total
}

// DayProgress is the running total for a single calendar day.
type DayProgress struct {
	TotalMinutes int
	AvgFocus     float64
	EntryCount   int
}

// SummarizeDay totals a day's sessions and manual entries using the same
// duration and rating rules as Summarize. AvgFocus is rounded to one decimal.
func SummarizeDay(sessions []domain.FocusSession, entries []domain.ManualEntry) DayProgress {
	t := fold(combine(sessions, entries))
	return DayProgress{
		TotalMinutes: t.minutes,
		AvgFocus:     roundTenth(t.overall.mean()),
		EntryCount:   len(sessions) + len(entries),
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
