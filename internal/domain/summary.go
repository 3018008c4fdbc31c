package domain

import "math"

// WeeklySummary is the normalized weekly performance reduction.
// DailyFocusAverage is indexed by DayIndex (Saturday..Friday).
type WeeklySummary struct {
	PlannedHours        float64
	ActualHours         float64
	AvgFocus            float64
	BestTimeOfDay       TimeOfDay
	DailyFocusAverage   [DaysPerWeek]float64
	CompletedEntryCount int
	TotalTaskCount      int
}

// CompletionRate returns actual hours as a rounded percentage of planned hours.
func (s WeeklySummary) CompletionRate() int {
	return CompletionRate(s.ActualHours, s.PlannedHours)
}

// CompletionRate returns round(actual/planned*100), or 0 when planned is not
// a positive finite number.
func CompletionRate(actualHours, plannedHours float64) int {
	if !(plannedHours > 0) || math.IsInf(plannedHours, 0) {
		return 0
	}
	rate := math.Round(actualHours / plannedHours * 100)
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0
	}
	return int(rate)
}
