package domain

type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeNight     TimeOfDay = "night"
	TimeUnknown   TimeOfDay = "unknown"
)

// EntrySource tags where a logged block of work came from.
type EntrySource string

const (
	SourceTimer  EntrySource = "timer"
	SourceManual EntrySource = "manual"
)

// Focus ratings are integers on a closed 1..5 scale.
const (
	MinFocusRating = 1
	MaxFocusRating = 5
)
