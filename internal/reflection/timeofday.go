package reflection

import "github.com/alexanderramin/studyweek/internal/domain"

// TimeOfDayForHour buckets a wall-clock hour:
//
//	[5,12)  morning
//	[12,17) afternoon
//	[17,21) evening
//	else    night
func TimeOfDayForHour(hour int) domain.TimeOfDay {
	switch {
	case hour >= 5 && hour < 12:
		return domain.TimeMorning
	case hour >= 12 && hour < 17:
		return domain.TimeAfternoon
	case hour >= 17 && hour < 21:
		return domain.TimeEvening
	default:
		return domain.TimeNight
	}
}
