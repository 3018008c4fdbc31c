package reflection

import "github.com/alexanderramin/studyweek/internal/domain"

type ratingSlot struct {
	sum   int
	count int
}

func (s ratingSlot) mean() float64 {
	if s.count == 0 {
		return 0
	}
	return float64(s.sum) / float64(s.count)
}

// dayTally holds a (sum, count) rating pair per Saturday-first day index.
// It is a value type: with returns a modified copy and never mutates the
// receiver, so partial tallies can be shared freely.
type dayTally [domain.DaysPerWeek]ratingSlot

func (t dayTally) with(day domain.DayIndex, rating int) dayTally {
	t[day].sum += rating
	t[day].count++
	return t
}

func (t dayTally) averages() [domain.DaysPerWeek]float64 {
	var out [domain.DaysPerWeek]float64
	for i, slot := range t {
		out[i] = slot.mean()
	}
	return out
}

// hourTally accumulates minutes per wall-clock hour 0..23.
type hourTally [24]int

func (t hourTally) with(hour, minutes int) hourTally {
	t[hour] += minutes
	return t
}

// busiest returns the hour with the most minutes; ties go to the lowest hour.
// ok is false when no minutes were accumulated at all.
func (t hourTally) busiest() (hour int, ok bool) {
	best := 0
	for h := 1; h < len(t); h++ {
		if t[h] > t[best] {
			best = h
		}
	}
	if t[best] <= 0 {
		return 0, false
	}
	return best, true
}

// tally is the single accumulator folded over the combined entry stream.
type tally struct {
	minutes int
	overall ratingSlot
	days    dayTally
	hours   hourTally
}

func (t tally) with(e entry) tally {
	t.minutes += e.contributedMinutes()

	if e.rated() {
		t.overall.sum += e.rating
		t.overall.count++
	}

	if !e.hasTimestamp() {
		return t
	}
	ts := *e.occurredAt
	if e.rated() {
		t.days = t.days.with(domain.DayIndexOf(ts), e.rating)
	}
	if e.minutes > 0 {
		t.hours = t.hours.with(ts.Hour(), e.minutes)
	}
	return t
}

func fold(entries []entry) tally {
	var t tally
	for _, e := range entries {
		t = t.with(e)
	}
	return t
}
