package reflection

import (
	"time"

	"github.com/alexanderramin/studyweek/internal/domain"
)

// entry is the source-agnostic view of one logged block of work. Timed
// sessions and manual entries reduce identically once normalized.
type entry struct {
	occurredAt *time.Time
	minutes    int
	rating     int
}

func (e entry) hasTimestamp() bool {
	return e.occurredAt != nil && !e.occurredAt.IsZero()
}

func (e entry) rated() bool {
	return e.rating >= domain.MinFocusRating && e.rating <= domain.MaxFocusRating
}

// contributedMinutes clamps negative durations to zero.
func (e entry) contributedMinutes() int {
	if e.minutes < 0 {
		return 0
	}
	return e.minutes
}

// combine flattens both sources into one stream, sessions first.
func combine(sessions []domain.FocusSession, entries []domain.ManualEntry) []entry {
	out := make([]entry, 0, len(sessions)+len(entries))
	for _, s := range sessions {
		out = append(out, entry{
			occurredAt: s.OccurredAt,
			minutes:    s.ActualMinutes,
			rating:     s.FocusRating,
		})
	}
	for _, m := range entries {
		out = append(out, entry{
			occurredAt: m.OccurredAt,
			minutes:    m.Minutes,
			rating:     m.FocusRating,
		})
	}
	return out
}
