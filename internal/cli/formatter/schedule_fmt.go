package formatter

import (
	"time"

	"github.com/alexanderramin/studyweek/internal/domain"
)

// FormatWeekSchedule lists a week's blocks in day then hour order. Blocks
// are expected pre-sorted, as the repository returns them.
func FormatWeekSchedule(weekStart time.Time, blocks []*domain.ScheduleBlock) string {
	title := "Week of " + weekStart.Format("Jan 2, 2006")
	if len(blocks) == 0 {
		return RenderBox(title, Dim("No blocks scheduled."))
	}

	headers := []string{"ID", "DAY", "TIME", "HOURS", "TITLE"}
	rows := make([][]string, 0, len(blocks))
	var total float64
	prev := domain.DayIndex(-1)
	for _, b := range blocks {
		day := ""
		if b.DayOfWeek != prev {
			day = ShortDay(b.DayOfWeek)
			prev = b.DayOfWeek
		}
		title := b.Title
		if title == "" {
			title = Dim("(untitled)")
		}
		rows = append(rows, []string{
			TruncID(b.ID),
			day,
			HourRange(b.StartHour, b.DurationHours),
			FormatHours(b.DurationHours),
			title,
		})
		total += b.DurationHours
	}

	out := RenderTableAligned(headers, rows, []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight})
	out += "\n" + Dim("Planned: ") + Bold(FormatHours(total)) + "\n"
	return RenderBox(title, out)
}
