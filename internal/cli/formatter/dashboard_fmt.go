package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyweek/internal/app"
)

// FormatDashboard renders today's blocks and progress.
func FormatDashboard(resp *app.DashboardResponse, now time.Time) string {
	var b strings.Builder

	b.WriteString(Bold(fmt.Sprintf("%s, %s", DayLabel(resp.Date, now), resp.Date.Format("Monday Jan 2"))))
	b.WriteString(Dim(fmt.Sprintf("  (day %d of week starting %s)", int(resp.Today)+1, resp.WeekStart.Format("Jan 2"))) + "\n\n")

	if len(resp.TodayBlocks) == 0 {
		b.WriteString(Dim("Nothing scheduled today.") + "\n")
	} else {
		headers := []string{"TIME", "DURATION", "TASK"}
		rows := make([][]string, 0, len(resp.TodayBlocks))
		for _, blk := range resp.TodayBlocks {
			rows = append(rows, []string{
				HourRange(blk.StartHour, blk.DurationHours),
				FormatHours(blk.DurationHours),
				Bold(blk.Title),
			})
		}
		b.WriteString(RenderTableAligned(headers, rows, []Align{AlignLeft, AlignRight}))
	}

	p := resp.Progress
	plannedMin := int(resp.PlannedTodayHours * 60)
	b.WriteString("\n" + Header("Progress") + "\n")
	if plannedMin > 0 {
		b.WriteString(RenderProgress(float64(p.TotalMinutes)/float64(plannedMin), 20) + "\n")
	}
	b.WriteString(fmt.Sprintf("%s of %s logged in %d entries",
		Bold(FormatMinutes(p.TotalMinutes)), FormatHours(resp.PlannedTodayHours), p.EntryCount))
	if p.AvgFocus > 0 {
		b.WriteString(", focus " + FocusColor(p.AvgFocus).Render(fmt.Sprintf("%.1f", p.AvgFocus)))
	}
	b.WriteString("\n")

	return RenderBox("Today", b.String())
}
