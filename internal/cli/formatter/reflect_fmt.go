package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studyweek/internal/app"
	"github.com/alexanderramin/studyweek/internal/domain"
)

const (
	reflectBarWidth = 20
	focusBarWidth   = 10
)

// FormatReflection renders a weekly reflection: completion, hours, focus,
// the best time of day and a per-day focus chart.
func FormatReflection(resp *app.ReflectResponse) string {
	return RenderBox("Weekly reflection", reflectionBody(resp))
}

// FormatStaleReflection renders a cached reflection shown because the live
// one could not be built.
func FormatStaleReflection(resp *app.ReflectResponse, cause error) string {
	var b strings.Builder
	b.WriteString(StyleYellow.Render("Live data unavailable; showing the last known summary.") + "\n")
	if cause != nil {
		b.WriteString(Dim(cause.Error()) + "\n")
	}
	b.WriteString(Dim("Generated "+resp.GeneratedAt.Local().Format("Jan 2 15:04")) + "\n\n")
	b.WriteString(reflectionBody(resp))
	return RenderBox("Weekly reflection (cached)", b.String())
}

func reflectionBody(resp *app.ReflectResponse) string {
	s := resp.Summary
	var b strings.Builder

	b.WriteString(Bold(WeekRange(resp.WeekStart, resp.WeekEnd)) + "\n\n")

	rate := CompletionColor(resp.CompletionRate).Render(fmt.Sprintf("%d%%", resp.CompletionRate))
	b.WriteString(fmt.Sprintf("Completion  %s %s\n",
		RenderCompactBar(float64(resp.CompletionRate)/100, reflectBarWidth, false), rate))
	b.WriteString(fmt.Sprintf("Hours       %s planned, %s actual\n",
		Bold(FormatHours(s.PlannedHours)), Bold(FormatHours(s.ActualHours))))

	focus := Dim("no ratings")
	if s.AvgFocus > 0 {
		focus = FocusColor(s.AvgFocus).Render(fmt.Sprintf("%.1f / 5", s.AvgFocus))
	}
	b.WriteString(fmt.Sprintf("Avg focus   %s\n", focus))
	b.WriteString(fmt.Sprintf("Best time   %s\n", TimeOfDayBadge(s.BestTimeOfDay)))
	b.WriteString(fmt.Sprintf("Logged      %d entries across %d tasks\n", s.CompletedEntryCount, s.TotalTaskCount))

	b.WriteString("\n" + Header("Daily focus") + "\n")
	for d := domain.Saturday; d <= domain.Friday; d++ {
		b.WriteString(fmt.Sprintf("%s  %s\n", ShortDay(d), RenderFocusBar(s.DailyFocusAverage[d], focusBarWidth)))
	}

	if resp.Message != "" {
		b.WriteString("\n" + StyleFg.Render(resp.Message) + "\n")
	}

	if resp.Degraded() {
		b.WriteString("\n" + StyleYellow.Render(
			fmt.Sprintf("  WARNING: incomplete data, could not load %s", strings.Join(resp.DegradedSources, ", "))) + "\n")
	}
	return b.String()
}
