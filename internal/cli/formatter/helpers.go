package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/studyweek/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// DayLabel names a calendar date relative to now: "Today", "Yesterday",
// "Tomorrow", or "Mon Mar 17".
func DayLabel(t, now time.Time) string {
	day := domain.TruncateToDay(t)
	today := domain.TruncateToDay(now.In(t.Location()))
	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	case day.Equal(today.AddDate(0, 0, 1)):
		return "Tomorrow"
	default:
		return t.Format("Mon Jan 2")
	}
}

// WeekRange renders an inclusive week span like "Mar 15 - Mar 21, 2025".
func WeekRange(start, end time.Time) string {
	if start.Year() != end.Year() {
		return start.Format("Jan 2, 2006") + " - " + end.Format("Jan 2, 2006")
	}
	return start.Format("Jan 2") + " - " + end.Format("Jan 2, 2006")
}

// ShortDay is the three-letter name of a Saturday-first day index.
func ShortDay(d domain.DayIndex) string {
	if !d.Valid() {
		return "???"
	}
	return d.String()[:3]
}

// HourRange renders a block's wall-clock span, e.g. "09:00-10:30".
func HourRange(startHour int, durationHours float64) string {
	start := time.Duration(startHour) * time.Hour
	end := start + time.Duration(durationHours*float64(time.Hour))
	return clock(start) + "-" + clock(end)
}

func clock(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatHours renders hours rounded to one decimal: "3.5h", "2h".
func FormatHours(h float64) string {
	return strconv.FormatFloat(math.Round(h*10)/10, 'f', -1, 64) + "h"
}

// FocusStars renders a 1..5 rating as filled and empty stars.
func FocusStars(rating int) string {
	if rating < domain.MinFocusRating || rating > domain.MaxFocusRating {
		return Dim("-----")
	}
	filled := strings.Repeat("★", rating)
	empty := strings.Repeat("☆", domain.MaxFocusRating-rating)
	return FocusColor(float64(rating)).Render(filled) + Dim(empty)
}

// Truncate shortens s to max runes, ending with "...".
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max || max < 4 {
		return s
	}
	return string(r[:max-3]) + "..."
}
