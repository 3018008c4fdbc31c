package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studyweek/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// FocusColor picks a style for an average focus rating on the 1..5 scale.
// Zero means no rated work and renders dim.
func FocusColor(avg float64) lipgloss.Style {
	switch {
	case avg <= 0:
		return StyleDim
	case avg >= 4:
		return StyleGreen
	case avg >= 3:
		return StyleYellow
	default:
		return StyleRed
	}
}

// CompletionColor picks a style for a completion percentage.
func CompletionColor(rate int) lipgloss.Style {
	switch {
	case rate >= 80:
		return StyleGreen
	case rate >= 50:
		return StyleYellow
	default:
		return StyleRed
	}
}

// TimeOfDayBadge returns a colored label such as "◐ Afternoon".
func TimeOfDayBadge(tod domain.TimeOfDay) string {
	switch tod {
	case domain.TimeMorning:
		return StyleYellow.Render("◔ Morning")
	case domain.TimeAfternoon:
		return StyleHeader.Render("◑ Afternoon")
	case domain.TimeEvening:
		return StylePurple.Render("◕ Evening")
	case domain.TimeNight:
		return StyleBlue.Render("● Night")
	default:
		return StyleDim.Render("○ Not enough data")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
