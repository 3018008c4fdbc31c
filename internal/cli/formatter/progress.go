package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
// Percentages above 100 are printed as-is but the bar stays full.
func RenderProgress(pct float64, width int) string {
	shown := pct
	if shown < 0 {
		shown = 0
	}
	bar := blocks(pct, width)

	var style = StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	pctStr := fmt.Sprintf("%3.0f%%", shown*100)
	return fmt.Sprintf("[%s] %s", style.Render(bar), pctStr)
}

// RenderCompactBar renders just the blocks, no brackets or percentage.
// dim renders it in the muted color regardless of value.
func RenderCompactBar(pct float64, width int, dim bool) string {
	bar := blocks(pct, width)
	if dim {
		return StyleDim.Render(bar)
	}
	return StyleBlue.Render(bar)
}

// RenderFocusBar draws an average focus rating on the 1..5 scale followed
// by its value, e.g. "████░ 4.2". Zero renders as an empty dim bar and "--".
func RenderFocusBar(avg float64, width int) string {
	if avg <= 0 {
		return StyleDim.Render(strings.Repeat(emptyBlock, clampWidth(width))) + " " + Dim(" --")
	}
	bar := blocks(avg/5, width)
	return FocusColor(avg).Render(bar) + fmt.Sprintf(" %.1f", avg)
}

func blocks(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	width = clampWidth(width)

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

func clampWidth(width int) int {
	if width < 2 {
		return 2
	}
	return width
}
