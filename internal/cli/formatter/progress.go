package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderRate renders a percentage bar like [████░░░░]  45%, colored by the
// same bands as the compliance buckets.
func RenderRate(pct int, width int) string {
	pct = min(max(pct, 0), 100)
	width = max(width, 2)

	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	return fmt.Sprintf("[%s] %3d%%", rateStyle(pct).Render(bar), pct)
}

// RatePct renders just the colored percentage.
func RatePct(pct int) string {
	return rateStyle(pct).Render(fmt.Sprintf("%d%%", pct))
}

func rateStyle(pct int) lipgloss.Style {
	switch {
	case pct >= 80:
		return StyleGreen
	case pct >= 60:
		return StyleBlue
	case pct >= 40:
		return StyleYellow
	default:
		return StyleRed
	}
}
