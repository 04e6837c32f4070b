package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/horia913/daily-fitness-sub008/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// CheckMark shows whether an item is done today.
func CheckMark(done bool) string {
	if done {
		return StyleGreen.Render("[x]")
	}
	return StyleDim.Render("[ ]")
}

// StreakBadge renders a streak count, dim when zero.
func StreakBadge(n int) string {
	if n == 0 {
		return StyleDim.Render("0d")
	}
	s := fmt.Sprintf("%dd", n)
	if n >= 7 {
		return StyleOrange.Bold(true).Render(s)
	}
	return StyleFg.Render(s)
}

// DayLabel describes day relative to today: "Today", "Yesterday" or the date.
func DayLabel(day, today time.Time) string {
	switch domain.DaysBetween(day, today) {
	case 0:
		return "Today"
	case 1:
		return "Yesterday"
	default:
		return domain.Day(day).Format("Mon Jan 2")
	}
}

// CadenceLabel renders "daily" or "3x/week".
func CadenceLabel(c domain.Cadence) string {
	if c.Kind == domain.CadenceWeekly {
		return fmt.Sprintf("%dx/week", c.TimesPerWeek)
	}
	return "daily"
}
