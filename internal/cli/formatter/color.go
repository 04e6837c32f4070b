package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/horia913/daily-fitness-sub008/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorOrange = lipgloss.Color("#fe8019")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = ColorOrange
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleOrange = lipgloss.NewStyle().Foreground(ColorOrange)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusColor returns the style for a subject's compliance status.
func StatusColor(status domain.ComplianceStatus) lipgloss.Style {
	switch status {
	case domain.StatusExcellent:
		return StyleGreen
	case domain.StatusGood:
		return StyleBlue
	case domain.StatusNeedsImprovement:
		return StyleYellow
	case domain.StatusAtRisk:
		return StyleRed
	default:
		return StyleDim
	}
}

// StatusIndicator returns a colored status label such as "● EXCELLENT".
func StatusIndicator(status domain.ComplianceStatus) string {
	if status == "" {
		return StyleDim.Render("● UNSCORED")
	}
	label := strings.ToUpper(strings.ReplaceAll(string(status), "-", " "))
	return StatusColor(status).Render("● " + label)
}

// BucketLabel renders a coach bucket with its color.
func BucketLabel(b domain.CoachBucket) string {
	switch b {
	case domain.BucketHighCompliance:
		return StyleGreen.Render("high")
	case domain.BucketMediumCompliance:
		return StyleYellow.Render("medium")
	case domain.BucketNeedsAttention:
		return StyleRed.Render("needs attention")
	default:
		return StyleDim.Render(string(b))
	}
}

// CategoryBadge returns a capitalized, colored category label.
func CategoryBadge(c domain.Category) string {
	if c == "" {
		return StyleDim.Render("--")
	}
	label := strings.ToUpper(string(c)[:1]) + string(c)[1:]
	switch c {
	case domain.CategoryWorkout:
		return StyleOrange.Render(label)
	case domain.CategoryNutrition:
		return StyleGreen.Render(label)
	default:
		return StylePurple.Render(label)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
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
