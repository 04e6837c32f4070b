package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/horia913/daily-fitness-sub008/internal/cli/formatter"
	"github.com/horia913/daily-fitness-sub008/internal/domain"
)

// fitcoachHuhTheme returns a huh theme matching the formatter palette.
func fitcoachHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// assignInput collects the fields of "item assign" that were not given as flags.
type assignInput struct {
	Title    string
	Category string
	Cadence  string
	Start    string
}

func assignForm(in *assignInput) *huh.Form {
	if in.Category == "" {
		in.Category = string(domain.CategoryHabit)
	}
	if in.Cadence == "" {
		in.Cadence = domain.Daily.String()
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("e.g. Morning mobility").
				Value(&in.Title).
				Validate(validateRequired),
			huh.NewSelect[string]().
				Title("Category").
				Options(
					huh.NewOption("Workout", string(domain.CategoryWorkout)),
					huh.NewOption("Nutrition", string(domain.CategoryNutrition)),
					huh.NewOption("Habit", string(domain.CategoryHabit)),
				).
				Value(&in.Category),
			huh.NewInput().
				Title("Cadence").
				Description("daily or weekly:N").
				Value(&in.Cadence).
				Validate(validateCadence),
			huh.NewInput().
				Title("Start date").
				Description("YYYY-MM-DD, blank for today").
				Value(&in.Start).
				Validate(validateOptionalDate),
		),
	).WithTheme(fitcoachHuhTheme()).WithShowHelp(false)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateCadence(s string) error {
	_, err := domain.ParseCadence(s)
	return err
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := domain.ParseDate(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}
