package cli

import (
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/horia913/daily-fitness-sub008/internal/repository"
	"github.com/horia913/daily-fitness-sub008/internal/service"
	"github.com/horia913/daily-fitness-sub008/internal/tracker"
)

// App holds references to all services used by CLI commands.
type App struct {
	Subjects  service.SubjectService
	Items     service.TrackedItemService
	Logs      service.LogService
	Adherence service.AdherenceService
	Import    service.ImportService

	// LogStore backs the toggle controller.
	LogStore repository.LogStore

	Clock         service.Clock
	WindowDays    int
	ToggleTimeout time.Duration
	Logger        *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "fitcoach" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "fitcoach",
		Short:         "Habit, workout and nutrition adherence tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSubjectCmd(app),
		newItemCmd(app),
		newLogCmd(app),
		newStreakCmd(app),
		newRateCmd(app),
		newProgressCmd(app),
		newComplianceCmd(app),
		newToggleCmd(app),
		newTrackCmd(app),
		newImportCmd(app),
	)

	return root
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// windowDays resolves a --window flag. Negative values pass through so the
// service can reject them.
func (a *App) windowDays(flag int) int {
	if flag != 0 {
		return flag
	}
	if a.WindowDays > 0 {
		return a.WindowDays
	}
	return 7
}

// newTracker builds a toggle controller sharing the app's clock and store.
// Callers own it and must Close it.
func (a *App) newTracker() *tracker.Controller {
	logger := a.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return tracker.NewController(a.LogStore, tracker.Options{
		Now:      a.Clock.Now,
		Location: a.Clock.Location,
		Timeout:  a.ToggleTimeout,
		Logger:   logger,
	})
}
