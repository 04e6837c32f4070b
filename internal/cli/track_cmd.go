package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTrackCmd(app *App) *cobra.Command {
	var subjectFlag string
	var window int

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Interactive daily check-off for a subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, err := resolveSubject(cmd.Context(), app, subjectFlag)
			if err != nil {
				return err
			}

			ctrl := app.newTracker()
			defer ctrl.Close()

			view := newTrackView(app, subject, ctrl, app.windowDays(window))
			_, err = tea.NewProgram(view,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&subjectFlag, "subject", "", "Subject ID, ID prefix or name")
	cmd.Flags().IntVar(&window, "window", 0, "Window length in days (default from config)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
