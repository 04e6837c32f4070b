package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/horia913/daily-fitness-sub008/internal/app"
	"github.com/horia913/daily-fitness-sub008/internal/cli/formatter"
)

func newStreakCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "streak <item-id>",
		Short: "Show the current streak for an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := resolveItem(cmd.Context(), a, args[0])
			if err != nil {
				return err
			}
			streak, err := a.Adherence.GetStreak(cmd.Context(), item.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStreak(item, streak))
			return nil
		},
	}
}

func newRateCmd(a *App) *cobra.Command {
	var window int

	cmd := &cobra.Command{
		Use:   "rate <item-id>",
		Short: "Show the completion rate for an item over a trailing window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := resolveItem(cmd.Context(), a, args[0])
			if err != nil {
				return err
			}
			days := a.windowDays(window)
			rate, err := a.Adherence.GetCompletionRate(cmd.Context(), item.ID, days)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRate(item, days, rate))
			return nil
		},
	}

	cmd.Flags().IntVar(&window, "window", 0, "Window length in days (default from config)")
	return cmd
}

func newProgressCmd(a *App) *cobra.Command {
	var subjectFlag string
	var window int

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show streaks and rates for every item of a subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, err := resolveSubject(cmd.Context(), a, subjectFlag)
			if err != nil {
				return err
			}
			days := a.windowDays(window)
			progress, err := a.Adherence.GetProgress(cmd.Context(), app.ProgressRequest{
				SubjectID:  subject.ID,
				WindowDays: days,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProgress(subject, progress, days))
			return nil
		},
	}

	cmd.Flags().StringVar(&subjectFlag, "subject", "", "Subject ID, ID prefix or name")
	cmd.Flags().IntVar(&window, "window", 0, "Window length in days (default from config)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func newComplianceCmd(a *App) *cobra.Command {
	var subjects []string
	var window int

	cmd := &cobra.Command{
		Use:   "compliance",
		Short: "Coach-level compliance summary across subjects",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.NewComplianceRequest()
			req.WindowDays = a.windowDays(window)
			for _, ref := range subjects {
				s, err := resolveSubject(cmd.Context(), a, ref)
				if err != nil {
					return err
				}
				req.SubjectIDs = append(req.SubjectIDs, s.ID)
			}

			summary, err := a.Adherence.GetComplianceSummary(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatComplianceSummary(summary))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&subjects, "subject", nil, "Limit to these subjects (repeatable)")
	cmd.Flags().IntVar(&window, "window", 0, "Window length in days (default from config)")
	return cmd
}
