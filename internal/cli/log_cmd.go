package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/horia913/daily-fitness-sub008/internal/cli/formatter"
	"github.com/horia913/daily-fitness-sub008/internal/domain"
)

func newLogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Backfill or remove completion logs",
	}

	cmd.AddCommand(
		newLogAddCmd(app),
		newLogRemoveCmd(app),
	)

	return cmd
}

func newLogAddCmd(app *App) *cobra.Command {
	var itemFlag string
	var dates []string
	var daysAgo []int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record past completions for an item",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			item, err := resolveItem(ctx, app, itemFlag)
			if err != nil {
				return err
			}

			days, err := collectDays(app.Clock.Today(), dates, daysAgo)
			if err != nil {
				return err
			}
			if len(days) == 0 {
				return fmt.Errorf("give at least one --date or --days-ago")
			}

			result, err := app.Logs.Backfill(ctx, item.ID, days)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBackfill(item, result))
			return nil
		},
	}

	cmd.Flags().StringVar(&itemFlag, "item", "", "Tracked item ID or prefix")
	cmd.Flags().StringSliceVar(&dates, "date", nil, "Completion date (YYYY-MM-DD), repeatable")
	cmd.Flags().IntSliceVar(&daysAgo, "days-ago", nil, "Completion N days before today, repeatable")
	_ = cmd.MarkFlagRequired("item")

	return cmd
}

func newLogRemoveCmd(app *App) *cobra.Command {
	var itemFlag, date string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a completion log",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			item, err := resolveItem(ctx, app, itemFlag)
			if err != nil {
				return err
			}
			day := app.Clock.Today()
			if date != "" {
				if day, err = domain.ParseDate(date); err != nil {
					return err
				}
			}
			if err := app.Logs.Remove(ctx, item.ID, day); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s log for %s\n", formatter.Bold(item.Title), domain.FormatDate(day))
			return nil
		},
	}

	cmd.Flags().StringVar(&itemFlag, "item", "", "Tracked item ID or prefix")
	cmd.Flags().StringVar(&date, "date", "", "Date to clear (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("item")

	return cmd
}

func collectDays(today time.Time, dates []string, daysAgo []int) ([]time.Time, error) {
	days := make([]time.Time, 0, len(dates)+len(daysAgo))
	for _, s := range dates {
		d, err := domain.ParseDate(s)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	for _, n := range daysAgo {
		if n < 0 {
			return nil, fmt.Errorf("--days-ago must not be negative, got %d", n)
		}
		days = append(days, today.AddDate(0, 0, -n))
	}
	return days, nil
}
