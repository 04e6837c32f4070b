package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/horia913/daily-fitness-sub008/internal/cli/formatter"
	"github.com/horia913/daily-fitness-sub008/internal/domain"
	"github.com/horia913/daily-fitness-sub008/internal/tracker"
)

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <item-id>...",
		Short: "Flip today's completion for one or more items",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			items := make([]*domain.TrackedItem, 0, len(args))
			ids := make([]string, 0, len(args))
			for _, ref := range args {
				item, err := resolveItem(ctx, app, ref)
				if err != nil {
					return err
				}
				items = append(items, item)
				ids = append(ids, item.ID)
			}

			ctrl := app.newTracker()
			defer ctrl.Close()

			if err := ctrl.Reload(ctx, ids); err != nil {
				return err
			}

			results := make([]<-chan tracker.Result, len(items))
			for i, item := range items {
				results[i] = ctrl.ToggleAsync(ctx, item.ID)
			}

			day := ctrl.Today()
			var errs []error
			for i, ch := range results {
				res := <-ch
				if res.Err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", items[i].Title, res.Err))
					continue
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatToggle(items[i], day, res.Completed))
			}
			return errors.Join(errs...)
		},
	}
}
