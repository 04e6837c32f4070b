package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/horia913/daily-fitness-sub008/internal/cli/formatter"
	"github.com/horia913/daily-fitness-sub008/internal/domain"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage tracked items",
	}

	cmd.AddCommand(
		newItemAssignCmd(app),
		newItemListCmd(app),
		newItemDeactivateCmd(app),
	)

	return cmd
}

func newItemAssignCmd(app *App) *cobra.Command {
	var subjectFlag, title, category, start string
	var cadence domain.Cadence

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign a habit, workout or nutrition item to a subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if (title == "" || category == "") && app.interactive() {
				input := assignInput{Title: title, Category: category, Cadence: cadence.String(), Start: start}
				if err := assignForm(&input).Run(); err != nil {
					return err
				}
				title, category, start = input.Title, input.Category, input.Start
				c, err := domain.ParseCadence(input.Cadence)
				if err != nil {
					return err
				}
				cadence = c
			}
			if title == "" || category == "" {
				return fmt.Errorf("--title and --category are required")
			}

			subject, err := resolveSubject(ctx, app, subjectFlag)
			if err != nil {
				return err
			}

			item := &domain.TrackedItem{
				SubjectID: subject.ID,
				Title:     title,
				Category:  domain.Category(category),
				Cadence:   cadence,
			}
			if start != "" {
				d, err := domain.ParseDate(start)
				if err != nil {
					return err
				}
				item.StartDate = d
			}

			if err := app.Items.Assign(ctx, item); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Assigned %s (%s, %s) to %s: %s\n",
				formatter.Bold(item.Title), item.Category, formatter.CadenceLabel(item.Cadence), subject.Name, item.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&subjectFlag, "subject", "", "Subject ID, ID prefix or name")
	cmd.Flags().StringVar(&title, "title", "", "Item title")
	cmd.Flags().StringVar(&category, "category", "", "workout, nutrition or habit")
	cmd.Flags().Var(newCadenceValue(domain.Daily, &cadence), "cadence", "daily or weekly:N")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func newItemListCmd(app *App) *cobra.Command {
	var subjectFlag string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a subject's tracked items",
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, err := resolveSubject(cmd.Context(), app, subjectFlag)
			if err != nil {
				return err
			}
			items, err := app.Items.ListBySubject(cmd.Context(), subject.ID, all)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatItemList(items))
			return nil
		},
	}

	cmd.Flags().StringVar(&subjectFlag, "subject", "", "Subject ID, ID prefix or name")
	cmd.Flags().BoolVar(&all, "all", false, "Include inactive items")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func newItemDeactivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <item-id>",
		Short: "Stop tracking an item without deleting its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := resolveItem(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Items.Deactivate(cmd.Context(), item.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deactivated %s\n", formatter.Bold(item.Title))
			return nil
		},
	}
}
