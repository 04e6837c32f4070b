package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/horia913/daily-fitness-sub008/internal/app"
	"github.com/horia913/daily-fitness-sub008/internal/domain"
)

// FormatSubjectList renders subjects as a table.
func FormatSubjectList(subjects []*domain.Subject) string {
	if len(subjects) == 0 {
		return Dim("No subjects yet. Add one with: fitcoach subject add <name>") + "\n"
	}
	rows := make([][]string, 0, len(subjects))
	for _, s := range subjects {
		rows = append(rows, []string{TruncID(s.ID), Bold(s.Name), Dim(s.CreatedAt.Format("2006-01-02"))})
	}
	return RenderTable([]string{"ID", "NAME", "SINCE"}, rows)
}

// FormatItemList renders a subject's tracked items.
func FormatItemList(items []*domain.TrackedItem) string {
	if len(items) == 0 {
		return Dim("No tracked items.") + "\n"
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		title := Bold(it.Title)
		if !it.Active {
			title = Dim(it.Title + " (inactive)")
		}
		rows = append(rows, []string{
			TruncID(it.ID),
			title,
			CategoryBadge(it.Category),
			CadenceLabel(it.Cadence),
			Dim(domain.FormatDate(it.StartDate)),
		})
	}
	return RenderTable([]string{"ID", "TITLE", "CATEGORY", "CADENCE", "START"}, rows)
}

// FormatProgress renders per-item streaks and rates for one subject.
func FormatProgress(subject *domain.Subject, progress []app.ItemProgress, windowDays int) string {
	if len(progress) == 0 {
		return RenderBox(subject.Name, Dim("No active items."))
	}
	rows := make([][]string, 0, len(progress))
	for _, p := range progress {
		rows = append(rows, []string{
			CheckMark(p.DoneToday),
			Bold(p.Item.Title),
			CategoryBadge(p.Item.Category),
			StreakBadge(p.Streak),
			Dim(fmt.Sprintf("%dd", p.LongestStreak)),
			fmt.Sprintf("%d/%d", p.Completed, p.Target),
			RenderRate(p.Rate, complianceBarWidth),
		})
	}
	headers := []string{"", "ITEM", "CATEGORY", "STREAK", "BEST", "DONE", fmt.Sprintf("LAST %dD", windowDays)}
	return RenderBox(subject.Name, RenderTable(headers, rows))
}

// FormatStreak renders the result of the streak command.
func FormatStreak(item *domain.TrackedItem, streak int) string {
	return fmt.Sprintf("%s %s: %s\n", TruncID(item.ID), Bold(item.Title), StreakBadge(streak)+" streak")
}

// FormatRate renders the result of the rate command.
func FormatRate(item *domain.TrackedItem, windowDays, rate int) string {
	return fmt.Sprintf("%s %s: %s over the last %d days\n",
		TruncID(item.ID), Bold(item.Title), RenderRate(rate, complianceBarWidth), windowDays)
}

// FormatToggle reports the settled state after a toggle.
func FormatToggle(item *domain.TrackedItem, day time.Time, completed bool) string {
	if completed {
		return fmt.Sprintf("%s %s marked done for %s\n", StyleGreen.Render("✔"), Bold(item.Title), domain.FormatDate(day))
	}
	return fmt.Sprintf("%s %s cleared for %s\n", Dim("○"), Bold(item.Title), domain.FormatDate(day))
}

// FormatBackfill reports a log add command.
func FormatBackfill(item *domain.TrackedItem, r *app.BackfillResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Logged %d day(s) for %s", r.Inserted, Bold(item.Title)))
	if r.Skipped > 0 {
		b.WriteString(Dim(fmt.Sprintf(" (%d already logged)", r.Skipped)))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatImport reports a backfill import.
func FormatImport(r *app.ImportResult) string {
	lines := []string{
		fmt.Sprintf("Subjects created: %d", r.SubjectsCreated),
		fmt.Sprintf("Items created:    %d", r.ItemsCreated),
		fmt.Sprintf("Logs inserted:    %d", r.LogsInserted),
	}
	if r.LogsSkipped > 0 {
		lines = append(lines, Dim(fmt.Sprintf("Logs skipped:     %d (already present)", r.LogsSkipped)))
	}
	return RenderBox("Import", strings.Join(lines, "\n"))
}
