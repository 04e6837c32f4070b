package formatter

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/horia913/daily-fitness-sub008/internal/app"
	"github.com/horia913/daily-fitness-sub008/internal/domain"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"NAME", "RATE"},
		[][]string{{Bold("Ana"), RatePct(86)}, {"Benedict", RatePct(29)}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "NAME      RATE", lines[0])
	assert.Equal(t, "Ana       86%", lines[2])
	assert.Equal(t, "Benedict  29%", lines[3])
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}

func TestHeader_UnderlineMatchesDisplayWidth(t *testing.T) {
	lines := strings.Split(stripANSI(Header("Compliance · last 7 days")), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "COMPLIANCE · LAST 7 DAYS", lines[0])
	assert.Equal(t, strings.Repeat("─", 24), lines[1])
}

func TestRenderRate_Clamps(t *testing.T) {
	assert.Equal(t, "[░░░░]   0%", stripANSI(RenderRate(-5, 4)))
	assert.Equal(t, "[████] 100%", stripANSI(RenderRate(140, 4)))
	assert.Equal(t, "[██░░]  50%", stripANSI(RenderRate(50, 4)))
}

func TestStatusIndicator(t *testing.T) {
	assert.Equal(t, "● NEEDS IMPROVEMENT", stripANSI(StatusIndicator(domain.StatusNeedsImprovement)))
	assert.Equal(t, "● AT RISK", stripANSI(StatusIndicator(domain.StatusAtRisk)))
	assert.Equal(t, "● UNSCORED", stripANSI(StatusIndicator("")))
}

func TestDayLabel(t *testing.T) {
	today := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Today", DayLabel(today, today))
	assert.Equal(t, "Yesterday", DayLabel(today.AddDate(0, 0, -1), today))
	assert.Equal(t, "Mon Oct 12", DayLabel(today.AddDate(0, 0, -6), today))
}

func TestCadenceLabel(t *testing.T) {
	assert.Equal(t, "daily", CadenceLabel(domain.Daily))
	assert.Equal(t, "3x/week", CadenceLabel(domain.Weekly(3)))
}

func TestFormatComplianceSummary(t *testing.T) {
	s := &app.ComplianceSummary{
		WindowDays:  7,
		Overall:     58,
		PerCategory: map[domain.Category]int{domain.CategoryWorkout: 100, domain.CategoryNutrition: 29},
		BucketCounts: app.BucketCounts{
			HighCompliance: 1,
			NeedsAttention: 1,
		},
		Subjects: []app.SubjectCompliance{
			{SubjectName: "Ben", Overall: 29, Status: domain.StatusAtRisk, PerCategory: map[domain.Category]int{domain.CategoryNutrition: 29}},
			{SubjectName: "Ana", Overall: 86, Status: domain.StatusExcellent, PerCategory: map[domain.Category]int{domain.CategoryWorkout: 100}},
		},
		Unscored:    []string{"cal"},
		Unavailable: []app.SubjectFailure{{SubjectName: "Dee", Err: errors.New("store unavailable")}},
	}

	out := stripANSI(FormatComplianceSummary(s))
	assert.Contains(t, out, "COMPLIANCE · LAST 7 DAYS")
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "● EXCELLENT")
	assert.Contains(t, out, "Coach overall")
	assert.Contains(t, out, "58%")
	assert.Contains(t, out, "1 high, 0 medium, 1 need attention")
	assert.Contains(t, out, "1 subject(s) without active items")
	assert.Contains(t, out, "UNAVAILABLE: Dee (store unavailable)")
}

func TestFormatComplianceSummary_Empty(t *testing.T) {
	out := stripANSI(FormatComplianceSummary(&app.ComplianceSummary{WindowDays: 7}))
	assert.Contains(t, out, "No subjects with active items")
	assert.NotContains(t, out, "Coach overall")
}

func TestFormatProgress(t *testing.T) {
	subject := &domain.Subject{Name: "Dana"}
	item := &domain.TrackedItem{ID: "0123456789", Title: "Walk", Category: domain.CategoryHabit, Cadence: domain.Daily}
	out := stripANSI(FormatProgress(subject, []app.ItemProgress{
		{Item: item, Streak: 3, LongestStreak: 9, Completed: 5, Target: 7, Rate: 71, DoneToday: true},
	}, 7))

	assert.Contains(t, out, "DANA")
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "Walk")
	assert.Contains(t, out, "5/7")
	assert.Contains(t, out, "71%")
	assert.Contains(t, out, "LAST 7D")
}

func TestFormatToggle(t *testing.T) {
	item := &domain.TrackedItem{Title: "Walk"}
	day := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	assert.Contains(t, stripANSI(FormatToggle(item, day, true)), "Walk marked done for 2026-10-18")
	assert.Contains(t, stripANSI(FormatToggle(item, day, false)), "Walk cleared for 2026-10-18")
}

func TestFormatBackfill(t *testing.T) {
	item := &domain.TrackedItem{Title: "Walk"}
	out := stripANSI(FormatBackfill(item, &app.BackfillResult{Inserted: 2, Skipped: 1}))
	assert.Equal(t, "Logged 2 day(s) for Walk (1 already logged)\n", out)
}
