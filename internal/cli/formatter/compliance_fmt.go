package formatter

import (
	"fmt"
	"strings"

	"github.com/horia913/daily-fitness-sub008/internal/app"
	"github.com/horia913/daily-fitness-sub008/internal/domain"
)

const complianceBarWidth = 10

// FormatComplianceSummary renders the coach view: one row per scored subject,
// the coach-level roll-up and any excluded subjects.
func FormatComplianceSummary(s *app.ComplianceSummary) string {
	var b strings.Builder

	if !s.Scored() {
		b.WriteString(Dim("No subjects with active items to score.") + "\n")
	} else {
		headers := []string{"SUBJECT", "OVERALL", "STATUS"}
		for _, c := range domain.Categories {
			headers = append(headers, strings.ToUpper(string(c)))
		}
		rows := make([][]string, 0, len(s.Subjects))
		for _, subj := range s.Subjects {
			row := []string{
				Bold(subj.SubjectName),
				RenderRate(subj.Overall, complianceBarWidth),
				StatusIndicator(subj.Status),
			}
			for _, c := range domain.Categories {
				row = append(row, categoryCell(subj.PerCategory, c))
			}
			rows = append(rows, row)
		}
		b.WriteString(RenderTable(headers, rows))

		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Coach overall: %s\n", RenderRate(s.Overall, complianceBarWidth)))
		var cats []string
		for _, c := range domain.Categories {
			if v, ok := s.PerCategory[c]; ok {
				cats = append(cats, fmt.Sprintf("%s %s", CategoryBadge(c), RatePct(v)))
			}
		}
		if len(cats) > 0 {
			b.WriteString(strings.Join(cats, Dim(" · ")) + "\n")
		}
		b.WriteString(fmt.Sprintf("%s, %s, %s\n",
			StyleGreen.Render(fmt.Sprintf("%d high", s.BucketCounts.HighCompliance)),
			StyleYellow.Render(fmt.Sprintf("%d medium", s.BucketCounts.MediumCompliance)),
			StyleRed.Render(fmt.Sprintf("%d need attention", s.BucketCounts.NeedsAttention)),
		))
	}

	if len(s.Unscored) > 0 {
		b.WriteString("\n" + Dim(fmt.Sprintf("%d subject(s) without active items", len(s.Unscored))) + "\n")
	}
	if len(s.Unavailable) > 0 {
		b.WriteString("\n")
		for _, f := range s.Unavailable {
			name := f.SubjectName
			if name == "" {
				name = f.SubjectID
			}
			b.WriteString(StyleYellow.Render(fmt.Sprintf("  UNAVAILABLE: %s (%v)", name, f.Err)) + "\n")
		}
	}

	title := fmt.Sprintf("Compliance · last %d days", s.WindowDays)
	return RenderBox(title, b.String())
}

func categoryCell(per map[domain.Category]int, c domain.Category) string {
	v, ok := per[c]
	if !ok {
		return Dim("--")
	}
	return RatePct(v)
}
