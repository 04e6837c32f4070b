package domain

type Category string

const (
	CategoryWorkout   Category = "workout"
	CategoryNutrition Category = "nutrition"
	CategoryHabit     Category = "habit"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryWorkout, CategoryNutrition, CategoryHabit}

// ValidCategories is the canonical set of accepted category strings.
var ValidCategories = map[string]bool{
	"workout": true, "nutrition": true, "habit": true,
}

// ComplianceStatus buckets a single subject's overall score.
type ComplianceStatus string

const (
	StatusExcellent        ComplianceStatus = "excellent"
	StatusGood             ComplianceStatus = "good"
	StatusNeedsImprovement ComplianceStatus = "needs-improvement"
	StatusAtRisk           ComplianceStatus = "at-risk"
)

// CoachBucket is the coarser three-way split used in coach summaries.
type CoachBucket string

const (
	BucketHighCompliance   CoachBucket = "highCompliance"
	BucketMediumCompliance CoachBucket = "mediumCompliance"
	BucketNeedsAttention   CoachBucket = "needsAttention"
)

type LogSource string

const (
	SourceToggle   LogSource = "toggle"
	SourceBackfill LogSource = "backfill"
)
