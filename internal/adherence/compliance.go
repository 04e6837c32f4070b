package adherence

import (
	"math"

	"github.com/horia913/daily-fitness-sub008/internal/domain"
)

// Status band lower bounds (inclusive).
const (
	excellentMin        = 80
	goodMin             = 60
	needsImprovementMin = 40
)

// BucketFor maps an overall score to its status band.
func BucketFor(score int) domain.ComplianceStatus {
	switch {
	case score >= excellentMin:
		return domain.StatusExcellent
	case score >= goodMin:
		return domain.StatusGood
	case score >= needsImprovementMin:
		return domain.StatusNeedsImprovement
	default:
		return domain.StatusAtRisk
	}
}

// CoachBucketFor maps an overall score to the coach summary split.
func CoachBucketFor(score int) domain.CoachBucket {
	switch {
	case score >= excellentMin:
		return domain.BucketHighCompliance
	case score >= goodMin:
		return domain.BucketMediumCompliance
	default:
		return domain.BucketNeedsAttention
	}
}

// SubjectScore is one subject's per-category rates and their rounded mean.
type SubjectScore struct {
	SubjectID   string
	PerCategory map[domain.Category]int
	Overall     int
	Status      domain.ComplianceStatus
}

// ScoreSubject averages the supplied category rates. It reports false when no
// categories were supplied, so an unscored subject never counts as zero.
func ScoreSubject(subjectID string, rates map[domain.Category]int) (SubjectScore, bool) {
	if len(rates) == 0 {
		return SubjectScore{SubjectID: subjectID}, false
	}

	per := make(map[domain.Category]int, len(rates))
	vals := make([]int, 0, len(rates))
	for cat, r := range rates {
		r = clampPct(r)
		per[cat] = r
		vals = append(vals, r)
	}

	overall, _ := Mean(vals)
	return SubjectScore{
		SubjectID:   subjectID,
		PerCategory: per,
		Overall:     overall,
		Status:      BucketFor(overall),
	}, true
}

// BucketCounts tallies subjects per coach bucket.
type BucketCounts struct {
	HighCompliance   int
	MediumCompliance int
	NeedsAttention   int
}

// CoachAggregate is the coach-level roll-up over scored subjects.
type CoachAggregate struct {
	Overall      int
	PerCategory  map[domain.Category]int
	BucketCounts BucketCounts
	Scored       int
}

// AggregateCoach computes the unweighted mean of subject overalls, the mean
// of each category over subjects that have it, and bucket counts.
// Callers pass only subjects whose data was available.
func AggregateCoach(scores []SubjectScore) CoachAggregate {
	agg := CoachAggregate{PerCategory: make(map[domain.Category]int)}
	if len(scores) == 0 {
		return agg
	}

	overalls := make([]int, 0, len(scores))
	byCat := make(map[domain.Category][]int)
	for _, s := range scores {
		overalls = append(overalls, s.Overall)
		for cat, r := range s.PerCategory {
			byCat[cat] = append(byCat[cat], r)
		}
		switch CoachBucketFor(s.Overall) {
		case domain.BucketHighCompliance:
			agg.BucketCounts.HighCompliance++
		case domain.BucketMediumCompliance:
			agg.BucketCounts.MediumCompliance++
		default:
			agg.BucketCounts.NeedsAttention++
		}
	}

	agg.Overall, _ = Mean(overalls)
	for cat, vals := range byCat {
		agg.PerCategory[cat], _ = Mean(vals)
	}
	agg.Scored = len(scores)
	return agg
}

// Mean returns the rounded arithmetic mean of vals, or false when empty.
func Mean(vals []int) (int, bool) {
	if len(vals) == 0 {
		return 0, false
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(vals)))), true
}
