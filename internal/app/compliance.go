package app

import (
	"time"

	"github.com/horia913/daily-fitness-sub008/internal/domain"
)

type ComplianceRequest struct {
	Now *time.Time
	// SubjectIDs limits the summary. Empty means every subject.
	SubjectIDs []string
	WindowDays int
}

func NewComplianceRequest() ComplianceRequest {
	return ComplianceRequest{WindowDays: 7}
}

// ItemCompliance is one tracked item's numbers inside a subject view.
type ItemCompliance struct {
	ItemID    string
	Title     string
	Category  domain.Category
	Cadence   domain.Cadence
	Streak    int
	Completed int
	Target    int
	Rate      int
}

type SubjectCompliance struct {
	SubjectID   string
	SubjectName string
	PerCategory map[domain.Category]int
	Overall     int
	Status      domain.ComplianceStatus
	Bucket      domain.CoachBucket
	Items       []ItemCompliance
}

// SubjectFailure records a subject left out because its data could not be read.
type SubjectFailure struct {
	SubjectID   string
	SubjectName string
	Err         error
}

type BucketCounts struct {
	HighCompliance   int
	MediumCompliance int
	NeedsAttention   int
}

type ComplianceSummary struct {
	GeneratedAt  time.Time
	Today        time.Time
	WindowDays   int
	Overall      int
	PerCategory  map[domain.Category]int
	BucketCounts BucketCounts
	Subjects     []SubjectCompliance
	// Unscored lists subjects with no active items.
	Unscored    []string
	Unavailable []SubjectFailure
}

// Scored reports whether any subject contributed to the coach numbers.
func (s *ComplianceSummary) Scored() bool {
	return len(s.Subjects) > 0
}

type ComplianceErrorCode string

const (
	ComplianceErrInvalidWindow  ComplianceErrorCode = "INVALID_WINDOW"
	ComplianceErrUnknownSubject ComplianceErrorCode = "UNKNOWN_SUBJECT"
)

type ComplianceError struct {
	Code    ComplianceErrorCode
	Message string
}

func (e *ComplianceError) Error() string {
	return string(e.Code) + ": " + e.Message
}
