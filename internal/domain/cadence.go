package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// CadenceKind distinguishes daily items from weekly-target items.
type CadenceKind string

const (
	CadenceDaily  CadenceKind = "daily"
	CadenceWeekly CadenceKind = "weekly"
)

// Cadence is how often a tracked item is expected to be completed.
// For weekly cadences, TimesPerWeek is the target number of days per week.
type Cadence struct {
	Kind         CadenceKind
	TimesPerWeek int
}

// Daily is the daily cadence.
var Daily = Cadence{Kind: CadenceDaily}

// Weekly returns a weekly cadence targeting n days per week.
func Weekly(n int) Cadence {
	return Cadence{Kind: CadenceWeekly, TimesPerWeek: n}
}

// ParseCadence accepts "daily" or "weekly:N" with 1 <= N <= 7.
func ParseCadence(s string) (Cadence, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == string(CadenceDaily) {
		return Daily, nil
	}
	rest, ok := strings.CutPrefix(s, string(CadenceWeekly)+":")
	if !ok {
		return Cadence{}, fmt.Errorf("invalid cadence %q (want daily or weekly:N)", s)
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return Cadence{}, fmt.Errorf("invalid weekly target %q: %w", rest, err)
	}
	c := Weekly(n)
	if err := c.Validate(); err != nil {
		return Cadence{}, err
	}
	return c, nil
}

// Validate checks that the cadence is well formed.
func (c Cadence) Validate() error {
	switch c.Kind {
	case CadenceDaily:
		return nil
	case CadenceWeekly:
		if c.TimesPerWeek < 1 || c.TimesPerWeek > 7 {
			return fmt.Errorf("weekly target must be between 1 and 7, got %d", c.TimesPerWeek)
		}
		return nil
	default:
		return fmt.Errorf("unknown cadence kind %q", c.Kind)
	}
}

func (c Cadence) String() string {
	if c.Kind == CadenceWeekly {
		return fmt.Sprintf("%s:%d", CadenceWeekly, c.TimesPerWeek)
	}
	return string(CadenceDaily)
}
