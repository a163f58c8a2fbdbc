package api

import (
	"fmt"
	"math"
)

// The backend is trusted; these checks exist so that schema drift shows up
// in the log and in tests, not to gate rendering.

// PercentTolerance is the allowed rounding error when percentages should
// add up to 100.
const PercentTolerance = 1.0

// CategoryStats is the categories response.
type CategoryStats []CategoryStat

// PercentageSum adds up the percentage of every category.
func (cs CategoryStats) PercentageSum() float64 {
	var sum float64
	for _, c := range cs {
		sum += c.Percentage
	}
	return sum
}

// Validate checks that percentages sum to 100 within PercentTolerance.
func (cs CategoryStats) Validate() error {
	if len(cs) == 0 {
		return nil
	}
	sum := cs.PercentageSum()
	if math.Abs(sum-100) > PercentTolerance {
		return fmt.Errorf("category percentages sum to %.2f, want 100±%.1f", sum, PercentTolerance)
	}
	return nil
}

// Validate checks that the three app lists are pairwise disjoint and that
// TotalApps matches their combined length.
func (e *AppEcosystem) Validate() error {
	n := len(e.CrossPlatformApps) + len(e.PhoneOnlyApps) + len(e.ComputerOnlyApps)
	if e.TotalApps != n {
		return fmt.Errorf("ecosystem totalApps %d, lists hold %d", e.TotalApps, n)
	}

	seen := make(map[string]string, n)
	lists := []struct {
		name string
		apps []string
	}{
		{"crossPlatform", e.CrossPlatformApps},
		{"phoneOnly", e.PhoneOnlyApps},
		{"computerOnly", e.ComputerOnlyApps},
	}
	for _, l := range lists {
		for _, app := range l.apps {
			if prev, ok := seen[app]; ok && prev != l.name {
				return fmt.Errorf("ecosystem app %q in both %s and %s", app, prev, l.name)
			}
			seen[app] = l.name
		}
	}
	return nil
}

// ValidateRanks checks that ranks form the sequence 1..len(rs) in order and
// that every percentage lies in [0,100].
func ValidateRanks(rs []AppRanking) error {
	for i, r := range rs {
		if r.Rank != i+1 {
			return fmt.Errorf("ranking %d has rank %d", i, r.Rank)
		}
		if r.Percentage < 0 || r.Percentage > 100 {
			return fmt.Errorf("ranking %q percentage %.2f out of range", r.AppName, r.Percentage)
		}
	}
	return nil
}

// TimeAllocation is the time-allocation response, one entry per hour.
type TimeAllocation []HourlyAllocation

// Validate checks hour bounds, uniqueness and that totals equal the sum of
// the per-device durations.
func (ta TimeAllocation) Validate() error {
	seen := make(map[int]bool, len(ta))
	for _, h := range ta {
		if h.Hour < 0 || h.Hour > 23 {
			return fmt.Errorf("allocation hour %d out of range", h.Hour)
		}
		if seen[h.Hour] {
			return fmt.Errorf("allocation hour %d repeated", h.Hour)
		}
		seen[h.Hour] = true
		if h.TotalDuration != h.PhoneDuration+h.ComputerDuration {
			return fmt.Errorf("allocation hour %d total %d != %d + %d",
				h.Hour, h.TotalDuration, h.PhoneDuration, h.ComputerDuration)
		}
	}
	return nil
}
