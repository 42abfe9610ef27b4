// Package zones partitions scored regions into SAFE, WARNING, and
// DANGER tiers using percentile thresholds over the score distribution.
package zones

import (
	"sort"

	"github.com/rotisserie/eris"

	"github.com/garda-insights/riskmap/internal/model"
)

// Config holds the percentile thresholds. Danger must sit at a strictly
// higher percentile than warning; an inverted pair is rejected, never
// swapped or clamped.
type Config struct {
	DangerPercentile  float64 `json:"danger_percentile"`
	WarningPercentile float64 `json:"warning_percentile"`
}

// Validate checks that both percentiles are in (0, 100) and correctly
// ordered. Violations are configuration errors, fatal to classification.
func (c Config) Validate() error {
	if c.DangerPercentile <= 0 || c.DangerPercentile >= 100 {
		return eris.Errorf("zones: danger percentile must be in (0, 100), got %g", c.DangerPercentile)
	}
	if c.WarningPercentile <= 0 || c.WarningPercentile >= 100 {
		return eris.Errorf("zones: warning percentile must be in (0, 100), got %g", c.WarningPercentile)
	}
	if c.DangerPercentile <= c.WarningPercentile {
		return eris.Errorf("zones: danger percentile (%g) must exceed warning percentile (%g)",
			c.DangerPercentile, c.WarningPercentile)
	}
	return nil
}

// Classify assigns every scored region to exactly one tier. Thresholds
// are the danger- and warning-percentile values of the score
// distribution; a region whose score reaches the danger threshold is
// DANGER, else WARNING if it reaches the warning threshold, else SAFE.
//
// Degenerate distributions (fewer than two distinct scores) have no
// usable percentile spread: every region is assigned SAFE with a
// percentile rank of zero.
//
// The result preserves the input order and carries each region's
// numeric percentile rank (share of regions scoring strictly lower).
func Classify(scores []model.RegionScore, cfg Config) ([]model.ZoneAssignment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return []model.ZoneAssignment{}, nil
	}

	values := make([]float64, len(scores))
	for i, s := range scores {
		values[i] = float64(s.Score)
	}

	if countDistinct(values) < 2 {
		out := make([]model.ZoneAssignment, len(scores))
		for i, s := range scores {
			out[i] = model.ZoneAssignment{
				Region: s.Region,
				Tier:   model.TierSafe,
				Score:  s.Score,
			}
		}
		return out, nil
	}

	dangerAt := percentile(values, cfg.DangerPercentile)
	warningAt := percentile(values, cfg.WarningPercentile)

	out := make([]model.ZoneAssignment, len(scores))
	for i, s := range scores {
		score := float64(s.Score)
		tier := model.TierSafe
		switch {
		case score >= dangerAt:
			tier = model.TierDanger
		case score >= warningAt:
			tier = model.TierWarning
		}
		out[i] = model.ZoneAssignment{
			Region:         s.Region,
			Tier:           tier,
			Score:          s.Score,
			PercentileRank: rank(values, score),
		}
	}
	return out, nil
}

// percentile computes the p-th percentile (p in (0, 100)) by linear
// interpolation between closest ranks: the value at fractional position
// p/100 * (n-1) of the ascending order statistics.
func percentile(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := p / 100 * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// rank returns the share of values strictly below v, in [0, 100].
func rank(values []float64, v float64) float64 {
	below := 0
	for _, x := range values {
		if x < v {
			below++
		}
	}
	return float64(below) / float64(len(values)) * 100
}

func countDistinct(values []float64) int {
	seen := make(map[float64]bool, len(values))
	for _, v := range values {
		seen[v] = true
	}
	return len(seen)
}
