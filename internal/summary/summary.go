// Package summary derives headline views from scored and classified
// data: top-N rankings, tier statistics, and score-distribution summary
// statistics.
package summary

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/garda-insights/riskmap/internal/model"
)

// TopRegions returns the n highest-scoring regions. The input is
// already ordered score-descending with name tie-breaks, so this is a
// prefix.
func TopRegions(scores []model.RegionScore, n int) []model.RegionScore {
	if n <= 0 || n >= len(scores) {
		return scores
	}
	return scores[:n]
}

// TopOffences returns the n offence types with the highest aggregate
// incident counts across the filtered set, count descending, ties
// broken by offence name ascending.
func TopOffences(records []model.Record, n int) []model.OffenceCount {
	totals := make(map[string]int)
	for _, rec := range records {
		totals[rec.Offence] += rec.Count
	}

	out := make([]model.OffenceCount, 0, len(totals))
	for offence, count := range totals {
		out = append(out, model.OffenceCount{Offence: offence, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Offence < out[j].Offence
	})

	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// TierStats counts assignments per tier and expresses each count as a
// percentage of the region set.
type TierStats struct {
	Total       int                  `json:"total"`
	Counts      map[model.Tier]int   `json:"counts"`
	Percentages map[model.Tier]float64 `json:"percentages"`
}

// ZoneStats summarises the tier distribution of a classification.
func ZoneStats(assignments []model.ZoneAssignment) TierStats {
	stats := TierStats{
		Total:       len(assignments),
		Counts:      map[model.Tier]int{model.TierSafe: 0, model.TierWarning: 0, model.TierDanger: 0},
		Percentages: map[model.Tier]float64{model.TierSafe: 0, model.TierWarning: 0, model.TierDanger: 0},
	}
	for _, a := range assignments {
		stats.Counts[a.Tier]++
	}
	if stats.Total > 0 {
		for tier, count := range stats.Counts {
			stats.Percentages[tier] = float64(count) / float64(stats.Total) * 100
		}
	}
	return stats
}

// Distribution holds summary statistics of the region score
// distribution in the current filtered view.
type Distribution struct {
	Regions int     `json:"regions"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
	Median  float64 `json:"median"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// ScoreDistribution computes summary statistics over the region scores.
// An empty input yields the zero Distribution.
func ScoreDistribution(scores []model.RegionScore) Distribution {
	if len(scores) == 0 {
		return Distribution{}
	}

	values := make([]float64, len(scores))
	for i, s := range scores {
		values[i] = float64(s.Score)
	}
	sort.Float64s(values)

	d := Distribution{
		Regions: len(values),
		Mean:    stat.Mean(values, nil),
		Median:  stat.Quantile(0.5, stat.LinInterp, values, nil),
		Min:     values[0],
		Max:     values[len(values)-1],
	}
	if len(values) > 1 {
		d.StdDev = stat.StdDev(values, nil)
	}
	return d
}
