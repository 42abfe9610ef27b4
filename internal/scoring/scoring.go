// Package scoring aggregates weighted incident counts into per-region
// risk scores.
package scoring

import (
	"sort"

	"github.com/garda-insights/riskmap/internal/model"
	"github.com/garda-insights/riskmap/internal/severity"
)

// maxTopOffences caps the per-region offence breakdown carried on each
// RegionScore.
const maxTopOffences = 5

// Score aggregates records into per-region risk scores. Each row
// contributes weight x count, exact integer arithmetic throughout, so
// identical inputs always produce identical scores. Regions with no
// rows are absent from the result, not emitted with score zero. The
// result is ordered score-descending with ties broken by region name
// ascending.
func Score(records []model.Record, table *severity.Table) []model.RegionScore {
	type agg struct {
		score     int64
		records   int
		incidents int64
		offences  map[string]int
	}
	byRegion := make(map[string]*agg)

	for _, rec := range records {
		a, ok := byRegion[rec.Region]
		if !ok {
			a = &agg{offences: make(map[string]int)}
			byRegion[rec.Region] = a
		}
		weight := table.Resolve(rec.Offence)
		a.score += int64(weight) * int64(rec.Count)
		a.records++
		a.incidents += int64(rec.Count)
		a.offences[rec.Offence] += rec.Count
	}

	scores := make([]model.RegionScore, 0, len(byRegion))
	for region, a := range byRegion {
		scores = append(scores, model.RegionScore{
			Region:      region,
			Score:       a.score,
			Records:     a.records,
			Incidents:   a.incidents,
			TopOffences: topOffences(a.offences, maxTopOffences),
		})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Region < scores[j].Region
	})

	return scores
}

// ScoreMatrix aggregates records into a dense region x period score
// grid. Rows are the distinct regions sorted ascending, columns the
// distinct periods sorted ascending; combinations with no rows hold
// zero so charting code can assume a full rectangle.
func ScoreMatrix(records []model.Record, table *severity.Table) model.TrendMatrix {
	type cell struct {
		region string
		period model.Period
	}
	totals := make(map[cell]int64)
	regionSet := make(map[string]bool)
	periodSet := make(map[model.Period]bool)

	for _, rec := range records {
		weight := table.Resolve(rec.Offence)
		totals[cell{rec.Region, rec.Period}] += int64(weight) * int64(rec.Count)
		regionSet[rec.Region] = true
		periodSet[rec.Period] = true
	}

	regions := make([]string, 0, len(regionSet))
	for r := range regionSet {
		regions = append(regions, r)
	}
	sort.Strings(regions)

	periods := make([]model.Period, 0, len(periodSet))
	for p := range periodSet {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })

	cells := make([][]int64, len(regions))
	for i, region := range regions {
		cells[i] = make([]int64, len(periods))
		for j, period := range periods {
			cells[i][j] = totals[cell{region, period}]
		}
	}

	return model.TrendMatrix{Regions: regions, Periods: periods, Cells: cells}
}

// topOffences returns the n highest-count offences, count descending,
// ties broken by offence name ascending.
func topOffences(counts map[string]int, n int) []model.OffenceCount {
	out := make([]model.OffenceCount, 0, len(counts))
	for offence, count := range counts {
		out = append(out, model.OffenceCount{Offence: offence, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Offence < out[j].Offence
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
