package pipeline

import (
	"fmt"
	"strings"

	"github.com/garda-insights/riskmap/internal/model"
)

// FormatReport renders a human-readable markdown report of one run.
func FormatReport(vm *ViewModel) string {
	var b strings.Builder

	b.WriteString("# Crime Risk Report\n")
	fmt.Fprintf(&b, "Run: %s\n", vm.RunID)
	fmt.Fprintf(&b, "Generated: %s\n\n", vm.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	// Summary.
	b.WriteString("## Summary\n")
	fmt.Fprintf(&b, "- Rows accepted: %d (skipped: %d quarter, %d value, %d region)\n",
		vm.LoadStats.Accepted, vm.LoadStats.SkippedQuarter, vm.LoadStats.SkippedValue, vm.LoadStats.SkippedRegion)
	fmt.Fprintf(&b, "- Regions scored: %d\n", len(vm.Scores))
	fmt.Fprintf(&b, "- Score distribution: mean %.1f, median %.1f, stddev %.1f, range [%.0f, %.0f]\n\n",
		vm.Distribution.Mean, vm.Distribution.Median, vm.Distribution.StdDev,
		vm.Distribution.Min, vm.Distribution.Max)

	// Zones.
	b.WriteString("## Zones\n")
	for _, tier := range []model.Tier{model.TierDanger, model.TierWarning, model.TierSafe} {
		fmt.Fprintf(&b, "- %s: %d regions (%.1f%%)\n",
			tier, vm.ZoneStats.Counts[tier], vm.ZoneStats.Percentages[tier])
	}
	b.WriteString("\n")

	if len(vm.Zones) > 0 {
		b.WriteString("| Region | Tier | Score | Percentile |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, z := range vm.Zones {
			fmt.Fprintf(&b, "| %s | %s | %d | %.1f |\n", z.Region, z.Tier, z.Score, z.PercentileRank)
		}
		b.WriteString("\n")
	}

	// Top regions.
	fmt.Fprintf(&b, "## Top %d Regions by Risk Score\n", len(vm.TopRegions))
	for i, s := range vm.TopRegions {
		fmt.Fprintf(&b, "%d. %s: score %d (%d incidents over %d rows)\n",
			i+1, s.Region, s.Score, s.Incidents, s.Records)
	}
	b.WriteString("\n")

	// Top offences.
	fmt.Fprintf(&b, "## Top %d Offence Types by Incidents\n", len(vm.TopOffences))
	for i, o := range vm.TopOffences {
		fmt.Fprintf(&b, "%d. %s: %d incidents\n", i+1, o.Offence, o.Count)
	}
	b.WriteString("\n")

	// Trend matrix.
	if len(vm.Matrix.Periods) > 0 {
		b.WriteString("## Score Trend (region x quarter)\n")
		b.WriteString("| Region |")
		for _, p := range vm.Matrix.Periods {
			fmt.Fprintf(&b, " %s |", p)
		}
		b.WriteString("\n|---|")
		for range vm.Matrix.Periods {
			b.WriteString("---|")
		}
		b.WriteString("\n")
		for i, region := range vm.Matrix.Regions {
			fmt.Fprintf(&b, "| %s |", region)
			for j := range vm.Matrix.Periods {
				fmt.Fprintf(&b, " %d |", vm.Matrix.Cell(i, j))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
