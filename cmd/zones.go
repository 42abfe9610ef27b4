package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/garda-insights/riskmap/internal/model"
)

var (
	zonesFilter     filterFlags
	zonesThresholds thresholdFlags
	zonesJSON       bool
)

var zonesCmd = &cobra.Command{
	Use:   "zones <file>",
	Short: "Classify regions into SAFE/WARNING/DANGER tiers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vm, err := runFromFile(cmd.Context(), args[0], zonesFilter, zonesThresholds)
		if err != nil {
			return err
		}

		if zonesJSON {
			return printJSON(os.Stdout, map[string]interface{}{
				"zones":      vm.Zones,
				"zone_stats": vm.ZoneStats,
			})
		}

		fmt.Printf("%-45s %-8s %10s %12s\n", "REGION", "TIER", "SCORE", "PERCENTILE")
		for _, z := range vm.Zones {
			fmt.Printf("%-45s %-8s %10d %11.1f%%\n", z.Region, z.Tier, z.Score, z.PercentileRank)
		}
		fmt.Println()
		for _, tier := range []model.Tier{model.TierDanger, model.TierWarning, model.TierSafe} {
			fmt.Printf("%s: %d (%.1f%%)\n", tier, vm.ZoneStats.Counts[tier], vm.ZoneStats.Percentages[tier])
		}
		return nil
	},
}

func init() {
	zonesCmd.Flags().StringSliceVar(&zonesFilter.quarters, "quarters", nil, "quarter labels to include")
	zonesCmd.Flags().StringSliceVar(&zonesFilter.regions, "regions", nil, "region names to include")
	zonesCmd.Flags().StringSliceVar(&zonesFilter.offences, "offences", nil, "offence types to include")
	zonesCmd.Flags().Float64Var(&zonesThresholds.dangerPct, "danger-pct", -1, "danger percentile threshold")
	zonesCmd.Flags().Float64Var(&zonesThresholds.warningPct, "warning-pct", -1, "warning percentile threshold")
	zonesCmd.Flags().BoolVar(&zonesJSON, "json", false, "emit JSON instead of a table")
	rootCmd.AddCommand(zonesCmd)
}
