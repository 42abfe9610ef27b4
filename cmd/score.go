package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	scoreFilter     filterFlags
	scoreThresholds thresholdFlags
	scoreJSON       bool
)

var scoreCmd = &cobra.Command{
	Use:   "score <file>",
	Short: "Compute per-region risk scores",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vm, err := runFromFile(cmd.Context(), args[0], scoreFilter, scoreThresholds)
		if err != nil {
			return err
		}

		if scoreJSON {
			return printJSON(os.Stdout, vm.Scores)
		}

		fmt.Printf("%-45s %10s %10s %8s\n", "REGION", "SCORE", "INCIDENTS", "ROWS")
		for _, s := range vm.Scores {
			fmt.Printf("%-45s %10d %10d %8d\n", s.Region, s.Score, s.Incidents, s.Records)
		}
		return nil
	},
}

func init() {
	scoreCmd.Flags().StringSliceVar(&scoreFilter.quarters, "quarters", nil, "quarter labels to include (e.g. 2023Q1,2023Q2)")
	scoreCmd.Flags().StringSliceVar(&scoreFilter.regions, "regions", nil, "region names to include")
	scoreCmd.Flags().StringSliceVar(&scoreFilter.offences, "offences", nil, "offence types to include")
	scoreCmd.Flags().Float64Var(&scoreThresholds.dangerPct, "danger-pct", -1, "danger percentile threshold (default from config)")
	scoreCmd.Flags().Float64Var(&scoreThresholds.warningPct, "warning-pct", -1, "warning percentile threshold (default from config)")
	scoreCmd.Flags().IntVar(&scoreThresholds.topN, "top-n", 0, "top-N size (default from config)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "emit JSON instead of a table")
	rootCmd.AddCommand(scoreCmd)
}
