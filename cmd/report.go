package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/garda-insights/riskmap/internal/pipeline"
)

var (
	reportFilter     filterFlags
	reportThresholds thresholdFlags
	reportOut        string
)

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Generate a markdown risk report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vm, err := runFromFile(cmd.Context(), args[0], reportFilter, reportThresholds)
		if err != nil {
			return err
		}

		report := pipeline.FormatReport(vm)
		if reportOut == "" {
			fmt.Print(report)
			return nil
		}
		if err := os.WriteFile(reportOut, []byte(report), 0o644); err != nil {
			return eris.Wrap(err, "write report")
		}
		fmt.Printf("report written to %s\n", reportOut)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringSliceVar(&reportFilter.quarters, "quarters", nil, "quarter labels to include")
	reportCmd.Flags().StringSliceVar(&reportFilter.regions, "regions", nil, "region names to include")
	reportCmd.Flags().StringSliceVar(&reportFilter.offences, "offences", nil, "offence types to include")
	reportCmd.Flags().Float64Var(&reportThresholds.dangerPct, "danger-pct", -1, "danger percentile threshold")
	reportCmd.Flags().Float64Var(&reportThresholds.warningPct, "warning-pct", -1, "warning percentile threshold")
	reportCmd.Flags().IntVar(&reportThresholds.topN, "top-n", 0, "top-N size")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "write the report to a file instead of stdout")
	rootCmd.AddCommand(reportCmd)
}
