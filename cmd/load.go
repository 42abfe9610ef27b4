package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/garda-insights/riskmap/internal/dataset"
)

var loadJSON bool

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Validate a crime dataset and report its contents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := dataset.NewLoader(cfg.Scope.RegionTokens)
		records, stats, err := loader.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		quarters := dataset.Quarters(records)
		regions := dataset.Regions(records)
		offences := dataset.Offences(records)

		if loadJSON {
			return printJSON(os.Stdout, map[string]interface{}{
				"load_stats": stats,
				"quarters":   quarters,
				"regions":    regions,
				"offences":   offences,
			})
		}

		fmt.Printf("Accepted rows: %d\n", stats.Accepted)
		fmt.Printf("Skipped rows:  %d (bad quarter: %d, bad value: %d, out of scope: %d)\n",
			stats.Skipped(), stats.SkippedQuarter, stats.SkippedValue, stats.SkippedRegion)
		fmt.Printf("Quarters: %d", len(quarters))
		if len(quarters) > 0 {
			fmt.Printf(" (%s .. %s)", quarters[0], quarters[len(quarters)-1])
		}
		fmt.Println()
		fmt.Printf("Regions: %d\n", len(regions))
		for _, r := range regions {
			fmt.Printf("  %s\n", r)
		}
		fmt.Printf("Offence types: %d\n", len(offences))
		return nil
	},
}

func init() {
	loadCmd.Flags().BoolVar(&loadJSON, "json", false, "emit JSON instead of text")
	rootCmd.AddCommand(loadCmd)
}
