package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/garda-insights/riskmap/internal/geo"
)

var (
	centroidsNameField string
	centroidsOut       string
)

var centroidsCmd = &cobra.Command{
	Use:   "centroids <shapefile>",
	Short: "Derive a region centroid table from a boundary shapefile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := geo.ImportCentroids(args[0], centroidsNameField)
		if err != nil {
			return err
		}

		if err := table.SaveCentroids(centroidsOut); err != nil {
			return err
		}

		fmt.Printf("wrote %d centroids to %s\n", len(table.Regions()), centroidsOut)
		return nil
	},
}

func init() {
	centroidsCmd.Flags().StringVar(&centroidsNameField, "name-field", "NAME", "shapefile attribute holding the region name")
	centroidsCmd.Flags().StringVar(&centroidsOut, "out", "centroids.yaml", "output YAML path")
	rootCmd.AddCommand(centroidsCmd)
}
