package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/garda-insights/riskmap/internal/dataset"
	"github.com/garda-insights/riskmap/internal/geo"
	"github.com/garda-insights/riskmap/internal/model"
)

var (
	geojsonFilter     filterFlags
	geojsonThresholds thresholdFlags
	geojsonStations   string
	geojsonOut        string
)

var geojsonCmd = &cobra.Command{
	Use:   "geojson <file>",
	Short: "Emit zone-classified region centroids as GeoJSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vm, err := runFromFile(cmd.Context(), args[0], geojsonFilter, geojsonThresholds)
		if err != nil {
			return err
		}

		centroids, err := loadCentroids()
		if err != nil {
			return err
		}

		var stations []model.Station
		stationsPath := geojsonStations
		if stationsPath == "" {
			stationsPath = cfg.Geo.StationsFile
		}
		if stationsPath != "" {
			stations, err = dataset.LoadStations(cmd.Context(), stationsPath)
			if err != nil {
				return err
			}
		}

		data, err := geo.FeatureCollection(vm.Zones, centroids, stations)
		if err != nil {
			return err
		}

		if geojsonOut == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(geojsonOut, data, 0o644); err != nil {
			return eris.Wrap(err, "write geojson")
		}
		fmt.Printf("geojson written to %s\n", geojsonOut)
		return nil
	},
}

// loadCentroids returns the configured centroid table, or the built-in
// reference table when none is configured.
func loadCentroids() (*geo.CentroidTable, error) {
	if cfg.Geo.CentroidsFile == "" {
		return geo.DefaultCentroids(), nil
	}
	return geo.LoadCentroids(cfg.Geo.CentroidsFile)
}

func init() {
	geojsonCmd.Flags().StringSliceVar(&geojsonFilter.quarters, "quarters", nil, "quarter labels to include")
	geojsonCmd.Flags().StringSliceVar(&geojsonFilter.regions, "regions", nil, "region names to include")
	geojsonCmd.Flags().StringSliceVar(&geojsonFilter.offences, "offences", nil, "offence types to include")
	geojsonCmd.Flags().Float64Var(&geojsonThresholds.dangerPct, "danger-pct", -1, "danger percentile threshold")
	geojsonCmd.Flags().Float64Var(&geojsonThresholds.warningPct, "warning-pct", -1, "warning percentile threshold")
	geojsonCmd.Flags().StringVar(&geojsonStations, "stations", "", "optional stations CSV for marker overlay")
	geojsonCmd.Flags().StringVar(&geojsonOut, "out", "", "write GeoJSON to a file instead of stdout")
	rootCmd.AddCommand(geojsonCmd)
}
