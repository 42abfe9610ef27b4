package geo

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/garda-insights/riskmap/internal/model"
)

// FeatureCollection renders zone assignments (and optional station
// markers) as a GeoJSON FeatureCollection of points for map display.
// Regions missing from the centroid table render at the country-centre
// fallback and are logged.
func FeatureCollection(assignments []model.ZoneAssignment, table *CentroidTable, stations []model.Station) ([]byte, error) {
	fc := geojson.FeatureCollection{}

	for _, z := range assignments {
		c, found := table.Lookup(z.Region)
		if !found {
			zap.L().Debug("region missing from centroid table", zap.String("region", z.Region))
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{c.Lon, c.Lat}),
			Properties: map[string]interface{}{
				"kind":            "region",
				"region":          z.Region,
				"tier":            string(z.Tier),
				"score":           z.Score,
				"percentile_rank": z.PercentileRank,
				"color":           z.Tier.Color(),
			},
		})
	}

	// Station markers inherit their region's tier colour when the
	// region was classified, default blue otherwise.
	tierByRegion := make(map[string]model.Tier, len(assignments))
	for _, z := range assignments {
		tierByRegion[z.Region] = z.Tier
	}
	for _, s := range stations {
		props := map[string]interface{}{
			"kind":    "station",
			"name":    s.Name,
			"address": s.Address,
			"region":  s.Region,
			"color":   "#4575b4",
		}
		if tier, ok := tierByRegion[s.Region]; ok {
			props["tier"] = string(tier)
			props["color"] = tier.Color()
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry:   geom.NewPointFlat(geom.XY, []float64{s.Lon, s.Lat}),
			Properties: props,
		})
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, eris.Wrap(err, "geo: encode feature collection")
	}
	return data, nil
}
