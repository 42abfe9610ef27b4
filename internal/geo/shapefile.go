package geo

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ImportCentroids derives a centroid table from a region-boundary
// shapefile: one entry per named shape, the centroid taken as the mean
// of the shape's vertices. nameField is the attribute carrying the
// region name (e.g. "NAME" or "ENGLISH").
func ImportCentroids(shpPath, nameField string) (*CentroidTable, error) {
	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, eris.Wrap(err, "geo: open shapefile")
	}
	defer func() { _ = reader.Close() }()

	nameIdx := fieldIndex(reader, nameField)
	if nameIdx < 0 {
		return nil, eris.Errorf("geo: shapefile field %q not found", nameField)
	}

	entries := make(map[string]Centroid)
	for reader.Next() {
		_, shape := reader.Shape()
		name := strings.TrimSpace(strings.TrimRight(reader.Attribute(nameIdx), "\x00"))
		if name == "" {
			continue
		}

		centroid, ok := shapeCentroid(shape)
		if !ok {
			zap.L().Warn("unsupported shape type, skipping", zap.String("region", name))
			continue
		}
		entries[name] = centroid
	}
	if err := reader.Err(); err != nil {
		return nil, eris.Wrap(err, "geo: read shapefile")
	}
	if len(entries) == 0 {
		return nil, eris.New("geo: shapefile yielded no named shapes")
	}

	zap.L().Info("centroids derived from shapefile", zap.Int("regions", len(entries)))
	return NewCentroidTable(entries), nil
}

// shapeCentroid returns the vertex mean of a polygon or point shape.
func shapeCentroid(s shp.Shape) (Centroid, bool) {
	switch shape := s.(type) {
	case *shp.Point:
		return Centroid{Lat: shape.Y, Lon: shape.X}, true
	case *shp.Polygon:
		return pointsMean(shape.Points)
	case *shp.PolyLine:
		return pointsMean(shape.Points)
	default:
		return Centroid{}, false
	}
}

func pointsMean(points []shp.Point) (Centroid, bool) {
	if len(points) == 0 {
		return Centroid{}, false
	}
	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(points))
	return Centroid{Lat: sumY / n, Lon: sumX / n}, true
}

func fieldIndex(reader *shp.Reader, name string) int {
	for i, f := range reader.Fields() {
		if strings.EqualFold(strings.TrimRight(f.String(), "\x00"), name) {
			return i
		}
	}
	return -1
}
