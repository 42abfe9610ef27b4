package dataset

import (
	"context"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/garda-insights/riskmap/internal/model"
)

// LoadStations reads the optional station-location CSV. Rows without a
// parseable coordinate pair are dropped. Stations feed map marker
// overlays only; they never affect scoring.
func LoadStations(ctx context.Context, path string) ([]model.Station, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: open stations file")
	}
	defer f.Close()

	headerCh := make(chan []string, 1)
	rowCh, errCh := streamRows(ctx, f, csvOptions{Delimiter: ',', HeaderCh: headerCh})

	var rows [][]string
	for row := range rowCh {
		rows = append(rows, row)
	}
	if err := <-errCh; err != nil {
		return nil, err
	}

	var header []string
	select {
	case header = <-headerCh:
	default:
		return nil, eris.New("dataset: empty stations file")
	}

	colIdx := mapColumns(header)
	nameIdx := columnIndex(colIdx, "station_name", "name")
	latIdx := columnIndex(colIdx, "lat", "latitude")
	lonIdx := columnIndex(colIdx, "lon", "longitude")
	regionIdx := columnIndex(colIdx, "garda_region", "region")
	addrIdx := columnIndex(colIdx, "address")
	if nameIdx < 0 || latIdx < 0 || lonIdx < 0 || regionIdx < 0 {
		return nil, eris.New("dataset: stations file missing required column(s): station_name, lat, lon, garda_region")
	}

	var stations []model.Station
	dropped := 0
	for _, row := range rows {
		lat, latErr := strconv.ParseFloat(getCol(row, latIdx), 64)
		lon, lonErr := strconv.ParseFloat(getCol(row, lonIdx), 64)
		if latErr != nil || lonErr != nil {
			dropped++
			continue
		}
		stations = append(stations, model.Station{
			Name:    getCol(row, nameIdx),
			Address: getCol(row, addrIdx),
			Lat:     lat,
			Lon:     lon,
			Region:  getCol(row, regionIdx),
		})
	}

	if dropped > 0 {
		zap.L().Warn("stations without coordinates dropped", zap.Int("dropped", dropped))
	}

	return stations, nil
}
