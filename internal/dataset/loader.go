// Package dataset normalizes raw crime-incident tables (CSV, TSV, or
// XLSX) into canonical records, reporting accepted and skipped row
// counts.
package dataset

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/garda-insights/riskmap/internal/model"
)

// Loader validates and normalizes raw crime data. The zero value keeps
// every region; scope tokens restrict rows to the governed geography.
type Loader struct {
	scopeTokens []string
}

// NewLoader builds a Loader with the given geography scope tokens.
func NewLoader(scopeTokens []string) *Loader {
	return &Loader{scopeTokens: scopeTokens}
}

// columns holds the resolved indices of the required input columns.
type columns struct {
	quarter int
	region  int
	offence int
	value   int
}

// resolveColumns matches the header case-insensitively and order-
// independently against the known column-name variants. A missing
// required column is a load error naming the column; the pipeline never
// proceeds with guessed columns.
func resolveColumns(header []string) (columns, error) {
	if len(header) == 0 {
		return columns{}, eris.New("dataset: empty header row")
	}
	colIdx := mapColumns(header)

	cols := columns{
		quarter: columnIndex(colIdx, "quarter"),
		region:  columnIndex(colIdx, "garda region", "region"),
		offence: columnIndex(colIdx, "type of offence", "offence"),
		value:   columnIndex(colIdx, "value"),
	}

	var missing []string
	if cols.quarter < 0 {
		missing = append(missing, "Quarter")
	}
	if cols.region < 0 {
		missing = append(missing, "Garda Region")
	}
	if cols.offence < 0 {
		missing = append(missing, "Type of Offence")
	}
	if cols.value < 0 {
		missing = append(missing, "VALUE")
	}
	if len(missing) > 0 {
		return columns{}, eris.Errorf("dataset: missing required column(s): %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

// Load reads a dataset file, picking the parser by extension (.xlsx for
// workbooks, delimited text otherwise with the delimiter auto-detected
// from the header line).
func (l *Loader) Load(ctx context.Context, path string) ([]model.Record, model.LoadStats, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		header, rows, err := readXLSX(path)
		if err != nil {
			return nil, model.LoadStats{}, err
		}
		return l.normalize(header, rows)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, model.LoadStats{}, eris.Wrap(err, "dataset: open file")
	}
	defer f.Close()

	return l.LoadReader(ctx, f)
}

// LoadReader normalizes delimited text from r.
func (l *Loader) LoadReader(ctx context.Context, r io.Reader) ([]model.Record, model.LoadStats, error) {
	headerCh := make(chan []string, 1)
	rowCh, errCh := streamRows(ctx, r, csvOptions{HeaderCh: headerCh})

	var header []string
	var rows [][]string
	for row := range rowCh {
		if header == nil {
			select {
			case header = <-headerCh:
			default:
			}
		}
		rows = append(rows, row)
	}
	if err := <-errCh; err != nil {
		return nil, model.LoadStats{}, err
	}
	// Header arrives even when there are no data rows.
	select {
	case h := <-headerCh:
		header = h
	default:
	}
	if header == nil {
		return nil, model.LoadStats{}, eris.New("dataset: empty file")
	}

	return l.normalize(header, rows)
}

// normalize converts raw rows into canonical records. Rows with an
// unparsable quarter, a non-numeric or negative value, or a region
// outside the configured scope are dropped and counted, never zeroed.
func (l *Loader) normalize(header []string, rows [][]string) ([]model.Record, model.LoadStats, error) {
	cols, err := resolveColumns(header)
	if err != nil {
		return nil, model.LoadStats{}, err
	}

	var stats model.LoadStats
	records := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		region := getCol(row, cols.region)
		if !inScope(region, l.scopeTokens) {
			stats.SkippedRegion++
			continue
		}

		period, perr := model.ParsePeriod(getCol(row, cols.quarter))
		if perr != nil {
			stats.SkippedQuarter++
			continue
		}

		count, ok := parseCount(getCol(row, cols.value))
		if !ok {
			stats.SkippedValue++
			continue
		}

		records = append(records, model.Record{
			Region:  region,
			Period:  period,
			Offence: getCol(row, cols.offence),
			Count:   count,
		})
		stats.Accepted++
	}

	// Fixed ordering so every downstream aggregation is deterministic.
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Period != b.Period {
			return a.Period.Before(b.Period)
		}
		if a.Region != b.Region {
			return a.Region < b.Region
		}
		return a.Offence < b.Offence
	})

	zap.L().Info("dataset loaded",
		zap.Int("accepted", stats.Accepted),
		zap.Int("skipped_quarter", stats.SkippedQuarter),
		zap.Int("skipped_value", stats.SkippedValue),
		zap.Int("skipped_region", stats.SkippedRegion),
	)

	return records, stats, nil
}

// Quarters returns the sorted distinct periods present in records.
func Quarters(records []model.Record) []model.Period {
	seen := make(map[model.Period]bool)
	var out []model.Period
	for _, r := range records {
		if !seen[r.Period] {
			seen[r.Period] = true
			out = append(out, r.Period)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Regions returns the sorted distinct region names present in records.
func Regions(records []model.Record) []string {
	return distinctStrings(records, func(r model.Record) string { return r.Region })
}

// Offences returns the sorted distinct offence types present in records.
func Offences(records []model.Record) []string {
	return distinctStrings(records, func(r model.Record) string { return r.Offence })
}

func distinctStrings(records []model.Record, key func(model.Record) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
