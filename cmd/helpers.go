package main

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/garda-insights/riskmap/internal/dataset"
	"github.com/garda-insights/riskmap/internal/model"
	"github.com/garda-insights/riskmap/internal/pipeline"
	"github.com/garda-insights/riskmap/internal/zones"
)

// filterFlags holds the shared --quarters/--regions/--offences values.
type filterFlags struct {
	quarters []string
	regions  []string
	offences []string
}

func (f *filterFlags) build() (dataset.Filter, error) {
	var filter dataset.Filter
	for _, label := range f.quarters {
		p, err := model.ParsePeriod(strings.TrimSpace(label))
		if err != nil {
			return filter, eris.Wrapf(err, "invalid --quarters value %q", label)
		}
		filter.Quarters = append(filter.Quarters, p)
	}
	filter.Regions = f.regions
	filter.Offences = f.offences
	return filter, nil
}

// thresholdFlags holds the shared --danger-pct/--warning-pct/--top-n
// values; negative means "use the configured default".
type thresholdFlags struct {
	dangerPct  float64
	warningPct float64
	topN       int
}

func (t *thresholdFlags) options(filter dataset.Filter) pipeline.Options {
	opts := pipeline.Options{
		Filter:   filter,
		Severity: cfg.Severity,
		Zones: zones.Config{
			DangerPercentile:  cfg.Zones.DangerPercentile,
			WarningPercentile: cfg.Zones.WarningPercentile,
		},
		TopN: cfg.Summary.TopN,
	}
	if t.dangerPct >= 0 {
		opts.Zones.DangerPercentile = t.dangerPct
	}
	if t.warningPct >= 0 {
		opts.Zones.WarningPercentile = t.warningPct
	}
	if t.topN > 0 {
		opts.TopN = t.topN
	}
	return opts
}

// runFromFile loads a dataset file and runs the pipeline over it.
func runFromFile(ctx context.Context, path string, filter filterFlags, thresholds thresholdFlags) (*pipeline.ViewModel, error) {
	f, err := filter.build()
	if err != nil {
		return nil, err
	}

	loader := dataset.NewLoader(cfg.Scope.RegionTokens)
	records, stats, err := loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	return pipeline.Run(ctx, records, stats, thresholds.options(f))
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "encode output")
	}
	return nil
}
