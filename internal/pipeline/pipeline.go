// Package pipeline runs the scoring-and-zoning pipeline: normalized
// records in, a complete presentation view-model out. Every run is a
// pure function of (records, filter, thresholds, severity table); no
// derived state survives a run.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/garda-insights/riskmap/internal/config"
	"github.com/garda-insights/riskmap/internal/dataset"
	"github.com/garda-insights/riskmap/internal/model"
	"github.com/garda-insights/riskmap/internal/scoring"
	"github.com/garda-insights/riskmap/internal/severity"
	"github.com/garda-insights/riskmap/internal/summary"
	"github.com/garda-insights/riskmap/internal/zones"
)

// Options parameterises one pipeline run.
type Options struct {
	Filter   dataset.Filter
	Zones    zones.Config
	Severity config.SeverityConfig
	TopN     int
}

// ViewModel is the full output of one pipeline run, everything the
// presentation layer consumes.
type ViewModel struct {
	RunID       string                 `json:"run_id"`
	GeneratedAt time.Time              `json:"generated_at"`
	LoadStats   model.LoadStats        `json:"load_stats"`
	Scores      []model.RegionScore    `json:"scores"`
	Zones       []model.ZoneAssignment `json:"zones"`
	ZoneStats   summary.TierStats      `json:"zone_stats"`
	TopRegions  []model.RegionScore    `json:"top_regions"`
	TopOffences []model.OffenceCount   `json:"top_offences"`
	Matrix      model.TrendMatrix      `json:"matrix"`
	Distribution summary.Distribution  `json:"distribution"`
}

// Run executes the pipeline over already-normalized records.
// Configuration errors (invalid severity table, inverted percentiles)
// abort the run before any scoring; row-level problems were already
// handled at load time and arrive here as counts in loadStats.
func Run(ctx context.Context, records []model.Record, loadStats model.LoadStats, opts Options) (*ViewModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: context cancelled")
	}

	table, err := severity.New(opts.Severity)
	if err != nil {
		return nil, err
	}
	if err := opts.Zones.Validate(); err != nil {
		return nil, err
	}

	topN := opts.TopN
	if topN <= 0 {
		topN = 10
	}

	filtered := opts.Filter.Apply(records)
	scores := scoring.Score(filtered, table)

	assignments, err := zones.Classify(scores, opts.Zones)
	if err != nil {
		return nil, err
	}

	vm := &ViewModel{
		RunID:        uuid.NewString(),
		GeneratedAt:  time.Now().UTC(),
		LoadStats:    loadStats,
		Scores:       scores,
		Zones:        assignments,
		ZoneStats:    summary.ZoneStats(assignments),
		TopRegions:   summary.TopRegions(scores, topN),
		TopOffences:  summary.TopOffences(filtered, topN),
		Matrix:       scoring.ScoreMatrix(filtered, table),
		Distribution: summary.ScoreDistribution(scores),
	}

	zap.L().Info("pipeline run complete",
		zap.String("run_id", vm.RunID),
		zap.Int("rows", len(filtered)),
		zap.Int("regions", len(scores)),
		zap.Int("danger", vm.ZoneStats.Counts[model.TierDanger]),
		zap.Int("warning", vm.ZoneStats.Counts[model.TierWarning]),
		zap.Int("safe", vm.ZoneStats.Counts[model.TierSafe]),
	)

	return vm, nil
}
