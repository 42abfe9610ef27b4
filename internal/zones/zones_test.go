package zones

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garda-insights/riskmap/internal/model"
)

func regionScores(values ...int64) []model.RegionScore {
	out := make([]model.RegionScore, len(values))
	for i, v := range values {
		out[i] = model.RegionScore{Region: fmt.Sprintf("R%02d", i), Score: v}
	}
	return out
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid defaults", Config{80, 50}, false},
		{"inverted", Config{50, 80}, true},
		{"equal", Config{50, 50}, true},
		{"danger at 100", Config{100, 50}, true},
		{"warning at 0", Config{80, 0}, true},
		{"negative", Config{-10, -20}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPercentile_ClosestRanksInterpolation(t *testing.T) {
	// pos = p/100 * (n-1), linear interpolation between order statistics.
	values := []float64{10, 100}
	assert.InDelta(t, 55.0, percentile(values, 50), 1e-9)
	assert.InDelta(t, 82.0, percentile(values, 80), 1e-9)

	spread := []float64{0, 10, 20, 30, 40}
	assert.InDelta(t, 20.0, percentile(spread, 50), 1e-9)
	assert.InDelta(t, 32.0, percentile(spread, 80), 1e-9)
	assert.InDelta(t, 1.0, percentile(spread, 2.5), 1e-9)
}

func TestClassify_TwoPointDistribution(t *testing.T) {
	// Scores [100, 10] at 80/50: thresholds are 82 and 55, so the
	// higher region is DANGER and the lower sits below WARNING.
	scores := []model.RegionScore{
		{Region: "High", Score: 100},
		{Region: "Low", Score: 10},
	}

	out, err := Classify(scores, Config{DangerPercentile: 80, WarningPercentile: 50})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, model.TierDanger, out[0].Tier)
	assert.Equal(t, model.TierSafe, out[1].Tier)
	assert.InDelta(t, 50.0, out[0].PercentileRank, 1e-9)
	assert.InDelta(t, 0.0, out[1].PercentileRank, 1e-9)
}

func TestClassify_Partition(t *testing.T) {
	scores := regionScores(5, 17, 42, 42, 99, 100, 3, 61, 28, 77)

	out, err := Classify(scores, Config{DangerPercentile: 80, WarningPercentile: 50})
	require.NoError(t, err)
	require.Len(t, out, len(scores))

	// Every region appears exactly once, tier always set.
	seen := make(map[string]bool)
	for _, z := range out {
		assert.False(t, seen[z.Region], "region %s assigned twice", z.Region)
		seen[z.Region] = true
		assert.Contains(t, []model.Tier{model.TierSafe, model.TierWarning, model.TierDanger}, z.Tier)
	}
	assert.Len(t, seen, len(scores))
}

func TestClassify_DangerPercentileMonotonic(t *testing.T) {
	scores := regionScores(1, 5, 9, 14, 22, 37, 41, 58, 76, 90)

	count := func(out []model.ZoneAssignment, tier model.Tier) int {
		n := 0
		for _, z := range out {
			if z.Tier == tier {
				n++
			}
		}
		return n
	}

	prevDanger := len(scores) + 1
	prevSafe := -1
	for _, dangerPct := range []float64{60, 70, 80, 90, 95} {
		out, err := Classify(scores, Config{DangerPercentile: dangerPct, WarningPercentile: 50})
		require.NoError(t, err)

		danger := count(out, model.TierDanger)
		safe := count(out, model.TierSafe)
		assert.LessOrEqual(t, danger, prevDanger, "danger count grew at pct %g", dangerPct)
		assert.GreaterOrEqual(t, safe, prevSafe, "safe count shrank at pct %g", dangerPct)
		prevDanger = danger
		prevSafe = safe
	}
}

func TestClassify_AllTiedFallsBackToSafe(t *testing.T) {
	// All regions at the same score: no percentile spread, everyone SAFE.
	scores := regionScores(50, 50, 50, 50)

	out, err := Classify(scores, Config{DangerPercentile: 80, WarningPercentile: 50})
	require.NoError(t, err)
	require.Len(t, out, 4)
	for _, z := range out {
		assert.Equal(t, model.TierSafe, z.Tier)
		assert.Zero(t, z.PercentileRank)
	}
}

func TestClassify_SingleRegionFallsBackToSafe(t *testing.T) {
	out, err := Classify(regionScores(123), Config{DangerPercentile: 80, WarningPercentile: 50})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, model.TierSafe, out[0].Tier)
}

func TestClassify_EmptyInput(t *testing.T) {
	out, err := Classify(nil, Config{DangerPercentile: 80, WarningPercentile: 50})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestClassify_InvalidConfigRejected(t *testing.T) {
	_, err := Classify(regionScores(1, 2, 3), Config{DangerPercentile: 40, WarningPercentile: 60})
	assert.Error(t, err)
}

func TestClassify_Deterministic(t *testing.T) {
	scores := regionScores(12, 94, 7, 33, 61)
	cfg := Config{DangerPercentile: 75, WarningPercentile: 40}

	first, err := Classify(scores, cfg)
	require.NoError(t, err)
	second, err := Classify(scores, cfg)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
