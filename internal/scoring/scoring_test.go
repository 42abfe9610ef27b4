package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garda-insights/riskmap/internal/config"
	"github.com/garda-insights/riskmap/internal/model"
	"github.com/garda-insights/riskmap/internal/severity"
)

func testTable(t *testing.T) *severity.Table {
	t.Helper()
	table, err := severity.New(config.SeverityConfig{
		Rules: []config.SeverityRule{
			{Keyword: "murder", Weight: 5},
			{Keyword: "theft", Weight: 2},
		},
		DefaultWeight: 1,
	})
	require.NoError(t, err)
	return table
}

func q(year, quarter int) model.Period {
	return model.Period{Year: year, Quarter: quarter}
}

func TestScore_WeightedSum(t *testing.T) {
	// Weights {murder: 5, theft: 2}: 5*2 + 2*10 = 30.
	records := []model.Record{
		{Region: "RegionX", Period: q(2023, 1), Offence: "Murder (0111)", Count: 2},
		{Region: "RegionX", Period: q(2023, 1), Offence: "Theft", Count: 10},
	}

	scores := Score(records, testTable(t))
	require.Len(t, scores, 1)
	assert.Equal(t, "RegionX", scores[0].Region)
	assert.Equal(t, int64(30), scores[0].Score)
	assert.Equal(t, int64(12), scores[0].Incidents)
	assert.Equal(t, 2, scores[0].Records)
}

func TestScore_DoublingCountsDoublesScore(t *testing.T) {
	records := []model.Record{
		{Region: "A", Period: q(2023, 1), Offence: "Murder", Count: 3},
		{Region: "A", Period: q(2023, 2), Offence: "Theft", Count: 7},
	}
	doubled := make([]model.Record, len(records))
	for i, r := range records {
		r.Count *= 2
		doubled[i] = r
	}

	table := testTable(t)
	base := Score(records, table)
	twice := Score(doubled, table)
	require.Len(t, base, 1)
	require.Len(t, twice, 1)
	assert.Equal(t, base[0].Score*2, twice[0].Score)
}

func TestScore_Deterministic(t *testing.T) {
	records := []model.Record{
		{Region: "B", Period: q(2023, 1), Offence: "Theft", Count: 4},
		{Region: "A", Period: q(2023, 1), Offence: "Murder", Count: 1},
		{Region: "C", Period: q(2023, 1), Offence: "Other", Count: 9},
	}

	table := testTable(t)
	first := Score(records, table)
	second := Score(records, table)
	assert.Equal(t, first, second)
}

func TestScore_OrderingAndTies(t *testing.T) {
	records := []model.Record{
		{Region: "Beta", Period: q(2023, 1), Offence: "Theft", Count: 5},
		{Region: "Alpha", Period: q(2023, 1), Offence: "Theft", Count: 5},
		{Region: "Gamma", Period: q(2023, 1), Offence: "Murder", Count: 10},
	}

	scores := Score(records, testTable(t))
	require.Len(t, scores, 3)
	assert.Equal(t, "Gamma", scores[0].Region) // 50
	// Tie at 10: broken by region name ascending.
	assert.Equal(t, "Alpha", scores[1].Region)
	assert.Equal(t, "Beta", scores[2].Region)
}

func TestScore_NoRowsNoRegion(t *testing.T) {
	scores := Score(nil, testTable(t))
	assert.Empty(t, scores)
}

func TestScore_TopOffences(t *testing.T) {
	records := []model.Record{
		{Region: "A", Period: q(2023, 1), Offence: "Theft", Count: 10},
		{Region: "A", Period: q(2023, 2), Offence: "Theft", Count: 5},
		{Region: "A", Period: q(2023, 1), Offence: "Murder", Count: 1},
	}

	scores := Score(records, testTable(t))
	require.Len(t, scores, 1)
	require.Len(t, scores[0].TopOffences, 2)
	assert.Equal(t, model.OffenceCount{Offence: "Theft", Count: 15}, scores[0].TopOffences[0])
	assert.Equal(t, model.OffenceCount{Offence: "Murder", Count: 1}, scores[0].TopOffences[1])
}

func TestScoreMatrix_DenseRectangle(t *testing.T) {
	// Region B has no 2023Q2 rows: its cell must exist and hold zero.
	records := []model.Record{
		{Region: "A", Period: q(2023, 1), Offence: "Theft", Count: 1},
		{Region: "A", Period: q(2023, 2), Offence: "Theft", Count: 2},
		{Region: "B", Period: q(2023, 1), Offence: "Murder", Count: 1},
	}

	m := ScoreMatrix(records, testTable(t))
	assert.Equal(t, []string{"A", "B"}, m.Regions)
	require.Len(t, m.Periods, 2)
	require.Len(t, m.Cells, 2)
	require.Len(t, m.Cells[0], 2)

	assert.Equal(t, int64(2), m.Cell(0, 0)) // A 2023Q1: theft 1*2
	assert.Equal(t, int64(4), m.Cell(0, 1)) // A 2023Q2: theft 2*2
	assert.Equal(t, int64(5), m.Cell(1, 0)) // B 2023Q1: murder 1*5
	assert.Equal(t, int64(0), m.Cell(1, 1)) // missing combination -> 0
}
