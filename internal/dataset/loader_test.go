package dataset

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garda-insights/riskmap/internal/model"
)

const sampleCSV = `Statistic Label,Quarter,Garda Region,Type of Offence,UNIT,VALUE
Recorded crime,2023Q1,D.M.R. Northern Garda Division,Theft from person (0721),Number,12
Recorded crime,2023Q1,Kerry Garda Division,Burglary (0712),Number,4
Recorded crime,2023Q2,D.M.R. Northern Garda Division,Murder (0111),Number,1
`

func loadString(t *testing.T, data string, tokens []string) ([]model.Record, model.LoadStats) {
	t.Helper()
	records, stats, err := NewLoader(tokens).LoadReader(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	return records, stats
}

func TestLoadReader_CSV(t *testing.T) {
	records, stats := loadString(t, sampleCSV, nil)

	assert.Equal(t, 3, stats.Accepted)
	assert.Equal(t, 0, stats.Skipped())
	require.Len(t, records, 3)

	// Records are sorted by (period, region, offence).
	assert.Equal(t, "D.M.R. Northern Garda Division", records[0].Region)
	assert.Equal(t, model.Period{Year: 2023, Quarter: 1}, records[0].Period)
	assert.Equal(t, 12, records[0].Count)
	assert.Equal(t, model.Period{Year: 2023, Quarter: 2}, records[2].Period)
}

func TestLoadReader_TSVWithBOM(t *testing.T) {
	tsv := "\uFEFFStatistic Label\tQuarter\tGarda Region\tType of Offence\tUNIT\tVALUE\n" +
		"Recorded crime\t2023Q1\tGalway Garda Division\tFraud (0811)\tNumber\t9\n"

	records, stats := loadString(t, tsv, nil)
	assert.Equal(t, 1, stats.Accepted)
	require.Len(t, records, 1)
	assert.Equal(t, "Galway Garda Division", records[0].Region)
	assert.Equal(t, 9, records[0].Count)
}

func TestLoadReader_HeaderCaseAndOrderInsensitive(t *testing.T) {
	csv := "value,type of offence,GARDA REGION,quarter\n" +
		"3,Theft,Louth Garda Division,2022Q4\n"

	records, stats := loadString(t, csv, nil)
	assert.Equal(t, 1, stats.Accepted)
	require.Len(t, records, 1)
	assert.Equal(t, "Louth Garda Division", records[0].Region)
	assert.Equal(t, "Theft", records[0].Offence)
	assert.Equal(t, 3, records[0].Count)
}

func TestLoadReader_MissingColumnFatal(t *testing.T) {
	csv := "Statistic Label,Quarter,Type of Offence,UNIT,VALUE\nx,2023Q1,Theft,Number,1\n"

	_, _, err := NewLoader(nil).LoadReader(context.Background(), strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Garda Region")
}

func TestLoadReader_EmptyFileFatal(t *testing.T) {
	_, _, err := NewLoader(nil).LoadReader(context.Background(), strings.NewReader(""))
	assert.Error(t, err)
}

func TestLoadReader_BadQuarterSkipped(t *testing.T) {
	// Scenario D: "2023Q1" retained, "2023-Q1" dropped.
	csv := "Quarter,Garda Region,Type of Offence,VALUE\n" +
		"2023Q1,Meath Garda Division,Theft,5\n" +
		"2023-Q1,Meath Garda Division,Theft,5\n"

	records, stats := loadString(t, csv, nil)
	assert.Equal(t, 1, stats.Accepted)
	assert.Equal(t, 1, stats.SkippedQuarter)
	require.Len(t, records, 1)
	assert.Equal(t, "2023Q1", records[0].Period.String())
}

func TestLoadReader_NegativeValueSkipped(t *testing.T) {
	// Scenario C: VALUE = -5 is skipped and counted, contributing nothing.
	csv := "Quarter,Garda Region,Type of Offence,VALUE\n" +
		"2023Q1,Meath Garda Division,Theft,-5\n" +
		"2023Q1,Meath Garda Division,Theft,two\n"

	records, stats := loadString(t, csv, nil)
	assert.Equal(t, 0, stats.Accepted)
	assert.Equal(t, 2, stats.SkippedValue)
	assert.Empty(t, records)
}

func TestLoadReader_ScopeFilter(t *testing.T) {
	records, stats := loadString(t, sampleCSV, []string{"D.M.R."})

	assert.Equal(t, 2, stats.Accepted)
	assert.Equal(t, 1, stats.SkippedRegion)
	for _, r := range records {
		assert.Contains(t, r.Region, "D.M.R.")
	}
}

func TestEnumerations(t *testing.T) {
	records, _ := loadString(t, sampleCSV, nil)

	quarters := Quarters(records)
	require.Len(t, quarters, 2)
	assert.Equal(t, "2023Q1", quarters[0].String())
	assert.Equal(t, "2023Q2", quarters[1].String())

	assert.Equal(t, []string{"D.M.R. Northern Garda Division", "Kerry Garda Division"}, Regions(records))
	assert.Equal(t, []string{"Burglary (0712)", "Murder (0111)", "Theft from person (0721)"}, Offences(records))
}

func TestFilter_Apply(t *testing.T) {
	records, _ := loadString(t, sampleCSV, nil)

	t.Run("zero filter keeps all", func(t *testing.T) {
		assert.Len(t, Filter{}.Apply(records), 3)
	})

	t.Run("by quarter", func(t *testing.T) {
		f := Filter{Quarters: []model.Period{{Year: 2023, Quarter: 1}}}
		assert.Len(t, f.Apply(records), 2)
	})

	t.Run("by region and offence", func(t *testing.T) {
		f := Filter{
			Regions:  []string{"D.M.R. Northern Garda Division"},
			Offences: []string{"Murder (0111)"},
		}
		out := f.Apply(records)
		require.Len(t, out, 1)
		assert.Equal(t, "Murder (0111)", out[0].Offence)
	})
}
