package model

// OffenceCount pairs an offence type with its aggregate incident count.
type OffenceCount struct {
	Offence string `json:"offence"`
	Count   int    `json:"count"`
}

// RegionScore is the aggregate risk score for one region over the
// filtered view. Score is an exact integer sum of weight*count
// contributions, so identical inputs always produce identical scores.
type RegionScore struct {
	Region      string         `json:"region"`
	Score       int64          `json:"score"`
	Records     int            `json:"records"`
	Incidents   int64          `json:"incidents"`
	TopOffences []OffenceCount `json:"top_offences,omitempty"`
}

// Tier is the percentile-derived risk classification of a region
// relative to its peers in the current filtered view.
type Tier string

// Tiers, ordered from least to most severe.
const (
	TierSafe    Tier = "SAFE"
	TierWarning Tier = "WARNING"
	TierDanger  Tier = "DANGER"
)

// Color returns the display colour associated with the tier.
func (t Tier) Color() string {
	switch t {
	case TierDanger:
		return "#d73027"
	case TierWarning:
		return "#fee08b"
	default:
		return "#1a9850"
	}
}

// ZoneAssignment places one region in exactly one tier. PercentileRank
// is the share of regions with a strictly lower score, in [0, 100].
type ZoneAssignment struct {
	Region         string  `json:"region"`
	Tier           Tier    `json:"tier"`
	Score          int64   `json:"score"`
	PercentileRank float64 `json:"percentile_rank"`
}

// TrendMatrix is a dense region-by-period score grid. Every (region,
// period) combination present in the filtered view has a cell; absent
// combinations hold zero so charting code can assume a full rectangle.
type TrendMatrix struct {
	Regions []string  `json:"regions"`
	Periods []Period  `json:"periods"`
	Cells   [][]int64 `json:"cells"`
}

// Cell returns the score at (region row i, period column j).
func (m *TrendMatrix) Cell(i, j int) int64 {
	return m.Cells[i][j]
}
