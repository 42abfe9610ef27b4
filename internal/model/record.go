// Package model defines the canonical data shapes shared across the
// ingestion, scoring, and classification packages.
package model

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/rotisserie/eris"
)

// periodPattern matches quarter labels of the form "2023Q1". Anything
// looser ("23Q1", "2023-Q1", "2023Q5") is rejected.
var periodPattern = regexp.MustCompile(`^(\d{4})Q([1-4])$`)

// Period identifies a calendar quarter. Periods order lexicographically
// by (Year, Quarter).
type Period struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"`
}

// ParsePeriod parses a "YYYYQn" quarter label.
func ParsePeriod(s string) (Period, error) {
	m := periodPattern.FindStringSubmatch(s)
	if m == nil {
		return Period{}, eris.Errorf("model: invalid quarter label %q", s)
	}
	year, _ := strconv.Atoi(m[1])
	quarter, _ := strconv.Atoi(m[2])
	return Period{Year: year, Quarter: quarter}, nil
}

// String formats the period back to its "YYYYQn" label.
func (p Period) String() string {
	return fmt.Sprintf("%04dQ%d", p.Year, p.Quarter)
}

// Before reports whether p sorts before q.
func (p Period) Before(q Period) bool {
	if p.Year != q.Year {
		return p.Year < q.Year
	}
	return p.Quarter < q.Quarter
}

// IsZero reports whether the period is unset.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Quarter == 0
}

// MarshalText lets periods serve as JSON object keys and query values.
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a "YYYYQn" label.
func (p *Period) UnmarshalText(text []byte) error {
	parsed, err := ParsePeriod(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Record is one normalized crime observation: incident count for an
// offence type in a region during a quarter.
type Record struct {
	Region  string `json:"region"`
	Period  Period `json:"period"`
	Offence string `json:"offence"`
	Count   int    `json:"count"`
}

// LoadStats reports how the normalizer disposed of each input row.
// Skipped rows never contribute to scores; they are dropped and counted,
// never defaulted to zero.
type LoadStats struct {
	Accepted       int `json:"accepted"`
	SkippedQuarter int `json:"skipped_quarter"`
	SkippedValue   int `json:"skipped_value"`
	SkippedRegion  int `json:"skipped_region"`
}

// Skipped returns the total number of dropped rows.
func (s LoadStats) Skipped() int {
	return s.SkippedQuarter + s.SkippedValue + s.SkippedRegion
}

// Station is one row of the optional station-location dataset. It feeds
// map marker overlays only and never participates in scoring.
type Station struct {
	Name    string  `json:"name"`
	Address string  `json:"address,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Region  string  `json:"region"`
}
