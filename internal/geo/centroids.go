// Package geo holds the presentation-side geography: region centroid
// tables, GeoJSON output for map rendering, and shapefile centroid
// derivation. Nothing here participates in scoring or zoning.
package geo

import (
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Centroid is a region's representative map coordinate.
type Centroid struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lon float64 `yaml:"lon" json:"lon"`
}

// Fallback map position when a region has no centroid entry: the
// geographic centre of Ireland.
var countryCentre = Centroid{Lat: 53.4129, Lon: -8.2439}

// CentroidTable maps region names to centroids. Lookup tries an exact
// match, then a case-insensitive substring match in either direction.
type CentroidTable struct {
	entries map[string]Centroid
}

// NewCentroidTable builds a table from a region -> centroid map.
func NewCentroidTable(entries map[string]Centroid) *CentroidTable {
	if entries == nil {
		entries = map[string]Centroid{}
	}
	return &CentroidTable{entries: entries}
}

// DefaultCentroids returns the reference centroid table for the Garda
// divisions. Coordinates are approximate division midpoints.
func DefaultCentroids() *CentroidTable {
	return NewCentroidTable(map[string]Centroid{
		"D.M.R. Eastern Garda Division":       {53.3498, -6.2300},
		"D.M.R. North Central Garda Division": {53.3600, -6.2600},
		"D.M.R. Northern Garda Division":      {53.3850, -6.2600},
		"D.M.R. South Central Garda Division": {53.3300, -6.2700},
		"D.M.R. Southern Garda Division":      {53.3150, -6.2600},
		"D.M.R. Western Garda Division":       {53.3450, -6.3100},
		"Cavan/Monaghan Garda Division":       {54.0000, -7.3000},
		"Kildare Garda Division":              {53.2200, -6.6600},
		"Kilkenny/Carlow Garda Division":      {52.7200, -6.8500},
		"Laois/Offaly Garda Division":         {53.0000, -7.4000},
		"Louth Garda Division":                {53.9000, -6.5000},
		"Meath Garda Division":                {53.6500, -6.7000},
		"Westmeath Garda Division":            {53.5000, -7.3500},
		"Wexford Garda Division":              {52.4500, -6.5000},
		"Wicklow Garda Division":              {52.9800, -6.4600},
		"Cork City Garda Division":            {51.8985, -8.4756},
		"Cork North Garda Division":           {52.0500, -8.7000},
		"Cork West Garda Division":            {51.6500, -9.2000},
		"Kerry Garda Division":                {52.1500, -9.7000},
		"Limerick Garda Division":             {52.6638, -8.6267},
		"Tipperary Garda Division":            {52.6000, -7.9000},
		"Waterford Garda Division":            {52.2593, -7.1101},
		"Galway Garda Division":               {53.2707, -9.0568},
		"Mayo Garda Division":                 {53.9000, -9.3500},
		"Roscommon/Longford Garda Division":   {53.7000, -7.9000},
		"Donegal Garda Division":              {54.8000, -8.0000},
		"Sligo/Leitrim Garda Division":        {54.2000, -8.5000},
	})
}

// LoadCentroids reads a centroid table from a YAML file of the form
// produced by SaveCentroids.
func LoadCentroids(path string) (*CentroidTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "geo: read centroids file")
	}
	var entries map[string]Centroid
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, eris.Wrap(err, "geo: parse centroids file")
	}
	if len(entries) == 0 {
		return nil, eris.New("geo: centroids file is empty")
	}
	return NewCentroidTable(entries), nil
}

// SaveCentroids writes the table to a YAML file with stable key order.
func (t *CentroidTable) SaveCentroids(path string) error {
	// yaml.v3 sorts map keys on encode, so the output is stable.
	data, err := yaml.Marshal(t.entries)
	if err != nil {
		return eris.Wrap(err, "geo: encode centroids")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrap(err, "geo: write centroids file")
	}
	return nil
}

// Lookup resolves a region name to a centroid. Unresolvable regions
// fall back to the country centre so every region still renders.
func (t *CentroidTable) Lookup(region string) (Centroid, bool) {
	if c, ok := t.entries[region]; ok {
		return c, true
	}

	lower := strings.ToLower(region)
	for name, c := range t.entries {
		nameLower := strings.ToLower(name)
		if strings.Contains(lower, nameLower) || strings.Contains(nameLower, lower) {
			return c, true
		}
	}

	return countryCentre, false
}

// Regions returns the table's region names, sorted.
func (t *CentroidTable) Regions() []string {
	out := make([]string, 0, len(t.entries))
	for name := range t.entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
