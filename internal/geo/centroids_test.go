package geo

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentroidTable_Lookup(t *testing.T) {
	table := NewCentroidTable(map[string]Centroid{
		"Galway Garda Division": {53.2707, -9.0568},
		"Louth Garda Division":  {53.9000, -6.5000},
	})

	c, ok := table.Lookup("Galway Garda Division")
	assert.True(t, ok)
	assert.InDelta(t, 53.2707, c.Lat, 1e-9)

	// Substring match in either direction, case-insensitive.
	c, ok = table.Lookup("galway")
	assert.True(t, ok)
	assert.InDelta(t, -9.0568, c.Lon, 1e-9)

	c, ok = table.Lookup("Louth Garda Division (north)")
	assert.True(t, ok)
	assert.InDelta(t, 53.9000, c.Lat, 1e-9)
}

func TestCentroidTable_LookupFallback(t *testing.T) {
	table := NewCentroidTable(map[string]Centroid{
		"Kerry Garda Division": {52.15, -9.7},
	})

	c, ok := table.Lookup("Atlantis Division")
	assert.False(t, ok)
	assert.Equal(t, countryCentre, c)
}

func TestDefaultCentroids(t *testing.T) {
	table := DefaultCentroids()
	assert.Len(t, table.Regions(), 27)

	c, ok := table.Lookup("Cork City Garda Division")
	assert.True(t, ok)
	assert.InDelta(t, 51.8985, c.Lat, 1e-4)
}

func TestSaveAndLoadCentroids(t *testing.T) {
	path := filepath.Join(t.TempDir(), "centroids.yaml")

	orig := NewCentroidTable(map[string]Centroid{
		"Mayo Garda Division":  {53.9, -9.35},
		"Sligo/Leitrim Garda Division": {54.2, -8.5},
	})
	require.NoError(t, orig.SaveCentroids(path))

	loaded, err := LoadCentroids(path)
	require.NoError(t, err)
	assert.Equal(t, orig.Regions(), loaded.Regions())

	c, ok := loaded.Lookup("Mayo Garda Division")
	assert.True(t, ok)
	assert.InDelta(t, 53.9, c.Lat, 1e-9)
	assert.InDelta(t, -9.35, c.Lon, 1e-9)
}

func TestLoadCentroids_Missing(t *testing.T) {
	_, err := LoadCentroids(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
