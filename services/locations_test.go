package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOfflineLocations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.json")
	payload := `[{"name":"Madurai","lat":9.9252,"lon":78.1198,"distance_km":160}]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	locations, err := LoadOfflineLocations(path)
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "Madurai", locations[0].Name)
	assert.Equal(t, 160.0, locations[0].DistanceKm)
}

func TestLoadOfflineLocationsMissingFile(t *testing.T) {
	_, err := LoadOfflineLocations(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestFindOfflineLocation(t *testing.T) {
	dataset := []OfflineLocation{
		{Name: "Madurai", DistanceKm: 160},
		{Name: "Sattur", DistanceKm: 20},
	}

	assert.NotNil(t, findOfflineLocation(dataset, "MADURAI"))
	assert.NotNil(t, findOfflineLocation(dataset, "  sattur  "))
	assert.Nil(t, findOfflineLocation(dataset, "Mad"))
	assert.Nil(t, findOfflineLocation(dataset, ""))
}
