package services

import (
	"encoding/json"
	"os"
	"strings"
)

// OfflineLocation is one row of the static place dataset used when the
// network probe fails. Distances are pre-computed road distances from the
// restaurant.
type OfflineLocation struct {
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	DistanceKm float64 `json:"distance_km"`
}

// LoadOfflineLocations reads the dataset once at startup.
func LoadOfflineLocations(path string) ([]OfflineLocation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var locations []OfflineLocation
	if err := json.Unmarshal(raw, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

func findOfflineLocation(dataset []OfflineLocation, name string) *OfflineLocation {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range dataset {
		if strings.ToLower(dataset[i].Name) == normalized {
			return &dataset[i]
		}
	}
	return nil
}
