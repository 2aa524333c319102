package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spokefoods/spoke-backend/config"
	"github.com/spokefoods/spoke-backend/utils"
)

// The restaurant sits in Sivakasi, Tamil Nadu. All distances are measured
// from here.
const (
	RestaurantLat = 9.4650
	RestaurantLng = 77.7978
)

// Tamil Nadu bounding box. Geocoder hits outside it are rejected even when
// the query was region-suffixed.
const (
	regionState = "Tamil Nadu"
	regionMinLat = 8.0
	regionMaxLat = 13.5
	regionMinLng = 76.0
	regionMaxLng = 80.5
)

// roadCircuityFactor converts a great-circle distance into an estimated road
// distance when the routing service is unavailable.
const roadCircuityFactor = 1.4

// ResolvedLocation is a place name resolved to coordinates and a routable
// distance from the restaurant.
type ResolvedLocation struct {
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	DistanceKm float64 `json:"distance_km"`
}

// LocationResolver resolves delivery place names with a three-tier fallback:
// road routing, then haversine with a circuity factor, then a static offline
// dataset when the network is unreachable. Network trouble never hard-fails
// a resolve that a lower tier can answer.
type LocationResolver struct {
	Geocoder *NominatimClient
	Router   *OSRMClient
	Online   ReachabilityChecker
	Dataset  []OfflineLocation
}

// NewLocationResolver wires the default clients. Endpoints are overridable
// through the environment for tests and self-hosted instances.
func NewLocationResolver(online ReachabilityChecker, dataset []OfflineLocation) *LocationResolver {
	httpClient := &http.Client{Timeout: 5 * time.Second}
	return &LocationResolver{
		Geocoder: &NominatimClient{
			BaseURL:    config.Get("NOMINATIM_URL", "https://nominatim.openstreetmap.org/search"),
			UserAgent:  "SpokeRestaurant/1.0 (support@spoke.com)",
			HTTPClient: httpClient,
		},
		Router: &OSRMClient{
			BaseURL:    config.Get("OSRM_URL", "http://router.project-osrm.org"),
			HTTPClient: httpClient,
		},
		Online:  online,
		Dataset: dataset,
	}
}

// Resolve turns a city/village name into coordinates plus a delivery distance.
// Fails with ErrLocationNotFound or ErrOutOfRegion; upstream routing errors
// degrade to the haversine estimate instead of failing.
func (r *LocationResolver) Resolve(ctx context.Context, place string) (*ResolvedLocation, error) {
	if !r.Online() {
		return r.resolveOffline(place)
	}

	query := fmt.Sprintf("%s, %s, India", place, regionState)
	hit, err := r.Geocoder.Search(ctx, query)
	if err != nil {
		// Geocoder unreachable despite a positive probe; the offline
		// dataset is the last tier.
		utils.ErrorLogger.Printf("geocoding failed for %q: %v", place, err)
		return r.resolveOffline(place)
	}
	if hit == nil {
		return nil, fmt.Errorf("%w: no match for %q in %s", ErrLocationNotFound, place, regionState)
	}

	if hit.Lat < regionMinLat || hit.Lat > regionMaxLat || hit.Lng < regionMinLng || hit.Lng > regionMaxLng {
		return nil, fmt.Errorf("%w: %q resolved outside %s", ErrOutOfRegion, place, regionState)
	}
	if hit.State != regionState {
		return nil, fmt.Errorf("%w: %q resolved to state %q", ErrOutOfRegion, place, hit.State)
	}

	distanceKm, err := r.Router.RouteDistanceKm(ctx, hit.Lat, hit.Lng, RestaurantLat, RestaurantLng)
	if err != nil {
		distanceKm = haversineKm(hit.Lat, hit.Lng, RestaurantLat, RestaurantLng) * roadCircuityFactor
		utils.InfoLogger.Printf("routing unavailable for %q, using haversine estimate %.2f km: %v", place, distanceKm, err)
	}

	return &ResolvedLocation{Lat: hit.Lat, Lng: hit.Lng, DistanceKm: distanceKm}, nil
}

func (r *LocationResolver) resolveOffline(place string) (*ResolvedLocation, error) {
	loc := findOfflineLocation(r.Dataset, place)
	if loc == nil {
		return nil, fmt.Errorf("%w: %q not in local dataset", ErrLocationNotFound, place)
	}
	return &ResolvedLocation{Lat: loc.Lat, Lng: loc.Lon, DistanceKm: loc.DistanceKm}, nil
}
