package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDataset = []OfflineLocation{
	{Name: "Madurai", Lat: 9.9252, Lon: 78.1198, DistanceKm: 160},
	{Name: "Virudhunagar", Lat: 9.568, Lon: 77.9624, DistanceKm: 25},
}

func fakeNominatim(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		fmt.Fprint(w, body)
	}))
}

func fakeOSRM(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
}

func newTestResolver(nominatimURL, osrmURL string, online ReachabilityChecker) *LocationResolver {
	client := &http.Client{Timeout: 2 * time.Second}
	return &LocationResolver{
		Geocoder: &NominatimClient{BaseURL: nominatimURL, UserAgent: "test-agent", HTTPClient: client},
		Router:   &OSRMClient{BaseURL: osrmURL, HTTPClient: client},
		Online:   online,
		Dataset:  testDataset,
	}
}

func TestResolveOfflineDatasetHit(t *testing.T) {
	r := &LocationResolver{Online: alwaysOffline, Dataset: testDataset}

	loc, err := r.Resolve(context.Background(), "  madurai ")
	require.NoError(t, err)
	assert.Equal(t, 9.9252, loc.Lat)
	assert.Equal(t, 78.1198, loc.Lng)
	assert.Equal(t, 160.0, loc.DistanceKm)
}

func TestResolveOfflineUnknownPlace(t *testing.T) {
	r := &LocationResolver{Online: alwaysOffline, Dataset: testDataset}

	_, err := r.Resolve(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestResolveOnlineRoutedDistance(t *testing.T) {
	nominatim := fakeNominatim(t, `[{"lat":"9.9252","lon":"78.1198","address":{"state":"Tamil Nadu"}}]`)
	defer nominatim.Close()
	osrm := fakeOSRM(t, http.StatusOK, `{"code":"Ok","routes":[{"distance":160000}]}`)
	defer osrm.Close()

	r := newTestResolver(nominatim.URL, osrm.URL, alwaysOnline)

	loc, err := r.Resolve(context.Background(), "Madurai")
	require.NoError(t, err)
	assert.InDelta(t, 9.9252, loc.Lat, 0.0001)
	assert.InDelta(t, 160.0, loc.DistanceKm, 0.001)
}

func TestResolveOnlineNoGeocoderHits(t *testing.T) {
	nominatim := fakeNominatim(t, `[]`)
	defer nominatim.Close()
	osrm := fakeOSRM(t, http.StatusOK, `{"code":"Ok","routes":[{"distance":1000}]}`)
	defer osrm.Close()

	r := newTestResolver(nominatim.URL, osrm.URL, alwaysOnline)

	_, err := r.Resolve(context.Background(), "Xyzzyville")
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestResolveRejectsOtherState(t *testing.T) {
	nominatim := fakeNominatim(t, `[{"lat":"9.93","lon":"76.26","address":{"state":"Kerala"}}]`)
	defer nominatim.Close()
	osrm := fakeOSRM(t, http.StatusOK, `{"code":"Ok","routes":[{"distance":1000}]}`)
	defer osrm.Close()

	r := newTestResolver(nominatim.URL, osrm.URL, alwaysOnline)

	_, err := r.Resolve(context.Background(), "Kochi")
	assert.ErrorIs(t, err, ErrOutOfRegion)
}

func TestResolveRejectsOutsideBoundingBox(t *testing.T) {
	// State string claims Tamil Nadu but the coordinates are far north.
	nominatim := fakeNominatim(t, `[{"lat":"28.61","lon":"77.20","address":{"state":"Tamil Nadu"}}]`)
	defer nominatim.Close()
	osrm := fakeOSRM(t, http.StatusOK, `{"code":"Ok","routes":[{"distance":1000}]}`)
	defer osrm.Close()

	r := newTestResolver(nominatim.URL, osrm.URL, alwaysOnline)

	_, err := r.Resolve(context.Background(), "Somewhere")
	assert.ErrorIs(t, err, ErrOutOfRegion)
}

func TestResolveRoutingFailureFallsBackToHaversine(t *testing.T) {
	nominatim := fakeNominatim(t, `[{"lat":"9.9252","lon":"78.1198","address":{"state":"Tamil Nadu"}}]`)
	defer nominatim.Close()
	osrm := fakeOSRM(t, http.StatusInternalServerError, ``)
	defer osrm.Close()

	r := newTestResolver(nominatim.URL, osrm.URL, alwaysOnline)

	loc, err := r.Resolve(context.Background(), "Madurai")
	require.NoError(t, err)

	want := haversineKm(9.9252, 78.1198, RestaurantLat, RestaurantLng) * roadCircuityFactor
	assert.InDelta(t, want, loc.DistanceKm, 0.01)
}

func TestResolveGeocoderDownFallsBackToDataset(t *testing.T) {
	// A closed server simulates a geocoder that is unreachable even though
	// the probe reported online.
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	r := newTestResolver(dead.URL, dead.URL, alwaysOnline)

	loc, err := r.Resolve(context.Background(), "Virudhunagar")
	require.NoError(t, err)
	assert.Equal(t, 25.0, loc.DistanceKm)
}

func TestOSRMRejectsInvalidDistance(t *testing.T) {
	osrm := fakeOSRM(t, http.StatusOK, `{"code":"NoRoute","routes":[]}`)
	defer osrm.Close()

	client := &OSRMClient{BaseURL: osrm.URL, HTTPClient: &http.Client{Timeout: 2 * time.Second}}
	_, err := client.RouteDistanceKm(context.Background(), 9.9, 78.1, RestaurantLat, RestaurantLng)
	assert.Error(t, err)
}
