package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
)

// haversineKm returns the great-circle distance between two points in km.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371

	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// GeocodeResult is one Nominatim hit, reduced to what checkout needs.
type GeocodeResult struct {
	Lat   float64
	Lng   float64
	State string
}

// NominatimClient geocodes place names, constrained to the service region by
// the query suffix the caller passes.
type NominatimClient struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

type nominatimHit struct {
	Lat     string `json:"lat"`
	Lon     string `json:"lon"`
	Address struct {
		State string `json:"state"`
	} `json:"address"`
}

// Search geocodes a free-text query. A nil result with nil error means the
// geocoder returned zero hits.
func (n *NominatimClient) Search(ctx context.Context, query string) (*GeocodeResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", n.UserAgent)

	resp, err := n.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var hits []nominatimHit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(hits[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim returned invalid latitude %q", hits[0].Lat)
	}
	lng, err := strconv.ParseFloat(hits[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim returned invalid longitude %q", hits[0].Lon)
	}

	return &GeocodeResult{Lat: lat, Lng: lng, State: hits[0].Address.State}, nil
}

// OSRMClient asks a routing server for road distances.
type OSRMClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
	} `json:"routes"`
}

// RouteDistanceKm returns the driving distance between two coordinates.
// A non-"Ok" code or a non-positive distance is an error so the caller can
// fall back to haversine.
func (o *OSRMClient) RouteDistanceKm(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (float64, error) {
	coords := fmt.Sprintf("%f,%f;%f,%f", fromLng, fromLat, toLng, toLat)
	reqURL := fmt.Sprintf("%s/route/v1/driving/%s?overview=false", o.BaseURL, coords)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, err
	}

	resp, err := o.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("osrm returned status %d", resp.StatusCode)
	}

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}
	if body.Code != "Ok" || len(body.Routes) == 0 || body.Routes[0].Distance <= 0 {
		return 0, fmt.Errorf("osrm returned invalid distance: code=%s", body.Code)
	}

	return body.Routes[0].Distance / 1000, nil
}
