// Package geocoding resolves delivery addresses through an OpenStreetMap
// Nominatim compatible search API.
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/ports"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "lastmile-delivery/1.0"
	DefaultTimeout   = 5 * time.Second
)

var _ ports.Geocoder = (*NominatimGeocoder)(nil)

type NominatimGeocoder struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// NewNominatimGeocoder builds a client for baseURL. Zero values fall back to
// the public Nominatim instance, a generic user agent and DefaultTimeout.
func NewNominatimGeocoder(baseURL, userAgent string, timeout time.Duration) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &NominatimGeocoder{
		client:    &http.Client{Timeout: timeout},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
	}
}

// Geocode returns the coordinates of the best match for address.
func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (kernel.Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return kernel.Coordinates{}, ports.ErrAddressNotFound
	}

	query := url.Values{}
	query.Set("format", "json")
	query.Set("q", address)
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return kernel.Coordinates{}, fmt.Errorf("%w: %v", ports.ErrGeocoderUnavailable, err)
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return kernel.Coordinates{}, err
		}
		return kernel.Coordinates{}, fmt.Errorf("%w: %v", ports.ErrGeocoderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return kernel.Coordinates{}, fmt.Errorf("%w: status %d", ports.ErrGeocoderUnavailable, resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return kernel.Coordinates{}, fmt.Errorf("%w: decode response: %v", ports.ErrGeocoderUnavailable, err)
	}
	if len(results) == 0 {
		return kernel.Coordinates{}, ports.ErrAddressNotFound
	}

	return parseCoordinates(results[0])
}

func parseCoordinates(r searchResult) (kernel.Coordinates, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return kernel.Coordinates{}, fmt.Errorf("%w: latitude %q", ports.ErrGeocodingFailed, r.Lat)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return kernel.Coordinates{}, fmt.Errorf("%w: longitude %q", ports.ErrGeocodingFailed, r.Lon)
	}
	coords, err := kernel.NewCoordinates(lat, lon)
	if err != nil {
		return kernel.Coordinates{}, fmt.Errorf("%w: %w", ports.ErrGeocodingFailed, err)
	}
	return coords, nil
}
