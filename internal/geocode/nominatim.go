package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const defaultTimeout = 5 * time.Second

// Nominatim is a Geocoder backed by a Nominatim-compatible search
// endpoint. Only the first match is used.
type Nominatim struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewNominatim creates a client for the given endpoint. timeout bounds a
// single lookup; zero selects a conservative default.
func NewNominatim(baseURL, userAgent string, timeout time.Duration) *Nominatim {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Nominatim{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// nominatimResult is the subset of the provider response we read.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode implements Geocoder.
func (n *Nominatim) Geocode(ctx context.Context, address string) (Point, bool, error) {
	query := url.Values{}
	query.Set("format", "json")
	query.Set("limit", "1")
	query.Set("q", address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return Point{}, false, errors.Wrap(err, "failed to build geocode request")
	}

	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return Point{}, false, errors.Wrap(err, "geocode request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Point{}, false, errors.Errorf("geocode provider returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Point{}, false, errors.Wrap(err, "failed to decode geocode response")
	}

	if len(results) == 0 {
		return Point{}, false, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Point{}, false, errors.Wrap(err, "invalid latitude in geocode response")
	}

	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Point{}, false, errors.Wrap(err, "invalid longitude in geocode response")
	}

	return Point{Lat: lat, Lon: lon}, true, nil
}
