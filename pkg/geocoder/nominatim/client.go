// Package nominatim provides a geocoder.Client implementation backed by the
// public OSM Nominatim API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"jobboard/pkg/geocoder"
	"jobboard/pkg/serrors"
)

// Client talks to the Nominatim search API and fulfills the geocoder.Client
// interface. It is safe for concurrent use.
//
// Nominatim's usage policy requires a descriptive User-Agent and low request
// volume; callers are expected to cache results.
type Client struct {
	httpClient *http.Client // httpClient performs HTTP requests to Nominatim
	baseURL    string       // baseURL is the Nominatim endpoint, e.g. https://nominatim.openstreetmap.org
	userAgent  string       // userAgent identifies this service per the Nominatim policy
}

// GeocodeCityState resolves "City, State, USA" into coordinates. It returns
// nil when Nominatim has no match for the query.
func (c *Client) GeocodeCityState(ctx context.Context, city, state string) (*geocoder.Point, error) {
	city, state = geocoder.NormalizeCityState(city, state)
	if city == "" || state == "" {
		return nil, nil
	}

	// https://nominatim.org/release-docs/latest/api/Search/
	params := url.Values{}
	params.Set("q", fmt.Sprintf("%s, %s, USA", city, state))
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx,
		http.MethodGet,
		strings.TrimSuffix(c.baseURL, "/")+"/search?"+params.Encode(),
		nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, serrors.With(serrors.ErrRateLimited, "rate limited: %s", strings.TrimSpace(string(b)))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("geocode failed: %s", strings.TrimSpace(string(b)))
	}

	// successful
	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.Unmarshal(b, &results); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("could not parse lat: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("could not parse lon: %w", err)
	}

	return &geocoder.Point{Lat: lat, Lng: lng}, nil
}

// Ensure Client conforms to the geocoder.Client interface at compile time.
var _ geocoder.Client = (*Client)(nil)

// New constructs a Client that uses the provided http.Client, endpoint and
// User-Agent to interact with the Nominatim API.
func New(httpClient *http.Client, baseURL, userAgent string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
	}
}
