// Package geo resolves addresses to coordinates and travel distances using
// the Google Maps Geocoding and Directions web services.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public Google Maps web service endpoint.
const DefaultBaseURL = "https://maps.googleapis.com"

// Coordinates is a WGS 84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Distance is the length of the first route leg between two addresses.
// Text is the provider's display value ("3.2 km"); Meters is its numeric form.
type Distance struct {
	Text   string `json:"text"`
	Meters int    `json:"meters"`
}

// Client calls the maps provider. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a Client. A zero timeout leaves requests bounded only by ctx.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Legs []struct {
			Distance struct {
				Text  string `json:"text"`
				Value int    `json:"value"`
			} `json:"distance"`
		} `json:"legs"`
	} `json:"routes"`
}

// Geocode resolves a free-text address to coordinates using the first result.
func (c *Client) Geocode(ctx context.Context, address string) (Coordinates, error) {
	params := url.Values{}
	params.Set("address", address)

	var resp geocodeResponse
	if err := c.get(ctx, "/maps/api/geocode/json", params, &resp); err != nil {
		return Coordinates{}, &Error{Op: "geocode", Kind: ErrUnknown, Err: err}
	}

	if resp.Status != "OK" {
		slog.Debug("geocode rejected", "status", resp.Status, "error_message", resp.ErrorMessage)
		return Coordinates{}, providerError("geocode", resp.Status, resp.ErrorMessage, ErrAddressNotFound)
	}
	if len(resp.Results) == 0 {
		return Coordinates{}, &Error{Op: "geocode", Status: resp.Status, Kind: ErrAddressNotFound}
	}

	loc := resp.Results[0].Geometry.Location
	return Coordinates{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}

// Distance returns the travel distance of the first leg of the first route
// from origin to destination.
func (c *Client) Distance(ctx context.Context, origin, destination string) (Distance, error) {
	params := url.Values{}
	params.Set("origin", origin)
	params.Set("destination", destination)

	var resp directionsResponse
	if err := c.get(ctx, "/maps/api/directions/json", params, &resp); err != nil {
		return Distance{}, &Error{Op: "directions", Kind: ErrUnknown, Err: err}
	}

	if resp.Status != "OK" {
		slog.Debug("directions rejected", "status", resp.Status, "error_message", resp.ErrorMessage)
		return Distance{}, providerError("directions", resp.Status, resp.ErrorMessage, ErrRouteNotFound)
	}
	if len(resp.Routes) == 0 || len(resp.Routes[0].Legs) == 0 {
		return Distance{}, &Error{Op: "directions", Status: resp.Status, Kind: ErrRouteNotFound}
	}

	leg := resp.Routes[0].Legs[0]
	return Distance{Text: leg.Distance.Text, Meters: leg.Distance.Value}, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected http status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
