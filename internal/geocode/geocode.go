// Package geocode talks to the external mapping collaborators: a primary
// geocoding provider, OpenStreetMap Nominatim as a reverse-geocoding
// fallback, and the provider's distance matrix. Every call is best-effort;
// a provider outage must never block a check-in or a field-service
// submission.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/watrakon/Sgdatapos/internal/config"
	"github.com/watrakon/Sgdatapos/internal/models"
)

// requestTimeout mirrors the client-side geolocation timeout.
const requestTimeout = 10 * time.Second

// Resolver resolves coordinates to a human-readable address and measures
// trip distances. Implemented by Client; faked in tests.
type Resolver interface {
	ReverseGeocode(ctx context.Context, coords models.Coords) string
	Distance(ctx context.Context, origin, dest models.Coords) *float64
}

// Client is the production Resolver.
type Client struct {
	apiURL       string
	apiKey       string
	nominatimURL string
	httpClient   *http.Client
}

func NewClient(cfg config.GeocodeConfig) *Client {
	return &Client{
		apiURL:       cfg.APIURL,
		apiKey:       cfg.APIKey,
		nominatimURL: strings.TrimRight(cfg.NominatimURL, "/"),
		httpClient:   &http.Client{Timeout: requestTimeout},
	}
}

// ReverseGeocode resolves coordinates to an address string. Chain: primary
// provider, then Nominatim, then the raw coordinates. Never fails.
func (c *Client) ReverseGeocode(ctx context.Context, coords models.Coords) string {
	if name := c.providerGeocode(ctx, coords); name != "" {
		return name
	}
	if name := c.nominatimGeocode(ctx, coords); name != "" {
		return name
	}
	return fmt.Sprintf("%.6f, %.6f", coords.Latitude, coords.Longitude)
}

// Distance asks the provider's distance matrix for the driving distance in
// kilometers. Returns nil on any failure (quota, billing, network); the
// caller records the trip without a distance.
func (c *Client) Distance(ctx context.Context, origin, dest models.Coords) *float64 {
	if c.apiURL == "" || c.apiKey == "" {
		return nil
	}

	endpoint := fmt.Sprintf("%s/distancematrix/json?origins=%f,%f&destinations=%f,%f&key=%s",
		strings.TrimRight(c.apiURL, "/"),
		origin.Latitude, origin.Longitude, dest.Latitude, dest.Longitude,
		url.QueryEscape(c.apiKey))

	var payload struct {
		Status string `json:"status"`
		Rows   []struct {
			Elements []struct {
				Status   string `json:"status"`
				Distance struct {
					Value float64 `json:"value"` // meters
				} `json:"distance"`
			} `json:"elements"`
		} `json:"rows"`
	}
	if err := c.getJSON(ctx, endpoint, nil, &payload); err != nil {
		log.Printf("[Geocode] Distance matrix unavailable: %v", err)
		return nil
	}
	if payload.Status != "OK" || len(payload.Rows) == 0 || len(payload.Rows[0].Elements) == 0 {
		return nil
	}
	element := payload.Rows[0].Elements[0]
	if element.Status != "OK" {
		return nil
	}
	km := element.Distance.Value / 1000
	return &km
}

func (c *Client) providerGeocode(ctx context.Context, coords models.Coords) string {
	if c.apiURL == "" || c.apiKey == "" {
		return ""
	}

	endpoint := fmt.Sprintf("%s/geocode/json?latlng=%f,%f&key=%s",
		strings.TrimRight(c.apiURL, "/"),
		coords.Latitude, coords.Longitude, url.QueryEscape(c.apiKey))

	var payload struct {
		Status  string `json:"status"`
		Results []struct {
			FormattedAddress string `json:"formatted_address"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, endpoint, nil, &payload); err != nil {
		log.Printf("[Geocode] Primary provider failed: %v", err)
		return ""
	}
	// REQUEST_DENIED / OVER_QUERY_LIMIT fall through to the fallback.
	if payload.Status != "OK" || len(payload.Results) == 0 {
		return ""
	}
	return payload.Results[0].FormattedAddress
}

func (c *Client) nominatimGeocode(ctx context.Context, coords models.Coords) string {
	endpoint := fmt.Sprintf("%s/reverse?format=jsonv2&lat=%f&lon=%f",
		c.nominatimURL, coords.Latitude, coords.Longitude)

	var payload struct {
		DisplayName string `json:"display_name"`
		Address     struct {
			Road          string `json:"road"`
			Suburb        string `json:"suburb"`
			Neighbourhood string `json:"neighbourhood"`
			City          string `json:"city"`
			Town          string `json:"town"`
			Province      string `json:"province"`
		} `json:"address"`
	}
	headers := map[string]string{"Accept-Language": "th,en"}
	if err := c.getJSON(ctx, endpoint, headers, &payload); err != nil {
		log.Printf("[Geocode] Nominatim fallback failed: %v", err)
		return ""
	}

	addr := payload.Address
	var parts []string
	if addr.Road != "" {
		parts = append(parts, addr.Road)
	}
	if addr.Suburb != "" {
		parts = append(parts, addr.Suburb)
	} else if addr.Neighbourhood != "" {
		parts = append(parts, addr.Neighbourhood)
	}
	switch {
	case addr.City != "":
		parts = append(parts, addr.City)
	case addr.Town != "":
		parts = append(parts, addr.Town)
	case addr.Province != "":
		parts = append(parts, addr.Province)
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	return payload.DisplayName
}

func (c *Client) getJSON(ctx context.Context, endpoint string, headers map[string]string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode provider response: %w", err)
	}
	return nil
}
