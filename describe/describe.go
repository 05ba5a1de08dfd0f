// Package describe asks an external service for free-text descriptions
// of coordinates. The backend is opaque; anything that goes wrong
// resolves to a fixed fallback string so callers never see an error.
package describe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gridnav/geodesy"
)

// Fallback is returned whenever the service is unreachable, errors, or
// has nothing to say.
const Fallback = "Unknown area"

// Client queries a location-description endpoint. A zero URL disables
// lookups entirely (everything is the fallback).
type Client struct {
	url    string
	client *http.Client
}

// New returns a client for the given endpoint URL. The coordinate is
// appended as lat/lng query parameters.
func New(url string) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Describe returns a textual description of c, or the fallback string.
func (d *Client) Describe(ctx context.Context, c geodesy.Coordinate) string {
	if d.url == "" || !c.Valid() {
		return Fallback
	}

	url := fmt.Sprintf("%s?lat=%.6f&lng=%.6f", d.url, c.Lat, c.Lng)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Fallback
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return Fallback
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Fallback
	}

	var body struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Fallback
	}
	if text := strings.TrimSpace(body.Description); text != "" {
		return text
	}
	return Fallback
}
