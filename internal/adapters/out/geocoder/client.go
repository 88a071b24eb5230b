// Package geocoder resolves UK postcodes to coordinates over the
// postcodes.io HTTP API. The client implements services.PostcodeResolver;
// callers treat it as unreliable and degrade to the unknown-distance
// sentinel on any failure.
package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/errs"
)

const defaultTimeout = 5 * time.Second

// Client looks up postcode coordinates from a postcodes.io compatible API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a geocoder client for the given API base URL,
// e.g. "https://api.postcodes.io".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

type lookupResponse struct {
	Status int `json:"status"`
	Result struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"result"`
}

// Resolve fetches the coordinates for a postcode.
// Returns errs.ObjectNotFoundError when the API does not know the postcode.
func (c *Client) Resolve(ctx context.Context, postcode kernel.Postcode) (kernel.Coordinates, error) {
	endpoint := c.baseURL + "/postcodes/" + url.PathEscape(postcode.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return kernel.Coordinates{}, fmt.Errorf("build postcode lookup request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return kernel.Coordinates{}, fmt.Errorf("postcode lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return kernel.Coordinates{}, errs.NewObjectNotFoundError("postcode", postcode.String())
	}
	if resp.StatusCode != http.StatusOK {
		return kernel.Coordinates{}, fmt.Errorf("postcode lookup: unexpected status %d", resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return kernel.Coordinates{}, fmt.Errorf("decode postcode lookup response: %w", err)
	}

	return kernel.Coordinates{
		Latitude:  body.Result.Latitude,
		Longitude: body.Result.Longitude,
	}, nil
}
