// Package geocoding holds the ports.Geocoder implementations: the OpenCage
// HTTP client used in production and an offline geocoder for development.
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

const (
	DefaultOpenCageURL = "https://api.opencagedata.com/geocode/v1/json"
	DefaultCountry     = "IN"
	DefaultTimeout     = 10 * time.Second
)

var ErrAPIKeyIsRequired = errors.New("opencage: api key is required")

type OpenCageConfig struct {
	BaseURL string
	APIKey  string
	// Country is appended to every query ("400001,IN") to keep postal codes
	// from matching other countries.
	Country string
	Timeout time.Duration
	Retry   RetryPolicy
}

// OpenCageGeocoder looks postal codes up through the OpenCage forward
// geocoding API and returns the best-ranked result.
type OpenCageGeocoder struct {
	baseURL string
	apiKey  string
	country string
	client  *http.Client
	retry   RetryPolicy
}

func NewOpenCageGeocoder(cfg OpenCageConfig) (*OpenCageGeocoder, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrAPIKeyIsRequired
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOpenCageURL
	}
	if cfg.Country == "" {
		cfg.Country = DefaultCountry
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = DefaultRetryPolicy()
	}

	return &OpenCageGeocoder{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		country: cfg.Country,
		client:  &http.Client{Timeout: cfg.Timeout},
		retry:   cfg.Retry,
	}, nil
}

type openCageResponse struct {
	Results []struct {
		Geometry struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"geometry"`
	} `json:"results"`
}

func (g *OpenCageGeocoder) Lookup(ctx context.Context, postalCode string) (kernel.GeoPoint, error) {
	query := postalCode + "," + g.country

	resp, err := doWithRetry(ctx, g.client, g.retry, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL, nil)
		if err != nil {
			return nil, err
		}
		q := url.Values{}
		q.Set("q", query)
		q.Set("key", g.apiKey)
		q.Set("limit", "1")
		q.Set("no_annotations", "1")
		req.URL.RawQuery = q.Encode()
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("opencage lookup %q: %w", postalCode, err)
	}
	defer resp.Body.Close()

	var decoded openCageResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("decode opencage response: %w", err)
	}
	if len(decoded.Results) == 0 {
		return kernel.GeoPoint{}, fmt.Errorf("opencage %q: %w", postalCode, ports.ErrNoGeocodeResults)
	}

	geometry := decoded.Results[0].Geometry
	return kernel.NewGeoPoint(geometry.Lat, geometry.Lng)
}
