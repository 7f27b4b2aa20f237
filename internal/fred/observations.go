// Package fred fetches indicator data from the Federal Reserve Economic
// Data (FRED) API. Requests require an API key; when no key is configured
// the fetcher reports unavailable rather than failing.
package fred

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"resty.dev/v3"

	"econfetcher/internal/fetcher"
	"econfetcher/internal/model"
	"econfetcher/internal/ratelimit"
)

// Source is the provider identifier stamped on observations from this adapter
const Source = "FRED"

// ObservationsResponse represents the FRED API response for a series observations request
type ObservationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// SeriesFetcher fetches the single most recent observation for one FRED series
type SeriesFetcher struct {
	apiKey   string
	key      string
	seriesID string
	name     string
	unit     string
	client   *resty.Client
}

// NewSeriesFetcher creates a fetcher for a FRED series. An empty apiKey is
// allowed; Fetch will then report ErrUnavailable without touching the network.
func NewSeriesFetcher(apiKey, key, seriesID, name, unit, baseURL string) *SeriesFetcher {
	return &SeriesFetcher{
		apiKey:   apiKey,
		key:      key,
		seriesID: seriesID,
		name:     name,
		unit:     unit,
		client:   fetcher.NewHTTPClient(baseURL),
	}
}

// Fetch retrieves the most recent observation, requested sorted descending
// with limit one so the provider does the windowing.
func (f *SeriesFetcher) Fetch(ctx context.Context) (model.Indicator, error) {
	if f.apiKey == "" {
		return model.Indicator{}, fetcher.ErrUnavailable
	}

	if err := ratelimit.GetLimiter().Wait(ctx, ratelimit.APIFRED); err != nil {
		return model.Indicator{}, fetcher.WrapTransportError(err)
	}

	var result ObservationsResponse

	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"series_id":  f.seriesID,
			"api_key":    f.apiKey,
			"file_type":  "json",
			"sort_order": "desc",
			"limit":      "1",
		}).
		SetResult(&result).
		Get("/series/observations")

	if err != nil {
		return model.Indicator{}, fetcher.WrapTransportError(err)
	}

	if !resp.IsSuccess() {
		return model.Indicator{}, fetcher.NewStatusError(resp.StatusCode())
	}

	if len(result.Observations) == 0 {
		return model.Indicator{}, fetcher.NewParseError(
			fmt.Sprintf("no observations in response for series %s", f.seriesID))
	}

	latest := result.Observations[0]

	// FRED reports missing values as "."
	value, err := strconv.ParseFloat(latest.Value, 64)
	if err != nil {
		return model.Indicator{}, fetcher.NewParseError(
			fmt.Sprintf("unparseable value %q for series %s", latest.Value, f.seriesID))
	}

	return model.Indicator{
		Name:   f.name,
		Value:  math.Round(value*10) / 10,
		Date:   latest.Date,
		Source: Source,
		Unit:   f.unit,
	}, nil
}

// Key returns the registry key for this fetcher
func (f *SeriesFetcher) Key() string {
	return f.key
}
