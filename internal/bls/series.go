// Package bls fetches indicator data from the Bureau of Labor Statistics
// public timeseries API.
package bls

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"resty.dev/v3"

	"econfetcher/internal/fetcher"
	"econfetcher/internal/model"
	"econfetcher/internal/ratelimit"
)

// Source is the provider identifier stamped on observations from this adapter
const Source = "BLS"

// seriesEntry is one reported period within a BLS timeseries response
type seriesEntry struct {
	Year   string `json:"year"`
	Period string `json:"period"` // e.g. "M07" for July
	Value  string `json:"value"`
}

// TimeseriesResponse represents the BLS API response for a timeseries request
type TimeseriesResponse struct {
	Status  string   `json:"status"`
	Message []string `json:"message"`
	Results struct {
		Series []struct {
			SeriesID string        `json:"seriesID"`
			Data     []seriesEntry `json:"data"`
		} `json:"series"`
	} `json:"Results"`
}

// SeriesFetcher fetches the latest observation for one BLS series
type SeriesFetcher struct {
	key       string
	seriesID  string
	name      string
	unit      string
	inflation bool
	client    *resty.Client
}

// NewSeriesFetcher creates a fetcher for a BLS series. When inflation is
// true the raw index is converted to a year-over-year percentage change.
func NewSeriesFetcher(key, seriesID, name, unit, baseURL string, inflation bool) *SeriesFetcher {
	return &SeriesFetcher{
		key:       key,
		seriesID:  seriesID,
		name:      name,
		unit:      unit,
		inflation: inflation,
		client:    fetcher.NewHTTPClient(baseURL),
	}
}

// Fetch retrieves the most recent reported period for the series.
// It requests the current and previous year so that the year-over-year
// transform can find its matching period in the same payload.
func (f *SeriesFetcher) Fetch(ctx context.Context) (model.Indicator, error) {
	if err := ratelimit.GetLimiter().Wait(ctx, ratelimit.APIBLS); err != nil {
		return model.Indicator{}, fetcher.WrapTransportError(err)
	}

	currentYear := time.Now().Year()
	payload := map[string]any{
		"seriesid":  []string{f.seriesID},
		"startyear": strconv.Itoa(currentYear - 1),
		"endyear":   strconv.Itoa(currentYear),
	}

	var result TimeseriesResponse

	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&result).
		Post("")

	if err != nil {
		return model.Indicator{}, fetcher.WrapTransportError(err)
	}

	if !resp.IsSuccess() {
		return model.Indicator{}, fetcher.NewStatusError(resp.StatusCode())
	}

	if result.Status != "REQUEST_SUCCEEDED" {
		return model.Indicator{}, fetcher.NewParseError(
			fmt.Sprintf("request rejected by provider: %s", result.Status))
	}

	if len(result.Results.Series) == 0 || len(result.Results.Series[0].Data) == 0 {
		return model.Indicator{}, fetcher.NewParseError(
			fmt.Sprintf("no data in response for series %s", f.seriesID))
	}

	window := result.Results.Series[0].Data
	latest := window[0]

	value, err := strconv.ParseFloat(latest.Value, 64)
	if err != nil {
		return model.Indicator{}, fetcher.NewParseError(
			fmt.Sprintf("unparseable value %q for series %s", latest.Value, f.seriesID))
	}

	if f.inflation {
		value = f.yearOverYear(window, latest, value)
	}

	return model.Indicator{
		Name:   f.name,
		Value:  math.Round(value*10) / 10,
		Date:   observationDate(latest),
		Source: Source,
		Unit:   f.unit,
	}, nil
}

// yearOverYear converts a raw index level into a percentage change versus
// the same period one year earlier. The year-ago entry is searched for in
// the fetched window; when it is absent the raw index passes through
// unconverted, which is a documented limitation of the provider window.
func (f *SeriesFetcher) yearOverYear(window []seriesEntry, latest seriesEntry, value float64) float64 {
	latestYear, err := strconv.Atoi(latest.Year)
	if err != nil {
		return value
	}
	wantYear := strconv.Itoa(latestYear - 1)

	for _, entry := range window {
		if entry.Year != wantYear || entry.Period != latest.Period {
			continue
		}
		yearAgo, err := strconv.ParseFloat(entry.Value, 64)
		if err != nil || yearAgo == 0 {
			break
		}
		return (value - yearAgo) / yearAgo * 100
	}

	slog.Warn("no year-ago period in window, returning raw index",
		"series", f.seriesID,
		"year", latest.Year,
		"period", latest.Period)
	return value
}

// observationDate normalizes a BLS year/period pair to the first day of
// the reporting month, e.g. year "2025" period "M7" -> "2025-07-01".
func observationDate(entry seriesEntry) string {
	month := strings.TrimPrefix(entry.Period, "M")
	if len(month) < 2 {
		month = "0" + month
	}
	return fmt.Sprintf("%s-%s-01", entry.Year, month)
}

// Key returns the registry key for this fetcher
func (f *SeriesFetcher) Key() string {
	return f.key
}
