// Package registry holds the static table of tracked indicators and
// constructs the fetcher for each entry.
package registry

import (
	"fmt"

	"econfetcher/internal/bls"
	"econfetcher/internal/config"
	"econfetcher/internal/fetcher"
	"econfetcher/internal/fred"
)

// Provider identifies which adapter produces an indicator's data
type Provider string

const (
	// ProviderBLS fetches from the BLS public timeseries API
	ProviderBLS Provider = "bls"
	// ProviderFRED fetches from the credentialed FRED API
	ProviderFRED Provider = "fred"
)

// Entry describes one tracked indicator: its store key, display metadata,
// and the provider-specific parameters needed to fetch it.
type Entry struct {
	Key       string
	Name      string
	Unit      string
	Provider  Provider
	SeriesID  string
	Inflation bool // convert the raw index into a year-over-year percentage
}

// Default returns the built-in indicator table.
func Default() []Entry {
	return []Entry{
		{Key: "cpi", Name: "CPI Inflation Rate", Unit: "%", Provider: ProviderBLS, SeriesID: "CUUR0000SA0", Inflation: true},
		{Key: "unemployment", Name: "Unemployment Rate", Unit: "%", Provider: ProviderBLS, SeriesID: "LNS14000000"},
		{Key: "fed_rate", Name: "Federal Funds Rate", Unit: "%", Provider: ProviderFRED, SeriesID: "DFEDTARU"},
		{Key: "ism", Name: "ISM Manufacturing Index", Unit: "points", Provider: ProviderFRED, SeriesID: "NAPM"},
		{Key: "consumer_confidence", Name: "Consumer Confidence Index", Unit: "points", Provider: ProviderFRED, SeriesID: "UMCSENT"},
	}
}

// Build constructs a fetcher for each entry, dispatching on the provider tag.
func Build(entries []Entry, cfg *config.Config) ([]fetcher.Fetcher, error) {
	fetchers := make([]fetcher.Fetcher, 0, len(entries))

	for _, e := range entries {
		switch e.Provider {
		case ProviderBLS:
			fetchers = append(fetchers, bls.NewSeriesFetcher(
				e.Key, e.SeriesID, e.Name, e.Unit, cfg.BLSBaseURL, e.Inflation))
		case ProviderFRED:
			fetchers = append(fetchers, fred.NewSeriesFetcher(
				cfg.FREDAPIKey, e.Key, e.SeriesID, e.Name, e.Unit, cfg.FREDBaseURL))
		default:
			return nil, fmt.Errorf("unknown provider %q for indicator %s", e.Provider, e.Key)
		}
	}

	return fetchers, nil
}
