package fetcher

import (
	"context"

	"econfetcher/internal/model"
)

// Fetcher is the core interface that all indicator fetchers must implement.
// Each fetcher knows how to retrieve the latest observation for one
// economic indicator from its provider and normalize it.
type Fetcher interface {
	// Fetch retrieves the most recent observation for the indicator.
	// Returns a FetchError classifying the failure when the provider
	// cannot be reached or its response cannot be understood, or
	// ErrUnavailable when a required credential is not configured.
	Fetch(ctx context.Context) (model.Indicator, error)

	// Key returns the registry key this fetcher produces data for.
	// Examples:
	//   - cpi
	//   - unemployment
	//   - fed_rate
	Key() string
}
