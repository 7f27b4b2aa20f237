package fetcher

import "econfetcher/internal/model"

// Result represents the outcome of a fetch operation.
// It's designed to be sent through channels from worker goroutines
// to the orchestrator that merges and persists the observations.
type Result struct {
	// Key is the registry key the observation belongs to
	Key string

	// Indicator is the normalized observation produced by the fetcher.
	// If Error is not nil, Indicator should be considered invalid.
	Indicator model.Indicator

	// Error contains any error that occurred during the fetch operation
	Error error
}
