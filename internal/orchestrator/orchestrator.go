// Package orchestrator runs one update cycle: fetch every registered
// indicator, merge successful observations into the store, persist once.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"econfetcher/internal/fetcher"
	"econfetcher/internal/store"
)

// Orchestrator coordinates concurrent fetchers against the merge store
type Orchestrator struct {
	fetchers []fetcher.Fetcher
	store    *store.MergeStore

	// runMu serializes whole runs. A trigger arriving during a run waits
	// for it to finish and then executes; runs are never interleaved
	// against the shared store.
	runMu sync.Mutex
}

// New creates an Orchestrator over the given fetchers and store
func New(fetchers []fetcher.Fetcher, st *store.MergeStore) *Orchestrator {
	return &Orchestrator{
		fetchers: fetchers,
		store:    st,
	}
}

// Run executes one full update cycle and returns the keys of the
// indicators whose histories changed, sorted for stable output.
//
// Adapter failures never abort the cycle: a failed or unavailable
// indicator is logged and skipped, and the rest still update. The
// returned error is non-nil only when the store itself cannot be
// loaded or persisted.
func (o *Orchestrator) Run(ctx context.Context) ([]string, error) {
	o.runMu.Lock()
	defer o.runMu.Unlock()

	if len(o.fetchers) == 0 {
		return nil, fmt.Errorf("no fetchers configured")
	}

	st, err := o.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}

	resultChan := make(chan fetcher.Result, len(o.fetchers))

	var wg sync.WaitGroup
	for _, f := range o.fetchers {
		wg.Add(1)
		go func(ft fetcher.Fetcher) {
			defer wg.Done()

			indicator, err := ft.Fetch(ctx)

			resultChan <- fetcher.Result{
				Key:       ft.Key(),
				Indicator: indicator,
				Error:     err,
			}
		}(f)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	changed := make([]string, 0, len(o.fetchers))
	for result := range resultChan {
		switch {
		case fetcher.IsUnavailable(result.Error):
			slog.Info("indicator skipped", "key", result.Key, "reason", result.Error)
		case result.Error != nil:
			slog.Warn("indicator fetch failed", "key", result.Key, "error", result.Error)
		default:
			if o.store.Merge(st, result.Key, result.Indicator) {
				changed = append(changed, result.Key)
				slog.Info("indicator updated",
					"key", result.Key,
					"value", result.Indicator.Value,
					"date", result.Indicator.Date)
			}
		}
	}

	if err := o.store.Persist(st); err != nil {
		return nil, fmt.Errorf("failed to persist store: %w", err)
	}

	sort.Strings(changed)
	return changed, nil
}
