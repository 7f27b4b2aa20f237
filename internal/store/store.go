// Package store persists indicator histories as a single JSON document
// and merges new observations into them without disturbing prior data.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"econfetcher/internal/model"
)

// MergeStore loads, merges into, and atomically persists the indicator store.
type MergeStore struct {
	path string
	now  func() time.Time
}

// Option configures a MergeStore
type Option func(*MergeStore)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *MergeStore) { s.now = now }
}

// New creates a MergeStore backed by the JSON document at path.
func New(path string, opts ...Option) *MergeStore {
	s := &MergeStore{
		path: path,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted store. A missing file is not an error: it means
// no indicator has ever been fetched, and an empty store is returned.
func (s *MergeStore) Load() (model.Store, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Store{}, nil
		}
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	st := model.Store{}
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to decode store file: %w", err)
	}
	return st, nil
}

// Merge folds one observation into the store, creating the series if it is
// absent and skipping the observation if its date is already recorded.
// Reports whether the store changed. Observations keep fetch order; the
// series is never re-sorted, so existing entries never move.
func (s *MergeStore) Merge(st model.Store, key string, obs model.Indicator) bool {
	series, ok := st[key]
	if !ok {
		series = &model.IndicatorSeries{
			Name:   obs.Name,
			Unit:   obs.Unit,
			Source: obs.Source,
			Data:   []model.Observation{},
		}
		st[key] = series
	}

	if _, exists := series.Dates()[obs.Date]; exists {
		return false
	}

	series.Data = append(series.Data, model.Observation{
		Month: monthOf(obs.Date),
		Value: obs.Value,
		Date:  obs.Date,
	})
	series.LastUpdate = s.now().Format(time.RFC3339)
	return true
}

// Persist writes the entire store atomically: marshal, write to a staging
// file, then rename it into place. A concurrent reader sees either the
// previous document or the new one, never a partial write.
func (s *MergeStore) Persist(st model.Store) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write staging file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

// monthOf truncates a YYYY-MM-DD date to its YYYY-MM month.
func monthOf(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}
