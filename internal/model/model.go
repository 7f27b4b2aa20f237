// Package model defines the data types shared by the fetch pipeline and
// the persisted indicator store.
package model

// Indicator is a normalized observation as produced by a provider adapter.
// It is transient: the orchestrator folds it into the store and discards it.
type Indicator struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Date   string  `json:"date"` // YYYY-MM-DD; first of month for monthly series
	Source string  `json:"source"`
	Unit   string  `json:"unit"`
}

// Observation is a single persisted data point in an indicator's history.
// Observations are append-only: once written they are never edited or removed.
type Observation struct {
	Month string  `json:"month"` // YYYY-MM
	Value float64 `json:"value"`
	Date  string  `json:"date"` // YYYY-MM-DD
}

// IndicatorSeries is the persisted history for one indicator.
// Invariant: no two observations in Data share the same Date.
type IndicatorSeries struct {
	Name       string        `json:"name"`
	Unit       string        `json:"unit"`
	Source     string        `json:"source"`
	LastUpdate string        `json:"lastUpdate,omitempty"` // RFC3339
	Data       []Observation `json:"data"`
}

// Store maps indicator keys to their series. An absent key means the
// indicator has never been successfully fetched.
type Store map[string]*IndicatorSeries

// Dates returns the set of observation dates already present in the series.
func (s *IndicatorSeries) Dates() map[string]struct{} {
	dates := make(map[string]struct{}, len(s.Data))
	for _, obs := range s.Data {
		dates[obs.Date] = struct{}{}
	}
	return dates
}

// Keys returns the indicator keys present in the store.
func (s Store) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	return keys
}
