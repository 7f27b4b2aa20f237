// Package api provides the REST facade over the indicator store and the
// manual update trigger.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"econfetcher/internal/model"
	"econfetcher/internal/orchestrator"
	"econfetcher/internal/store"
)

// IndicatorsResponse is the full-store read response
type IndicatorsResponse struct {
	Success   bool        `json:"success"`
	Data      model.Store `json:"data"`
	Timestamp string      `json:"timestamp"`
}

// IndicatorResponse is the single-series read response
type IndicatorResponse struct {
	Success   bool                   `json:"success"`
	Data      *model.IndicatorSeries `json:"data"`
	Timestamp string                 `json:"timestamp"`
}

// UpdateResponse reports the outcome of a manual update trigger
type UpdateResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Updated []string `json:"updated"`
}

// StatusResponse summarizes the service state
type StatusResponse struct {
	Success         bool     `json:"success"`
	Status          string   `json:"status"`
	IndicatorsCount int      `json:"indicators_count"`
	Indicators      []string `json:"indicators"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Routes defines the API handlers with their dependencies
type Routes struct {
	store *store.MergeStore
	orch  *orchestrator.Orchestrator
}

// Router creates the HTTP router for the service
func Router(st *store.MergeStore, orch *orchestrator.Orchestrator) http.Handler {
	routes := &Routes{store: st, orch: orch}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", routes.index)
	r.Get("/api/indicators", routes.listIndicators)
	r.Get("/api/indicators/{key}", routes.getIndicator)
	r.Post("/api/update", routes.triggerUpdate)
	r.Get("/api/status", routes.getStatus)

	return r
}

func (rt *Routes) index(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "economic indicator fetcher",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"/api/indicators":       "all indicator histories",
			"/api/indicators/{key}": "one indicator history",
			"/api/update":           "trigger an update (POST)",
			"/api/status":           "service status",
		},
		"status": "running",
	})
}

// listIndicators returns the full persisted store. Reads always go through
// the store file, so they only ever see committed state.
func (rt *Routes) listIndicators(w http.ResponseWriter, _ *http.Request) {
	st, err := rt.store.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, IndicatorsResponse{
		Success:   true,
		Data:      st,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (rt *Routes) getIndicator(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	st, err := rt.store.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	series, ok := st[key]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("indicator %s not found", key))
		return
	}

	writeJSON(w, http.StatusOK, IndicatorResponse{
		Success:   true,
		Data:      series,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// triggerUpdate runs a full pipeline cycle. A persistence failure is the
// one error category surfaced to the caller.
func (rt *Routes) triggerUpdate(w http.ResponseWriter, r *http.Request) {
	changed, err := rt.orch.Run(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, UpdateResponse{
		Success: true,
		Message: fmt.Sprintf("updated %d indicators", len(changed)),
		Updated: changed,
	})
}

func (rt *Routes) getStatus(w http.ResponseWriter, _ *http.Request) {
	st, err := rt.store.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	keys := st.Keys()
	sort.Strings(keys)

	writeJSON(w, http.StatusOK, StatusResponse{
		Success:         true,
		Status:          "running",
		IndicatorsCount: len(keys),
		Indicators:      keys,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Success: false, Error: message})
}
