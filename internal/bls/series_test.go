package bls

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewSeriesFetcher(t *testing.T) {
	f := NewSeriesFetcher("unemployment", "LNS14000000", "Unemployment Rate", "%", "http://localhost", false)

	if f == nil {
		t.Fatal("NewSeriesFetcher() returned nil")
	}
	if f.seriesID != "LNS14000000" {
		t.Errorf("seriesID = %q, want %q", f.seriesID, "LNS14000000")
	}
	if f.inflation {
		t.Error("inflation = true, want false")
	}
	if f.client == nil {
		t.Error("client is nil")
	}
}

func TestSeriesFetcher_Key(t *testing.T) {
	tests := []struct {
		key string
	}{
		{"cpi"},
		{"unemployment"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			f := NewSeriesFetcher(tt.key, "SERIES", "Name", "%", "http://localhost", false)
			if got := f.Key(); got != tt.key {
				t.Errorf("Key() = %q, want %q", got, tt.key)
			}
		})
	}
}

func TestSeriesFetcher_Fetch_Success(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"status": "REQUEST_SUCCEEDED",
			"Results": {
				"series": [{
					"seriesID": "LNS14000000",
					"data": [
						{"year": "2025", "period": "M07", "value": "4.2"},
						{"year": "2025", "period": "M06", "value": "4.1"}
					]
				}]
			}
		}`))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	f := NewSeriesFetcher("unemployment", "LNS14000000", "Unemployment Rate", "%", server.URL, false)

	obs, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() returned unexpected error: %v", err)
	}

	if obs.Value != 4.2 {
		t.Errorf("Value = %.1f, want 4.2", obs.Value)
	}
	if obs.Date != "2025-07-01" {
		t.Errorf("Date = %q, want %q", obs.Date, "2025-07-01")
	}
	if obs.Source != "BLS" {
		t.Errorf("Source = %q, want BLS", obs.Source)
	}
	if obs.Name != "Unemployment Rate" {
		t.Errorf("Name = %q, want %q", obs.Name, "Unemployment Rate")
	}
	if obs.Unit != "%" {
		t.Errorf("Unit = %q, want %%", obs.Unit)
	}
}

func TestSeriesFetcher_Fetch_SingleDigitPeriod(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"status": "REQUEST_SUCCEEDED",
			"Results": {
				"series": [{
					"data": [{"year": "2025", "period": "M7", "value": "4.2"}]
				}]
			}
		}`))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	f := NewSeriesFetcher("unemployment", "LNS14000000", "Unemployment Rate", "%", server.URL, false)

	obs, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() returned unexpected error: %v", err)
	}

	if obs.Date != "2025-07-01" {
		t.Errorf("Date = %q, want %q", obs.Date, "2025-07-01")
	}
}

func TestSeriesFetcher_Fetch_InflationTransform(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"status": "REQUEST_SUCCEEDED",
			"Results": {
				"series": [{
					"data": [
						{"year": "2025", "period": "M06", "value": "118.0"},
						{"year": "2025", "period": "M05", "value": "117.5"},
						{"year": "2024", "period": "M06", "value": "110.0"}
					]
				}]
			}
		}`))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	f := NewSeriesFetcher("cpi", "CUUR0000SA0", "CPI Inflation Rate", "%", server.URL, true)

	obs, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() returned unexpected error: %v", err)
	}

	// (118.0 - 110.0) / 110.0 * 100 = 7.2727..., rounded to 7.3
	if obs.Value != 7.3 {
		t.Errorf("Value = %.1f, want 7.3", obs.Value)
	}
	if obs.Date != "2025-06-01" {
		t.Errorf("Date = %q, want %q", obs.Date, "2025-06-01")
	}
}

func TestSeriesFetcher_Fetch_InflationNoYearAgo(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"status": "REQUEST_SUCCEEDED",
			"Results": {
				"series": [{
					"data": [
						{"year": "2025", "period": "M06", "value": "118.0"},
						{"year": "2025", "period": "M05", "value": "117.5"}
					]
				}]
			}
		}`))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	f := NewSeriesFetcher("cpi", "CUUR0000SA0", "CPI Inflation Rate", "%", server.URL, true)

	obs, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() returned unexpected error: %v", err)
	}

	// With no year-ago period in the window the raw index passes through
	if obs.Value != 118.0 {
		t.Errorf("Value = %.1f, want 118.0", obs.Value)
	}
}

func TestSeriesFetcher_Fetch_RequestRejected(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "REQUEST_NOT_PROCESSED", "message": ["daily threshold exceeded"]}`))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	f := NewSeriesFetcher("cpi", "CUUR0000SA0", "CPI Inflation Rate", "%", server.URL, true)

	_, err := f.Fetch(context.Background())
	if err == nil {
		t.Error("Fetch() expected error for rejected request, got nil")
	}
}

func TestSeriesFetcher_Fetch_EmptyData(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no series", `{"status": "REQUEST_SUCCEEDED", "Results": {"series": []}}`},
		{"no data", `{"status": "REQUEST_SUCCEEDED", "Results": {"series": [{"data": []}]}}`},
		{"empty object", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(tt.body))
			})

			server := httptest.NewServer(handler)
			defer server.Close()

			f := NewSeriesFetcher("unemployment", "LNS14000000", "Unemployment Rate", "%", server.URL, false)

			_, err := f.Fetch(context.Background())
			if err == nil {
				t.Error("Fetch() expected error, got nil")
			}
		})
	}
}

func TestSeriesFetcher_Fetch_InvalidValue(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"status": "REQUEST_SUCCEEDED",
			"Results": {
				"series": [{
					"data": [{"year": "2025", "period": "M07", "value": "not_a_number"}]
				}]
			}
		}`))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	f := NewSeriesFetcher("unemployment", "LNS14000000", "Unemployment Rate", "%", server.URL, false)

	_, err := f.Fetch(context.Background())
	if err == nil {
		t.Error("Fetch() expected error for invalid value, got nil")
	}
}

func TestSeriesFetcher_Fetch_HTTPError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	f := NewSeriesFetcher("unemployment", "LNS14000000", "Unemployment Rate", "%", server.URL, false)

	_, err := f.Fetch(context.Background())
	if err == nil {
		t.Error("Fetch() expected error, got nil")
	}
}

func TestSeriesFetcher_Fetch_ContextCancellation(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	f := NewSeriesFetcher("unemployment", "LNS14000000", "Unemployment Rate", "%", server.URL, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx)
	if err == nil {
		t.Error("Fetch() expected error for cancelled context, got nil")
	}
}

func TestSeriesFetcher_Fetch_VerifyPayload(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		var payload struct {
			SeriesID  []string `json:"seriesid"`
			StartYear string   `json:"startyear"`
			EndYear   string   `json:"endyear"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Errorf("failed to decode request payload: %v", err)
		}

		if len(payload.SeriesID) != 1 || payload.SeriesID[0] != "CUUR0000SA0" {
			t.Errorf("seriesid = %v, want [CUUR0000SA0]", payload.SeriesID)
		}
		if payload.StartYear == "" || payload.EndYear == "" {
			t.Error("startyear/endyear missing from payload")
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"status": "REQUEST_SUCCEEDED",
			"Results": {
				"series": [{
					"data": [{"year": "2025", "period": "M07", "value": "320.5"}]
				}]
			}
		}`))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	f := NewSeriesFetcher("cpi", "CUUR0000SA0", "CPI Inflation Rate", "%", server.URL, false)

	_, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() returned unexpected error: %v", err)
	}
}
