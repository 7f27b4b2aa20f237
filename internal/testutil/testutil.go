package testutil

import (
	"context"

	"econfetcher/internal/fetcher"
	"econfetcher/internal/model"
)

// MockFetcher is a mock implementation of the Fetcher interface for testing
type MockFetcher struct {
	FetchFunc func(ctx context.Context) (model.Indicator, error)
	KeyFunc   func() string
}

// Fetch implements the Fetcher interface
func (m *MockFetcher) Fetch(ctx context.Context) (model.Indicator, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx)
	}
	return model.Indicator{}, nil
}

// Key implements the Fetcher interface
func (m *MockFetcher) Key() string {
	if m.KeyFunc != nil {
		return m.KeyFunc()
	}
	return "mock"
}

// NewMockFetcher creates a simple mock fetcher with predefined values
func NewMockFetcher(key string, indicator model.Indicator, err error) fetcher.Fetcher {
	return &MockFetcher{
		FetchFunc: func(ctx context.Context) (model.Indicator, error) {
			return indicator, err
		},
		KeyFunc: func() string {
			return key
		},
	}
}
