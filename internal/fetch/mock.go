package fetch

import (
	"context"
	"time"

	"github.com/at-tailor-made/market-intelligence/internal/model"
)

// MockPriceFetcher returns a fixed price table for development and for runs
// without Amadeus credentials. Unknown routes get a generic spread rather
// than an error so demo runs cover every configured route.
type MockPriceFetcher struct {
	Prices map[string][]float64
}

// NewMockPriceFetcher creates a mock fetcher preloaded with the stock routes.
func NewMockPriceFetcher() *MockPriceFetcher {
	return &MockPriceFetcher{
		Prices: map[string][]float64{
			"GDL-CUN": {45, 48, 50, 52, 55},
			"GDL-MIA": {116, 180, 200, 220, 250},
			"GDL-JFK": {200, 220, 230, 240, 250},
			"GDL-LAX": {120, 150, 180, 200, 220},
			"GDL-MAD": {340, 350, 360, 370, 400},
			"GDL-CDG": {390, 400, 410, 420, 500},
		},
	}
}

func (m *MockPriceFetcher) Name() string { return "mock" }

func (m *MockPriceFetcher) FetchPrices(_ context.Context, route model.Route, _ time.Time) ([]float64, error) {
	prices, ok := m.Prices[route.Key()]
	if !ok {
		prices = []float64{100, 120, 150, 180, 200}
	}
	out := make([]float64, len(prices))
	copy(out, prices)
	return out, nil
}

// MockRateFetcher returns a fixed rate table for development and demo runs.
type MockRateFetcher struct {
	Rates map[string]float64
}

// NewMockRateFetcher creates a mock fetcher preloaded with the stock pairs.
func NewMockRateFetcher() *MockRateFetcher {
	return &MockRateFetcher{
		Rates: map[string]float64{
			"MXN-USD": 17.22,
			"MXN-EUR": 18.75,
			"MXN-GBP": 21.50,
		},
	}
}

func (m *MockRateFetcher) Name() string { return "mock" }

func (m *MockRateFetcher) FetchRate(_ context.Context, pair model.Pair) ([]float64, error) {
	rate, ok := m.Rates[pair.Key()]
	if !ok {
		return nil, nil
	}
	return []float64{rate}, nil
}
