package fetch

import (
	"context"
	"time"

	"github.com/at-tailor-made/market-intelligence/internal/model"
)

// PriceFetcher fetches flight price quotes for one route and departure date.
// An empty slice is a valid answer: the route had no usable offers.
type PriceFetcher interface {
	FetchPrices(ctx context.Context, route model.Route, departure time.Time) ([]float64, error)
	Name() string
}

// RateFetcher fetches exchange-rate quotes for one currency pair.
type RateFetcher interface {
	FetchRate(ctx context.Context, pair model.Pair) ([]float64, error)
	Name() string
}
