package track

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/at-tailor-made/market-intelligence/internal/fetch"
	"github.com/at-tailor-made/market-intelligence/internal/model"
	"github.com/at-tailor-made/market-intelligence/internal/store"
)

// Result is the per-series outcome of one tracking pass. Err is set only for
// store failures; fetch failures degrade to an empty observation instead.
type Result struct {
	Key         string            `json:"key"`
	Name        string            `json:"name"`
	Observation model.Observation `json:"observation"`
	Err         error             `json:"-"`
}

// Tracker runs the fetch-then-append collection passes over the configured
// series. One series failing never aborts the rest of the batch.
type Tracker struct {
	store  *store.Store
	prices fetch.PriceFetcher
	rates  fetch.RateFetcher
	log    zerolog.Logger
}

func New(st *store.Store, prices fetch.PriceFetcher, rates fetch.RateFetcher, log zerolog.Logger) *Tracker {
	return &Tracker{
		store:  st,
		prices: prices,
		rates:  rates,
		log:    log.With().Str("component", "track").Logger(),
	}
}

// TrackFlights fetches and records flight quotes for every route. The
// departure date quoted is now plus departureOffsetDays. A fetch failure is
// logged and recorded as an empty observation so the no-data day still lands
// in the series.
func (t *Tracker) TrackFlights(ctx context.Context, routes []model.Route, departureOffsetDays int) []Result {
	departure := time.Now().AddDate(0, 0, departureOffsetDays)

	results := make([]Result, 0, len(routes))
	for _, route := range routes {
		quotes, err := t.prices.FetchPrices(ctx, route, departure)
		if err != nil {
			t.log.Warn().Err(err).
				Str("route", route.Key()).
				Str("fetcher", t.prices.Name()).
				Msg("price fetch failed, recording empty observation")
			quotes = nil
		}

		obs, err := t.store.Append(model.KindFlights, route.Key(), time.Now(), quotes)
		if err != nil {
			t.log.Error().Err(err).Str("route", route.Key()).Msg("append failed")
		}
		results = append(results, Result{Key: route.Key(), Name: route.Name, Observation: obs, Err: err})
	}
	return results
}

// TrackExchange fetches and records exchange rates for every pair, with the
// same degradation rules as TrackFlights.
func (t *Tracker) TrackExchange(ctx context.Context, pairs []model.Pair) []Result {
	results := make([]Result, 0, len(pairs))
	for _, pair := range pairs {
		quotes, err := t.rates.FetchRate(ctx, pair)
		if err != nil {
			t.log.Warn().Err(err).
				Str("pair", pair.Key()).
				Str("fetcher", t.rates.Name()).
				Msg("rate fetch failed, recording empty observation")
			quotes = nil
		}

		obs, err := t.store.Append(model.KindExchange, pair.Key(), time.Now(), quotes)
		if err != nil {
			t.log.Error().Err(err).Str("pair", pair.Key()).Msg("append failed")
		}
		results = append(results, Result{Key: pair.Key(), Name: pair.Key(), Observation: obs, Err: err})
	}
	return results
}
