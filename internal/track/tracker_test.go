package track

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/at-tailor-made/market-intelligence/internal/fetch"
	"github.com/at-tailor-made/market-intelligence/internal/model"
	"github.com/at-tailor-made/market-intelligence/internal/store"
)

type failingPriceFetcher struct{}

func (failingPriceFetcher) Name() string { return "failing" }

func (failingPriceFetcher) FetchPrices(context.Context, model.Route, time.Time) ([]float64, error) {
	return nil, errors.New("upstream down")
}

type failingRateFetcher struct{}

func (failingRateFetcher) Name() string { return "failing" }

func (failingRateFetcher) FetchRate(context.Context, model.Pair) ([]float64, error) {
	return nil, errors.New("upstream down")
}

func newTestStore(t *testing.T) *store.Store {
	backend, err := store.NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	return store.New(backend, zerolog.Nop())
}

func TestTrackFlights_RecordsAllRoutes(t *testing.T) {
	s := newTestStore(t)
	tr := New(s, fetch.NewMockPriceFetcher(), fetch.NewMockRateFetcher(), zerolog.Nop())

	routes := []model.Route{
		{Origin: "GDL", Destination: "CUN", Name: "Guadalajara → Cancún"},
		{Origin: "GDL", Destination: "MIA", Name: "Guadalajara → Miami"},
	}
	results := tr.TrackFlights(context.Background(), routes, 30)

	if len(results) != len(routes) {
		t.Fatalf("expected %d results, got %d", len(routes), len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("route %s: unexpected error %v", r.Key, r.Err)
		}
	}
	cun := results[0]
	if cun.Key != "GDL-CUN" || cun.Name != "Guadalajara → Cancún" {
		t.Errorf("unexpected first result identity: %+v", cun)
	}
	if cun.Observation.Avg == nil || *cun.Observation.Avg != 50 {
		t.Errorf("expected mock average 50, got %v", cun.Observation.Avg)
	}
	if *cun.Observation.Min != 45 || *cun.Observation.Max != 55 {
		t.Errorf("expected mock spread 45..55, got %v..%v", *cun.Observation.Min, *cun.Observation.Max)
	}

	doc, err := s.Load(model.KindFlights, "GDL-CUN")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Len() != 1 {
		t.Errorf("expected 1 stored observation, got %d", doc.Len())
	}
}

func TestTrackFlights_FetchFailureRecordsEmptyObservation(t *testing.T) {
	s := newTestStore(t)
	tr := New(s, failingPriceFetcher{}, fetch.NewMockRateFetcher(), zerolog.Nop())

	routes := []model.Route{{Origin: "GDL", Destination: "CUN", Name: "Cancún"}}
	results := tr.TrackFlights(context.Background(), routes, 30)

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.Err != nil {
		t.Errorf("fetch failure must not surface as a result error, got %v", r.Err)
	}
	if r.Observation.Avg != nil || len(r.Observation.Quotes) != 0 {
		t.Errorf("expected empty observation, got %+v", r.Observation)
	}

	// The no-data day still lands in the series.
	doc, err := s.Load(model.KindFlights, "GDL-CUN")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Len() != 1 {
		t.Errorf("expected empty observation appended, got %d observations", doc.Len())
	}
}

func TestTrackExchange_RecordsAllPairs(t *testing.T) {
	s := newTestStore(t)
	tr := New(s, fetch.NewMockPriceFetcher(), fetch.NewMockRateFetcher(), zerolog.Nop())

	pairs := []model.Pair{
		{Base: "MXN", Quote: "USD"},
		{Base: "MXN", Quote: "EUR"},
	}
	results := tr.TrackExchange(context.Background(), pairs)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	usd := results[0]
	if usd.Key != "MXN-USD" || usd.Name != "MXN-USD" {
		t.Errorf("unexpected result identity: %+v", usd)
	}
	if usd.Observation.Avg == nil || *usd.Observation.Avg != 17.22 {
		t.Errorf("expected mock rate 17.22, got %v", usd.Observation.Avg)
	}

	doc, err := s.Load(model.KindExchange, "MXN-EUR")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Len() != 1 {
		t.Errorf("expected 1 stored observation, got %d", doc.Len())
	}
}

func TestTrackExchange_FetchFailureRecordsEmptyObservation(t *testing.T) {
	s := newTestStore(t)
	tr := New(s, fetch.NewMockPriceFetcher(), failingRateFetcher{}, zerolog.Nop())

	results := tr.TrackExchange(context.Background(), []model.Pair{{Base: "MXN", Quote: "USD"}})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Err != nil {
		t.Errorf("fetch failure must not surface as a result error, got %v", results[0].Err)
	}

	doc, err := s.Load(model.KindExchange, "MXN-USD")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Len() != 1 {
		t.Errorf("expected empty observation appended, got %d observations", doc.Len())
	}
}
