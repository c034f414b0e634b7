package fetch

import (
	"context"
	"testing"
	"time"

	"github.com/at-tailor-made/market-intelligence/internal/model"
)

func TestMockPriceFetcher_KnownRoute(t *testing.T) {
	f := NewMockPriceFetcher()
	route := model.Route{Origin: "GDL", Destination: "CUN", Name: "Cancún"}

	prices, err := f.FetchPrices(context.Background(), route, time.Now())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	want := []float64{45, 48, 50, 52, 55}
	if len(prices) != len(want) {
		t.Fatalf("expected %d prices, got %d", len(want), len(prices))
	}
	for i, w := range want {
		if prices[i] != w {
			t.Errorf("price %d: expected %v, got %v", i, w, prices[i])
		}
	}
}

func TestMockPriceFetcher_UnknownRouteFallback(t *testing.T) {
	f := NewMockPriceFetcher()
	route := model.Route{Origin: "GDL", Destination: "SJD", Name: "Los Cabos"}

	prices, err := f.FetchPrices(context.Background(), route, time.Now())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(prices) != 5 || prices[0] != 100 || prices[4] != 200 {
		t.Errorf("expected generic spread for unknown route, got %v", prices)
	}
}

func TestMockPriceFetcher_ReturnsCopy(t *testing.T) {
	f := NewMockPriceFetcher()
	route := model.Route{Origin: "GDL", Destination: "CUN", Name: "Cancún"}

	first, _ := f.FetchPrices(context.Background(), route, time.Now())
	first[0] = 9999

	second, _ := f.FetchPrices(context.Background(), route, time.Now())
	if second[0] != 45 {
		t.Errorf("expected fetcher table unaffected by caller mutation, got %v", second[0])
	}
}

func TestMockRateFetcher(t *testing.T) {
	f := NewMockRateFetcher()

	rates, err := f.FetchRate(context.Background(), model.Pair{Base: "MXN", Quote: "USD"})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rates) != 1 || rates[0] != 17.22 {
		t.Errorf("expected 17.22, got %v", rates)
	}

	// Unknown pairs answer with no data, not an error.
	rates, err = f.FetchRate(context.Background(), model.Pair{Base: "MXN", Quote: "JPY"})
	if err != nil {
		t.Fatalf("fetch unknown pair: %v", err)
	}
	if len(rates) != 0 {
		t.Errorf("expected no rates for unknown pair, got %v", rates)
	}
}
