package analysis

import (
	"fmt"
	"strings"

	"github.com/at-tailor-made/market-intelligence/internal/model"
)

// Thresholds are the trigger levels for advisory insights. Values come from
// configuration; DefaultThresholds matches the stock setup.
type Thresholds struct {
	// DealPct flags flight routes whose mean dropped below this percentage
	// over the window. Negative.
	DealPct float64 `yaml:"deal_pct" default:"-10"`
	// HighPricePct flags flight routes whose mean rose above this
	// percentage over the window. Positive.
	HighPricePct float64 `yaml:"high_price_pct" default:"15"`
	// FavorableRateDelta flags exchange pairs whose rate fell by more than
	// this absolute amount, meaning the peso buys more. Negative.
	FavorableRateDelta float64 `yaml:"favorable_rate_delta" default:"-0.5"`
}

// DefaultThresholds returns the stock trigger levels.
func DefaultThresholds() Thresholds {
	return Thresholds{DealPct: -10, HighPricePct: 15, FavorableRateDelta: -0.5}
}

// Classify maps a trend summary to zero or more human-readable insight
// strings. Pure; reads nothing beyond its arguments. Flight rules compare
// the percentage move, exchange rules the absolute rate move. A summary
// without a latest mean produces no insights because every message cites
// the latest level.
func Classify(kind model.Kind, t model.TrendSummary, th Thresholds) []string {
	var insights []string
	switch kind {
	case model.KindFlights:
		if t.Latest == nil {
			return nil
		}
		if t.DeltaPct < th.DealPct {
			insights = append(insights, fmt.Sprintf("🔥 OFERTA: %s bajó %.1f%% ($%.0f USD)", t.Name, -t.DeltaPct, *t.Latest))
		} else if t.DeltaPct > th.HighPricePct {
			insights = append(insights, fmt.Sprintf("⚠️ PRECIOS ALTOS: %s subió %.1f%% ($%.0f USD)", t.Name, t.DeltaPct, *t.Latest))
		}
	case model.KindExchange:
		if t.Delta < th.FavorableRateDelta {
			quote := quoteCurrency(t.SeriesKey)
			insights = append(insights, fmt.Sprintf("💰 DÓLAR BARATO: MXN/%s subió %.2f (mejor para viajes a %s)", quote, -t.Delta, quote))
		}
	}
	return insights
}

// quoteCurrency extracts the foreign leg from a pair key such as "MXN-USD".
func quoteCurrency(seriesKey string) string {
	if _, quote, ok := strings.Cut(seriesKey, "-"); ok {
		return quote
	}
	return seriesKey
}
