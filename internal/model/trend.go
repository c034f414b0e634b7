package model

import "time"

// TrendSummary is the derived trend for one series over a lookback window.
// Latest and Earliest are the boundary observation means and stay nil when
// the boundary observation recorded no data; Delta and DeltaPct are zero in
// that case. DeltaPct is rounded to two decimals.
type TrendSummary struct {
	SeriesKey string   `json:"series_key"`
	Name      string   `json:"name"`
	Latest    *float64 `json:"latest"`
	Earliest  *float64 `json:"earliest"`
	Delta     float64  `json:"delta"`
	DeltaPct  float64  `json:"delta_pct"`
	LatestMin *float64 `json:"latest_min,omitempty"`
}

// Report is the assembled weekly digest. Derived on demand, never stored by
// the record store; sinks may archive its JSON form.
type Report struct {
	GeneratedAt time.Time               `json:"generated_at"`
	WindowDays  int                     `json:"window_days"`
	Flights     map[string]TrendSummary `json:"flights"`
	Exchange    map[string]TrendSummary `json:"exchange"`
	Insights    []string                `json:"insights"`
}
