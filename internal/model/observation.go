package model

import "time"

// Observation is one fetch result for a series at a point in time. Quotes
// holds the raw numeric quotes in fetch order; Avg, Min and Max are derived
// from them and are nil when no quotes were obtained (a no-data fetch is
// still a valid observation).
type Observation struct {
	Timestamp time.Time `json:"timestamp"`
	Quotes    []float64 `json:"quotes"`
	Avg       *float64  `json:"avg"`
	Min       *float64  `json:"min"`
	Max       *float64  `json:"max"`
}

// NewObservation builds an Observation with derived summary stats. The quote
// slice is copied so later mutation by the caller cannot change the record.
func NewObservation(ts time.Time, quotes []float64) Observation {
	obs := Observation{Timestamp: ts}
	if len(quotes) == 0 {
		return obs
	}

	obs.Quotes = make([]float64, len(quotes))
	copy(obs.Quotes, quotes)

	sum, lo, hi := quotes[0], quotes[0], quotes[0]
	for _, q := range quotes[1:] {
		sum += q
		if q < lo {
			lo = q
		}
		if q > hi {
			hi = q
		}
	}
	avg := sum / float64(len(quotes))
	obs.Avg, obs.Min, obs.Max = &avg, &lo, &hi
	return obs
}

// DateKey returns the calendar-date key the observation is stored under.
func (o Observation) DateKey() string {
	return o.Timestamp.Format("2006-01-02")
}
