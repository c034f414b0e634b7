package store

import (
	"encoding/json"
	"time"

	"github.com/at-tailor-made/market-intelligence/internal/model"
)

// The persisted field names differ by kind so documents stay readable by
// everything that already consumes the series files: flight observations
// carry prices/avg_price/min_price/max_price, exchange observations carry
// rates/rate/min_rate/max_rate. In memory both kinds share model.Observation.

type priceRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Prices    []float64 `json:"prices"`
	Avg       *float64  `json:"avg_price"`
	Min       *float64  `json:"min_price"`
	Max       *float64  `json:"max_price"`
}

type rateRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Rates     []float64 `json:"rates"`
	Avg       *float64  `json:"rate"`
	Min       *float64  `json:"min_rate"`
	Max       *float64  `json:"max_rate"`
}

func encodeDocument(kind model.Kind, doc model.SeriesDocument) ([]byte, error) {
	if kind == model.KindExchange {
		out := make(map[string][]rateRecord, len(doc))
		for date, entries := range doc {
			recs := make([]rateRecord, len(entries))
			for i, o := range entries {
				recs[i] = rateRecord{Timestamp: o.Timestamp, Rates: quotesOrEmpty(o.Quotes), Avg: o.Avg, Min: o.Min, Max: o.Max}
			}
			out[date] = recs
		}
		return json.MarshalIndent(out, "", "  ")
	}

	out := make(map[string][]priceRecord, len(doc))
	for date, entries := range doc {
		recs := make([]priceRecord, len(entries))
		for i, o := range entries {
			recs[i] = priceRecord{Timestamp: o.Timestamp, Prices: quotesOrEmpty(o.Quotes), Avg: o.Avg, Min: o.Min, Max: o.Max}
		}
		out[date] = recs
	}
	return json.MarshalIndent(out, "", "  ")
}

func decodeDocument(kind model.Kind, data []byte) (model.SeriesDocument, error) {
	doc := model.SeriesDocument{}

	if kind == model.KindExchange {
		var raw map[string][]rateRecord
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		for date, recs := range raw {
			entries := make([]model.Observation, len(recs))
			for i, r := range recs {
				entries[i] = model.Observation{Timestamp: r.Timestamp, Quotes: quotesOrNil(r.Rates), Avg: r.Avg, Min: r.Min, Max: r.Max}
			}
			doc[date] = entries
		}
		return doc, nil
	}

	var raw map[string][]priceRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for date, recs := range raw {
		entries := make([]model.Observation, len(recs))
		for i, r := range recs {
			entries[i] = model.Observation{Timestamp: r.Timestamp, Quotes: quotesOrNil(r.Prices), Avg: r.Avg, Min: r.Min, Max: r.Max}
		}
		doc[date] = entries
	}
	return doc, nil
}

// quotesOrEmpty keeps "no quotes" as an empty JSON array rather than null.
func quotesOrEmpty(quotes []float64) []float64 {
	if quotes == nil {
		return []float64{}
	}
	return quotes
}

// quotesOrNil canonicalizes an empty persisted array back to nil.
func quotesOrNil(quotes []float64) []float64 {
	if len(quotes) == 0 {
		return nil
	}
	return quotes
}
