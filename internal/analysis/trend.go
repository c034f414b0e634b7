package analysis

import (
	"errors"
	"math"
	"time"

	"github.com/at-tailor-made/market-intelligence/internal/model"
)

// ErrNoData is returned when a series has no usable observation inside the
// lookback window. Callers skip the series; this is never a hard failure.
var ErrNoData = errors.New("no data in window")

// ComputeTrend derives the trend summary for one series over the trailing
// window. Dates qualify when >= now minus windowDays; the comparison is on
// the ISO date strings, which the store guarantees are zero-padded so
// lexicographic order is chronological. The earliest boundary is the first
// observation of the earliest qualifying date, the latest boundary the last
// observation of the latest qualifying date (within-day order is append
// order). DeltaPct guards division by zero and is rounded to two decimals.
func ComputeTrend(doc model.SeriesDocument, seriesKey, name string, now time.Time, windowDays int) (model.TrendSummary, error) {
	cutoff := now.AddDate(0, 0, -windowDays).Format("2006-01-02")

	var dates []string
	hasMean := false
	for _, date := range doc.Dates() {
		if date < cutoff || len(doc[date]) == 0 {
			continue
		}
		dates = append(dates, date)
		if !hasMean {
			for _, o := range doc[date] {
				if o.Avg != nil {
					hasMean = true
					break
				}
			}
		}
	}
	if len(dates) == 0 || !hasMean {
		return model.TrendSummary{}, ErrNoData
	}

	earliestDay := doc[dates[0]]
	latestDay := doc[dates[len(dates)-1]]
	earliest := earliestDay[0]
	latest := latestDay[len(latestDay)-1]

	summary := model.TrendSummary{
		SeriesKey: seriesKey,
		Name:      name,
		Latest:    latest.Avg,
		Earliest:  earliest.Avg,
		LatestMin: latest.Min,
	}
	if latest.Avg != nil && earliest.Avg != nil {
		summary.Delta = *latest.Avg - *earliest.Avg
		if *earliest.Avg != 0 {
			summary.DeltaPct = round2(summary.Delta / *earliest.Avg * 100)
		}
	}
	return summary, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
