package analysis

import (
	"errors"
	"testing"
	"time"

	"github.com/at-tailor-made/market-intelligence/internal/model"
)

func dayObs(year int, month time.Month, day int, quotes ...float64) model.Observation {
	return model.NewObservation(time.Date(year, month, day, 12, 0, 0, 0, time.UTC), quotes)
}

func TestComputeTrend_WeeklyDecline(t *testing.T) {
	doc := model.SeriesDocument{
		"2024-01-02": {dayObs(2024, 1, 2, 55)},
		"2024-01-05": {dayObs(2024, 1, 5, 60)},
		"2024-01-08": {dayObs(2024, 1, 8, 45)},
	}
	now := time.Date(2024, 1, 8, 18, 0, 0, 0, time.UTC)

	sum, err := ComputeTrend(doc, "GDL-CUN", "Guadalajara → Cancún", now, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Earliest == nil || *sum.Earliest != 55 {
		t.Errorf("expected earliest 55, got %v", sum.Earliest)
	}
	if sum.Latest == nil || *sum.Latest != 45 {
		t.Errorf("expected latest 45, got %v", sum.Latest)
	}
	if sum.Delta != -10 {
		t.Errorf("expected delta -10, got %v", sum.Delta)
	}
	if sum.DeltaPct != -18.18 {
		t.Errorf("expected delta pct -18.18, got %v", sum.DeltaPct)
	}
	if sum.LatestMin == nil || *sum.LatestMin != 45 {
		t.Errorf("expected latest min 45, got %v", sum.LatestMin)
	}
}

func TestComputeTrend_WindowExcludesOldDates(t *testing.T) {
	doc := model.SeriesDocument{
		"2023-12-20": {dayObs(2023, 12, 20, 100)},
		"2024-01-01": {dayObs(2024, 1, 1, 55)},
		"2024-01-08": {dayObs(2024, 1, 8, 45)},
	}
	now := time.Date(2024, 1, 8, 18, 0, 0, 0, time.UTC)

	// Cutoff is 2024-01-01, inclusive.
	sum, err := ComputeTrend(doc, "GDL-CUN", "Cancún", now, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *sum.Earliest != 55 {
		t.Errorf("expected earliest from cutoff date, got %v", *sum.Earliest)
	}
}

func TestComputeTrend_BoundaryObservationsWithinDay(t *testing.T) {
	doc := model.SeriesDocument{
		"2024-01-02": {dayObs(2024, 1, 2, 50), dayObs(2024, 1, 2, 60)},
		"2024-01-08": {dayObs(2024, 1, 8, 40), dayObs(2024, 1, 8, 44)},
	}
	now := time.Date(2024, 1, 8, 18, 0, 0, 0, time.UTC)

	sum, err := ComputeTrend(doc, "GDL-MIA", "Miami", now, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// First observation of earliest day, last observation of latest day.
	if *sum.Earliest != 50 {
		t.Errorf("expected earliest 50, got %v", *sum.Earliest)
	}
	if *sum.Latest != 44 {
		t.Errorf("expected latest 44, got %v", *sum.Latest)
	}
}

func TestComputeTrend_SingleDate(t *testing.T) {
	doc := model.SeriesDocument{
		"2024-01-08": {dayObs(2024, 1, 8, 45)},
	}
	now := time.Date(2024, 1, 8, 18, 0, 0, 0, time.UTC)

	sum, err := ComputeTrend(doc, "GDL-CUN", "Cancún", now, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Delta != 0 || sum.DeltaPct != 0 {
		t.Errorf("expected flat trend for single date, got delta=%v pct=%v", sum.Delta, sum.DeltaPct)
	}
}

func TestComputeTrend_ZeroEarliestMean(t *testing.T) {
	doc := model.SeriesDocument{
		"2024-01-02": {dayObs(2024, 1, 2, 0)},
		"2024-01-08": {dayObs(2024, 1, 8, 50)},
	}
	now := time.Date(2024, 1, 8, 18, 0, 0, 0, time.UTC)

	sum, err := ComputeTrend(doc, "GDL-CUN", "Cancún", now, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Delta != 50 {
		t.Errorf("expected delta 50, got %v", sum.Delta)
	}
	if sum.DeltaPct != 0 {
		t.Errorf("expected pct 0 for zero earliest mean, got %v", sum.DeltaPct)
	}
}

func TestComputeTrend_NoDataBoundary(t *testing.T) {
	// Earliest day recorded no quotes; trend must not invent a delta.
	doc := model.SeriesDocument{
		"2024-01-02": {dayObs(2024, 1, 2)},
		"2024-01-08": {dayObs(2024, 1, 8, 45)},
	}
	now := time.Date(2024, 1, 8, 18, 0, 0, 0, time.UTC)

	sum, err := ComputeTrend(doc, "GDL-CUN", "Cancún", now, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Earliest != nil {
		t.Errorf("expected nil earliest, got %v", *sum.Earliest)
	}
	if sum.Delta != 0 || sum.DeltaPct != 0 {
		t.Errorf("expected zero delta for nil boundary, got delta=%v pct=%v", sum.Delta, sum.DeltaPct)
	}
	if sum.Latest == nil || *sum.Latest != 45 {
		t.Errorf("expected latest 45, got %v", sum.Latest)
	}
}

func TestComputeTrend_NoData(t *testing.T) {
	now := time.Date(2024, 1, 8, 18, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		doc  model.SeriesDocument
	}{
		{"empty document", model.SeriesDocument{}},
		{"only old dates", model.SeriesDocument{
			"2023-11-01": {dayObs(2023, 11, 1, 100)},
		}},
		{"only empty observations", model.SeriesDocument{
			"2024-01-05": {dayObs(2024, 1, 5)},
			"2024-01-08": {dayObs(2024, 1, 8)},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeTrend(tc.doc, "GDL-CUN", "Cancún", now, 7)
			if !errors.Is(err, ErrNoData) {
				t.Errorf("expected ErrNoData, got %v", err)
			}
		})
	}
}
