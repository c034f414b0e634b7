package money

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/at-tailor-made/market-intelligence/internal/model"
)

var mxnUSD = model.Pair{Base: "MXN", Quote: "USD"}

func TestConvert_BaseToQuote(t *testing.T) {
	in := NewMoney(decimal.NewFromInt(1500), "MXN")

	out, err := Convert(in, mxnUSD, 17.22)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got := out.String(); got != "87.11 USD" {
		t.Errorf("expected 87.11 USD, got %s", got)
	}
}

func TestConvert_QuoteToBase(t *testing.T) {
	in := NewMoney(decimal.NewFromInt(100), "USD")

	out, err := Convert(in, mxnUSD, 17.22)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got := out.String(); got != "1722.00 MXN" {
		t.Errorf("expected 1722.00 MXN, got %s", got)
	}
}

func TestConvert_UnknownCurrency(t *testing.T) {
	in := NewMoney(decimal.NewFromInt(10), "EUR")

	_, err := Convert(in, mxnUSD, 17.22)
	if err == nil {
		t.Fatal("expected error for currency outside the pair")
	}
	if !strings.Contains(err.Error(), "not part of pair") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestConvert_InvalidRate(t *testing.T) {
	in := NewMoney(decimal.NewFromInt(10), "MXN")

	for _, rate := range []float64{0, -17.22} {
		if _, err := Convert(in, mxnUSD, rate); err == nil {
			t.Errorf("expected error for rate %v", rate)
		}
	}
}

func TestNewMoney_UppercasesCurrency(t *testing.T) {
	m := NewMoney(decimal.NewFromInt(5), "usd")
	if m.Currency != "USD" {
		t.Errorf("expected USD, got %s", m.Currency)
	}
}

func TestLatestRate_SkipsNoData(t *testing.T) {
	older := model.NewObservation(time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC), []float64{17.5})
	newer := model.NewObservation(time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC), []float64{17.8})
	noData := model.NewObservation(time.Date(2024, 1, 8, 15, 0, 0, 0, time.UTC), nil)
	doc := model.SeriesDocument{
		"2024-01-06": {older},
		"2024-01-08": {newer, noData},
	}

	rate, ok := LatestRate(doc)
	if !ok {
		t.Fatal("expected a rate")
	}
	if rate != 17.8 {
		t.Errorf("expected most recent recorded rate 17.8, got %v", rate)
	}
}

func TestLatestRate_NoData(t *testing.T) {
	if _, ok := LatestRate(model.SeriesDocument{}); ok {
		t.Error("expected no rate from empty document")
	}

	empty := model.NewObservation(time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC), nil)
	doc := model.SeriesDocument{"2024-01-08": {empty}}
	if _, ok := LatestRate(doc); ok {
		t.Error("expected no rate when every observation is empty")
	}
}
