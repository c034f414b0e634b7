package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/at-tailor-made/market-intelligence/internal/model"
)

// Money is an amount in a single currency. Decimal arithmetic keeps quoted
// conversions exact instead of accumulating float error.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{
		Amount:   amount,
		Currency: strings.ToUpper(currency),
	}
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency)
}

// Convert converts m across the pair at the given rate, where rate is
// base-currency units per one quote unit. Base to quote divides, quote to
// base multiplies; results carry two decimals.
func Convert(m Money, pair model.Pair, rate float64) (Money, error) {
	r := decimal.NewFromFloat(rate)
	if r.Sign() <= 0 {
		return Money{}, fmt.Errorf("money: invalid rate %v for %s", rate, pair.Key())
	}
	switch m.Currency {
	case pair.Base:
		return Money{Amount: m.Amount.Div(r).Round(2), Currency: pair.Quote}, nil
	case pair.Quote:
		return Money{Amount: m.Amount.Mul(r).Round(2), Currency: pair.Base}, nil
	default:
		return Money{}, fmt.Errorf("money: %s is not part of pair %s", m.Currency, pair.Key())
	}
}

// LatestRate returns the most recent recorded mean rate in the document,
// scanning dates newest first and skipping no-data observations.
func LatestRate(doc model.SeriesDocument) (float64, bool) {
	dates := doc.Dates()
	for i := len(dates) - 1; i >= 0; i-- {
		obs := doc[dates[i]]
		for j := len(obs) - 1; j >= 0; j-- {
			if obs[j].Avg != nil {
				return *obs[j].Avg, true
			}
		}
	}
	return 0, false
}
