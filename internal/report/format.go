package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/at-tailor-made/market-intelligence/internal/model"
)

// FormatText renders the report as a chat digest. HTML bold tags match the
// Telegram parse mode used by the notifier. Per-kind maps are walked in
// sorted key order so the output is deterministic.
func FormatText(rep *model.Report) string {
	var b strings.Builder

	b.WriteString("📊 <b>INFORME SEMANAL TAILOR MADE</b>\n")
	b.WriteString(fmt.Sprintf("Periodo: %d días\n", rep.WindowDays))
	b.WriteString(fmt.Sprintf("Generado: %s\n\n", rep.GeneratedAt.Format("2006-01-02 15:04")))

	// Flights
	b.WriteString("✈️ <b>Vuelos</b>\n\n")
	for _, key := range sortedKeys(rep.Flights) {
		t := rep.Flights[key]
		emoji := "➡️"
		if t.Delta < 0 {
			emoji = "📉"
		} else if t.Delta > 0 {
			emoji = "📈"
		}
		b.WriteString(fmt.Sprintf("%s %s\n", emoji, t.Name))
		b.WriteString(fmt.Sprintf("   Actual: %s USD | Min: %s USD\n", usd0(t.Latest), usd0(t.LatestMin)))
		b.WriteString(fmt.Sprintf("   Tendencia: %+.1f%%\n", t.DeltaPct))
	}

	// Exchange rates
	if len(rep.Exchange) > 0 {
		b.WriteString("\n💱 <b>Tipo de Cambio</b>\n\n")
		for _, key := range sortedKeys(rep.Exchange) {
			t := rep.Exchange[key]
			emoji := "📈"
			if t.Delta < 0 {
				emoji = "📉"
			}
			b.WriteString(fmt.Sprintf("%s %s: %s (%+.2f)\n", emoji, key, num2(t.Latest), t.Delta))
		}
	}

	// Opportunities
	if len(rep.Insights) > 0 {
		b.WriteString("\n💡 <b>Oportunidades</b>\n\n")
		for _, insight := range rep.Insights {
			b.WriteString(fmt.Sprintf("• %s\n", insight))
		}
	}

	return b.String()
}

// FormatAnalysis renders the recent history table for one series, newest
// date first, capped at maxDates dates. Only observations with a recorded
// mean become rows; empty no-data observations are skipped.
func FormatAnalysis(name string, doc model.SeriesDocument, maxDates int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("\n%s\n\n", name))
	b.WriteString(fmt.Sprintf("%-12s %-10s %-10s %-10s\n", "Date", "Avg", "Min", "Max"))
	b.WriteString(strings.Repeat("-", 42))
	b.WriteString("\n")

	dates := doc.Dates()
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	if maxDates > 0 && len(dates) > maxDates {
		dates = dates[:maxDates]
	}
	for _, date := range dates {
		for _, o := range doc[date] {
			if o.Avg == nil {
				continue
			}
			b.WriteString(fmt.Sprintf("%-12s $%-9.2f $%-9.2f $%-9.2f\n", date, *o.Avg, *o.Min, *o.Max))
		}
	}

	return b.String()
}

func sortedKeys(m map[string]model.TrendSummary) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func usd0(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("$%.0f", *v)
}

func num2(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}
