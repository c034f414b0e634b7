package report

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/at-tailor-made/market-intelligence/internal/analysis"
	"github.com/at-tailor-made/market-intelligence/internal/model"
	"github.com/at-tailor-made/market-intelligence/internal/store"
)

// Assembler builds the weekly report from stored series. Series that are
// missing or empty inside the window are skipped silently; series that fail
// to load are logged and skipped, the rest of the batch continues.
type Assembler struct {
	store      *store.Store
	routes     []model.Route
	pairs      []model.Pair
	thresholds analysis.Thresholds
	log        zerolog.Logger
}

func NewAssembler(st *store.Store, routes []model.Route, pairs []model.Pair, th analysis.Thresholds, log zerolog.Logger) *Assembler {
	return &Assembler{
		store:      st,
		routes:     routes,
		pairs:      pairs,
		thresholds: th,
		log:        log.With().Str("component", "report").Logger(),
	}
}

// Assemble computes trend summaries for every configured route and pair over
// the trailing window and collects threshold insights. Insight order follows
// configuration order, flights before exchange.
func (a *Assembler) Assemble(now time.Time, windowDays int) *model.Report {
	rep := &model.Report{
		GeneratedAt: now,
		WindowDays:  windowDays,
		Flights:     make(map[string]model.TrendSummary),
		Exchange:    make(map[string]model.TrendSummary),
		Insights:    []string{},
	}

	for _, route := range a.routes {
		summary, ok := a.summarize(model.KindFlights, route.Key(), route.Name, now, windowDays)
		if !ok {
			continue
		}
		rep.Flights[route.Key()] = summary
		rep.Insights = append(rep.Insights, analysis.Classify(model.KindFlights, summary, a.thresholds)...)
	}

	for _, pair := range a.pairs {
		summary, ok := a.summarize(model.KindExchange, pair.Key(), pair.Key(), now, windowDays)
		if !ok {
			continue
		}
		rep.Exchange[pair.Key()] = summary
		rep.Insights = append(rep.Insights, analysis.Classify(model.KindExchange, summary, a.thresholds)...)
	}

	return rep
}

func (a *Assembler) summarize(kind model.Kind, key, name string, now time.Time, windowDays int) (model.TrendSummary, bool) {
	doc, err := a.store.Load(kind, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			a.log.Error().Err(err).Str("series", store.SeriesName(kind, key)).Msg("skipping unreadable series")
		}
		return model.TrendSummary{}, false
	}

	summary, err := analysis.ComputeTrend(doc, key, name, now, windowDays)
	if err != nil {
		if !errors.Is(err, analysis.ErrNoData) {
			a.log.Error().Err(err).Str("series", store.SeriesName(kind, key)).Msg("trend computation failed")
		}
		return model.TrendSummary{}, false
	}
	return summary, true
}
