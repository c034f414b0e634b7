package sink

import (
	"github.com/at-tailor-made/market-intelligence/internal/model"
	"github.com/at-tailor-made/market-intelligence/internal/track"
)

// Sink archives tracking results and weekly reports to a workspace database
// so they can be browsed outside the JSON series files. Sink errors are
// logged and swallowed by callers; archiving never aborts a batch.
type Sink interface {
	RecordFlights(results []track.Result) error
	RecordExchange(results []track.Result) error
	RecordReport(rep *model.Report) error
	Close() error
}
