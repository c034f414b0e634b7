package sink

import (
	"github.com/at-tailor-made/market-intelligence/internal/model"
	"github.com/at-tailor-made/market-intelligence/internal/track"
)

// NoopSink is a no-op implementation used when no database is configured.
type NoopSink struct{}

func NewNoopSink() *NoopSink { return &NoopSink{} }

func (n *NoopSink) RecordFlights(_ []track.Result) error  { return nil }
func (n *NoopSink) RecordExchange(_ []track.Result) error { return nil }
func (n *NoopSink) RecordReport(_ *model.Report) error    { return nil }
func (n *NoopSink) Close() error                          { return nil }
