package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/at-tailor-made/market-intelligence/internal/model"
)

// Store is the append-only record store. Every append is a full
// read-modify-write of the series document; a process-local mutex serializes
// appends so a single run never loses an update. Two concurrent processes
// appending to the same series still race (last writer wins on the whole
// document), which matches the single-scheduled-run usage model.
type Store struct {
	backend Backend
	log     zerolog.Logger
	mu      sync.Mutex
}

// New wraps a Backend with the append/load document semantics.
func New(backend Backend, log zerolog.Logger) *Store {
	return &Store{backend: backend, log: log}
}

// SeriesName derives the stable document name for a series,
// e.g. ("flights", "GDL-CUN") -> "flights_GDL-CUN".
func SeriesName(kind model.Kind, seriesKey string) string {
	return string(kind) + "_" + seriesKey
}

// Append records one observation under the calendar date of its timestamp,
// creating the series document and the date key as needed, and returns the
// stored observation with derived stats. Empty quotes are appended too: a
// no-data day is recorded, not dropped. A corrupt persisted document fails
// the append without touching the stored bytes.
func (s *Store) Append(kind model.Kind, seriesKey string, ts time.Time, quotes []float64) (model.Observation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := SeriesName(kind, seriesKey)
	doc, err := s.load(kind, name)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return model.Observation{}, err
		}
		doc = model.SeriesDocument{}
	}

	obs := model.NewObservation(ts, quotes)
	date := obs.DateKey()
	doc[date] = append(doc[date], obs)

	data, err := encodeDocument(kind, doc)
	if err != nil {
		return model.Observation{}, fmt.Errorf("encode series %s: %w", name, err)
	}
	if err := s.backend.Save(name, data); err != nil {
		return model.Observation{}, err
	}

	s.log.Debug().
		Str("series", name).
		Str("date", date).
		Int("quotes", len(obs.Quotes)).
		Msg("observation appended")
	return obs, nil
}

// Load returns the full series document, or ErrNotFound when the series has
// never been written.
func (s *Store) Load(kind model.Kind, seriesKey string) (model.SeriesDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(kind, SeriesName(kind, seriesKey))
}

func (s *Store) load(kind model.Kind, name string) (model.SeriesDocument, error) {
	data, err := s.backend.Load(name)
	if err != nil {
		return nil, err
	}
	doc, err := decodeDocument(kind, data)
	if err != nil {
		return nil, fmt.Errorf("parse series %s: %w", name, err)
	}
	return doc, nil
}

// Close releases the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
