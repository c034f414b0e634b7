package sink

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/at-tailor-made/market-intelligence/internal/model"
	"github.com/at-tailor-made/market-intelligence/internal/track"
)

// SQLiteSink archives tracking results and reports to a SQLite database.
type SQLiteSink struct {
	db  *sql.DB
	log zerolog.Logger
	mu  sync.Mutex
}

// NewSQLiteSink opens (or creates) the SQLite database and runs migrations.
func NewSQLiteSink(dbPath string, log zerolog.Logger) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ad-hoc reads don't block the tracking runs.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteSink{db: db, log: log.With().Str("component", "sink").Logger()}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	s.log.Info().Str("path", dbPath).Msg("sqlite sink opened")
	return s, nil
}

func (s *SQLiteSink) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_flights (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			date      TEXT NOT NULL,
			route     TEXT NOT NULL,
			avg_price REAL,
			min_price REAL,
			max_price REAL,
			payload   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_flights_date ON daily_flights(date)`,

		`CREATE TABLE IF NOT EXISTS exchange_rates (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			date      TEXT NOT NULL,
			pair      TEXT NOT NULL,
			rate      REAL,
			payload   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exchange_date ON exchange_rates(date)`,

		`CREATE TABLE IF NOT EXISTS weekly_reports (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			date        TEXT NOT NULL,
			window_days INTEGER NOT NULL,
			routes      TEXT,
			pairs       TEXT,
			insights    TEXT,
			payload     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_date ON weekly_reports(date)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// RecordFlights archives one row per successfully stored route observation.
// Pointer stats pass through as-is; nil means the day had no quotes and
// lands as NULL.
func (s *SQLiteSink) RecordFlights(results []track.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range results {
		if r.Err != nil {
			continue
		}
		payload, err := json.Marshal(r.Observation)
		if err != nil {
			return fmt.Errorf("marshal observation: %w", err)
		}
		if _, err := s.db.Exec(`INSERT INTO daily_flights
			(timestamp, date, route, avg_price, min_price, max_price, payload)
			VALUES (?,?,?,?,?,?,?)`,
			r.Observation.Timestamp.Unix(), r.Observation.DateKey(), r.Key,
			r.Observation.Avg, r.Observation.Min, r.Observation.Max,
			string(payload),
		); err != nil {
			return fmt.Errorf("insert daily flight %s: %w", r.Key, err)
		}
	}
	return nil
}

func (s *SQLiteSink) RecordExchange(results []track.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range results {
		if r.Err != nil {
			continue
		}
		payload, err := json.Marshal(r.Observation)
		if err != nil {
			return fmt.Errorf("marshal observation: %w", err)
		}
		if _, err := s.db.Exec(`INSERT INTO exchange_rates
			(timestamp, date, pair, rate, payload)
			VALUES (?,?,?,?,?)`,
			r.Observation.Timestamp.Unix(), r.Observation.DateKey(), r.Key,
			r.Observation.Avg, string(payload),
		); err != nil {
			return fmt.Errorf("insert exchange rate %s: %w", r.Key, err)
		}
	}
	return nil
}

func (s *SQLiteSink) RecordReport(rep *model.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	insights := "No significant insights"
	if len(rep.Insights) > 0 {
		insights = strings.Join(rep.Insights, "\n")
	}

	_, err = s.db.Exec(`INSERT INTO weekly_reports
		(timestamp, date, window_days, routes, pairs, insights, payload)
		VALUES (?,?,?,?,?,?,?)`,
		rep.GeneratedAt.Unix(), rep.GeneratedAt.Format("2006-01-02"), rep.WindowDays,
		strings.Join(summaryKeys(rep.Flights), ","),
		strings.Join(summaryKeys(rep.Exchange), ","),
		insights, string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert weekly report: %w", err)
	}
	return nil
}

func (s *SQLiteSink) Close() error {
	s.log.Info().Msg("closing sqlite sink")
	return s.db.Close()
}

func summaryKeys(m map[string]model.TrendSummary) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
