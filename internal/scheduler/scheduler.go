package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/at-tailor-made/market-intelligence/internal/model"
	"github.com/at-tailor-made/market-intelligence/internal/notify"
	"github.com/at-tailor-made/market-intelligence/internal/report"
	"github.com/at-tailor-made/market-intelligence/internal/sink"
	"github.com/at-tailor-made/market-intelligence/internal/track"
)

// Scheduler manages the serve-mode cron tasks: the daily tracking pass and
// the weekly report.
type Scheduler struct {
	Cron      *cron.Cron
	Tracker   *track.Tracker
	Assembler *report.Assembler
	Notifier  *notify.Telegram // nil disables delivery, tasks still run
	Sink      sink.Sink
	Ctx       context.Context

	Routes              []model.Route
	Pairs               []model.Pair
	WindowDays          int
	DepartureOffsetDays int

	log zerolog.Logger
}

// NewScheduler creates a new Scheduler with the stock report window and
// departure offset.
func NewScheduler(ctx context.Context, tr *track.Tracker, asm *report.Assembler, tn *notify.Telegram, snk sink.Sink, routes []model.Route, pairs []model.Pair, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:                cron.New(cron.WithSeconds()),
		Tracker:             tr,
		Assembler:           asm,
		Notifier:            tn,
		Sink:                snk,
		Ctx:                 ctx,
		Routes:              routes,
		Pairs:               pairs,
		WindowDays:          7,
		DepartureOffsetDays: 30,
		log:                 log.With().Str("component", "scheduler").Logger(),
	}
}

// RegisterAll registers the daily and weekly tasks.
func (s *Scheduler) RegisterAll(dailyCron, weeklyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyTask); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.log.Info().Msg("scheduler stopped")
}

// RunDailyNow executes the daily task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	s.log.Info().Msg("running daily tracking")

	flights := s.Tracker.TrackFlights(s.Ctx, s.Routes, s.DepartureOffsetDays)
	if err := s.Sink.RecordFlights(flights); err != nil {
		s.log.Error().Err(err).Msg("record flights")
	}

	exchange := s.Tracker.TrackExchange(s.Ctx, s.Pairs)
	if err := s.Sink.RecordExchange(exchange); err != nil {
		s.log.Error().Err(err).Msg("record exchange")
	}
}

func (s *Scheduler) weeklyTask() {
	s.log.Info().Msg("running weekly report")

	rep := s.Assembler.Assemble(time.Now(), s.WindowDays)
	s.trySend(report.FormatText(rep))
	if err := s.Sink.RecordReport(rep); err != nil {
		s.log.Error().Err(err).Msg("record report")
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.log.Error().Err(err).Msg("send notification")
	}
}
