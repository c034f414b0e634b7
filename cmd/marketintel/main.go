package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/at-tailor-made/market-intelligence/internal/config"
	"github.com/at-tailor-made/market-intelligence/internal/fetch"
	"github.com/at-tailor-made/market-intelligence/internal/logging"
	"github.com/at-tailor-made/market-intelligence/internal/model"
	"github.com/at-tailor-made/market-intelligence/internal/money"
	"github.com/at-tailor-made/market-intelligence/internal/notify"
	"github.com/at-tailor-made/market-intelligence/internal/report"
	"github.com/at-tailor-made/market-intelligence/internal/scheduler"
	"github.com/at-tailor-made/market-intelligence/internal/sink"
	"github.com/at-tailor-made/market-intelligence/internal/store"
	"github.com/at-tailor-made/market-intelligence/internal/track"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var code int
	switch os.Args[1] {
	case "track":
		code = runTrack(os.Args[2:])
	case "report":
		code = runReport(os.Args[2:])
	case "analyze":
		code = runAnalyze(os.Args[2:])
	case "convert":
		code = runConvert(os.Args[2:])
	case "serve":
		code = runServe(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		printUsage()
		code = 2
	}
	os.Exit(code)
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Tailor Made market intelligence

Usage:
  marketintel <command> [flags]

Commands:
  track     fetch and record current data (--type flights|exchange, --sync)
  report    generate the weekly digest (--days, --format text|json, --notify, --sync)
  analyze   print recent history for one route (--route GDL-CUN)
  convert   convert an amount at the latest stored rate (--amount, --from, --to)
  serve     run the cron scheduler (daily tracking, weekly report)

Every command accepts -config; the default path is configs/config.yaml or
the MARKETINTEL_CONFIG environment variable.
`)
}

// app bundles the components every subcommand needs.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	store *store.Store
}

func newApp(cfgPath string) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	var backend store.Backend
	switch cfg.Storage.Backend {
	case "badger":
		backend, err = store.NewBadgerBackend(cfg.Storage.Dir)
	default:
		backend, err = store.NewFileBackend(cfg.Storage.Dir)
	}
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, log: logger, store: store.New(backend, logger)}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Error().Err(err).Msg("close store")
	}
}

func configFlag(fs *flag.FlagSet) *string {
	return fs.String("config", defaultConfigPath(), "config file path")
}

func defaultConfigPath() string {
	if v := os.Getenv("MARKETINTEL_CONFIG"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

func fail(err error) int {
	fmt.Fprintf(os.Stderr, "marketintel: %v\n", err)
	return 1
}

// newPriceFetcher selects Amadeus when credentials are present and falls
// back to mock prices otherwise, so demo runs work out of the box.
func newPriceFetcher(cfg *config.Config, log zerolog.Logger) fetch.PriceFetcher {
	if cfg.Amadeus.APIKey != "" && cfg.Amadeus.APISecret != "" {
		return fetch.NewAmadeusFetcher(cfg.Amadeus.BaseURL, cfg.Amadeus.APIKey, cfg.Amadeus.APISecret, cfg.Proxy)
	}
	log.Warn().Msg("amadeus credentials not set, using mock prices")
	return fetch.NewMockPriceFetcher()
}

func newRateFetcher(cfg *config.Config) fetch.RateFetcher {
	if cfg.Exchange.Provider == "mock" {
		return fetch.NewMockRateFetcher()
	}
	return fetch.NewFrankfurterFetcher(cfg.Exchange.BaseURL, cfg.Proxy)
}

// newSink opens the workspace database when archiving was requested,
// degrading to a noop sink if it cannot be opened.
func newSink(cfg *config.Config, log zerolog.Logger, enabled bool) sink.Sink {
	if !enabled || cfg.Database.SQLitePath == "" {
		return sink.NewNoopSink()
	}
	s, err := sink.NewSQLiteSink(cfg.Database.SQLitePath, log)
	if err != nil {
		log.Warn().Err(err).Msg("open sqlite sink failed, archiving disabled")
		return sink.NewNoopSink()
	}
	return s
}

func runTrack(args []string) int {
	fs := flag.NewFlagSet("track", flag.ExitOnError)
	cfgPath := configFlag(fs)
	kind := fs.String("type", "", "data to track: flights or exchange")
	syncDB := fs.Bool("sync", false, "archive results to the workspace database")
	fs.Parse(args)

	if *kind != "flights" && *kind != "exchange" {
		fmt.Fprintln(os.Stderr, "track: --type must be flights or exchange")
		return 2
	}

	a, err := newApp(*cfgPath)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	tracker := track.New(a.store, newPriceFetcher(a.cfg, a.log), newRateFetcher(a.cfg), a.log)
	snk := newSink(a.cfg, a.log, *syncDB)
	defer snk.Close()

	ctx := context.Background()
	var results []track.Result
	if *kind == "flights" {
		results = tracker.TrackFlights(ctx, a.cfg.Routes, a.cfg.Report.DepartureOffsetDays)
		if err := snk.RecordFlights(results); err != nil {
			a.log.Error().Err(err).Msg("archive flights")
		}
	} else {
		results = tracker.TrackExchange(ctx, a.cfg.Pairs)
		if err := snk.RecordExchange(results); err != nil {
			a.log.Error().Err(err).Msg("archive exchange")
		}
	}

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fail(err)
	}
	fmt.Println(string(out))

	for _, r := range results {
		if r.Err != nil {
			return 1
		}
	}
	return 0
}

func runReport(args []string) int {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	cfgPath := configFlag(fs)
	days := fs.Int("days", 0, "lookback window in days (default from config)")
	format := fs.String("format", "text", "output format: text or json")
	syncDB := fs.Bool("sync", false, "archive the report to the workspace database")
	notifyTG := fs.Bool("notify", false, "send the report via Telegram")
	fs.Parse(args)

	if *format != "text" && *format != "json" {
		fmt.Fprintln(os.Stderr, "report: --format must be text or json")
		return 2
	}

	a, err := newApp(*cfgPath)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	windowDays := a.cfg.Report.WindowDays
	if *days > 0 {
		windowDays = *days
	}

	asm := report.NewAssembler(a.store, a.cfg.Routes, a.cfg.Pairs, a.cfg.Report.Thresholds, a.log)
	rep := asm.Assemble(time.Now(), windowDays)

	if *format == "json" {
		out, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fail(err)
		}
		fmt.Println(string(out))
	} else {
		fmt.Println(report.FormatText(rep))
	}

	snk := newSink(a.cfg, a.log, *syncDB)
	defer snk.Close()
	if err := snk.RecordReport(rep); err != nil {
		a.log.Error().Err(err).Msg("archive report")
	}

	if *notifyTG {
		tn, err := notify.NewTelegram(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy, a.log)
		if err != nil {
			return fail(err)
		}
		if err := tn.SendWithRetry(context.Background(), report.FormatText(rep), 3); err != nil {
			return fail(err)
		}
	}
	return 0
}

func runAnalyze(args []string) int {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	cfgPath := configFlag(fs)
	route := fs.String("route", "", "route key, e.g. GDL-CUN")
	fs.Parse(args)

	if *route == "" {
		fmt.Fprintln(os.Stderr, "analyze: --route is required")
		return 2
	}

	a, err := newApp(*cfgPath)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	name := *route
	for _, r := range a.cfg.Routes {
		if r.Key() == *route {
			name = r.Name
			break
		}
	}

	doc, err := a.store.Load(model.KindFlights, *route)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "No data found for route %s\n", *route)
			return 1
		}
		return fail(err)
	}

	fmt.Print(report.FormatAnalysis(name, doc, 7))
	return 0
}

func runConvert(args []string) int {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	cfgPath := configFlag(fs)
	amount := fs.Float64("amount", 0, "amount to convert")
	from := fs.String("from", "", "source currency code")
	to := fs.String("to", "", "target currency code")
	fs.Parse(args)

	if *amount <= 0 || *from == "" || *to == "" {
		fmt.Fprintln(os.Stderr, "convert: --amount, --from and --to are required")
		return 2
	}

	a, err := newApp(*cfgPath)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	fromCur := strings.ToUpper(*from)
	toCur := strings.ToUpper(*to)

	var pair model.Pair
	found := false
	for _, p := range a.cfg.Pairs {
		if (p.Base == fromCur && p.Quote == toCur) || (p.Base == toCur && p.Quote == fromCur) {
			pair = p
			found = true
			break
		}
	}
	if !found {
		fmt.Fprintf(os.Stderr, "No configured pair for %s/%s\n", fromCur, toCur)
		return 1
	}

	doc, err := a.store.Load(model.KindExchange, pair.Key())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "No rate data for %s\n", pair.Key())
			return 1
		}
		return fail(err)
	}
	rate, ok := money.LatestRate(doc)
	if !ok {
		fmt.Fprintf(os.Stderr, "No rate data for %s\n", pair.Key())
		return 1
	}

	in := money.NewMoney(decimal.NewFromFloat(*amount), fromCur)
	out, err := money.Convert(in, pair, rate)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("%s = %s (rate %.4f)\n", in, out, rate)
	return 0
}

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := configFlag(fs)
	fs.Parse(args)

	a, err := newApp(*cfgPath)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	a.log.Info().Msg("marketintel starting")

	tracker := track.New(a.store, newPriceFetcher(a.cfg, a.log), newRateFetcher(a.cfg), a.log)
	asm := report.NewAssembler(a.store, a.cfg.Routes, a.cfg.Pairs, a.cfg.Report.Thresholds, a.log)

	var tn *notify.Telegram
	if a.cfg.Telegram.BotToken != "" && a.cfg.Telegram.ChatID != "" {
		tn, err = notify.NewTelegram(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy, a.log)
		if err != nil {
			a.log.Warn().Err(err).Msg("telegram disabled")
		}
	} else {
		a.log.Warn().Msg("telegram not configured, reports will not be delivered")
	}

	snk := newSink(a.cfg, a.log, true)
	defer snk.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, tracker, asm, tn, snk, a.cfg.Routes, a.cfg.Pairs, a.log)
	sched.WindowDays = a.cfg.Report.WindowDays
	sched.DepartureOffsetDays = a.cfg.Report.DepartureOffsetDays
	if err := sched.RegisterAll(a.cfg.Schedule.DailyCron, a.cfg.Schedule.WeeklyCron); err != nil {
		return fail(err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		a.log.Info().Msg("RUN_ON_START enabled, executing daily tracking now")
		go sched.RunDailyNow()
	}

	a.log.Info().Msg("marketintel is running, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	a.log.Info().Msg("shutdown signal received, stopping")
	cancel()
	return 0
}
