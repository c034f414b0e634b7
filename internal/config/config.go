package config

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/at-tailor-made/market-intelligence/internal/analysis"
	"github.com/at-tailor-made/market-intelligence/internal/model"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Config holds all application configuration.
type Config struct {
	Storage struct {
		Backend string `yaml:"backend" default:"files" validate:"oneof=files badger"`
		Dir     string `yaml:"dir" default:"data/market-intel"`
	} `yaml:"storage"`
	Routes []model.Route `yaml:"routes" validate:"dive"`
	Pairs  []model.Pair  `yaml:"pairs" validate:"dive"`
	Amadeus struct {
		BaseURL   string `yaml:"base_url" default:"https://test.api.amadeus.com"`
		APIKey    string `yaml:"api_key"`
		APISecret string `yaml:"api_secret"`
	} `yaml:"amadeus"`
	Exchange struct {
		Provider string `yaml:"provider" default:"frankfurter" validate:"oneof=frankfurter mock"`
		BaseURL  string `yaml:"base_url" default:"https://api.frankfurter.dev"`
	} `yaml:"exchange"`
	Report struct {
		WindowDays          int                 `yaml:"window_days" default:"7" validate:"gt=0"`
		DepartureOffsetDays int                 `yaml:"departure_offset_days" default:"30" validate:"gt=0"`
		Thresholds          analysis.Thresholds `yaml:"thresholds"`
	} `yaml:"report"`
	Schedule struct {
		DailyCron  string `yaml:"daily_cron" default:"0 0 9 * * *"`
		WeeklyCron string `yaml:"weekly_cron" default:"0 0 10 * * 1"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" default:"data/market_intel.db"`
	} `yaml:"database"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, fills defaults, applies environment
// variable overrides, and validates the result. A missing file is fine: the
// stock routes and pairs with default settings make a working setup.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	// Environment variable overrides
	if v := os.Getenv("AMADEUS_API_KEY"); v != "" {
		cfg.Amadeus.APIKey = v
	}
	if v := os.Getenv("AMADEUS_API_SECRET"); v != "" {
		cfg.Amadeus.APISecret = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Storage.Dir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	if len(cfg.Routes) == 0 {
		cfg.Routes = DefaultRoutes()
	}
	if len(cfg.Pairs) == 0 {
		cfg.Pairs = DefaultPairs()
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// DefaultRoutes returns the stock monitored routes, all departing Guadalajara.
func DefaultRoutes() []model.Route {
	return []model.Route{
		{Origin: "GDL", Destination: "CUN", Name: "Guadalajara → Cancún"},
		{Origin: "GDL", Destination: "MIA", Name: "Guadalajara → Miami"},
		{Origin: "GDL", Destination: "JFK", Name: "Guadalajara → Nueva York"},
		{Origin: "GDL", Destination: "LAX", Name: "Guadalajara → Los Angeles"},
		{Origin: "GDL", Destination: "MAD", Name: "Guadalajara → Madrid"},
		{Origin: "GDL", Destination: "CDG", Name: "Guadalajara → París"},
	}
}

// DefaultPairs returns the stock tracked currency pairs.
func DefaultPairs() []model.Pair {
	return []model.Pair{
		{Base: "MXN", Quote: "USD"},
		{Base: "MXN", Quote: "EUR"},
		{Base: "MXN", Quote: "GBP"},
	}
}
