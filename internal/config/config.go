package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"limitless/internal/engine"
)

const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config is read from LIMITLESS_* environment variables.
type Config struct {
	Store       string `env:"LIMITLESS_STORE"        envDefault:"sqlite"`
	DBPath      string `env:"LIMITLESS_DB_PATH"`
	RedisAddr   string `env:"LIMITLESS_REDIS_ADDR"   envDefault:"localhost:6379"`
	RedisPrefix string `env:"LIMITLESS_REDIS_PREFIX" envDefault:"limitless:"`
	CatalogFile string `env:"LIMITLESS_CATALOG_FILE"`
	LogLevel    string `env:"LIMITLESS_LOG_LEVEL"    envDefault:"warn"`

	Timezone      string `env:"LIMITLESS_TIMEZONE"      envDefault:"Local"`
	WeekStart     string `env:"LIMITLESS_WEEK_START"    envDefault:"sunday"`
	GraceDays     int    `env:"LIMITLESS_GRACE_DAYS"    envDefault:"4"`
	DecayRateBP   int    `env:"LIMITLESS_DECAY_RATE_BP" envDefault:"1000"`
	TitleBandSize int    `env:"LIMITLESS_TITLE_BAND"    envDefault:"5"`

	TickInterval time.Duration `env:"LIMITLESS_TICK_INTERVAL" envDefault:"1m"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreSQLite, StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("LIMITLESS_STORE: unknown store %q", c.Store)
	}
	if c.GraceDays < 0 {
		return fmt.Errorf("LIMITLESS_GRACE_DAYS: must be >= 0, got %d", c.GraceDays)
	}
	if c.DecayRateBP < 0 || c.DecayRateBP > 10000 {
		return fmt.Errorf("LIMITLESS_DECAY_RATE_BP: must be 0..10000, got %d", c.DecayRateBP)
	}
	if c.TitleBandSize < 1 {
		return fmt.Errorf("LIMITLESS_TITLE_BAND: must be >= 1, got %d", c.TitleBandSize)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("LIMITLESS_TICK_INTERVAL: must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := engine.ParseWeekday(c.WeekStart); err != nil {
		return fmt.Errorf("LIMITLESS_WEEK_START: %w", err)
	}
	return nil
}

// Location resolves Timezone. "Local" and "" mean the system zone.
func (c Config) Location() (*time.Location, error) {
	switch strings.TrimSpace(c.Timezone) {
	case "", "Local", "local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("LIMITLESS_TIMEZONE: %w", err)
	}
	return loc, nil
}

// Rules converts the scheduling settings to engine rules.
func (c Config) Rules() (engine.Rules, error) {
	r := engine.DefaultRules()
	loc, err := c.Location()
	if err != nil {
		return engine.Rules{}, err
	}
	wd, err := engine.ParseWeekday(c.WeekStart)
	if err != nil {
		return engine.Rules{}, fmt.Errorf("LIMITLESS_WEEK_START: %w", err)
	}
	r.Location = loc
	r.WeekStart = wd
	r.GraceDays = c.GraceDays
	r.DecayRateBasisPoints = c.DecayRateBP
	r.TitleBandSize = c.TitleBandSize
	return r, nil
}
