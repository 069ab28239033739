package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr          string  `env:"SUPERMARKET_ADDR" env-default:":8080"`
	Size          int     `env:"SUPERMARKET_SIZE" env-default:"200"`
	Seed          int64   `env:"SUPERMARKET_SEED" env-default:"42"`
	HistogramBins int     `env:"SUPERMARKET_HISTOGRAM_BINS" env-default:"20"`
	RateLimit     float64 `env:"SUPERMARKET_RATE_LIMIT" env-default:"20"`
	LogLevel      string  `env:"SUPERMARKET_LOG_LEVEL" env-default:"info"`
}

// Load reads an optional .env file from envFile, then the process environment.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("SUPERMARKET_SIZE must be positive, got %d: %w", c.Size, ErrInvalidConfig)
	}
	if c.HistogramBins <= 0 {
		return fmt.Errorf("SUPERMARKET_HISTOGRAM_BINS must be positive, got %d: %w", c.HistogramBins, ErrInvalidConfig)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("SUPERMARKET_RATE_LIMIT must be positive, got %v: %w", c.RateLimit, ErrInvalidConfig)
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		return fmt.Errorf("unknown log level %q: %w", c.LogLevel, ErrInvalidConfig)
	}
	return nil
}

// Level maps LogLevel onto gommon's levels.
func (c *Config) Level() log.Lvl {
	lvl, _ := parseLevel(c.LogLevel)
	return lvl
}

func parseLevel(s string) (log.Lvl, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG, true
	case "", "info":
		return log.INFO, true
	case "warn", "warning":
		return log.WARN, true
	case "error":
		return log.ERROR, true
	case "off":
		return log.OFF, true
	default:
		return log.INFO, false
	}
}
