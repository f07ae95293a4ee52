package config

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/preston-bernstein/rink-scoreboard/internal/domain/scoreboard"
)

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration

// Config holds runtime configuration for the server and terminal surfaces.
type Config struct {
	Port          string `env:"PORT" envDefault:"4000"`
	AllowedOrigin string `env:"ALLOWED_ORIGIN"`
	Log           LogConfig
	Store         StoreConfig
	Scoreboard    ScoreboardConfig
	Metrics       MetricsConfig
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
	// File receives terminal-surface logs; empty discards them.
	File string `env:"LOG_FILE"`
}

// StoreConfig selects and configures the key-value slot backend.
type StoreConfig struct {
	Driver        string   `env:"STORE_DRIVER" envDefault:"file"`
	Key           string   `env:"STORE_KEY" envDefault:"trickshot_scoreboard"`
	Dir           string   `env:"STORE_DIR" envDefault:"data"`
	Timeout       Duration `env:"STORE_TIMEOUT" envDefault:"2s"`
	RetryAttempts int      `env:"STORE_RETRY_ATTEMPTS" envDefault:"3"`
	RedisAddr     string   `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string   `env:"REDIS_PASSWORD"`
	RedisDB       int      `env:"REDIS_DB" envDefault:"0"`
	DatabaseURL   string   `env:"DATABASE_URL"`
	SQLitePath    string   `env:"SQLITE_PATH" envDefault:"data/scoreboard.db"`
}

// ScoreboardConfig tunes the rules and history of a session.
type ScoreboardConfig struct {
	HistoryLimit     int  `env:"HISTORY_LIMIT" envDefault:"100"`
	PeriodSeconds    int  `env:"PERIOD_SECONDS" envDefault:"1200"`
	ClockStepSeconds int  `env:"CLOCK_STEP_SECONDS" envDefault:"120"`
	DoubleTapUndo    bool `env:"DOUBLE_TAP_UNDO" envDefault:"false"`
}

// Rules returns the mutation rules described by c.
func (c ScoreboardConfig) Rules() scoreboard.Rules {
	return scoreboard.Rules{
		PeriodSeconds:    c.PeriodSeconds,
		ClockStepSeconds: c.ClockStepSeconds,
	}.Normalized()
}

// Load reads a .env file when present, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{FuncMap: lenientParsers}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Normalize()
	if !slices.Contains(Drivers(), cfg.Store.Driver) {
		return Config{}, fmt.Errorf("%s: unsupported driver %q", envStoreDriver, cfg.Store.Driver)
	}
	return cfg, nil
}

// lenientParsers turn unparsable numbers into zero so Normalize swaps in the default.
var lenientParsers = map[reflect.Type]env.ParserFunc{
	reflect.TypeOf(0): func(v string) (any, error) {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, nil
		}
		return n, nil
	},
	reflect.TypeOf(Duration(0)): func(v string) (any, error) {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return Duration(0), nil
		}
		return d, nil
	},
}

// Normalize replaces out-of-range values with defaults.
func (c *Config) Normalize() {
	if strings.TrimSpace(c.Port) == "" {
		c.Port = defaultPort
	}
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	if c.Store.Driver == "" {
		c.Store.Driver = defaultStoreDriver
	}
	if strings.TrimSpace(c.Store.Key) == "" {
		c.Store.Key = defaultStoreKey
	}
	if strings.TrimSpace(c.Store.Dir) == "" {
		c.Store.Dir = defaultStoreDir
	}
	if c.Store.Timeout <= 0 {
		c.Store.Timeout = defaultStoreTimeout
	}
	if c.Store.RetryAttempts <= 0 {
		c.Store.RetryAttempts = defaultRetryAttempts
	}
	if c.Scoreboard.HistoryLimit <= 0 {
		c.Scoreboard.HistoryLimit = defaultHistoryLimit
	}
	rules := c.Scoreboard.Rules()
	c.Scoreboard.PeriodSeconds = rules.PeriodSeconds
	c.Scoreboard.ClockStepSeconds = rules.ClockStepSeconds
	c.Metrics.normalize()
}
