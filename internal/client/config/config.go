package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds runtime settings for the taskboard client.
//
// Units: RequestTimeout and BreakerTimeout are time.Duration values.
type Config struct {
	BaseURL string `env:"TASKBOARD_BASE_URL"`

	StorageBackend string `env:"TASKBOARD_STORAGE_BACKEND"`
	StorageDSN     string `env:"TASKBOARD_STORAGE_DSN"`
	RedisAddr      string `env:"TASKBOARD_REDIS_ADDR"`
	RedisPassword  string `env:"TASKBOARD_REDIS_PASSWORD"`
	RedisDB        int    `env:"TASKBOARD_REDIS_DB"`
	RedisPrefix    string `env:"TASKBOARD_REDIS_PREFIX"`

	RequestTimeout  time.Duration `env:"TASKBOARD_REQUEST_TIMEOUT"`
	MaxConnsPerHost int           `env:"TASKBOARD_MAX_CONNS_PER_HOST"`

	BreakerEnabled      bool          `env:"TASKBOARD_BREAKER_ENABLED"`
	BreakerTimeout      time.Duration `env:"TASKBOARD_BREAKER_TIMEOUT"`
	BreakerMinRequests  uint32        `env:"TASKBOARD_BREAKER_MIN_REQUESTS"`
	BreakerFailureRatio float64       `env:"TASKBOARD_BREAKER_FAILURE_RATIO"`

	LogLevel    string `env:"LOG_LEVEL"`
	MetricsAddr string `env:"TASKBOARD_METRICS_ADDR"`

	TracingEnabled    bool    `env:"TASKBOARD_TRACING_ENABLED"`
	OTLPEndpoint      string  `env:"TASKBOARD_OTLP_ENDPOINT"`
	TracingSampleRate float64 `env:"TASKBOARD_TRACING_SAMPLE_RATE"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:5000"
	c.StorageBackend = BackendSQLite
	c.StorageDSN = "taskboard.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "taskboard:"
	c.RequestTimeout = 30 * time.Second
	c.MaxConnsPerHost = 10
	c.BreakerEnabled = true
	c.BreakerTimeout = 30 * time.Second
	c.BreakerMinRequests = 5
	c.BreakerFailureRatio = 0.6
	c.LogLevel = "info"
	c.TracingSampleRate = 1.0
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones. Malformed JSON or flags panic; a bad
// environment or an invalid result is returned as an error.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the client cannot start without.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base URL %q: want http(s)://host[:port]", c.BaseURL)
	}

	switch c.StorageBackend {
	case BackendSQLite:
		if c.StorageDSN == "" {
			return errors.New("storage DSN is required for the sqlite backend")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return errors.New("redis address is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}

	if c.RequestTimeout < 0 {
		return fmt.Errorf("invalid request timeout: %s", c.RequestTimeout)
	}
	if c.BreakerFailureRatio < 0 || c.BreakerFailureRatio > 1 {
		return fmt.Errorf("invalid breaker failure ratio: %v", c.BreakerFailureRatio)
	}
	if c.TracingSampleRate < 0 || c.TracingSampleRate > 1 {
		return fmt.Errorf("invalid tracing sample rate: %v", c.TracingSampleRate)
	}
	return nil
}
