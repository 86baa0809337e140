package config

import (
	"encoding/json"
	"os"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from a zero value so a partial file only
// overrides what it names.
type JsonConfig struct {
	BaseURL string `json:"base_url"`

	StorageBackend string `json:"storage_backend"`
	StorageDSN     string `json:"storage_dsn"`
	RedisAddr      string `json:"redis_addr"`
	RedisPassword  string `json:"redis_password"`
	RedisDB        *int   `json:"redis_db"`
	RedisPrefix    string `json:"redis_prefix"`

	RequestTimeout  *Duration `json:"request_timeout"`
	MaxConnsPerHost *int      `json:"max_conns_per_host"`

	BreakerEnabled      *bool     `json:"breaker_enabled"`
	BreakerTimeout      *Duration `json:"breaker_timeout"`
	BreakerMinRequests  *uint32   `json:"breaker_min_requests"`
	BreakerFailureRatio *float64  `json:"breaker_failure_ratio"`

	LogLevel    string `json:"log_level"`
	MetricsAddr string `json:"metrics_addr"`

	TracingEnabled    *bool    `json:"tracing_enabled"`
	OTLPEndpoint      string   `json:"otlp_endpoint"`
	TracingSampleRate *float64 `json:"tracing_sample_rate"`
}

// parseJson overlays cfg with values from the file named by -c/-config.
// Without the flag nothing happens. Read and decode errors panic.
func parseJson(cfg *Config) {
	path := jsonConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.BaseURL, jc.BaseURL)
	setString(&cfg.StorageBackend, jc.StorageBackend)
	setString(&cfg.StorageDSN, jc.StorageDSN)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisPassword, jc.RedisPassword)
	setString(&cfg.RedisPrefix, jc.RedisPrefix)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.MetricsAddr, jc.MetricsAddr)
	setString(&cfg.OTLPEndpoint, jc.OTLPEndpoint)

	setValue(&cfg.RedisDB, jc.RedisDB)
	setValue(&cfg.MaxConnsPerHost, jc.MaxConnsPerHost)
	setValue(&cfg.BreakerEnabled, jc.BreakerEnabled)
	setValue(&cfg.BreakerMinRequests, jc.BreakerMinRequests)
	setValue(&cfg.BreakerFailureRatio, jc.BreakerFailureRatio)
	setValue(&cfg.TracingEnabled, jc.TracingEnabled)
	setValue(&cfg.TracingSampleRate, jc.TracingSampleRate)

	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.BreakerTimeout != nil {
		cfg.BreakerTimeout = jc.BreakerTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setValue[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
