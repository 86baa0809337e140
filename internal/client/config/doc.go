// Package config loads runtime configuration for the taskboard client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Environment variables (TASKBOARD_*, LOG_LEVEL). A .env file in the
//     working directory is loaded first when present.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST service
//	-d string   storage DSN (SQLite file path)
//	-s string   storage backend: sqlite or redis
//	-l string   log level
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// Durations can be strings like "30s" or integer nanoseconds:
//
//	{
//	  "base_url": "http://127.0.0.1:5000",
//	  "storage_backend": "sqlite",
//	  "storage_dsn": "taskboard.db",
//	  "request_timeout": "30s",
//	  "breaker_enabled": true
//	}
package config
