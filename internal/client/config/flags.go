package config

import (
	"flag"
	"os"
	"time"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   base URL of the REST service
//	-d string   storage DSN
//	-s string   storage backend
//	-l string   log level
//	-t int      request timeout in seconds
//
// os.Args is filtered to these flags first so other components can define
// their own.
func parseFlags(cfg *Config) {
	args := filterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-l", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the REST service")
	fs.StringVar(&cfg.StorageDSN, "d", cfg.StorageDSN, "storage DSN")
	fs.StringVar(&cfg.StorageBackend, "s", cfg.StorageBackend, "storage backend (sqlite or redis)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// sub-second timeouts from earlier sources survive unless -t is given
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
