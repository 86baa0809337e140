package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/taskboard/internal/client/api"
	"github.com/dmitrijs2005/taskboard/internal/client/cli"
	"github.com/dmitrijs2005/taskboard/internal/client/client"
	"github.com/dmitrijs2005/taskboard/internal/client/config"
	"github.com/dmitrijs2005/taskboard/internal/client/navigator"
	"github.com/dmitrijs2005/taskboard/internal/client/repositories/kv"
	"github.com/dmitrijs2005/taskboard/internal/client/services"
	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/tracing"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(cfg.LogLevel, os.Stderr)

	tc := tracing.DefaultConfig()
	tc.Enabled = cfg.TracingEnabled
	if cfg.OTLPEndpoint != "" {
		tc.OTLPEndpoint = cfg.OTLPEndpoint
	}
	tc.SampleRate = cfg.TracingSampleRate
	shutdownTracer, err := tracing.InitTracer(ctx, tc)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(sctx); err != nil {
			logger.Warn(sctx, "tracer shutdown failed", "error", err)
		}
	}()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := client.NewMetrics(reg)
	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, reg, logger)
		defer func() { _ = srv.Close() }()
	}

	var doer client.Doer = client.NewHTTPTransport(client.TransportConfig{
		Timeout:         cfg.RequestTimeout,
		MaxConnsPerHost: cfg.MaxConnsPerHost,
	})
	if cfg.BreakerEnabled {
		bc := client.DefaultBreakerConfig("taskboard-api")
		bc.Timeout = cfg.BreakerTimeout
		bc.MinRequests = cfg.BreakerMinRequests
		bc.FailureRatio = cfg.BreakerFailureRatio
		doer = client.NewBreakerTransport(doer, bc, logger, metrics)
	}

	nav := navigator.NewRecorder(navigator.LoginPath, nil)
	disp := client.New(cfg.BaseURL, doer, store, nav,
		client.WithLogger(logger),
		client.WithMetrics(metrics),
	)
	resources := api.New(disp)

	session := services.NewSessionManager(ctx, resources.Auth, store, nav, logger)
	disp.OnUnauthorized(session.HandleUnauthorized)
	if session.IsAuthenticated() {
		nav.Navigate(ctx, navigator.DashboardPath)
	}

	app := cli.NewApp(resources, nav, logger)
	app.Run(services.WithSession(ctx, session))
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (kv.Repository, error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		r, err := kv.OpenRedis(ctx, kv.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis storage: %w", err)
		}
		return r, nil
	default:
		r, err := kv.OpenSQLite(ctx, cfg.StorageDSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		return r, nil
	}
}

func serveMetrics(addr string, reg *prometheus.Registry, logger logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(context.Background(), "metrics server stopped", "error", err)
		}
	}()
	return srv
}
