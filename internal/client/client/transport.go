package client

import (
	"context"
	"net"
	"net/http"
	"time"
)

// Doer sends a prepared request.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// DoerFunc adapts a function to Doer.
type DoerFunc func(ctx context.Context, req *http.Request) (*http.Response, error)

func (f DoerFunc) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return f(ctx, req)
}

// TransportConfig holds HTTP client configuration.
type TransportConfig struct {
	Timeout         time.Duration
	MaxConnsPerHost int
}

func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		Timeout:         30 * time.Second,
		MaxConnsPerHost: 100,
	}
}

// HTTPTransport wraps http.Client with connection pooling defaults.
type HTTPTransport struct {
	httpClient *http.Client
}

func NewHTTPTransport(cfg TransportConfig) *HTTPTransport {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   cfg.MaxConnsPerHost,
		MaxConnsPerHost:       cfg.MaxConnsPerHost,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &HTTPTransport{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}
}

// Do sends req once.
func (t *HTTPTransport) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return t.httpClient.Do(req.WithContext(ctx))
}
