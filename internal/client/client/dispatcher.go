package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrijs2005/taskboard/internal/client/navigator"
	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/tracing"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 1 << 20

const unauthorizedMessage = "unauthorized"

// CredentialStore is the part of persisted storage the dispatcher touches.
type CredentialStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	DeleteMany(ctx context.Context, keys ...string) error
}

// RequestOptions describes one call. Method defaults to GET. Body, when not
// nil, is JSON-encoded.
type RequestOptions struct {
	Method string
	Body   any
	Query  *Params
}

// Dispatcher sends authenticated JSON requests to the task service and
// classifies failures.
type Dispatcher struct {
	baseURL string
	doer    Doer
	store   CredentialStore
	nav     navigator.Navigator
	log     logging.Logger
	metrics *Metrics
	tracer  trace.Tracer

	mu    sync.RWMutex
	hooks []func(ctx context.Context)
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for request and storage failures.
func WithLogger(l logging.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// WithMetrics records request counts and latency into m.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithTracer wraps each request in a client span from t.
func WithTracer(t trace.Tracer) Option {
	return func(d *Dispatcher) { d.tracer = t }
}

// New creates a Dispatcher sending requests to baseURL+path through doer.
func New(baseURL string, doer Doer, store CredentialStore, nav navigator.Navigator, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		baseURL: baseURL,
		doer:    doer,
		store:   store,
		nav:     nav,
		log:     logging.Discard(),
		tracer:  tracing.Tracer(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// OnUnauthorized registers fn to run after a 401 has cleared the stored
// credentials and navigated to the login page.
func (d *Dispatcher) OnUnauthorized(fn func(ctx context.Context)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hooks = append(d.hooks, fn)
}

// BuildAuthHeaders returns the JSON content type and, if a token is stored,
// a bearer Authorization header. A storage failure is logged and treated as
// no token.
func (d *Dispatcher) BuildAuthHeaders(ctx context.Context) http.Header {
	h := make(http.Header)
	h.Set(common.ContentTypeHeaderName, common.JSONContentType)

	token, err := d.store.Get(ctx, common.TokenKey)
	if err != nil {
		d.log.Warn(ctx, "failed to read token", "error", err)
		return h
	}
	if len(token) > 0 {
		h.Set(common.AuthorizationHeaderName, common.BearerPrefix+string(token))
	}
	return h
}

// Request sends one call and decodes a 2xx JSON body into out (skipped when
// out is nil or the body is empty). Failures are *NetworkError, *AuthError
// or *HTTPError.
func (d *Dispatcher) Request(ctx context.Context, path string, opts RequestOptions, out any) error {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader = http.NoBody
	if opts.Body != nil {
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	target := withQuery(path, opts.Query)

	ctx, span := d.tracer.Start(ctx, "HTTP "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, d.baseURL+target, body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return &NetworkError{Method: method, Path: target, Err: err}
	}
	req.Header = d.BuildAuthHeaders(ctx)

	requestID := logging.CorrelationIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(common.RequestIDHeaderName, requestID)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := d.doer.Do(ctx, req)
	if err != nil {
		d.metrics.observe(method, 0, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "network error")
		d.log.Warn(ctx, "request failed", "method", method, "path", target, "request_id", requestID, "error", err)
		return &NetworkError{Method: method, Path: target, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	d.metrics.observe(method, resp.StatusCode, time.Since(start))
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		span.SetStatus(codes.Error, unauthorizedMessage)
		return d.deauthenticate(ctx, target, resp.Body)

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg := readMessage(resp.Body, fmt.Sprintf("request failed with status %d", resp.StatusCode))
		span.SetStatus(codes.Error, msg)
		d.log.Debug(ctx, "request rejected", "method", method, "path", target, "status", resp.StatusCode, "message", msg)
		return &HTTPError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return &NetworkError{Method: method, Path: target, Err: err}
	}
	return decodeBody(data, out)
}

// deauthenticate clears the credentials pair, moves to the login page and
// runs the registered hooks. The side effects ignore ctx cancellation.
func (d *Dispatcher) deauthenticate(ctx context.Context, path string, body io.Reader) error {
	msg := readMessage(body, unauthorizedMessage)
	ctx = context.WithoutCancel(ctx)

	if err := d.store.DeleteMany(ctx, common.CredentialKeys...); err != nil {
		d.log.Error(ctx, "failed to clear credentials", "error", err)
	}
	d.nav.Navigate(ctx, navigator.LoginPath)
	d.metrics.deauthenticated()
	d.log.Info(ctx, "session rejected by server", "path", path)

	d.mu.RLock()
	hooks := make([]func(context.Context), len(d.hooks))
	copy(hooks, d.hooks)
	d.mu.RUnlock()

	for _, fn := range hooks {
		fn(ctx)
	}
	return &AuthError{Message: msg}
}

// Get sends a GET with params encoded as the query string.
func (d *Dispatcher) Get(ctx context.Context, path string, params *Params, out any) error {
	return d.Request(ctx, path, RequestOptions{Method: http.MethodGet, Query: params}, out)
}

// Post sends body as JSON with POST.
func (d *Dispatcher) Post(ctx context.Context, path string, body, out any) error {
	return d.Request(ctx, path, RequestOptions{Method: http.MethodPost, Body: body}, out)
}

// Put sends body as JSON with PUT.
func (d *Dispatcher) Put(ctx context.Context, path string, body, out any) error {
	return d.Request(ctx, path, RequestOptions{Method: http.MethodPut, Body: body}, out)
}

// Patch sends body as JSON with PATCH.
func (d *Dispatcher) Patch(ctx context.Context, path string, body, out any) error {
	return d.Request(ctx, path, RequestOptions{Method: http.MethodPatch, Body: body}, out)
}

// Delete sends a DELETE without a body.
func (d *Dispatcher) Delete(ctx context.Context, path string, out any) error {
	return d.Request(ctx, path, RequestOptions{Method: http.MethodDelete}, out)
}

// readMessage extracts the "message" field of a JSON error body.
func readMessage(body io.Reader, fallback string) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return fallback
	}
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Message != "" {
		return payload.Message
	}
	return fallback
}

func decodeBody(data []byte, out any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}
