// Package client is the request dispatcher: the single place where the
// taskboard client talks to the REST service.
//
// # Overview
//
// A Dispatcher joins a base URL with a request path, attaches the JSON
// content type and, when a token is stored, a bearer Authorization header.
// Every outcome is normalized to one of three errors:
//
//   - NetworkError: no response at all (transport failure, open breaker).
//   - AuthError:    HTTP 401. Before returning, the stored token/user pair is
//     removed, the UI is sent to /login and OnUnauthorized hooks run.
//   - HTTPError:    any other non-2xx, with the server's "message" if given.
//
// Nothing is retried.
//
// # Transport
//
// HTTPTransport is a tuned net/http client. BreakerTransport optionally sits
// in front of it and fails fast while the service is down. Metrics exposes
// request counters for Prometheus. Each request carries an X-Request-ID and
// W3C trace context.
package client
