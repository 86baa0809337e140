package services

import "context"

type sessionKey struct{}

// WithSession makes m available to code further down the call chain.
func WithSession(ctx context.Context, m *SessionManager) context.Context {
	return context.WithValue(ctx, sessionKey{}, m)
}

// SessionFromContext returns the manager stored by WithSession. It panics
// with *UsageError when none was provided.
func SessionFromContext(ctx context.Context) *SessionManager {
	m, ok := ctx.Value(sessionKey{}).(*SessionManager)
	if !ok || m == nil {
		panic(&UsageError{Op: "SessionFromContext", Reason: "no session manager in context; wrap it with WithSession"})
	}
	return m
}
