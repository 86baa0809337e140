// Package kv is the persisted key/value storage behind the session: the
// credentials record, the pending second-factor record, and nothing else.
//
// Two backends exist. SQLiteRepository keeps a local file (the default);
// RedisRepository lets several client processes share one session.
// Multi-key writes and deletes are atomic on both.
package kv

import "context"

// Repository is a string-keyed byte store.
//
// Get returns (nil, nil) for a missing key. SetMany and DeleteMany apply all
// keys or none. Deleting a missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	SetMany(ctx context.Context, values map[string][]byte) error
	DeleteMany(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	Close() error
}
