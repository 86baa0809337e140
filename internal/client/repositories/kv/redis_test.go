package kv

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRepository(client, "tb:"), mr
}

func TestRedis_SetGetDelete(t *testing.T) {
	r, mr := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "token", []byte("abc")))
	assert.True(t, mr.Exists("tb:token"))

	v, err := r.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), v)

	require.NoError(t, r.Delete(ctx, "token"))
	v, err = r.Get(ctx, "token")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, r.Delete(ctx, "token"))
}

func TestRedis_SetManyDeleteMany(t *testing.T) {
	r, mr := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, r.SetMany(ctx, map[string][]byte{
		"token": []byte("t"),
		"user":  []byte(`{"id":7}`),
	}))
	got, err := mr.Get("tb:user")
	require.NoError(t, err)
	assert.Equal(t, `{"id":7}`, got)

	require.NoError(t, r.DeleteMany(ctx, "token", "user"))
	assert.False(t, mr.Exists("tb:token"))
	assert.False(t, mr.Exists("tb:user"))

	require.NoError(t, r.SetMany(ctx, nil))
	require.NoError(t, r.DeleteMany(ctx))
}

func TestRedis_ListAndClear_OnlyOwnPrefix(t *testing.T) {
	r, mr := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("foreign", "keep"))
	require.NoError(t, r.Set(ctx, "a", []byte("1")))
	require.NoError(t, r.Set(ctx, "b", []byte("2")))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"a": []byte("1"), "b": []byte("2")}, m)

	require.NoError(t, r.Clear(ctx))
	m, err = r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
	assert.True(t, mr.Exists("foreign"))
}

func TestRedis_ServerDown_ErrorsWrapped(t *testing.T) {
	r, mr := setupRedis(t)
	ctx := context.Background()
	mr.Close()

	_, err := r.Get(ctx, "token")
	require.ErrorContains(t, err, "failed to get storage[token]")
	require.ErrorContains(t, r.Set(ctx, "token", []byte("x")), "failed to set storage[token]")
	require.Error(t, r.SetMany(ctx, map[string][]byte{"token": nil}))
	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to scan storage keys")
}

func TestOpenRedis_PingsAndDefaultsPrefix(t *testing.T) {
	mr := miniredis.RunT(t)

	r, err := OpenRedis(context.Background(), RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	assert.Equal(t, DefaultRedisPrefix, r.prefix)

	addr := mr.Addr()
	mr.Close()
	_, err = OpenRedis(context.Background(), RedisConfig{Addr: addr})
	require.ErrorContains(t, err, "ping redis")
}
