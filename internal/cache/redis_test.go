package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/finance-calculator/internal/config"
)

type testStruct struct {
	Name  string
	Count int
}

func setupTestCache(t *testing.T, cfg config.RedisConnection) (*Redis, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg.AddressRedis = mr.Addr()
	cache, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestSetAndGet(t *testing.T) {
	cache, _ := setupTestCache(t, config.RedisConnection{})
	ctx := context.Background()

	expected := []testStruct{{Name: "kotak", Count: 3}}
	require.NoError(t, cache.Set(ctx, "affiliate_links", expected))

	var actual []testStruct
	found, err := cache.Get(ctx, "affiliate_links", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	cache, _ := setupTestCache(t, config.RedisConnection{})

	var out testStruct
	found, err := cache.Get(context.Background(), "no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDelete(t *testing.T) {
	cache, _ := setupTestCache(t, config.RedisConnection{})
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value"))
	require.NoError(t, cache.Delete(ctx, "key"))
	require.NoError(t, cache.Delete(ctx, "key"))

	var out string
	found, err := cache.Get(ctx, "key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetInvalidJSON(t *testing.T) {
	cache, mr := setupTestCache(t, config.RedisConnection{})
	require.NoError(t, mr.Set("bad", "not-json"))

	var out testStruct
	found, err := cache.Get(context.Background(), "bad", &out)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestKeyPrefixAndTTL(t *testing.T) {
	cache, mr := setupTestCache(t, config.RedisConnection{KeyPrefix: "fincalc:", TTL: time.Hour})

	require.NoError(t, cache.Set(context.Background(), "user_subscription:abc", testStruct{Name: "basic"}))

	assert.True(t, mr.Exists("fincalc:user_subscription:abc"))
	assert.False(t, mr.Exists("user_subscription:abc"))
	assert.Equal(t, time.Hour, mr.TTL("fincalc:user_subscription:abc"))
}

func TestNew_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := New(ctx, config.RedisConnection{AddressRedis: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	cache, mr := setupTestCache(t, config.RedisConnection{})
	require.NoError(t, cache.Ping(context.Background()))

	mr.SetError("LOADING server is loading")
	assert.Error(t, cache.Ping(context.Background()))
}
