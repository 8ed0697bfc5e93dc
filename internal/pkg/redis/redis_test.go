package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	client, err := Setup(context.Background(), &Config{Host: mr.Host(), Port: port, PoolSize: 2})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func TestSetGet_JSON(t *testing.T) {
	client, mr := setupTestRedis(t)

	require.NoError(t, client.Set("k", map[string]int{"a": 1}, time.Minute))

	got, err := client.Get("k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, got)
	assert.Equal(t, time.Minute, mr.TTL("k"))
}

func TestSet_StringStoredVerbatim(t *testing.T) {
	client, _ := setupTestRedis(t)

	require.NoError(t, client.Set("url", "https://example.com/qr.png", 0))

	got, err := client.Get("url")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/qr.png", got)
}

func TestGet_MissingKey(t *testing.T) {
	client, _ := setupTestRedis(t)

	got, err := client.Get("nope")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDelAndExpire(t *testing.T) {
	client, mr := setupTestRedis(t)

	require.NoError(t, client.Set("k", "v", 0))
	require.NoError(t, client.Expire("k", 30*time.Second))
	assert.Equal(t, 30*time.Second, mr.TTL("k"))

	require.NoError(t, client.Del("k"))
	assert.False(t, mr.Exists("k"))
	assert.NoError(t, client.Ping())
}
