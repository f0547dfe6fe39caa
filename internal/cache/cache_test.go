package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	a := Key([]byte(`{"races":[]}`), []byte("embedded"))

	assert.Len(t, a, 64)
	assert.Equal(t, a, Key([]byte(`{"races":[]}`), []byte("embedded")))
	assert.NotEqual(t, a, Key([]byte(`{"races":[]}`), []byte("postponed")))
	// Part boundaries matter
	assert.NotEqual(t, Key([]byte("ab"), []byte("c")), Key([]byte("a"), []byte("bc")))
}

func TestRedisCacheUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	cache := NewRedisCache(client, time.Minute)

	_, found, err := cache.Get(context.Background(), "key")
	assert.Error(t, err)
	assert.False(t, found)
	assert.Error(t, cache.Set(context.Background(), "key", []byte("value")))
}

func TestConfig(t *testing.T) {
	cfg := Config{}
	cfg.SetDefaults()

	assert.Equal(t, 86400, cfg.TTLSeconds)
	assert.False(t, cfg.Enabled())
	assert.True(t, Config{Addr: "localhost:6379"}.Enabled())
	assert.NotNil(t, NewRedisClient(Config{Addr: "localhost:6379"}))
}
