package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/kapu/tastejourney-go/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewFromClient(client, zap.NewNop())
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

type payload struct {
	Title  string   `json:"title"`
	Themes []string `json:"themes"`
}

func TestCacheService_SetGet(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", payload{Title: "t", Themes: []string{"travel"}}, time.Minute))

	var got payload
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Title: "t", Themes: []string{"travel"}}, got)
	assert.Equal(t, time.Minute, mr.TTL("k"))

	mr.FastForward(2 * time.Minute)
	found, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheService_MissIsNotAnError(t *testing.T) {
	c, _ := newTestCache(t)

	var got payload
	found, err := c.Get(context.Background(), "missing", &got)

	assert.NoError(t, err)
	assert.False(t, found)
}

func TestCacheService_CorruptValue(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("bad", "{not json"))

	var got payload
	_, err := c.Get(context.Background(), "bad", &got)

	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeCache, appErr.Code)
}

func TestCacheService_Unreachable(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	assert.False(t, c.IsConnected(context.Background()))
	err := c.Set(context.Background(), "k", "v", 0)
	assert.Error(t, err)
}

func TestHashKey(t *testing.T) {
	a := HashKey("p:", "https://example.com")
	b := HashKey("p:", "https://example.com")
	c := HashKey("p:", "https://example.org")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, len("p:")+64)
}
