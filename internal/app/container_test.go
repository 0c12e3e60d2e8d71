package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	json "github.com/goccy/go-json"
	"github.com/kapu/tastejourney-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Addr:            "127.0.0.1:0",
			AllowedOrigins:  []string{"*"},
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			ShutdownTimeout: time.Second,
		},
		Scraper:    config.ScraperConfig{Timeout: time.Second, CacheTTL: time.Minute},
		Enrichment: config.EnrichmentConfig{Timeout: time.Second, Concurrency: 2},
		Mail:       config.MailConfig{Provider: "none"},
		Recommend:  config.RecommendConfig{TopK: 3},
	}
}

func health(t *testing.T, c *Container) map[string]any {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestBuild_WithoutRedis(t *testing.T) {
	c, err := Build(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	body := health(t, c)
	assert.Equal(t, "disabled", body["cache"])
	assert.Equal(t, false, body["assistant"])

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/recommend", strings.NewReader(`{"skipEnrichment":true}`))
	req.Header.Set("Content-Type", "application/json")
	c.Server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuild_WithRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	cfg := testConfig()
	cfg.Redis = config.RedisConfig{Enabled: true, Host: mr.Host(), Port: port}

	c, err := Build(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, "connected", health(t, c)["cache"])

	assert.NotNil(t, c.Pipeline)
}

func TestBuild_UnreachableRedisDegrades(t *testing.T) {
	cfg := testConfig()
	cfg.Redis = config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

	c, err := Build(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, "disabled", health(t, c)["cache"])
}

func TestBuild_RequiresConfigAndLogger(t *testing.T) {
	_, err := Build(context.Background(), nil, zap.NewNop())
	assert.Error(t, err)

	_, err = Build(context.Background(), testConfig(), nil)
	assert.Error(t, err)
}

func TestContainer_CloseIsIdempotent(t *testing.T) {
	calls := 0
	c := &Container{closers: []func(){func() { calls++ }}}

	c.Close()
	c.Close()

	assert.Equal(t, 1, calls)
}
