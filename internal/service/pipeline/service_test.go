package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/kapu/tastejourney-go/internal/domain"
	"github.com/kapu/tastejourney-go/internal/service/cache"
	apperrors "github.com/kapu/tastejourney-go/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const travelPage = `<html><head><title>Wander</title></head><body><h1>Travel</h1></body></html>`

type fakeFetcher struct {
	html  string
	err   error
	calls atomic.Int32
}

func (f *fakeFetcher) Fetch(context.Context, string) (string, error) {
	f.calls.Add(1)
	return f.html, f.err
}

type recordingEnricher struct {
	calls atomic.Int32
}

func (e *recordingEnricher) Enrich(_ context.Context, recs []domain.Recommendation) []domain.Recommendation {
	e.calls.Add(1)
	out := make([]domain.Recommendation, len(recs))
	copy(out, recs)
	for i := range out {
		out[i].Enrichment = &domain.Enrichment{}
	}
	return out
}

func newService(t *testing.T, fetcher PageFetcher, c AnalysisCache, enricher Enricher) *Service {
	t.Helper()
	catalog, err := domain.LoadCatalog()
	require.NoError(t, err)
	svc := New(Options{
		Fetcher:  fetcher,
		Catalog:  catalog,
		Cache:    c,
		Enricher: enricher,
		Logger:   zap.NewNop(),
	})
	svc.now = func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestAnalyze_InvalidURL(t *testing.T) {
	svc := newService(t, &fakeFetcher{}, nil, nil)

	_, err := svc.Analyze(context.Background(), "ftp://example.com")

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestAnalyze_FetchFailureUsesFallback(t *testing.T) {
	svc := newService(t, &fakeFetcher{err: errors.New("blocked")}, nil, nil)

	signals, err := svc.Analyze(context.Background(), "https://creator.example.com/about")

	require.NoError(t, err)
	assert.True(t, signals.FallbackUsed)
	assert.Equal(t, "Content from creator.example.com", signals.Title)
	assert.Equal(t, []string{"general", "content"}, signals.Themes)
	assert.Equal(t, []string{"content-creator"}, signals.Hints)
	assert.Equal(t, "General Content", signals.ContentType)
	assert.Equal(t, "2026-05-01T09:00:00Z", signals.ScrapedAt)
}

func TestAnalyze_CachesExtractedSignals(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	c := cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), zap.NewNop())
	defer c.Close()

	fetcher := &fakeFetcher{html: travelPage}
	svc := newService(t, fetcher, c, nil)
	ctx := context.Background()

	first, err := svc.Analyze(ctx, "https://wander.example.com")
	require.NoError(t, err)
	second, err := svc.Analyze(ctx, "https://wander.example.com")
	require.NoError(t, err)

	assert.Equal(t, int32(1), fetcher.calls.Load())
	assert.Equal(t, first.Themes, second.Themes)
	assert.Equal(t, "Wander", second.Title)
	assert.Contains(t, first.Themes, "travel")
	assert.Len(t, mr.Keys(), 1)
}

func TestAnalyze_FallbackIsNotCached(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	c := cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), zap.NewNop())
	defer c.Close()

	svc := newService(t, &fakeFetcher{err: errors.New("down")}, c, nil)
	_, err = svc.Analyze(context.Background(), "https://down.example.com")

	require.NoError(t, err)
	assert.Empty(t, mr.Keys())
}

func TestRecommend_DefaultSignalsStillRank(t *testing.T) {
	enricher := &recordingEnricher{}
	svc := newService(t, &fakeFetcher{}, nil, enricher)

	result := svc.Recommend(context.Background(), RecommendInput{})

	require.Len(t, result.Recommendations, 3)
	assert.Equal(t, 3, result.TotalFound)
	assert.Equal(t, "Bali", result.Recommendations[0].DestinationName)
	assert.Equal(t, "Dubai", result.Recommendations[1].DestinationName)
	assert.Equal(t, "Tulum", result.Recommendations[2].DestinationName)
	assert.Equal(t, 41, result.Recommendations[0].MatchScore)
	assert.Equal(t, int32(1), enricher.calls.Load())
	assert.NotNil(t, result.Recommendations[0].Enrichment)

	for i := 1; i < len(result.Recommendations); i++ {
		assert.GreaterOrEqual(t, result.Recommendations[i-1].MatchScore, result.Recommendations[i].MatchScore)
	}
}

func TestRecommend_SkipEnrich(t *testing.T) {
	enricher := &recordingEnricher{}
	svc := newService(t, &fakeFetcher{}, nil, enricher)

	result := svc.Recommend(context.Background(), RecommendInput{SkipEnrich: true})

	assert.Zero(t, enricher.calls.Load())
	assert.Nil(t, result.Recommendations[0].Enrichment)
}

func TestRecommend_SuppliedVectorIsClamped(t *testing.T) {
	svc := newService(t, &fakeFetcher{}, nil, nil)
	vec := domain.TasteVector{Adventure: 3, Culture: -1, Luxury: 0.5, Food: 0.5, Nature: 0.5, Urban: 0.5, Budget: 0.5}

	result := svc.Recommend(context.Background(), RecommendInput{TasteVector: &vec})

	assert.Equal(t, 1.0, result.TasteVector.Adventure)
	assert.Equal(t, 0.0, result.TasteVector.Culture)
}

func TestRun_EndToEnd(t *testing.T) {
	svc := newService(t, &fakeFetcher{html: travelPage}, nil, nil)

	journey, err := svc.Run(context.Background(), "wander.example.com", domain.UserPreferences{
		Budget:       "1000-2500",
		ContentFocus: "adventure",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://wander.example.com", journey.Website.URL)
	assert.Equal(t, "Travel", journey.Website.ContentType)
	assert.Equal(t, journey.Profile.TasteVector, journey.Result.TasteVector)
	require.Len(t, journey.Result.Recommendations, 3)
	assert.Equal(t, "Bali", journey.Result.Recommendations[0].DestinationName)
}
