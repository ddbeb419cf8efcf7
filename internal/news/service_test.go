package news

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indistock/internal/interfaces"
	"indistock/internal/types"
)

type fakeSource struct {
	name  string
	items []types.NewsItem
	err   error

	mu      sync.Mutex
	calls   int
	tickers []string
	limits  []int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Headlines(_ context.Context, ticker string, limit int) ([]types.NewsItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.tickers = append(f.tickers, ticker)
	f.limits = append(f.limits, limit)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]types.NewsItem, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)}
}

func mixedHeadlines() []types.NewsItem {
	return []types.NewsItem{
		{Title: "Stock surge on strong profit growth", Source: "Mint"},
		{Title: "Market fall amid volatile trading", Source: "ET"},
	}
}

func TestSentimentCache(t *testing.T) {
	clock := newClock()
	cache := newSentimentCache(time.Minute, clock.Now)

	report := types.SentimentReport{Ticker: "RELIANCE", Score: 0.8}
	cache.set("RELIANCE", report)

	got, age, found := cache.get("RELIANCE")
	require.True(t, found)
	assert.Equal(t, 0.8, got.Score)
	assert.Zero(t, age)

	clock.Advance(30 * time.Second)
	_, age, found = cache.get("RELIANCE")
	require.True(t, found)
	assert.Equal(t, 30*time.Second, age)

	clock.Advance(31 * time.Second)
	_, _, found = cache.get("RELIANCE")
	assert.False(t, found, "expired entry must not be served")
}

func TestCacheSweep(t *testing.T) {
	clock := newClock()
	cache := newSentimentCache(time.Minute, clock.Now)

	for i := 0; i < 5; i++ {
		cache.set(fmt.Sprintf("SYM%d", i), types.SentimentReport{})
	}
	clock.Advance(2 * time.Minute)
	cache.set("FRESH", types.SentimentReport{})

	assert.Equal(t, 5, cache.sweep())
	assert.Equal(t, []string{"FRESH"}, cache.tickers())
	assert.Equal(t, 0, cache.sweep())
}

func TestServiceConfig(t *testing.T) {
	cfg := DefaultServiceConfig()

	assert.Equal(t, 15, cfg.PageSize)
	assert.Equal(t, 8, cfg.ListSize)
	assert.Equal(t, 15*time.Minute, cfg.CacheDuration)
	assert.True(t, cfg.Enabled)
}

func TestNewService(t *testing.T) {
	svc := NewService(&fakeSource{name: "fake"}, nil)

	require.NotNil(t, svc)
	assert.NotNil(t, svc.analyzer)
	assert.NotNil(t, svc.cache)
	assert.Equal(t, DefaultServiceConfig(), svc.cfg)
}

func TestServiceDisabled(t *testing.T) {
	src := &fakeSource{name: "fake", items: mixedHeadlines()}
	svc := NewService(src, &ServiceConfig{Enabled: false, PageSize: 15, ListSize: 8})

	report := svc.Sentiment(context.Background(), "reliance")

	assert.Equal(t, "RELIANCE", report.Ticker)
	assert.Equal(t, types.Neutral, report.Sentiment)
	assert.Equal(t, "Sentiment analysis disabled", report.Reasoning)
	assert.Zero(t, src.callCount())
}

func TestService_Sentiment(t *testing.T) {
	clock := newClock()
	src := &fakeSource{name: "fake", items: mixedHeadlines()}
	svc := NewService(src, nil, WithClock(clock.Now))

	report := svc.Sentiment(context.Background(), " tcs ")

	assert.Equal(t, "TCS", report.Ticker)
	assert.Equal(t, 0.67, report.Score)
	assert.Equal(t, types.Bullish, report.Sentiment)
	assert.Equal(t, 95, report.Confidence)
	assert.Equal(t, 2, report.ArticlesAnalyzed)
	assert.Equal(t, []string{"surge", "strong", "profit", "growth"}, report.PositiveWords)
	assert.Equal(t, []string{"fall", "volatile"}, report.NegativeWords)
	assert.Equal(t, clock.Now().Unix(), report.Timestamp)
	assert.Equal(t, []string{"TCS"}, src.tickers)
	assert.Equal(t, []int{15}, src.limits)
}

func TestService_SentimentCaching(t *testing.T) {
	clock := newClock()
	src := &fakeSource{name: "fake", items: mixedHeadlines()}
	svc := NewService(src, &ServiceConfig{Enabled: true, PageSize: 15, ListSize: 8, CacheDuration: time.Minute},
		WithClock(clock.Now))
	ctx := context.Background()

	first := svc.Sentiment(ctx, "INFY")
	second := svc.Sentiment(ctx, "infy")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.callCount())

	svc.Refresh(ctx, "INFY")
	assert.Equal(t, 2, src.callCount(), "refresh bypasses the cache")

	clock.Advance(2 * time.Minute)
	svc.Sentiment(ctx, "INFY")
	assert.Equal(t, 3, src.callCount(), "expired entry is recomputed")

	assert.Equal(t, []string{"INFY"}, svc.CachedTickers())
	clock.Advance(2 * time.Minute)
	assert.Equal(t, 1, svc.SweepCache())
	assert.Empty(t, svc.CachedTickers())
}

func TestService_SentimentNoArticles(t *testing.T) {
	tests := []struct {
		name string
		src  *fakeSource
	}{
		{"empty", &fakeSource{name: "fake"}},
		{"error", &fakeSource{name: "fake", err: fmt.Errorf("newsapi: %w", interfaces.ErrRateLimited)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.src, nil)
			report := svc.Sentiment(context.Background(), "HDFC")

			assert.Equal(t, "HDFC", report.Ticker)
			assert.Equal(t, 0.5, report.Score)
			assert.Equal(t, types.Neutral, report.Sentiment)
			assert.Equal(t, 30, report.Confidence)
			assert.Zero(t, report.ArticlesAnalyzed)
			assert.Equal(t, "No news articles found for analysis", report.Reasoning)
			assert.NotNil(t, report.PositiveWords)
			assert.NotNil(t, report.NegativeWords)
		})
	}
}

func TestService_EmptyFetchNotCached(t *testing.T) {
	src := &fakeSource{name: "fake", err: errors.New("timeout")}
	svc := NewService(src, nil)
	ctx := context.Background()

	first := svc.Sentiment(ctx, "HDFC")
	assert.Equal(t, noArticlesReasoning, first.Reasoning)
	assert.Empty(t, svc.CachedTickers())

	src.mu.Lock()
	src.err = nil
	src.items = mixedHeadlines()
	src.mu.Unlock()

	second := svc.Sentiment(ctx, "HDFC")
	assert.Equal(t, types.Bullish, second.Sentiment)
	assert.Equal(t, 2, src.callCount())
	assert.Equal(t, []string{"HDFC"}, svc.CachedTickers())
}

func TestService_NoKeywords(t *testing.T) {
	src := &fakeSource{name: "fake", items: []types.NewsItem{{Title: "Company holds annual meeting"}}}
	report := NewService(src, nil).Sentiment(context.Background(), "ITC")

	assert.Equal(t, 1, report.ArticlesAnalyzed)
	assert.Equal(t, types.Neutral, report.Sentiment)
	assert.Equal(t, "No clear sentiment keywords found in headlines", report.Reasoning)
}

func TestService_PageSizeLimit(t *testing.T) {
	items := make([]types.NewsItem, 20)
	for i := range items {
		items[i] = types.NewsItem{Title: "Shares rally"}
	}
	src := &fakeSource{name: "fake", items: items}

	report := NewService(src, nil).Sentiment(context.Background(), "SBIN")
	assert.Equal(t, 15, report.ArticlesAnalyzed)
}

func TestService_Fallback(t *testing.T) {
	primary := &fakeSource{name: "primary", err: errors.New("boom")}
	fallback := &fakeSource{name: "fallback", items: mixedHeadlines()}
	svc := NewService(primary, nil, WithFallback(fallback))

	report := svc.Sentiment(context.Background(), "WIPRO")

	assert.Equal(t, 2, report.ArticlesAnalyzed)
	assert.Equal(t, 1, primary.callCount())
	assert.Equal(t, 1, fallback.callCount())
}

func TestService_FallbackNotUsedWhenPrimaryHasData(t *testing.T) {
	primary := &fakeSource{name: "primary", items: mixedHeadlines()}
	fallback := &fakeSource{name: "fallback", items: mixedHeadlines()}
	svc := NewService(primary, nil, WithFallback(fallback))

	svc.Headlines(context.Background(), "WIPRO")
	assert.Zero(t, fallback.callCount())
}

func TestService_Headlines(t *testing.T) {
	clock := newClock()
	now := clock.Now()
	items := []types.NewsItem{
		{Title: "a", Source: "Mint", PublishedAt: now.Add(-10 * time.Minute)},
		{Title: "b", Source: "ET", PublishedAt: now.Add(-5 * time.Hour)},
		{Title: "c", Source: "BS", PublishedAt: now.Add(-30 * time.Hour)},
		{Title: "d", Source: "NDTV", PublishedAt: now.Add(-80 * time.Hour)},
		{Title: "e", Source: "Reuters"},
	}
	src := &fakeSource{name: "fake", items: items}
	svc := NewService(src, &ServiceConfig{Enabled: true, PageSize: 15, ListSize: 4, CacheDuration: time.Minute},
		WithClock(clock.Now))

	got := svc.Headlines(context.Background(), "tcs")

	require.Len(t, got, 4)
	labels := []string{got[0].Time, got[1].Time, got[2].Time, got[3].Time}
	assert.Equal(t, []string{"Just now", "5h ago", "1d ago", "3d ago"}, labels)
	assert.Equal(t, []int{4}, src.limits)
}

func TestService_HeadlinesPlaceholder(t *testing.T) {
	svc := NewService(&fakeSource{name: "fake", err: interfaces.ErrNoData}, nil)

	got := svc.Headlines(context.Background(), "xyz")

	require.Len(t, got, 1)
	assert.Equal(t, "No recent news found for XYZ", got[0].Title)
	assert.Equal(t, "System", got[0].Source)
	assert.Equal(t, "N/A", got[0].Time)
}

func TestClearCache(t *testing.T) {
	svc := NewService(&fakeSource{name: "fake", items: mixedHeadlines()}, nil)

	svc.Sentiment(context.Background(), "RELIANCE")
	require.Len(t, svc.CachedTickers(), 1)

	assert.Equal(t, 1, svc.ClearCache())
	assert.Empty(t, svc.CachedTickers())
	assert.Zero(t, svc.ClearCache())
}
