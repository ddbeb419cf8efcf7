package news

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"indistock/internal/interfaces"
	"indistock/internal/logger"
	"indistock/internal/sentiment"
	"indistock/internal/types"
)

const (
	noArticlesReasoning = "No news articles found for analysis"
	disabledReasoning   = "Sentiment analysis disabled"
)

// Service provides headline lists and news sentiment with caching
type Service struct {
	primary  interfaces.NewsSource
	fallback interfaces.NewsSource
	analyzer *sentiment.Analyzer
	cache    *sentimentCache
	cfg      *ServiceConfig
	now      func() time.Time
}

var _ interfaces.NewsService = (*Service)(nil)

// ServiceConfig configures the news sentiment service
type ServiceConfig struct {
	PageSize      int           // Headlines fed to sentiment analysis
	ListSize      int           // Headlines returned by Headlines
	CacheDuration time.Duration // How long to cache sentiment reports
	Enabled       bool          // Whether sentiment analysis is enabled
}

// DefaultServiceConfig returns default configuration
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		PageSize:      15,
		ListSize:      8,
		CacheDuration: 15 * time.Minute,
		Enabled:       true,
	}
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithFallback sets a source consulted when the primary errors or returns
// nothing.
func WithFallback(src interfaces.NewsSource) ServiceOption {
	return func(s *Service) { s.fallback = src }
}

// WithAnalyzer replaces the default keyword analyzer.
func WithAnalyzer(a *sentiment.Analyzer) ServiceOption {
	return func(s *Service) { s.analyzer = a }
}

// WithClock overrides the time source used for labels, timestamps and cache
// expiry.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService creates a new news sentiment service
func NewService(primary interfaces.NewsSource, cfg *ServiceConfig, opts ...ServiceOption) *Service {
	if cfg == nil {
		cfg = DefaultServiceConfig()
	}

	s := &Service{
		primary: primary,
		cfg:     cfg,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.analyzer == nil {
		s.analyzer = sentiment.NewAnalyzer(nil)
	}
	s.cache = newSentimentCache(cfg.CacheDuration, s.now)
	return s
}

// Headlines returns up to ListSize recent items for ticker, each with a
// relative time label. When nothing is found a single placeholder item is
// returned.
func (s *Service) Headlines(ctx context.Context, ticker string) []types.NewsItem {
	ticker = normalizeTicker(ticker)

	items := s.fetch(ctx, ticker, s.cfg.ListSize)
	if len(items) == 0 {
		return []types.NewsItem{{
			Title:  fmt.Sprintf("No recent news found for %s", ticker),
			Source: "System",
			Time:   "N/A",
		}}
	}

	if len(items) > s.cfg.ListSize {
		items = items[:s.cfg.ListSize]
	}
	now := s.now()
	for i := range items {
		items[i].Time = FormatTimeAgo(items[i].PublishedAt, now)
	}
	return items
}

// Sentiment returns the cached report for ticker, or computes a fresh one.
func (s *Service) Sentiment(ctx context.Context, ticker string) types.SentimentReport {
	ticker = normalizeTicker(ticker)

	if !s.cfg.Enabled {
		return s.neutral(ticker, disabledReasoning)
	}

	if cached, age, ok := s.cache.get(ticker); ok {
		logger.Debug(ctx, "Using cached sentiment", "ticker", ticker, "age_minutes", age.Minutes())
		return cached
	}

	logger.Info(ctx, "Fetching fresh news sentiment", "ticker", ticker)
	return s.Refresh(ctx, ticker)
}

// Refresh recomputes sentiment for ticker, bypassing and then updating the
// cache.
func (s *Service) Refresh(ctx context.Context, ticker string) types.SentimentReport {
	ticker = normalizeTicker(ticker)

	if !s.cfg.Enabled {
		return s.neutral(ticker, disabledReasoning)
	}

	items := s.fetch(ctx, ticker, s.cfg.PageSize)
	if len(items) > s.cfg.PageSize {
		items = items[:s.cfg.PageSize]
	}

	// Empty fetches are not cached.
	if len(items) == 0 {
		return s.neutral(ticker, noArticlesReasoning)
	}

	headlines := make([]string, len(items))
	for i, item := range items {
		headlines[i] = item.Title
	}

	v := s.analyzer.Analyze(headlines)
	report := types.SentimentReport{
		Ticker:           ticker,
		Score:            math.Round(v.Score*100) / 100,
		Sentiment:        v.Label,
		Confidence:       v.Confidence,
		ArticlesAnalyzed: len(items),
		Reasoning:        v.Reasoning,
		PositiveWords:    v.MatchedPositive,
		NegativeWords:    v.MatchedNegative,
		Timestamp:        s.now().Unix(),
	}

	logger.Verdict(ctx, ticker, string(report.Sentiment), report.Score, report.Confidence,
		"articles", report.ArticlesAnalyzed)

	s.cache.set(ticker, report)
	return report
}

// SweepCache drops expired sentiment reports and returns how many went.
func (s *Service) SweepCache() int {
	return s.cache.sweep()
}

// ClearCache removes all cached sentiment data and returns how many reports
// were dropped
func (s *Service) ClearCache() int {
	return s.cache.clear()
}

// CachedTickers returns the tickers that currently have a cached report
func (s *Service) CachedTickers() []string {
	return s.cache.tickers()
}

// fetch asks the primary source, then the fallback. Source errors are
// logged and treated as no headlines.
func (s *Service) fetch(ctx context.Context, ticker string, limit int) []types.NewsItem {
	var items []types.NewsItem
	if s.primary != nil {
		var err error
		items, err = s.primary.Headlines(ctx, ticker, limit)
		if err != nil {
			logger.Fallback(ctx, ticker, "headlines", err.Error(), "source", s.primary.Name())
			items = nil
		}
	}

	if len(items) == 0 && s.fallback != nil {
		logger.Info(ctx, "No articles from primary source, trying fallback",
			"ticker", ticker, "fallback", s.fallback.Name())
		fb, err := s.fallback.Headlines(ctx, ticker, limit)
		if err != nil {
			logger.ErrorWithErr(ctx, "Fallback news source failed", err, "ticker", ticker)
			return nil
		}
		items = fb
	}
	return items
}

func (s *Service) neutral(ticker, reasoning string) types.SentimentReport {
	return types.SentimentReport{
		Ticker:        ticker,
		Score:         0.5,
		Sentiment:     types.Neutral,
		Confidence:    30,
		Reasoning:     reasoning,
		PositiveWords: []string{},
		NegativeWords: []string{},
		Timestamp:     s.now().Unix(),
	}
}

func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
