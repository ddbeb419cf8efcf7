package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"indistock/internal/api"
	"indistock/internal/interfaces"
	"indistock/internal/logger"
	"indistock/internal/news"
	"indistock/internal/news/newsobs"
	"indistock/internal/quotes"
	"indistock/internal/quotes/quotesobs"
	"indistock/internal/scheduler"
	"indistock/internal/series"
	"indistock/internal/store"
)

// initializeSystem loads .env and initializes logger and tracer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}

	for _, key := range cfg.MissingKeys() {
		logger.Warn(ctx, "API key not set, falling back", "key", key)
	}
	return cfg, nil
}

// initializeNews builds the news service with its primary and fallback sources
func initializeNews(ctx context.Context, cfg *store.Config) *news.Service {
	scraper := newsobs.Wrap(news.NewGoogleNewsSource("", cfg.News.Timeout))

	var primary interfaces.NewsSource
	var opts []news.ServiceOption
	switch cfg.News.Provider {
	case store.NewsProviderScraper:
		primary = scraper
		logger.Info(ctx, "Using Google News scraper for headlines")
	default:
		primary = newsobs.Wrap(news.NewNewsAPISource(cfg.News.BaseURL, cfg.News.APIKey,
			api.WithTimeout(cfg.News.Timeout),
			api.WithRateLimit(cfg.News.RatePerMinute),
		))
		if cfg.News.GoogleFallback {
			opts = append(opts, news.WithFallback(scraper))
		}
		logger.Info(ctx, "Using NewsAPI for headlines", "google_fallback", cfg.News.GoogleFallback)
	}

	return news.NewService(primary, &news.ServiceConfig{
		PageSize:      cfg.News.PageSize,
		ListSize:      cfg.News.ListSize,
		CacheDuration: cfg.News.CacheTTL,
		Enabled:       true,
	}, opts...)
}

// initializeQuotes builds the quote service for the configured provider.
// A provider that cannot be constructed leaves history on synthetic data.
func initializeQuotes(ctx context.Context, cfg *store.Config) *quotes.Service {
	var src interfaces.QuoteSource

	switch cfg.Quotes.Provider {
	case store.QuotesProviderKite:
		kite, err := quotes.NewKiteSource(quotes.KiteParams{
			APIKey:      cfg.Quotes.KiteAPIKey,
			AccessToken: cfg.Quotes.KiteToken,
			Exchange:    cfg.Quotes.KiteExchange,
		})
		if err != nil {
			logger.Warn(ctx, "Kite source unavailable, using synthetic history", "error", err)
		} else {
			src = quotesobs.Wrap(kite)
			logger.Info(ctx, "Using Zerodha Kite for quotes", "exchange", cfg.Quotes.KiteExchange)
		}
	default:
		src = quotesobs.Wrap(quotes.NewAlphaVantageSource(cfg.Quotes.BaseURL, cfg.Quotes.APIKey, cfg.Quotes.SymbolSuffix,
			api.WithTimeout(cfg.Quotes.Timeout),
			api.WithRateLimit(cfg.Quotes.RatePerMinute),
		))
		logger.Info(ctx, "Using Alpha Vantage for quotes", "suffix", cfg.Quotes.SymbolSuffix)
	}

	resolver := series.NewResolver(series.WithResolverLocation(cfg.Location()))
	return quotes.NewService(src, resolver)
}

// initializeScheduler registers cron jobs when enabled
func initializeScheduler(ctx context.Context, cfg *store.Config, svc interfaces.NewsService) (*scheduler.Scheduler, error) {
	if !cfg.Scheduler.Enabled {
		logger.Info(ctx, "Scheduler disabled")
		return nil, nil
	}

	sched := scheduler.New(ctx, svc, cfg.Scheduler.Watchlist, cfg.Location())
	if err := sched.RegisterAll(cfg.Scheduler.SweepCron, cfg.Scheduler.WarmCron); err != nil {
		return nil, fmt.Errorf("failed to register scheduler jobs: %w", err)
	}
	return sched, nil
}
