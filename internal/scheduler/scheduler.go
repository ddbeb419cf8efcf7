package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"indistock/internal/interfaces"
	"indistock/internal/logger"
)

// Scheduler runs periodic cache maintenance and watchlist warm-up.
type Scheduler struct {
	cron      *cron.Cron
	news      interfaces.NewsService
	watchlist []string
	ctx       context.Context
}

// New creates a Scheduler whose cron expressions (with seconds) are
// evaluated in loc.
func New(ctx context.Context, news interfaces.NewsService, watchlist []string, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	tickers := make([]string, 0, len(watchlist))
	for _, t := range watchlist {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			tickers = append(tickers, t)
		}
	}
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		news:      news,
		watchlist: tickers,
		ctx:       ctx,
	}
}

// RegisterAll registers the cache sweep and, when a watchlist is set, the
// sentiment warm-up.
func (s *Scheduler) RegisterAll(sweepCron, warmCron string) error {
	if _, err := s.cron.AddFunc(sweepCron, s.sweepTask); err != nil {
		return fmt.Errorf("register sweep task: %w", err)
	}
	if len(s.watchlist) == 0 {
		return nil
	}
	if _, err := s.cron.AddFunc(warmCron, s.warmTask); err != nil {
		return fmt.Errorf("register warm task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info(s.ctx, "Scheduler started", "jobs", len(s.cron.Entries()), "watchlist", s.watchlist)
}

// Stop stops the scheduler and waits for running jobs until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
		logger.Info(ctx, "Scheduler stopped")
	case <-ctx.Done():
		logger.Warn(ctx, "Scheduler stop timed out with jobs still running")
	}
}

// RunWarmNow refreshes the watchlist immediately.
func (s *Scheduler) RunWarmNow() {
	s.warmTask()
}

func (s *Scheduler) sweepTask() {
	removed := s.news.SweepCache()
	logger.Debug(s.ctx, "Sentiment cache swept", "removed", removed)
}

func (s *Scheduler) warmTask() {
	timer := logger.StartOperation(s.ctx, "warm_watchlist", "tickers", len(s.watchlist))
	ctx := timer.GetContext()

	for _, ticker := range s.watchlist {
		if ctx.Err() != nil {
			timer.EndWithError(ctx.Err())
			return
		}
		report := s.news.Refresh(ctx, ticker)
		logger.Debug(ctx, "Watchlist ticker refreshed",
			"ticker", ticker,
			"sentiment", report.Sentiment,
			"articles", report.ArticlesAnalyzed)
	}
	timer.End()
}
