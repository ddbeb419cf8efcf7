package newsobs

import (
	"context"

	"indistock/internal/interfaces"
	"indistock/internal/logger"
	"indistock/internal/trace"
	"indistock/internal/types"
)

// observableSource wraps a NewsSource with observability (logging & tracing)
type observableSource struct {
	src interfaces.NewsSource
}

// Compile-time interface check
var _ interfaces.NewsSource = (*observableSource)(nil)

// Wrap wraps a news source with observability middleware
func Wrap(src interfaces.NewsSource) interfaces.NewsSource {
	return &observableSource{src: src}
}

func (o *observableSource) Name() string {
	return o.src.Name()
}

// Headlines fetches headlines with observability
func (o *observableSource) Headlines(ctx context.Context, ticker string, limit int) ([]types.NewsItem, error) {
	ctx, span := trace.StartTickerSpan(ctx, "news."+o.src.Name()+".Headlines", ticker)
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching headlines",
		"source", o.src.Name(),
		"ticker", ticker,
		"limit", limit,
	)

	items, err := o.src.Headlines(ctx, ticker, limit)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch headlines", err,
			"source", o.src.Name(),
			"ticker", ticker,
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Headlines fetched",
		"source", o.src.Name(),
		"ticker", ticker,
		"count", len(items),
	)

	return items, nil
}
