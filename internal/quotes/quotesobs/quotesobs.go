package quotesobs

import (
	"context"

	"indistock/internal/interfaces"
	"indistock/internal/logger"
	"indistock/internal/series"
	"indistock/internal/trace"
	"indistock/internal/types"
)

// observableSource wraps a QuoteSource with observability (logging & tracing)
type observableSource struct {
	src interfaces.QuoteSource
}

// Compile-time interface check
var _ interfaces.QuoteSource = (*observableSource)(nil)

// Wrap wraps a quote source with observability middleware
func Wrap(src interfaces.QuoteSource) interfaces.QuoteSource {
	return &observableSource{src: src}
}

func (o *observableSource) Name() string {
	return o.src.Name()
}

// Quote fetches a price snapshot with observability
func (o *observableSource) Quote(ctx context.Context, ticker string) (types.Quote, error) {
	ctx, span := trace.StartTickerSpan(ctx, "quotes."+o.src.Name()+".Quote", ticker)
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching quote", "source", o.src.Name(), "ticker", ticker)

	q, err := o.src.Quote(ctx, ticker)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch quote", err,
			"source", o.src.Name(),
			"ticker", ticker,
		)
		return types.Quote{}, err
	}

	fields := []any{"source", o.src.Name(), "ticker", ticker}
	if q.Price != nil {
		fields = append(fields, "price", *q.Price, "change", q.Change)
	}
	logger.InfoSkip(ctx, 1, "Quote fetched", fields...)

	return q, nil
}

// DailySeries fetches daily bars with observability
func (o *observableSource) DailySeries(ctx context.Context, ticker string) (series.RawSeries, error) {
	ctx, span := trace.StartTickerSpan(ctx, "quotes."+o.src.Name()+".DailySeries", ticker)
	defer span.End()

	timer := logger.StartOperation(ctx, "daily_series", "source", o.src.Name(), "ticker", ticker)

	raw, err := o.src.DailySeries(timer.GetContext(), ticker)
	if err != nil {
		timer.EndWithError(err)
		return nil, err
	}

	timer.End("days", len(raw))
	return raw, nil
}
