package interfaces

import (
	"context"

	"indistock/internal/series"
	"indistock/internal/types"
)

// QuoteSource retrieves prices from a market data provider.
type QuoteSource interface {
	Name() string
	Quote(ctx context.Context, ticker string) (types.Quote, error)
	DailySeries(ctx context.Context, ticker string) (series.RawSeries, error)
}

// QuoteService is what the HTTP layer depends on.
type QuoteService interface {
	Quote(ctx context.Context, ticker string) types.Quote
	History(ctx context.Context, ticker, rng string) types.HistoryResponse
}
