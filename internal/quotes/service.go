package quotes

import (
	"context"
	"strings"

	"indistock/internal/interfaces"
	"indistock/internal/logger"
	"indistock/internal/series"
	"indistock/internal/types"
)

const quoteUnavailable = "Quote not available for this ticker"

// Service serves quotes and price history. History always succeeds:
// provider failures fall back to a synthetic series.
type Service struct {
	src      interfaces.QuoteSource
	resolver *series.Resolver
}

var _ interfaces.QuoteService = (*Service)(nil)

// NewService creates a quote service. src may be nil, in which case every
// quote is unavailable and every history is synthetic.
func NewService(src interfaces.QuoteSource, resolver *series.Resolver) *Service {
	if resolver == nil {
		resolver = series.NewResolver()
	}
	return &Service{src: src, resolver: resolver}
}

// Quote returns the latest price for ticker, or a quote with a nil price and
// an error message when no provider data is available.
func (s *Service) Quote(ctx context.Context, ticker string) types.Quote {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	unavailable := types.Quote{Ticker: ticker, Error: quoteUnavailable}

	if s.src == nil {
		return unavailable
	}

	q, err := s.src.Quote(ctx, ticker)
	if err != nil || q.Price == nil {
		reason := "no price in response"
		if err != nil {
			reason = err.Error()
		}
		logger.Fallback(ctx, ticker, "quote", reason, "source", s.src.Name())
		return unavailable
	}

	q.Ticker = ticker
	return q
}

// History resolves a daily series for the requested range.
func (s *Service) History(ctx context.Context, ticker, rng string) types.HistoryResponse {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if strings.TrimSpace(rng) == "" {
		rng = series.DefaultRange
	}

	var raw series.RawSeries
	if s.src != nil {
		var err error
		raw, err = s.src.DailySeries(ctx, ticker)
		if err != nil {
			logger.Fallback(ctx, ticker, "history", err.Error(), "source", s.src.Name())
			raw = nil
		}
	}

	resolved := s.resolver.Resolve(rng, raw)
	if resolved.Synthetic && raw != nil {
		logger.Fallback(ctx, ticker, "history", "no usable rows in provider series", "rows", len(raw))
	}

	return types.HistoryResponse{
		Ticker:    ticker,
		Range:     rng,
		Days:      resolved.Days,
		Synthetic: resolved.Synthetic,
		Data:      resolved.Bars,
	}
}
