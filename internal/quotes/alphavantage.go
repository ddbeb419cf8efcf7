package quotes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"indistock/internal/api"
	"indistock/internal/interfaces"
	"indistock/internal/series"
	"indistock/internal/types"
)

// AlphaVantageSource reads BSE quotes and daily bars from alphavantage.co.
type AlphaVantageSource struct {
	client *api.Client
	apiKey string
	suffix string
}

var _ interfaces.QuoteSource = (*AlphaVantageSource)(nil)

// NewAlphaVantageSource creates a source. suffix is appended to tickers to
// form the provider symbol (".BSE").
func NewAlphaVantageSource(baseURL, apiKey, suffix string, opts ...api.ClientOption) *AlphaVantageSource {
	opts = append([]api.ClientOption{
		api.WithBaseURL(strings.TrimRight(baseURL, "/")),
		api.WithLogging(true),
	}, opts...)
	return &AlphaVantageSource{
		client: api.NewClient(opts...),
		apiKey: apiKey,
		suffix: suffix,
	}
}

func (s *AlphaVantageSource) Name() string { return "alphavantage" }

// notices are the keys Alpha Vantage uses instead of data when throttling
// or rejecting a call.
type notices struct {
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

func (n notices) err() error {
	switch {
	case n.Note != "" || n.Information != "":
		return fmt.Errorf("alphavantage: %w", interfaces.ErrRateLimited)
	case n.ErrorMessage != "":
		return fmt.Errorf("alphavantage: %s: %w", n.ErrorMessage, interfaces.ErrUnknownTicker)
	}
	return nil
}

type globalQuoteResponse struct {
	notices
	GlobalQuote map[string]string `json:"Global Quote"`
}

// Quote calls GLOBAL_QUOTE.
func (s *AlphaVantageSource) Quote(ctx context.Context, ticker string) (types.Quote, error) {
	var body globalQuoteResponse
	if err := s.query(ctx, "GLOBAL_QUOTE", ticker, nil, &body); err != nil {
		return types.Quote{}, err
	}
	if err := body.notices.err(); err != nil {
		return types.Quote{}, err
	}

	gq := body.GlobalQuote
	price, err := strconv.ParseFloat(gq["05. price"], 64)
	if err != nil {
		return types.Quote{}, fmt.Errorf("alphavantage quote %s: %w", ticker, interfaces.ErrNoData)
	}

	q := types.Quote{
		Ticker:        ticker,
		Price:         &price,
		ChangePercent: gq["10. change percent"],
	}
	q.Change, _ = strconv.ParseFloat(gq["09. change"], 64)
	q.Volume, _ = strconv.ParseInt(gq["06. volume"], 10, 64)
	q.PreviousClose, _ = strconv.ParseFloat(gq["08. previous close"], 64)
	return q, nil
}

type dailySeriesResponse struct {
	notices
	Daily series.RawSeries `json:"Time Series (Daily)"`
}

// DailySeries calls TIME_SERIES_DAILY with the full output size. Rows are
// returned as provided; validation happens in the series resolver.
func (s *AlphaVantageSource) DailySeries(ctx context.Context, ticker string) (series.RawSeries, error) {
	var body dailySeriesResponse
	extra := url.Values{"outputsize": {"full"}}
	if err := s.query(ctx, "TIME_SERIES_DAILY", ticker, extra, &body); err != nil {
		return nil, err
	}
	if err := body.notices.err(); err != nil {
		return nil, err
	}
	if len(body.Daily) == 0 {
		return nil, fmt.Errorf("alphavantage series %s: %w", ticker, interfaces.ErrNoData)
	}
	return body.Daily, nil
}

func (s *AlphaVantageSource) query(ctx context.Context, function, ticker string, extra url.Values, out any) error {
	if s.apiKey == "" {
		return fmt.Errorf("alphavantage: %w", interfaces.ErrMissingAPIKey)
	}

	q := url.Values{
		"function": {function},
		"symbol":   {ticker + s.suffix},
		"apikey":   {s.apiKey},
	}
	for k, v := range extra {
		q[k] = v
	}

	resp, err := s.client.GETWithRetry(ctx, "/query", q, nil)
	if err != nil {
		if api.IsStatus(err, http.StatusTooManyRequests) {
			return fmt.Errorf("alphavantage: %w", interfaces.ErrRateLimited)
		}
		return fmt.Errorf("alphavantage %s: %w", function, err)
	}
	return resp.ParseJSON(out)
}
