package quotes

import (
	"context"
	"fmt"
	"strconv"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"indistock/internal/interfaces"
	"indistock/internal/series"
	"indistock/internal/types"
)

// historyLookback is how far back daily candles are requested. It covers
// the longest range selector.
const historyLookback = 400 * 24 * time.Hour

// kiteClient is the subset of the Kite Connect client used here.
type kiteClient interface {
	GetQuote(instruments ...string) (kiteconnect.Quote, error)
	GetHistoricalData(instrumentToken int, interval string, fromDate time.Time, toDate time.Time, continuous bool, OI bool) ([]kiteconnect.HistoricalData, error)
}

// KiteParams configures a KiteSource.
type KiteParams struct {
	APIKey      string
	AccessToken string
	Exchange    string
	BaseURI     string
}

// KiteSource reads quotes and daily candles from Zerodha Kite Connect.
type KiteSource struct {
	kc       kiteClient
	exchange string
	tokens   *instrumentMapper
	now      func() time.Time
}

var _ interfaces.QuoteSource = (*KiteSource)(nil)

// NewKiteSource creates a Kite Connect backed source.
func NewKiteSource(p KiteParams) (*KiteSource, error) {
	if p.APIKey == "" || p.AccessToken == "" {
		return nil, fmt.Errorf("kite: %w", interfaces.ErrMissingAPIKey)
	}

	kc := kiteconnect.New(p.APIKey)
	kc.SetAccessToken(p.AccessToken)
	if p.BaseURI != "" {
		kc.SetBaseURI(p.BaseURI)
	}

	return newKiteSource(kc, p.Exchange), nil
}

func newKiteSource(kc kiteClient, exchange string) *KiteSource {
	if exchange == "" {
		exchange = "NSE"
	}
	return &KiteSource{
		kc:       kc,
		exchange: exchange,
		tokens:   newInstrumentMapper(),
		now:      time.Now,
	}
}

func (s *KiteSource) Name() string { return "kite" }

func (s *KiteSource) instrument(ticker string) string {
	return s.exchange + ":" + ticker
}

func (s *KiteSource) quoteData(ticker string) (kiteconnect.QuoteData, error) {
	inst := s.instrument(ticker)
	resp, err := s.kc.GetQuote(inst)
	if err != nil {
		return kiteconnect.QuoteData{}, fmt.Errorf("kite quote %s: %w", inst, err)
	}
	data, ok := resp[inst]
	if !ok || data.InstrumentToken == 0 {
		return kiteconnect.QuoteData{}, fmt.Errorf("kite quote %s: %w", inst, interfaces.ErrUnknownTicker)
	}
	s.tokens.addMapping(ticker, data.InstrumentToken)
	return data, nil
}

// Quote returns the last traded price with change against the previous
// close.
func (s *KiteSource) Quote(_ context.Context, ticker string) (types.Quote, error) {
	data, err := s.quoteData(ticker)
	if err != nil {
		return types.Quote{}, err
	}

	price := data.LastPrice
	prevClose := data.OHLC.Close
	change := data.NetChange
	if change == 0 && prevClose > 0 {
		change = price - prevClose
	}

	q := types.Quote{
		Ticker:        ticker,
		Price:         &price,
		Change:        change,
		Volume:        int64(data.Volume),
		PreviousClose: prevClose,
	}
	if prevClose > 0 {
		q.ChangePercent = strconv.FormatFloat(change/prevClose*100, 'f', 4, 64) + "%"
	}
	return q, nil
}

// DailySeries fetches day candles and keys them the way Alpha Vantage does
// so both providers feed the resolver identically.
func (s *KiteSource) DailySeries(_ context.Context, ticker string) (series.RawSeries, error) {
	token, ok := s.tokens.getToken(ticker)
	if !ok {
		data, err := s.quoteData(ticker)
		if err != nil {
			return nil, err
		}
		token = data.InstrumentToken
	}

	to := s.now()
	candles, err := s.kc.GetHistoricalData(token, "day", to.Add(-historyLookback), to, false, false)
	if err != nil {
		return nil, fmt.Errorf("kite history %s (%d): %w", s.tokens.getSymbol(token), token, err)
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("kite history %s: %w", ticker, interfaces.ErrNoData)
	}

	raw := make(series.RawSeries, len(candles))
	for _, c := range candles {
		raw[c.Date.Format("2006-01-02")] = map[string]string{
			series.KeyOpen:   formatPrice(c.Open),
			series.KeyHigh:   formatPrice(c.High),
			series.KeyLow:    formatPrice(c.Low),
			series.KeyClose:  formatPrice(c.Close),
			series.KeyVolume: strconv.Itoa(c.Volume),
		}
	}
	return raw, nil
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
