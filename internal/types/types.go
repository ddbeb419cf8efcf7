package types

import "time"

// Label is the direction of a sentiment verdict.
type Label string

const (
	Bullish Label = "bullish"
	Bearish Label = "bearish"
	Neutral Label = "neutral"
)

// SentimentVerdict is the result of scanning a batch of headlines.
type SentimentVerdict struct {
	Score           float64  `json:"score"`
	Label           Label    `json:"sentiment"`
	Confidence      int      `json:"confidence"`
	Reasoning       string   `json:"reasoning"`
	MatchedPositive []string `json:"positiveWords"`
	MatchedNegative []string `json:"negativeWords"`
	PositiveCount   int      `json:"positiveCount"`
	NegativeCount   int      `json:"negativeCount"`
	HeadlineCount   int      `json:"headlineCount"`
}

// Bar is one trading day of OHLCV data.
type Bar struct {
	Date   time.Time `json:"-"`
	Time   string    `json:"time"` // 2006-01-02
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Series is an oldest-first run of daily bars.
type Series struct {
	Days      int   `json:"days"`
	Synthetic bool  `json:"synthetic"`
	Bars      []Bar `json:"data"`
}

// NewsItem is a single headline as returned by a news source.
type NewsItem struct {
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	Time        string    `json:"time"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"-"`
}

// SentimentReport is the API shape of a ticker's sentiment.
type SentimentReport struct {
	Ticker           string   `json:"ticker"`
	Score            float64  `json:"score"`
	Sentiment        Label    `json:"sentiment"`
	Confidence       int      `json:"confidence"`
	ArticlesAnalyzed int      `json:"articlesAnalyzed"`
	Reasoning        string   `json:"reasoning"`
	PositiveWords    []string `json:"positiveWords"`
	NegativeWords    []string `json:"negativeWords"`
	Timestamp        int64    `json:"timestamp"`
}

// Quote is a last-price snapshot. Price is nil when no source had data.
type Quote struct {
	Ticker        string   `json:"ticker"`
	Price         *float64 `json:"price"`
	Change        float64  `json:"change,omitempty"`
	ChangePercent string   `json:"changePercent,omitempty"`
	Volume        int64    `json:"volume,omitempty"`
	PreviousClose float64  `json:"previousClose,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// HistoryResponse is the API shape of a price history request.
type HistoryResponse struct {
	Ticker    string `json:"ticker"`
	Range     string `json:"range"`
	Days      int    `json:"days"`
	Synthetic bool   `json:"synthetic"`
	Data      []Bar  `json:"data"`
}
