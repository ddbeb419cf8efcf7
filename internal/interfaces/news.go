package interfaces

import (
	"context"

	"indistock/internal/types"
)

// NewsSource retrieves recent headlines for a ticker, newest first.
type NewsSource interface {
	Name() string
	Headlines(ctx context.Context, ticker string, limit int) ([]types.NewsItem, error)
}

// NewsService is what the HTTP layer and scheduler depend on.
type NewsService interface {
	Headlines(ctx context.Context, ticker string) []types.NewsItem
	Sentiment(ctx context.Context, ticker string) types.SentimentReport
	Refresh(ctx context.Context, ticker string) types.SentimentReport
	SweepCache() int
}
