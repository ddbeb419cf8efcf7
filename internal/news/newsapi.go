package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"indistock/internal/api"
	"indistock/internal/interfaces"
	"indistock/internal/types"
)

// removedTitle is what NewsAPI substitutes for withdrawn articles.
const removedTitle = "[Removed]"

// NewsAPISource fetches headlines from newsapi.org's /v2/everything.
type NewsAPISource struct {
	client *api.Client
	apiKey string
}

var _ interfaces.NewsSource = (*NewsAPISource)(nil)

// NewNewsAPISource creates a NewsAPI source rooted at baseURL.
func NewNewsAPISource(baseURL, apiKey string, opts ...api.ClientOption) *NewsAPISource {
	opts = append([]api.ClientOption{
		api.WithBaseURL(strings.TrimRight(baseURL, "/")),
		api.WithHeader("User-Agent", "indistock/1.0"),
		api.WithLogging(true),
	}, opts...)
	return &NewsAPISource{
		client: api.NewClient(opts...),
		apiKey: apiKey,
	}
}

func (s *NewsAPISource) Name() string { return "newsapi" }

type newsAPIResponse struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// Headlines searches for "<TICKER> stock India NSE", newest first.
func (s *NewsAPISource) Headlines(ctx context.Context, ticker string, limit int) ([]types.NewsItem, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("newsapi: %w", interfaces.ErrMissingAPIKey)
	}

	query := url.Values{
		"q":        {ticker + " stock India NSE"},
		"language": {"en"},
		"sortBy":   {"publishedAt"},
		"pageSize": {strconv.Itoa(limit)},
		"apiKey":   {s.apiKey},
	}

	resp, err := s.client.GETWithRetry(ctx, "/v2/everything", query, nil)
	if err != nil {
		if api.IsStatus(err, http.StatusTooManyRequests) {
			return nil, fmt.Errorf("newsapi: %w", interfaces.ErrRateLimited)
		}
		return nil, fmt.Errorf("newsapi request: %w", err)
	}

	var body newsAPIResponse
	if err := resp.ParseJSON(&body); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}
	if body.Status != "ok" {
		if body.Code == "rateLimited" {
			return nil, fmt.Errorf("newsapi: %w", interfaces.ErrRateLimited)
		}
		return nil, fmt.Errorf("newsapi %s: %s: %w", body.Code, body.Message, interfaces.ErrNoData)
	}

	items := make([]types.NewsItem, 0, len(body.Articles))
	for _, a := range body.Articles {
		title := strings.TrimSpace(a.Title)
		if title == "" || title == removedTitle {
			continue
		}
		source := a.Source.Name
		if source == "" {
			source = "Unknown"
		}
		published, _ := time.Parse(time.RFC3339, a.PublishedAt)
		items = append(items, types.NewsItem{
			Title:       title,
			Source:      source,
			URL:         a.URL,
			PublishedAt: published,
		})
		if limit > 0 && len(items) == limit {
			break
		}
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("newsapi: %w", interfaces.ErrNoData)
	}
	return items, nil
}
