package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"indistock/internal/api"
	"indistock/internal/interfaces"
	"indistock/internal/logger"
	"indistock/internal/types"
)

const googleNewsURL = "https://news.google.com"

// GoogleNewsSource scrapes the Google News search page. It needs no API
// key, which makes it the fallback when NewsAPI is unavailable.
type GoogleNewsSource struct {
	baseURL string
	timeout time.Duration
}

var _ interfaces.NewsSource = (*GoogleNewsSource)(nil)

// NewGoogleNewsSource creates a scraper. An empty baseURL selects
// news.google.com.
func NewGoogleNewsSource(baseURL string, timeout time.Duration) *GoogleNewsSource {
	if baseURL == "" {
		baseURL = googleNewsURL
	}
	return &GoogleNewsSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

func (s *GoogleNewsSource) Name() string { return "googlenews" }

// Headlines visits the search results page and extracts article cards.
func (s *GoogleNewsSource) Headlines(ctx context.Context, ticker string, limit int) ([]types.NewsItem, error) {
	var items []types.NewsItem

	c := colly.NewCollector(
		colly.AllowedDomains(getDomain(s.baseURL)),
		colly.MaxDepth(1),
		colly.UserAgent(api.BrowserHeaders()["User-Agent"]),
		colly.StdlibContext(ctx),
	)
	if s.timeout > 0 {
		c.SetRequestTimeout(s.timeout)
	}

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept-Language", "en-IN,en;q=0.9")
	})

	c.OnHTML("article", func(e *colly.HTMLElement) {
		if limit > 0 && len(items) >= limit {
			return
		}
		item, ok := articleFromCard(e.DOM, s.baseURL)
		if !ok {
			return
		}
		items = append(items, item)
	})

	var scrapeErr error
	c.OnError(func(r *colly.Response, err error) {
		scrapeErr = err
		logger.ErrorWithErr(ctx, "Scraping error", err, "source", s.Name(), "url", r.Request.URL.String())
	})

	searchQuery := url.QueryEscape(ticker + " stock news India")
	searchURL := fmt.Sprintf("%s/search?q=%s&hl=en-IN&gl=IN&ceid=IN:en", s.baseURL, searchQuery)

	if err := c.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("failed to scrape Google News: %w", err)
	}
	c.Wait()

	if len(items) == 0 {
		if scrapeErr != nil {
			return nil, fmt.Errorf("google news: %w", scrapeErr)
		}
		return nil, fmt.Errorf("google news: %w", interfaces.ErrNoData)
	}

	logger.Debug(ctx, "Google News scraping completed", "ticker", ticker, "articles", len(items))
	return items, nil
}

// articleFromCard pulls title, link, outlet and timestamp out of one
// search result card.
func articleFromCard(card *goquery.Selection, baseURL string) (types.NewsItem, bool) {
	title := strings.TrimSpace(card.Find("h3, h4").First().Text())
	if title == "" {
		title = strings.TrimSpace(card.Find("a[href^='./articles/']").Last().Text())
	}
	link, _ := card.Find("a[href]").First().Attr("href")
	if title == "" || link == "" {
		return types.NewsItem{}, false
	}
	// Google News links are relative: ./articles/<id>
	if strings.HasPrefix(link, "./") {
		link = baseURL + link[1:]
	}

	source := strings.TrimSpace(card.Find("[data-n-tid], .vr1PYe").First().Text())
	if source == "" {
		source = "GoogleNews"
	}

	var published time.Time
	if dt, ok := card.Find("time[datetime]").First().Attr("datetime"); ok {
		published, _ = time.Parse(time.RFC3339, dt)
	}

	return types.NewsItem{
		Title:       title,
		Source:      source,
		URL:         link,
		PublishedAt: published,
	}, true
}

// getDomain extracts domain from URL
func getDomain(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
