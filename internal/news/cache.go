package news

import (
	"sort"
	"sync"
	"time"

	"indistock/internal/types"
)

// sentimentCache stores sentiment reports per ticker for a fixed TTL.
// Expired entries are never served; sweep drops them from memory.
type sentimentCache struct {
	mu   sync.RWMutex
	data map[string]*cacheEntry
	ttl  time.Duration
	now  func() time.Time
}

type cacheEntry struct {
	report    types.SentimentReport
	timestamp time.Time
}

func newSentimentCache(ttl time.Duration, now func() time.Time) *sentimentCache {
	if now == nil {
		now = time.Now
	}
	return &sentimentCache{
		data: make(map[string]*cacheEntry),
		ttl:  ttl,
		now:  now,
	}
}

// get retrieves a cached report if it has not expired
func (c *sentimentCache) get(ticker string) (types.SentimentReport, time.Duration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.data[ticker]
	if !exists {
		return types.SentimentReport{}, 0, false
	}

	age := c.now().Sub(entry.timestamp)
	if age > c.ttl {
		return types.SentimentReport{}, 0, false
	}

	return entry.report, age, true
}

func (c *sentimentCache) set(ticker string, report types.SentimentReport) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[ticker] = &cacheEntry{
		report:    report,
		timestamp: c.now(),
	}
}

// sweep removes expired entries and returns how many were dropped.
func (c *sentimentCache) sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for ticker, entry := range c.data {
		if now.Sub(entry.timestamp) > c.ttl {
			delete(c.data, ticker)
			removed++
		}
	}
	return removed
}

// clear drops every entry and returns how many there were.
func (c *sentimentCache) clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.data)
	c.data = make(map[string]*cacheEntry)
	return n
}

// tickers returns the cached tickers in sorted order.
func (c *sentimentCache) tickers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.data))
	for ticker := range c.data {
		out = append(out, ticker)
	}
	sort.Strings(out)
	return out
}
