package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":3001", cfg.Server.Addr)
	assert.Equal(t, "*", cfg.Server.CORSOrigin)
	assert.Equal(t, NewsProviderNewsAPI, cfg.News.Provider)
	assert.Equal(t, 15, cfg.News.PageSize)
	assert.Equal(t, 8, cfg.News.ListSize)
	assert.Equal(t, QuotesProviderAlphaVantage, cfg.Quotes.Provider)
	assert.Equal(t, ".BSE", cfg.Quotes.SymbolSuffix)
	assert.Equal(t, 5, cfg.Quotes.RatePerMinute)
	assert.Equal(t, "0 */10 * * * *", cfg.Scheduler.SweepCron)
}

func TestLoadConfig_FromYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":8080"
  read_timeout: 5s
news:
  provider: scraper
  page_size: 20
  list_size: 10
  cache_ttl: 1h
  google_fallback: true
quotes:
  provider: kite
  kite_exchange: BSE
scheduler:
  enabled: true
  watchlist: [RELIANCE, TCS]
series:
  timezone: UTC
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, NewsProviderScraper, cfg.News.Provider)
	assert.Equal(t, 20, cfg.News.PageSize)
	assert.Equal(t, time.Hour, cfg.News.CacheTTL)
	assert.True(t, cfg.News.GoogleFallback)
	assert.Equal(t, QuotesProviderKite, cfg.Quotes.Provider)
	assert.Equal(t, "BSE", cfg.Quotes.KiteExchange)
	assert.Equal(t, []string{"RELIANCE", "TCS"}, cfg.Scheduler.Watchlist)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9999")
	t.Setenv("NEWS_API_KEY", "news-key")
	t.Setenv("QUOTES_PROVIDER", "KITE")

	cfg, err := LoadConfig(writeConfig(t, "server:\n  addr: \":1\"\n"))
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "news-key", cfg.News.APIKey)
	assert.Equal(t, QuotesProviderKite, cfg.Quotes.Provider)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad news provider":  "news:\n  provider: rss\n",
		"bad quote provider": "quotes:\n  provider: yahoo\n",
		"list over page":     "news:\n  page_size: 5\n  list_size: 6\n",
		"page too large":     "news:\n  page_size: 500\n",
		"broken yaml":        "server: [",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestMissingKeys(t *testing.T) {
	cfg := Default()
	assert.ElementsMatch(t, []string{"NEWS_API_KEY", "ALPHA_VANTAGE_KEY"}, cfg.MissingKeys())

	cfg.News.Provider = NewsProviderScraper
	cfg.Quotes.Provider = QuotesProviderKite
	cfg.Quotes.KiteAPIKey = "k"
	assert.Equal(t, []string{"KITE_ACCESS_TOKEN"}, cfg.MissingKeys())
}

func TestLocation_FallsBackToIST(t *testing.T) {
	cfg := Default()
	cfg.Series.Timezone = "Mars/Olympus_Mons"

	_, offset := time.Date(2026, 1, 1, 0, 0, 0, 0, cfg.Location()).Zone()
	assert.Equal(t, 19800, offset)
}
