package store

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Provider names.
const (
	NewsProviderNewsAPI = "NEWSAPI"
	NewsProviderScraper = "SCRAPER"

	QuotesProviderAlphaVantage = "ALPHA_VANTAGE"
	QuotesProviderKite         = "KITE"
)

type Config struct {
	Server struct {
		Addr         string        `yaml:"addr"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		CORSOrigin   string        `yaml:"cors_origin"`
	} `yaml:"server"`
	News struct {
		Provider       string        `yaml:"provider"`
		BaseURL        string        `yaml:"base_url"`
		PageSize       int           `yaml:"page_size"`
		ListSize       int           `yaml:"list_size"`
		CacheTTL       time.Duration `yaml:"cache_ttl"`
		GoogleFallback bool          `yaml:"google_fallback"`
		RatePerMinute  int           `yaml:"rate_per_minute"`
		Timeout        time.Duration `yaml:"timeout"`
		APIKey         string        `yaml:"-"`
	} `yaml:"news"`
	Quotes struct {
		Provider      string        `yaml:"provider"`
		BaseURL       string        `yaml:"base_url"`
		SymbolSuffix  string        `yaml:"symbol_suffix"`
		KiteExchange  string        `yaml:"kite_exchange"`
		RatePerMinute int           `yaml:"rate_per_minute"`
		Timeout       time.Duration `yaml:"timeout"`
		APIKey        string        `yaml:"-"`
		KiteAPIKey    string        `yaml:"-"`
		KiteToken     string        `yaml:"-"`
	} `yaml:"quotes"`
	Scheduler struct {
		Enabled   bool     `yaml:"enabled"`
		SweepCron string   `yaml:"sweep_cron"`
		WarmCron  string   `yaml:"warm_cron"`
		Watchlist []string `yaml:"watchlist"`
	} `yaml:"scheduler"`
	Series struct {
		Timezone string `yaml:"timezone"`
	} `yaml:"series"`
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr cannot be empty")
	}
	if c.News.Provider != NewsProviderNewsAPI && c.News.Provider != NewsProviderScraper {
		return fmt.Errorf("news.provider must be '%s' or '%s', got '%s'", NewsProviderNewsAPI, NewsProviderScraper, c.News.Provider)
	}
	if c.Quotes.Provider != QuotesProviderAlphaVantage && c.Quotes.Provider != QuotesProviderKite {
		return fmt.Errorf("quotes.provider must be '%s' or '%s', got '%s'", QuotesProviderAlphaVantage, QuotesProviderKite, c.Quotes.Provider)
	}
	if c.News.PageSize <= 0 || c.News.PageSize > 100 {
		return fmt.Errorf("news.page_size must be between 1-100, got %d", c.News.PageSize)
	}
	if c.News.ListSize <= 0 || c.News.ListSize > c.News.PageSize {
		return fmt.Errorf("news.list_size must be between 1 and news.page_size, got %d", c.News.ListSize)
	}
	if c.News.CacheTTL < 0 {
		return fmt.Errorf("news.cache_ttl cannot be negative, got %s", c.News.CacheTTL)
	}
	if c.News.RatePerMinute < 0 || c.Quotes.RatePerMinute < 0 {
		return errors.New("rate_per_minute cannot be negative")
	}
	return nil
}

// Location returns the market calendar timezone. Unknown names fall back
// to a fixed IST offset so a host without tzdata still works.
func (c *Config) Location() *time.Location {
	if c.Series.Timezone != "" {
		if loc, err := time.LoadLocation(c.Series.Timezone); err == nil {
			return loc
		}
	}
	return time.FixedZone("IST", 19800)
}

// Default returns a config with every default applied.
func Default() *Config {
	var c Config
	applyDefaults(&c)
	return &c
}

// LoadConfig reads path (a missing file is fine), applies env overrides and
// defaults, then validates.
func LoadConfig(path string) (*Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(b) > 0 {
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&c)
	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

func applyEnv(c *Config) {
	// Secrets only ever come from the environment
	c.News.APIKey = os.Getenv("NEWS_API_KEY")
	c.Quotes.APIKey = os.Getenv("ALPHA_VANTAGE_KEY")
	c.Quotes.KiteAPIKey = os.Getenv("KITE_API_KEY")
	c.Quotes.KiteToken = os.Getenv("KITE_ACCESS_TOKEN")

	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("NEWS_PROVIDER"); v != "" {
		c.News.Provider = v
	}
	if v := os.Getenv("QUOTES_PROVIDER"); v != "" {
		c.Quotes.Provider = v
	}
}

func applyDefaults(c *Config) {
	if c.Server.Addr == "" {
		c.Server.Addr = ":3001"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 60 * time.Second
	}
	if c.Server.CORSOrigin == "" {
		c.Server.CORSOrigin = "*"
	}

	c.News.Provider = strings.ToUpper(c.News.Provider)
	if c.News.Provider == "" {
		c.News.Provider = NewsProviderNewsAPI
	}
	if c.News.BaseURL == "" {
		c.News.BaseURL = "https://newsapi.org"
	}
	if c.News.PageSize == 0 {
		c.News.PageSize = 15
	}
	if c.News.ListSize == 0 {
		c.News.ListSize = 8
	}
	if c.News.CacheTTL == 0 {
		c.News.CacheTTL = 15 * time.Minute
	}
	if c.News.Timeout == 0 {
		c.News.Timeout = 10 * time.Second
	}

	c.Quotes.Provider = strings.ToUpper(c.Quotes.Provider)
	if c.Quotes.Provider == "" {
		c.Quotes.Provider = QuotesProviderAlphaVantage
	}
	if c.Quotes.BaseURL == "" {
		c.Quotes.BaseURL = "https://www.alphavantage.co"
	}
	if c.Quotes.SymbolSuffix == "" {
		c.Quotes.SymbolSuffix = ".BSE"
	}
	if c.Quotes.KiteExchange == "" {
		c.Quotes.KiteExchange = "NSE"
	}
	if c.Quotes.RatePerMinute == 0 {
		// Alpha Vantage free tier
		c.Quotes.RatePerMinute = 5
	}
	if c.Quotes.Timeout == 0 {
		c.Quotes.Timeout = 15 * time.Second
	}

	if c.Scheduler.SweepCron == "" {
		c.Scheduler.SweepCron = "0 */10 * * * *"
	}
	if c.Scheduler.WarmCron == "" {
		c.Scheduler.WarmCron = "0 0 9 * * 1-5"
	}
	if c.Series.Timezone == "" {
		c.Series.Timezone = "Asia/Kolkata"
	}
}

// MissingKeys lists provider credentials that are not set for the chosen
// providers. Missing keys are not fatal; the service falls back.
func (c *Config) MissingKeys() []string {
	var missing []string
	if c.News.Provider == NewsProviderNewsAPI && c.News.APIKey == "" {
		missing = append(missing, "NEWS_API_KEY")
	}
	switch c.Quotes.Provider {
	case QuotesProviderAlphaVantage:
		if c.Quotes.APIKey == "" {
			missing = append(missing, "ALPHA_VANTAGE_KEY")
		}
	case QuotesProviderKite:
		if c.Quotes.KiteAPIKey == "" {
			missing = append(missing, "KITE_API_KEY")
		}
		if c.Quotes.KiteToken == "" {
			missing = append(missing, "KITE_ACCESS_TOKEN")
		}
	}
	return missing
}
