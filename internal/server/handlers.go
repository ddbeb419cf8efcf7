package server

import (
	"net/http"
	"time"

	"indistock/internal/logger"
)

type tickerHandler func(w http.ResponseWriter, r *http.Request, ticker string)

// withTicker validates the {ticker} path value before calling h.
func (s *Server) withTicker(h tickerHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticker, ok := normalizeTicker(r.PathValue("ticker"))
		if !ok {
			_ = writeError(w, http.StatusBadRequest, "invalid ticker")
			return
		}
		h(w, r, ticker)
	}
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, data any) {
	if err := writeJSON(w, http.StatusOK, data); err != nil {
		logger.ErrorWithErr(r.Context(), "Failed to encode response", err, "path", r.URL.Path)
	}
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request, ticker string) {
	s.respond(w, r, s.news.Headlines(r.Context(), ticker))
}

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request, ticker string) {
	s.respond(w, r, s.news.Sentiment(r.Context(), ticker))
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request, ticker string) {
	s.respond(w, r, s.quotes.Quote(r.Context(), ticker))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request, ticker string) {
	s.respond(w, r, s.quotes.History(r.Context(), ticker, r.URL.Query().Get("range")))
}

type healthResponse struct {
	Status        string   `json:"status"`
	Time          string   `json:"time"`
	UptimeSeconds int64    `json:"uptimeSeconds"`
	NewsProvider  string   `json:"newsProvider"`
	QuoteProvider string   `json:"quoteProvider"`
	MissingKeys   []string `json:"missingKeys"`
	CachedTickers []string `json:"cachedTickers,omitempty"`
}

// cacheLister is implemented by news services that expose their cache.
type cacheLister interface {
	CachedTickers() []string
}

type cacheClearer interface {
	ClearCache() int
}

func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	cc, ok := s.news.(cacheClearer)
	if !ok {
		_ = writeError(w, http.StatusNotImplemented, "news service has no cache")
		return
	}
	n := cc.ClearCache()
	logger.Info(r.Context(), "Sentiment cache cleared", "entries", n)
	s.respond(w, r, map[string]int{"cleared": n})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:        "ok",
		Time:          time.Now().UTC().Format(time.RFC3339),
		UptimeSeconds: int64(time.Since(s.start).Seconds()),
		NewsProvider:  s.cfg.News.Provider,
		QuoteProvider: s.cfg.Quotes.Provider,
		MissingKeys:   s.cfg.MissingKeys(),
	}
	if resp.MissingKeys == nil {
		resp.MissingKeys = []string{}
	}
	if cl, ok := s.news.(cacheLister); ok {
		resp.CachedTickers = cl.CachedTickers()
	}
	s.respond(w, r, resp)
}
