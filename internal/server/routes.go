package server

import "net/http"

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("DELETE /api/cache", s.handleClearCache)

	// {ticker...} also matches an empty ticker so it can be rejected with 400
	mux.HandleFunc("GET /api/news/{ticker...}", s.withTicker(s.handleNews))
	mux.HandleFunc("GET /api/sentiment/{ticker...}", s.withTicker(s.handleSentiment))
	mux.HandleFunc("GET /api/quote/{ticker...}", s.withTicker(s.handleQuote))
	mux.HandleFunc("GET /api/history/{ticker...}", s.withTicker(s.handleHistory))

	return mux
}
