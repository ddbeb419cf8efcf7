package server

import (
	"encoding/json"
	"net/http"
	"strings"
)

const maxTickerLen = 20

// writeJSON writes a JSON response with the specified status code and data.
func writeJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// writeError writes a standard error JSON response.
func writeError(w http.ResponseWriter, statusCode int, message string) error {
	return writeJSON(w, statusCode, map[string]string{"error": message})
}

// normalizeTicker uppercases a path ticker and reports whether it looks like
// an exchange symbol (letters, digits and . & _ -).
func normalizeTicker(raw string) (string, bool) {
	t := strings.ToUpper(strings.TrimSpace(raw))
	if t == "" || len(t) > maxTickerLen {
		return "", false
	}
	for _, r := range t {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '&', r == '_', r == '-':
		default:
			return "", false
		}
	}
	return t, true
}
