package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indistock/internal/types"
)

func TestRunSentiment_Args(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runSentiment([]string{"Stock surge on strong profit growth", "Market fall amid volatile trading"}, nil, &out))

	var v types.SentimentVerdict
	require.NoError(t, json.Unmarshal(out.Bytes(), &v))
	assert.Equal(t, types.Bullish, v.Label)
	assert.Equal(t, 95, v.Confidence)
}

func TestRunSentiment_Stdin(t *testing.T) {
	var out bytes.Buffer
	stdin := strings.NewReader("Shares drop on weak demand\n\n")
	require.NoError(t, runSentiment(nil, stdin, &out))

	var v types.SentimentVerdict
	require.NoError(t, json.Unmarshal(out.Bytes(), &v))
	assert.Equal(t, types.Bearish, v.Label)
	assert.Equal(t, 1, v.HeadlineCount)
}

func TestRunHistory_Synthetic(t *testing.T) {
	var out bytes.Buffer
	missing := filepath.Join(t.TempDir(), "none.yaml")
	require.NoError(t, runHistory([]string{"-range", "90d", "-config", missing}, &out))

	var s types.Series
	require.NoError(t, json.Unmarshal(out.Bytes(), &s))
	assert.True(t, s.Synthetic)
	assert.Equal(t, 90, s.Days)
	assert.NotEmpty(t, s.Bars)
}

func TestRunHistory_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "daily.json")
	body := `{"Time Series (Daily)": {
		"2026-01-05": {"1. open": "100", "2. high": "102", "3. low": "99", "4. close": "101", "5. volume": "1000"},
		"2026-01-06": {"1. open": "101", "2. high": "103", "3. low": "100", "4. close": "102", "5. volume": "1100"}
	}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	var out bytes.Buffer
	require.NoError(t, runHistory([]string{"-range", "7d", "-file", path, "-config", filepath.Join(dir, "none.yaml")}, &out))

	var s types.Series
	require.NoError(t, json.Unmarshal(out.Bytes(), &s))
	assert.False(t, s.Synthetic)
	require.Len(t, s.Bars, 2)
	assert.Equal(t, "2026-01-05", s.Bars[0].Time)
}

func TestReadRawSeries_BareMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"2026-01-05": {"open": "1"}}`), 0o644))

	raw, err := readRawSeries(path)
	require.NoError(t, err)
	assert.Equal(t, "1", raw["2026-01-05"]["open"])
}
