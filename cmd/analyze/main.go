package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"indistock/internal/sentiment"
	"indistock/internal/series"
	"indistock/internal/store"
)

const usage = `usage:
  analyze sentiment [headline ...]          headlines from args, or one per line on stdin
  analyze history [-range 30d] [-file f]    resolved daily series; -file is a TIME_SERIES_DAILY response`

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "sentiment":
		err = runSentiment(os.Args[2:], os.Stdin, os.Stdout)
	case "history":
		err = runHistory(os.Args[2:], os.Stdout)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "analyze %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func runSentiment(args []string, stdin io.Reader, out io.Writer) error {
	headlines := args
	if len(headlines) == 0 {
		scanner := bufio.NewScanner(stdin)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				headlines = append(headlines, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	return writeJSON(out, sentiment.Analyze(headlines))
}

func runHistory(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	rng := fs.String("range", series.DefaultRange, "7d, 30d, 90d or 1y")
	file := fs.String("file", "", "Alpha Vantage TIME_SERIES_DAILY JSON (optional)")
	configPath := fs.String("config", "config.yaml", "config file for the market timezone")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	var raw series.RawSeries
	if *file != "" {
		if raw, err = readRawSeries(*file); err != nil {
			return err
		}
	}

	resolver := series.NewResolver(series.WithResolverLocation(cfg.Location()))
	return writeJSON(out, resolver.Resolve(*rng, raw))
}

// readRawSeries accepts either a full TIME_SERIES_DAILY response or just
// its date-keyed map.
func readRawSeries(path string) (series.RawSeries, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read series file: %w", err)
	}

	var wrapped struct {
		Daily series.RawSeries `json:"Time Series (Daily)"`
	}
	if err := json.Unmarshal(b, &wrapped); err == nil && len(wrapped.Daily) > 0 {
		return wrapped.Daily, nil
	}

	var raw series.RawSeries
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse series file: %w", err)
	}
	return raw, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
