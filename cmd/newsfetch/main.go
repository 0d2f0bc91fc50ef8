package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"stockpulse/pkg/news"
)

// One-shot pipeline run: fetch, dedup and print the article set for a
// symbol and date range as JSON on stdout. Diagnostics go to stderr.
func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	symbol := flag.String("symbol", "", "stock ticker symbol, e.g. AAPL")
	start := flag.String("start", "", "range start (2006-01-02)")
	end := flag.String("end", "", "range end (2006-01-02)")
	timeout := flag.Duration("timeout", time.Minute, "overall pipeline deadline")
	flag.Parse()

	svc := news.NewService(news.Config{
		APIKey:          os.Getenv("ALPHA_VANTAGE_API_KEY"),
		PipelineTimeout: *timeout,
	})

	report, err := svc.GetStockNews(context.Background(), *symbol, *start, *end)
	if err != nil {
		log.Fatalf("news fetch failed: %v", err)
	}

	if len(report.DaysWithoutNews) > 0 {
		slog.Info("days without news", "days", report.DaysWithoutNews)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report.Articles); err != nil {
		log.Fatalf("encoding result: %v", err)
	}
}
