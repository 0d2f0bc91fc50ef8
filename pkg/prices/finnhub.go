// Package prices is the historical-price collaborator: OHLCV bars and
// symbol search. The news pipeline does not depend on it; callers combine
// the two to decide which days get chart markers.
package prices

import (
	"context"
	"fmt"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"stockpulse/internal/model"
)

// Periods and intervals accepted by Historical, mirroring the API surface
// the frontend already speaks.
var (
	ValidPeriods   = []string{"1d", "1w", "1m", "3m", "6m", "1y", "5y"}
	ValidIntervals = []string{"1d", "1w", "1m"}
)

var resolutions = map[string]string{
	"1d": "D",
	"1w": "W",
	"1m": "M",
}

type FinnhubClient struct {
	client *finnhub.DefaultApiService
	now    func() time.Time
}

func NewFinnhubClient(apiKey string) *FinnhubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	return &FinnhubClient{
		client: finnhub.NewAPIClient(cfg).DefaultApi,
		now:    time.Now,
	}
}

// Search returns equity matches for a keyword or symbol fragment.
func (c *FinnhubClient) Search(ctx context.Context, query string) ([]model.SymbolMatch, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}

	res, _, err := c.client.SymbolSearch(ctx).Q(query).Execute()
	if err != nil {
		return nil, fmt.Errorf("symbol search: %w", err)
	}

	var matches []model.SymbolMatch
	for _, hit := range res.GetResult() {
		m := model.SymbolMatch{}
		if hit.Symbol != nil {
			m.Symbol = *hit.Symbol
		}
		if hit.Description != nil {
			m.Description = *hit.Description
		}
		if hit.Type != nil {
			m.Type = *hit.Type
		}
		if m.Symbol != "" {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

// Historical fetches OHLCV bars for the trailing period at the given
// interval.
func (c *FinnhubClient) Historical(ctx context.Context, symbol, period, interval string) ([]model.Candle, error) {
	resolution, ok := resolutions[interval]
	if !ok {
		return nil, fmt.Errorf("invalid interval %q", interval)
	}

	start, err := PeriodStart(period, c.now())
	if err != nil {
		return nil, err
	}

	res, _, err := c.client.StockCandles(ctx).
		Symbol(symbol).
		Resolution(resolution).
		From(start.Unix()).
		To(c.now().Unix()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("stock candles: %w", err)
	}

	ts := res.GetT()
	opens, highs, lows, closes, vols := res.GetO(), res.GetH(), res.GetL(), res.GetC(), res.GetV()

	candles := make([]model.Candle, 0, len(ts))
	for i := range ts {
		candle := model.Candle{Time: time.Unix(ts[i], 0).UTC()}
		if i < len(opens) {
			candle.Open = float64(opens[i])
		}
		if i < len(highs) {
			candle.High = float64(highs[i])
		}
		if i < len(lows) {
			candle.Low = float64(lows[i])
		}
		if i < len(closes) {
			candle.Close = float64(closes[i])
		}
		if i < len(vols) {
			candle.Volume = int64(vols[i])
		}
		candles = append(candles, candle)
	}
	return candles, nil
}

// TradingDays reduces daily candles to the set of calendar days the market
// actually traded, formatted "2006-01-02".
func TradingDays(candles []model.Candle) []string {
	seen := make(map[string]struct{}, len(candles))
	var days []string
	for _, c := range candles {
		d := c.Time.UTC().Format(time.DateOnly)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	return days
}

// PeriodStart maps a trailing period token to its start instant.
func PeriodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case "1d":
		return now.AddDate(0, 0, -1), nil
	case "1w":
		return now.AddDate(0, 0, -7), nil
	case "1m":
		return now.AddDate(0, -1, 0), nil
	case "3m":
		return now.AddDate(0, -3, 0), nil
	case "6m":
		return now.AddDate(0, -6, 0), nil
	case "1y":
		return now.AddDate(-1, 0, 0), nil
	case "5y":
		return now.AddDate(-5, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("invalid period %q", period)
	}
}
