package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	"stockpulse/internal/model"
	"stockpulse/pkg/news"
	"stockpulse/pkg/prices"
)

type NewsService interface {
	GetStockNews(ctx context.Context, symbol, startDate, endDate string) (*news.Report, error)
}

type PriceService interface {
	Search(ctx context.Context, query string) ([]model.SymbolMatch, error)
	Historical(ctx context.Context, symbol, period, interval string) ([]model.Candle, error)
}

type StockHandler struct {
	news   NewsService
	prices PriceService
}

func NewStockHandler(newsSvc NewsService, priceSvc PriceService) *StockHandler {
	return &StockHandler{news: newsSvc, prices: priceSvc}
}

// GetNews runs the aggregation pipeline for ?start=&end= and returns the
// sorted article set plus the coverage diagnostic.
func (h *StockHandler) GetNews(c *gin.Context) {
	symbol := c.Param("symbol")
	start := c.Query("start")
	end := c.Query("end")

	report, err := h.news.GetStockNews(c.Request.Context(), symbol, start, end)
	if err != nil {
		status, msg := newsErrorStatus(err)
		slog.Error("news fetch failed", "symbol", symbol, "start", start, "end", end, "error", err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	if len(report.DaysWithoutNews) > 0 {
		slog.Info("days without news in requested range",
			"symbol", symbol, "days", report.DaysWithoutNews)
	}

	articles := make([]ArticleResponse, 0, len(report.Articles))
	for _, a := range report.Articles {
		articles = append(articles, ArticleResponse{
			Title:          a.Title,
			URL:            a.URL,
			Source:         a.Source,
			PublishedAt:    a.PublishedAt.Format(time.RFC3339),
			Summary:        a.Summary,
			SentimentLabel: a.SentimentLabel,
			SentimentScore: a.SentimentScore,
		})
	}

	c.JSON(http.StatusOK, NewsResponse{
		Symbol:          symbol,
		Start:           start,
		End:             end,
		Articles:        articles,
		DaysWithoutNews: report.DaysWithoutNews,
	})
}

// Search finds stocks by keyword or symbol fragment.
func (h *StockHandler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	matches, err := h.prices.Search(c.Request.Context(), query)
	if err != nil {
		slog.Error("symbol search failed", "query", query, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search for stocks"})
		return
	}

	res := make([]SymbolMatchResponse, 0, len(matches))
	for _, m := range matches {
		res = append(res, SymbolMatchResponse{
			Symbol:      m.Symbol,
			Description: m.Description,
			Type:        m.Type,
		})
	}
	c.JSON(http.StatusOK, res)
}

// GetHistorical returns OHLCV bars plus the derived trading-day set.
func (h *StockHandler) GetHistorical(c *gin.Context) {
	symbol := c.Param("symbol")
	period := c.DefaultQuery("period", "1y")
	interval := c.DefaultQuery("interval", "1d")

	if !slices.Contains(prices.ValidPeriods, period) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period"})
		return
	}
	if !slices.Contains(prices.ValidIntervals, interval) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid interval"})
		return
	}

	candles, err := h.prices.Historical(c.Request.Context(), symbol, period, interval)
	if err != nil {
		slog.Error("historical fetch failed", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch historical data"})
		return
	}

	res := HistoricalResponse{
		Symbol:      symbol,
		Candles:     make([]CandleResponse, 0, len(candles)),
		TradingDays: prices.TradingDays(candles),
	}
	for _, cd := range candles {
		res.Candles = append(res.Candles, CandleResponse{
			Time:   cd.Time.Format(time.RFC3339),
			Open:   cd.Open,
			High:   cd.High,
			Low:    cd.Low,
			Close:  cd.Close,
			Volume: cd.Volume,
		})
	}
	c.JSON(http.StatusOK, res)
}

func (h *StockHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// newsErrorStatus maps pipeline errors onto HTTP statuses: caller mistakes
// are 400, everything else a 5xx that names the failure kind.
func newsErrorStatus(err error) (int, string) {
	switch {
	case news.IsValidation(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, news.ErrMissingAPIKey):
		return http.StatusInternalServerError, "API configuration error"
	case errors.Is(err, news.ErrTooManyFailures):
		return http.StatusBadGateway, "News provider repeatedly unavailable"
	case errors.Is(err, news.ErrPipelineTimeout):
		return http.StatusGatewayTimeout, "News fetch timed out"
	default:
		return http.StatusInternalServerError, "Failed to fetch news"
	}
}
