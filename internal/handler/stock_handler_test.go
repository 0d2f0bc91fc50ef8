package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"stockpulse/internal/model"
	"stockpulse/pkg/news"
)

type fakeNews struct {
	report *news.Report
	err    error
	calls  int
}

func (f *fakeNews) GetStockNews(_ context.Context, symbol, start, end string) (*news.Report, error) {
	f.calls++
	return f.report, f.err
}

type fakePrices struct {
	matches []model.SymbolMatch
	candles []model.Candle
	err     error
}

func (f *fakePrices) Search(_ context.Context, query string) ([]model.SymbolMatch, error) {
	return f.matches, f.err
}

func (f *fakePrices) Historical(_ context.Context, symbol, period, interval string) ([]model.Candle, error) {
	return f.candles, f.err
}

func newTestRouter(n NewsService, p PriceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewStockHandler(n, p)
	r.GET("/api/stocks/search", h.Search)
	r.GET("/api/stocks/:symbol/historical", h.GetHistorical)
	r.GET("/api/stocks/:symbol/news", h.GetNews)
	r.GET("/health", h.GetHealth)
	return r
}

func TestGetNews_ReturnsArticlesAndCoverage(t *testing.T) {
	score := 0.31
	svc := &fakeNews{report: &news.Report{
		Articles: []model.Article{{
			Title:          "Apple climbs",
			URL:            "https://example.com/apple",
			Source:         "Reuters",
			PublishedAt:    time.Date(2023, 1, 3, 9, 30, 0, 0, time.UTC),
			Summary:        "Shares rose.",
			SentimentLabel: "bullish",
			SentimentScore: &score,
		}},
		DaysWithoutNews: []string{"2023-01-01", "2023-01-02"},
	}}
	r := newTestRouter(svc, &fakePrices{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/stocks/AAPL/news?start=2023-01-01&end=2023-01-03", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res NewsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "AAPL", res.Symbol)
	assert.Equal(t, 1, len(res.Articles))
	assert.Equal(t, "Apple climbs", res.Articles[0].Title)
	assert.Equal(t, "2023-01-03T09:30:00Z", res.Articles[0].PublishedAt)
	assert.Equal(t, []string{"2023-01-01", "2023-01-02"}, res.DaysWithoutNews)
}

func TestGetNews_ErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&news.ValidationError{Reason: "start date is after end date"}, http.StatusBadRequest},
		{news.ErrMissingAPIKey, http.StatusInternalServerError},
		{news.ErrTooManyFailures, http.StatusBadGateway},
		{news.ErrPipelineTimeout, http.StatusGatewayTimeout},
	}

	for _, tc := range cases {
		r := newTestRouter(&fakeNews{err: tc.err}, &fakePrices{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/stocks/AAPL/news?start=x&end=y", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, tc.want, w.Code)
	}
}

func TestSearch_RequiresQuery(t *testing.T) {
	r := newTestRouter(&fakeNews{}, &fakePrices{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/stocks/search", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearch_ReturnsMatches(t *testing.T) {
	p := &fakePrices{matches: []model.SymbolMatch{
		{Symbol: "AAPL", Description: "APPLE INC", Type: "Common Stock"},
	}}
	r := newTestRouter(&fakeNews{}, p)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/stocks/search?query=apple", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res []SymbolMatchResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, "AAPL", res[0].Symbol)
}

func TestGetHistorical_ValidatesPeriodAndInterval(t *testing.T) {
	r := newTestRouter(&fakeNews{}, &fakePrices{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/stocks/AAPL/historical?period=2d", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/stocks/AAPL/historical?interval=5m", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetHistorical_ReturnsCandlesAndTradingDays(t *testing.T) {
	p := &fakePrices{candles: []model.Candle{
		{Time: time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC), Open: 130, High: 131, Low: 129, Close: 130.5, Volume: 1000},
		{Time: time.Date(2023, 1, 4, 0, 0, 0, 0, time.UTC), Open: 130.5, High: 132, Low: 130, Close: 131.8, Volume: 900},
	}}
	r := newTestRouter(&fakeNews{}, p)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/stocks/AAPL/historical?period=1m&interval=1d", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res HistoricalResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, len(res.Candles))
	assert.Equal(t, []string{"2023-01-03", "2023-01-04"}, res.TradingDays)
}

func TestGetHealth(t *testing.T) {
	r := newTestRouter(&fakeNews{}, &fakePrices{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
