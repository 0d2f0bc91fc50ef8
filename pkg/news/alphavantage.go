package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"stockpulse/internal/model"
)

const (
	defaultBaseURL = "https://www.alphavantage.co/query"

	// feedLimit is the page size requested per windowed query. The windows
	// are narrow enough that a single page covers them.
	feedLimit = 1000

	requestTimeout = 10 * time.Second
)

// avTimeLayout is the upstream's time_from/time_to query format.
const avTimeLayout = "20060102T1504"

// RawArticle is one upstream feed record before normalization.
type RawArticle struct {
	Title          string   `json:"title"`
	URL            string   `json:"url"`
	Source         string   `json:"source"`
	TimePublished  string   `json:"time_published"`
	Summary        string   `json:"summary"`
	SentimentLabel string   `json:"overall_sentiment_label"`
	SentimentScore *float64 `json:"overall_sentiment_score"`
}

type avResponse struct {
	Feed         *[]RawArticle `json:"feed"`
	ErrorMessage string        `json:"Error Message"`
	Information  string        `json:"Information"`
	Note         string        `json:"Note"`
}

// AlphaVantageClient issues single-shot windowed NEWS_SENTIMENT queries.
// Retry and pacing live in the pacer, not here.
type AlphaVantageClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewAlphaVantageClient(apiKey string) *AlphaVantageClient {
	return &AlphaVantageClient{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// FetchWindow queries one window with one sort order and returns the raw
// feed records. An upstream feed that exists but is empty yields an empty
// slice and no error. Failures are classified into the sentinel error kinds.
func (c *AlphaVantageClient) FetchWindow(ctx context.Context, req model.FetchRequest) ([]RawArticle, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: no API key", ErrAuth)
	}

	q := url.Values{}
	q.Set("function", "NEWS_SENTIMENT")
	q.Set("tickers", req.Symbol)
	q.Set("sort", string(req.Sort))
	q.Set("time_from", req.Window.Start.Format(avTimeLayout))
	q.Set("time_to", endOfDay(req.Window.End).Format(avTimeLayout))
	q.Set("limit", fmt.Sprintf("%d", feedLimit))
	q.Set("apikey", c.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrTransient, err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: HTTP 429", ErrRateLimited)
	case resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: HTTP 403", ErrAuth)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: HTTP %d", ErrTransient, resp.StatusCode)
	}

	var raw avResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrTransient, err)
	}

	if msg := firstNonEmpty(raw.ErrorMessage, raw.Information, raw.Note); msg != "" {
		return nil, fmt.Errorf("%w: %s", ErrUpstreamLogic, msg)
	}
	if raw.Feed == nil {
		return nil, ErrUpstreamFormat
	}
	return *raw.Feed, nil
}

func endOfDay(day time.Time) time.Time {
	return DayOf(day).Add(23*time.Hour + 59*time.Minute)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
