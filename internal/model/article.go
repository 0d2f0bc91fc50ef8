package model

import "time"

// Canonical sentiment labels reported by the news upstream. Unrecognized
// labels pass through unchanged.
const (
	SentimentBullish  = "bullish"
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
	SentimentBearish  = "bearish"
)

// Article is one normalized news item. Immutable once built by the aggregator.
type Article struct {
	Title          string    `json:"title"`
	URL            string    `json:"url"`
	Source         string    `json:"source"`
	PublishedAt    time.Time `json:"published_at"` // always UTC, never zero in pipeline output
	Summary        string    `json:"summary"`
	SentimentLabel string    `json:"sentiment_label,omitempty"`
	SentimentScore *float64  `json:"sentiment_score,omitempty"`
}

// DateWindow is an inclusive calendar-date range used to query the upstream
// within its per-request coverage limit. Start and End carry midnight UTC.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// SortOrder selects the upstream result ordering for one fetch.
type SortOrder string

const (
	SortEarliest SortOrder = "EARLIEST"
	SortLatest   SortOrder = "LATEST"
)

// FetchRequest describes a single upstream call planned by the orchestrator.
type FetchRequest struct {
	Symbol string
	Window DateWindow
	Sort   SortOrder
}
