package news

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"stockpulse/internal/model"
)

type dedupKey struct {
	title string
	url   string
}

// Aggregator merges raw feed records from all windows and sort orders into a
// per-day unique article set. One aggregator serves exactly one pipeline
// invocation; it is not safe for concurrent use.
type Aggregator struct {
	rangeStart time.Time // midnight UTC
	rangeEnd   time.Time
	seen       map[time.Time]map[dedupKey]struct{} // day -> keys stored for that day
	articles   []model.Article                     // insertion order
}

func NewAggregator(rangeStart, rangeEnd time.Time) *Aggregator {
	return &Aggregator{
		rangeStart: DayOf(rangeStart),
		rangeEnd:   DayOf(rangeEnd),
		seen:       make(map[time.Time]map[dedupKey]struct{}),
	}
}

// Ingest normalizes and stores raw records. Records with unparseable
// timestamps or days outside the requested range are dropped silently; the
// range filter keeps overlap-window duplicates from leaking results outside
// the caller's request. First write wins per (title, url) per day.
func (a *Aggregator) Ingest(records []RawArticle) {
	for _, rec := range records {
		publishedAt, err := NormalizeTime(rec.TimePublished)
		if err != nil {
			slog.Debug("dropping article with bad timestamp",
				"time_published", rec.TimePublished, "title", rec.Title)
			continue
		}

		day := DayOf(publishedAt)
		if day.Before(a.rangeStart) || day.After(a.rangeEnd) {
			continue
		}

		key := dedupKey{title: rec.Title, url: rec.URL}
		bucket, ok := a.seen[day]
		if !ok {
			bucket = make(map[dedupKey]struct{})
			a.seen[day] = bucket
		}
		if _, dup := bucket[key]; dup {
			continue
		}
		bucket[key] = struct{}{}

		var score *float64
		if rec.SentimentScore != nil {
			v := *rec.SentimentScore
			score = &v
		}
		a.articles = append(a.articles, model.Article{
			Title:          rec.Title,
			URL:            rec.URL,
			Source:         rec.Source,
			PublishedAt:    publishedAt,
			Summary:        rec.Summary,
			SentimentLabel: canonicalSentiment(rec.SentimentLabel),
			SentimentScore: score,
		})
	}
}

// Flatten returns all stored articles ascending by publication instant.
// Ties keep insertion order.
func (a *Aggregator) Flatten() []model.Article {
	out := make([]model.Article, len(a.articles))
	copy(out, a.articles)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.Before(out[j].PublishedAt)
	})
	return out
}

// DaysWithoutNews lists every calendar day in the requested range for which
// no article was retained. Informational only.
func (a *Aggregator) DaysWithoutNews() []string {
	var days []string
	for d := a.rangeStart; !d.After(a.rangeEnd); d = d.AddDate(0, 0, 1) {
		if len(a.seen[d]) == 0 {
			days = append(days, d.Format(time.DateOnly))
		}
	}
	return days
}

// canonicalSentiment lowercases recognized sentiment labels; anything else
// passes through as-is.
func canonicalSentiment(label string) string {
	switch l := strings.ToLower(strings.TrimSpace(label)); l {
	case model.SentimentBullish, model.SentimentPositive, model.SentimentNeutral,
		model.SentimentNegative, model.SentimentBearish:
		return l
	default:
		return label
	}
}
