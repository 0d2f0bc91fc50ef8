package news

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"stockpulse/internal/model"
	"stockpulse/pkg/usage"
)

// FeedClient is the windowed upstream query. Satisfied by AlphaVantageClient;
// tests substitute stubs.
type FeedClient interface {
	FetchWindow(ctx context.Context, req model.FetchRequest) ([]RawArticle, error)
}

// Config tunes one Service. Zero values fall back to the defaults below.
type Config struct {
	APIKey          string
	ChunkDays       int
	MaxFailures     int
	PipelineTimeout time.Duration

	// test seams
	Client FeedClient
	Sleep  SleepFunc
	Now    func() time.Time
	Meter  usage.Meter
}

const defaultPipelineTimeout = 60 * time.Second

// Report is the outcome of one successful pipeline run: the complete,
// deduplicated, chronologically sorted article set plus the coverage
// diagnostic for the requested range.
type Report struct {
	Articles        []model.Article
	DaysWithoutNews []string
}

// Service is the public entry point of the news pipeline. Each GetStockNews
// call owns its own aggregation state, so concurrent calls are independent.
type Service struct {
	apiKey    string
	chunkDays int
	maxFails  int
	timeout   time.Duration
	client    FeedClient
	sleep     SleepFunc
	now       func() time.Time
	meter     usage.Meter
}

func NewService(cfg Config) *Service {
	s := &Service{
		apiKey:    cfg.APIKey,
		chunkDays: cfg.ChunkDays,
		maxFails:  cfg.MaxFailures,
		timeout:   cfg.PipelineTimeout,
		client:    cfg.Client,
		sleep:     cfg.Sleep,
		now:       cfg.Now,
		meter:     cfg.Meter,
	}
	if s.chunkDays < 1 {
		s.chunkDays = DefaultChunkDays
	}
	if s.timeout <= 0 {
		s.timeout = defaultPipelineTimeout
	}
	if s.client == nil {
		s.client = NewAlphaVantageClient(cfg.APIKey)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.meter == nil {
		s.meter = usage.NewMemoryMeter()
	}
	return s
}

// GetStockNews fetches, deduplicates and sorts all news for symbol between
// startDate and endDate (inclusive, "2006-01-02"). Returns either a complete
// report or a single typed error; partial results are never returned.
func (s *Service) GetStockNews(ctx context.Context, symbol, startDate, endDate string) (*Report, error) {
	start, end, err := s.validate(symbol, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if s.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	windows, err := PlanWindows(start, end, s.chunkDays)
	if err != nil {
		// validate already ordered the range; keep the guard anyway
		return nil, validationErrorf("%v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	slog.Info("starting news fetch",
		"symbol", symbol, "start", startDate, "end", endDate, "windows", len(windows))

	agg := NewAggregator(start, end)
	pace := newPacer(s.sleep, s.maxFails)

	for _, w := range windows {
		for si, sortOrder := range []model.SortOrder{model.SortEarliest, model.SortLatest} {
			if err := pace.wait(ctx, si > 0); err != nil {
				return nil, s.timeoutOr(err)
			}

			req := model.FetchRequest{Symbol: symbol, Window: w, Sort: sortOrder}
			records, err := s.client.FetchWindow(ctx, req)
			s.recordUsage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil, s.timeoutOr(ctx.Err())
				}
				if abort := pace.recordFailure(describeRequest(req), err); abort != nil {
					return nil, abort
				}
				continue
			}
			agg.Ingest(records)
		}
	}

	report := &Report{
		Articles:        agg.Flatten(),
		DaysWithoutNews: agg.DaysWithoutNews(),
	}
	slog.Info("news fetch complete",
		"symbol", symbol, "articles", len(report.Articles),
		"days_without_news", len(report.DaysWithoutNews))
	return report, nil
}

func (s *Service) validate(symbol, startDate, endDate string) (time.Time, time.Time, error) {
	if symbol == "" {
		return time.Time{}, time.Time{}, validationErrorf("stock symbol is required")
	}

	start, err := time.ParseInLocation(time.DateOnly, startDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, validationErrorf("invalid start date %q", startDate)
	}
	end, err := time.ParseInLocation(time.DateOnly, endDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, validationErrorf("invalid end date %q", endDate)
	}

	today := DayOf(s.now())
	if start.After(today) || end.After(today) {
		return time.Time{}, time.Time{}, validationErrorf("dates must not be in the future")
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, validationErrorf("start date %s is after end date %s", startDate, endDate)
	}
	return start, end, nil
}

func (s *Service) timeoutOr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrPipelineTimeout
	}
	return err
}

// recordUsage tracks upstream calls against the per-key daily quota.
// Best-effort; metering problems never fail the pipeline.
func (s *Service) recordUsage(ctx context.Context) {
	if _, err := s.meter.Record(ctx, DayOf(s.now())); err != nil {
		slog.Warn("usage meter unavailable", "error", err)
	}
}

func describeRequest(req model.FetchRequest) string {
	return fmt.Sprintf("%s %s..%s %s", req.Symbol,
		req.Window.Start.Format(time.DateOnly), req.Window.End.Format(time.DateOnly), req.Sort)
}
