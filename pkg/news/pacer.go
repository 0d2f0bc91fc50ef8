package news

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Delays chosen to stay under the upstream per-key rate limit: the two sort
// orders of one window are 1s apart, windows 1.5s apart. No delay before the
// first call of a fetch.
const (
	intraWindowDelay = 1 * time.Second
	interWindowDelay = 1500 * time.Millisecond

	// maxUpstreamFailures is the cumulative failure budget for one fetch.
	maxUpstreamFailures = 3
)

// SleepFunc waits for d or until ctx is done. Injectable so tests run
// without real timers.
type SleepFunc func(ctx context.Context, d time.Duration) error

func realSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// pacer spaces upstream calls and tracks the cumulative failure budget across
// one pipeline invocation. Failed calls lose their window's candidate
// articles; crossing the budget aborts the whole fetch.
type pacer struct {
	sleep       SleepFunc
	maxFailures int
	failures    int
	calls       int
}

func newPacer(sleep SleepFunc, maxFailures int) *pacer {
	if sleep == nil {
		sleep = realSleep
	}
	if maxFailures < 1 {
		maxFailures = maxUpstreamFailures
	}
	return &pacer{sleep: sleep, maxFailures: maxFailures}
}

// wait blocks for the inter-call delay. sameWindow picks the shorter delay
// used between the two sort orders of one window. The very first call is
// never delayed.
func (p *pacer) wait(ctx context.Context, sameWindow bool) error {
	defer func() { p.calls++ }()
	if p.calls == 0 {
		return nil
	}
	d := interWindowDelay
	if sameWindow {
		d = intraWindowDelay
	}
	return p.sleep(ctx, d)
}

// recordFailure counts one upstream failure and returns
// ErrTooManyFailures once the budget is exhausted.
func (p *pacer) recordFailure(req string, err error) error {
	p.failures++
	slog.Warn("upstream call failed, skipping window",
		"request", req, "failures", p.failures, "budget", p.maxFailures, "error", err)
	if p.failures >= p.maxFailures {
		return fmt.Errorf("%w: %d failures", ErrTooManyFailures, p.failures)
	}
	return nil
}
