package news

import (
	"fmt"
	"time"

	"stockpulse/internal/model"
)

// DefaultChunkDays is the widest date window a single upstream query is
// trusted to cover reliably.
const DefaultChunkDays = 7

// PlanWindows splits [start, end] into inclusive windows of at most chunkDays
// calendar days. Consecutive windows deliberately share a boundary day:
// upstream ordering near window edges is flaky, and the aggregator's dedup key
// absorbs the duplicated day. The sequence is deterministic for given inputs.
func PlanWindows(start, end time.Time, chunkDays int) ([]model.DateWindow, error) {
	start, end = DayOf(start), DayOf(end)
	if start.After(end) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange,
			start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	if chunkDays < 1 {
		chunkDays = DefaultChunkDays
	}

	var windows []model.DateWindow
	cur := start
	for {
		wEnd := cur.AddDate(0, 0, chunkDays-1)
		if wEnd.After(end) {
			wEnd = end
		}
		windows = append(windows, model.DateWindow{Start: cur, End: wEnd})
		if !wEnd.Before(end) {
			return windows, nil
		}
		if wEnd.Equal(cur) {
			// chunkDays == 1 leaves no boundary day to share
			cur = cur.AddDate(0, 0, 1)
		} else {
			cur = wEnd
		}
	}
}
