package news

import (
	"errors"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPlanWindows_InvertedRange(t *testing.T) {
	_, err := PlanWindows(day(2023, 2, 1), day(2023, 1, 1), 7)
	assert.Equal(t, true, errors.Is(err, ErrInvalidRange))
}

func TestPlanWindows_SingleDay(t *testing.T) {
	windows, err := PlanWindows(day(2023, 1, 5), day(2023, 1, 5), 7)

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(windows))
	assert.Equal(t, day(2023, 1, 5), windows[0].Start)
	assert.Equal(t, day(2023, 1, 5), windows[0].End)
}

func TestPlanWindows_OverlapByOneDay(t *testing.T) {
	windows, err := PlanWindows(day(2023, 1, 1), day(2023, 1, 20), 7)

	assert.Equal(t, nil, err)
	for i := 1; i < len(windows); i++ {
		assert.Equal(t, windows[i-1].End, windows[i].Start)
	}
	assert.Equal(t, day(2023, 1, 1), windows[0].Start)
	assert.Equal(t, day(2023, 1, 20), windows[len(windows)-1].End)
}

func TestPlanWindows_CoversEveryDay(t *testing.T) {
	start, end := day(2023, 3, 2), day(2023, 4, 17)
	windows, err := PlanWindows(start, end, 7)
	assert.Equal(t, nil, err)

	covered := make(map[time.Time]bool)
	for _, w := range windows {
		assert.Equal(t, true, !w.Start.After(w.End))
		for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
			covered[d] = true
		}
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		assert.Equal(t, true, covered[d])
	}
}

func TestPlanWindows_LastWindowClipped(t *testing.T) {
	windows, err := PlanWindows(day(2023, 1, 1), day(2023, 1, 9), 7)

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(windows))
	assert.Equal(t, day(2023, 1, 7), windows[0].End)
	assert.Equal(t, day(2023, 1, 7), windows[1].Start)
	assert.Equal(t, day(2023, 1, 9), windows[1].End)
}

func TestPlanWindows_Deterministic(t *testing.T) {
	a, _ := PlanWindows(day(2023, 1, 1), day(2023, 2, 15), 7)
	b, _ := PlanWindows(day(2023, 1, 1), day(2023, 2, 15), 7)
	assert.Equal(t, a, b)
}

func TestPlanWindows_OneDayChunks(t *testing.T) {
	windows, err := PlanWindows(day(2023, 1, 1), day(2023, 1, 3), 1)

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(windows))
	for _, w := range windows {
		assert.Equal(t, w.Start, w.End)
	}
}
