package news

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

// compactLayout is the upstream's separator-free timestamp encoding,
// e.g. "20230615T093000". Always UTC.
const compactLayout = "20060102T150405"

// Timestamps outside this year range are treated as upstream garbage
// (sentinel dates, truncated fields) and rejected.
const (
	minPlausibleYear = 2000
	maxPlausibleYear = 2100
)

// NormalizeTime parses an upstream timestamp into a UTC instant. It accepts
// the compact form first, then falls back to generic date parsing for
// ISO-8601-ish strings. Returns ErrNotParseable for anything else or for
// instants with an implausible calendar year.
func NormalizeTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: empty string", ErrNotParseable)
	}

	t, err := time.Parse(compactLayout, raw)
	if err != nil {
		t, err = dateparse.ParseIn(raw, time.UTC)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrNotParseable, raw)
		}
	}

	t = t.UTC()
	if t.Year() < minPlausibleYear || t.Year() > maxPlausibleYear {
		return time.Time{}, fmt.Errorf("%w: year %d out of range", ErrNotParseable, t.Year())
	}
	return t, nil
}

// DayOf truncates an instant to its UTC calendar day (midnight UTC).
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
