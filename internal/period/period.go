// Package period resolves a dashboard period selection (granularity plus
// reference date) into a concrete current interval and the immediately
// preceding comparison interval of the same semantic length.
package period

import (
	"errors"
	"fmt"
	"time"

	"github.com/storepulse/storepulse/internal/model"
)

// DateLayout is the wire format for reference dates.
const DateLayout = "2006-01-02"

// Resolution errors. Both reject the computation before any data is fetched.
var (
	ErrInvalidGranularity = errors.New("invalid granularity")
	ErrInvalidDate        = errors.New("invalid reference date")
)

// ParseGranularity validates a raw granularity string.
func ParseGranularity(raw string) (model.Granularity, error) {
	switch model.Granularity(raw) {
	case model.GranularityLifetime, model.GranularityYear,
		model.GranularityMonth, model.GranularityDate:
		return model.Granularity(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidGranularity, raw)
	}
}

// Resolve turns a (granularity, referenceDate) pair into the current
// half-open period [start, end) and the immediately preceding comparison
// period. All boundaries are calendar boundaries in UTC; the previous
// month/day is computed with proper calendar rollover, so the comparison
// for the first of January is December of the prior year and the comparison
// for March 1st is the full month of February.
//
// The reference date is ignored for the lifetime granularity, whose
// comparison period is degenerate (zero length) by construction.
func Resolve(granularity model.Granularity, referenceDate string, now time.Time) (current, comparison model.Period, err error) {
	if _, err = ParseGranularity(string(granularity)); err != nil {
		return model.Period{}, model.Period{}, err
	}

	if granularity == model.GranularityLifetime {
		epoch := time.Unix(0, 0).UTC()
		current = model.Period{Start: epoch, End: now.UTC(), Granularity: granularity}
		comparison = model.Period{Start: epoch, End: epoch, Granularity: granularity}
		return current, comparison, nil
	}

	ref, err := time.ParseInLocation(DateLayout, referenceDate, time.UTC)
	if err != nil {
		return model.Period{}, model.Period{}, fmt.Errorf("%w: %q", ErrInvalidDate, referenceDate)
	}

	var start, end time.Time
	switch granularity {
	case model.GranularityYear:
		start = time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(1, 0, 0)
	case model.GranularityMonth:
		start = time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0)
	case model.GranularityDate:
		start = time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 0, 1)
	}

	current = model.Period{Start: start, End: end, Granularity: granularity}
	comparison = previous(current)
	return current, comparison, nil
}

// previous returns the period immediately preceding p. The comparison
// period ends exactly where the current one starts.
func previous(p model.Period) model.Period {
	var start time.Time
	switch p.Granularity {
	case model.GranularityYear:
		start = p.Start.AddDate(-1, 0, 0)
	case model.GranularityMonth:
		start = p.Start.AddDate(0, -1, 0)
	default: // date
		start = p.Start.AddDate(0, 0, -1)
	}
	return model.Period{Start: start, End: p.Start, Granularity: p.Granularity}
}
