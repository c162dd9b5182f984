package model

import "time"

// Granularity controls the period length and the time-series bucket shape.
type Granularity string

// Supported granularities.
const (
	GranularityLifetime Granularity = "lifetime"
	GranularityYear     Granularity = "year"
	GranularityMonth    Granularity = "month"
	GranularityDate     Granularity = "date"
)

// Period is a half-open time interval [Start, End) tagged with the
// granularity it was resolved from. Periods always come in pairs: the
// current period and the immediately preceding comparison period.
type Period struct {
	Start       time.Time   `json:"start"`
	End         time.Time   `json:"end"`
	Granularity Granularity `json:"granularity"`
}

// Contains reports whether t falls inside the interval. Start is included,
// End is excluded.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// IsDegenerate reports whether the period covers no time at all. The
// comparison period for the lifetime granularity is degenerate by
// construction and never yields a trend.
func (p Period) IsDegenerate() bool {
	return !p.Start.Before(p.End)
}

// Duration returns the interval length.
func (p Period) Duration() time.Duration {
	return p.End.Sub(p.Start)
}
