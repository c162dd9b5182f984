package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/storepulse/storepulse/internal/model"
)

const lifetimeKeyLayout = "2006-01"

// BuildTimeSeries assigns every event in the period to a display bucket and
// accumulates per-bucket view and interaction counts. Buckets for the
// regular granularities are pre-seeded so the chart always has its full
// axis, even with zero events: 24 hours for date, one per day of the
// reference month, 12 months for year. Lifetime buckets are created on
// demand keyed by "YYYY-MM".
//
// The result is sorted ascending by bucket sort key and does not depend on
// event arrival order.
func BuildTimeSeries(events []model.Event, p model.Period) []model.Bucket {
	buckets := seedBuckets(p)

	for i := range events {
		e := &events[i]
		key := bucketKey(e.OccurredAt, p)

		b, ok := buckets[key]
		if !ok {
			b = newBucket(e.OccurredAt, p)
			buckets[key] = b
		}

		if e.Category == model.CategoryPageView {
			b.ViewCount++
		} else {
			b.InteractionCount++
		}
	}

	out := make([]model.Bucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortKey < out[j].SortKey })
	return out
}

// seedBuckets creates the full empty bucket set for regular granularities.
func seedBuckets(p model.Period) map[string]*model.Bucket {
	buckets := make(map[string]*model.Bucket)

	switch p.Granularity {
	case model.GranularityDate:
		for hour := 0; hour < 24; hour++ {
			key := fmt.Sprintf("%02d", hour)
			buckets[key] = &model.Bucket{
				Key:     key,
				Label:   fmt.Sprintf("%02d:00", hour),
				SortKey: int64(hour),
			}
		}
	case model.GranularityMonth:
		// p.End is the first of the next month, so the day before it is
		// the last day of the reference month.
		lastDay := p.End.AddDate(0, 0, -1).Day()
		for day := 1; day <= lastDay; day++ {
			key := fmt.Sprintf("%02d", day)
			buckets[key] = &model.Bucket{
				Key:     key,
				Label:   key,
				SortKey: int64(day),
			}
		}
	case model.GranularityYear:
		for month := 0; month < 12; month++ {
			key := fmt.Sprintf("%02d", month)
			buckets[key] = &model.Bucket{
				Key:     key,
				Label:   time.Month(month + 1).String()[:3],
				SortKey: int64(month),
			}
		}
	}

	return buckets
}

// bucketKey determines the single bucket an event belongs to, from its
// timestamp and the period granularity alone.
func bucketKey(t time.Time, p model.Period) string {
	t = t.UTC()
	switch p.Granularity {
	case model.GranularityDate:
		return fmt.Sprintf("%02d", t.Hour())
	case model.GranularityMonth:
		return fmt.Sprintf("%02d", t.Day())
	case model.GranularityYear:
		return fmt.Sprintf("%02d", int(t.Month())-1)
	default:
		return t.Format(lifetimeKeyLayout)
	}
}

// newBucket builds an on-demand bucket for an event that missed the
// pre-seeded set (lifetime granularity, or a timestamp outside the period).
func newBucket(t time.Time, p model.Period) *model.Bucket {
	t = t.UTC()
	key := bucketKey(t, p)

	switch p.Granularity {
	case model.GranularityDate:
		return &model.Bucket{Key: key, Label: key + ":00", SortKey: int64(t.Hour())}
	case model.GranularityMonth:
		return &model.Bucket{Key: key, Label: key, SortKey: int64(t.Day())}
	case model.GranularityYear:
		return &model.Bucket{Key: key, Label: t.Month().String()[:3], SortKey: int64(t.Month()) - 1}
	default:
		monthStart := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		return &model.Bucket{
			Key:     key,
			Label:   t.Month().String()[:3] + " " + fmt.Sprintf("%d", t.Year()),
			SortKey: monthStart.Unix(),
		}
	}
}
