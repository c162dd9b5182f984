package analytics

import (
	"net/url"
	"sort"
	"time"

	"github.com/storepulse/storepulse/internal/model"
)

const (
	// TopN is the ranking size used across the dashboard.
	TopN = 5

	// LiveFeedSize caps the recent-activity feed.
	LiveFeedSize = 10
)

// SnapshotInput carries everything BuildSnapshot needs. Both event slices
// are assumed to be restricted to their respective periods by the caller.
type SnapshotInput struct {
	Current    model.Period
	Comparison model.Period

	Events []model.Event
	Orders []model.Order

	ComparisonEvents []model.Event
	ComparisonOrders []model.Order

	GeneratedAt time.Time
}

// BuildSnapshot assembles one immutable dashboard snapshot. It is a pure
// function of its input: recomputing from identical data yields an
// identical snapshot.
func BuildSnapshot(in SnapshotInput) *model.DashboardSnapshot {
	current := ComputeMetrics(in.Events, in.Orders)
	prior := ComputeMetrics(in.ComparisonEvents, in.ComparisonOrders)

	snap := &model.DashboardSnapshot{
		Period:      in.Current,
		Comparison:  in.Comparison,
		Metrics:     current,
		Trends:      ComputeTrends(current, prior, in.Comparison.IsDegenerate()),
		TimeSeries:  BuildTimeSeries(in.Events, in.Current),
		TopPages:    rankByCategory(in.Events, TopN, model.CategoryPageView),
		TopProducts: rankByCategory(in.Events, TopN, model.CategoryProductView),
		TopElements: rankByCategory(in.Events, TopN, model.CategoryClick, model.CategoryLinkClick),
		LiveFeed:    buildLiveFeed(in.Events),
		GeneratedAt: in.GeneratedAt,
	}
	return snap
}

// rankByCategory ranks event labels restricted to the given categories.
func rankByCategory(events []model.Event, limit int, categories ...model.Category) []model.RankedItem {
	allowed := make(map[model.Category]bool, len(categories))
	for _, c := range categories {
		allowed[c] = true
	}

	filtered := make([]model.Event, 0, len(events))
	for i := range events {
		if allowed[events[i].Category] {
			filtered = append(filtered, events[i])
		}
	}

	return RankLabels(filtered, func(e model.Event) string { return e.Label }, limit)
}

// buildLiveFeed returns the most recent interaction events, newest first,
// with URLs stripped down to their path and timestamps as hour:minute.
func buildLiveFeed(events []model.Event) []model.FeedEntry {
	recent := make([]model.Event, 0, len(events))
	for i := range events {
		if events[i].Category.IsInteraction() {
			recent = append(recent, events[i])
		}
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].OccurredAt.After(recent[j].OccurredAt)
	})
	if len(recent) > LiveFeedSize {
		recent = recent[:LiveFeedSize]
	}

	feed := make([]model.FeedEntry, 0, len(recent))
	for i := range recent {
		e := &recent[i]
		feed = append(feed, model.FeedEntry{
			Label:    e.Label,
			Path:     StripHost(e.URL),
			Time:     e.OccurredAt.Format("15:04"),
			Category: e.Category,
		})
	}
	return feed
}

// StripHost removes the scheme and host from a URL, keeping path and query.
// Malformed or host-less values are returned untouched.
func StripHost(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return raw
	}

	path := parsed.Path
	if path == "" {
		path = "/"
	}
	if parsed.RawQuery != "" {
		path += "?" + parsed.RawQuery
	}
	return path
}
