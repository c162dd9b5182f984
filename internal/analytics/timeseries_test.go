package analytics

import (
	"testing"
	"time"

	"github.com/storepulse/storepulse/internal/model"
)

func datePeriod(y int, m time.Month, d int) model.Period {
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return model.Period{Start: start, End: start.AddDate(0, 0, 1), Granularity: model.GranularityDate}
}

func TestBuildTimeSeries_DateAlwaysHas24Buckets(t *testing.T) {
	t.Parallel()

	series := BuildTimeSeries(nil, datePeriod(2025, 3, 15))

	if len(series) != 24 {
		t.Fatalf("got %d buckets, want 24", len(series))
	}
	for i, b := range series {
		if int(b.SortKey) != i {
			t.Errorf("bucket %d out of order: sort key %d", i, b.SortKey)
		}
	}
	if series[0].Label != "00:00" || series[23].Label != "23:00" {
		t.Errorf("hour labels = %q..%q, want 00:00..23:00", series[0].Label, series[23].Label)
	}
}

func TestBuildTimeSeries_DateCounts(t *testing.T) {
	t.Parallel()

	p := datePeriod(2025, 3, 15)
	events := []model.Event{
		{Category: model.CategoryPageView, OccurredAt: p.Start.Add(10 * time.Hour)},
		{Category: model.CategoryPageView, OccurredAt: p.Start.Add(10*time.Hour + 30*time.Minute)},
		{Category: model.CategoryClick, OccurredAt: p.Start.Add(10 * time.Hour)},
		{Category: model.CategoryProductView, OccurredAt: p.Start.Add(23 * time.Hour)},
	}

	series := BuildTimeSeries(events, p)

	if got := series[10].ViewCount; got != 2 {
		t.Errorf("hour 10 views = %d, want 2", got)
	}
	if got := series[10].InteractionCount; got != 1 {
		t.Errorf("hour 10 interactions = %d, want 1", got)
	}
	// product_view is not a page view, counts toward interactions
	if got := series[23].InteractionCount; got != 1 {
		t.Errorf("hour 23 interactions = %d, want 1", got)
	}
}

func TestBuildTimeSeries_ArrivalOrderIndependent(t *testing.T) {
	t.Parallel()

	p := datePeriod(2025, 3, 15)
	forward := []model.Event{
		{Category: model.CategoryPageView, OccurredAt: p.Start.Add(2 * time.Hour)},
		{Category: model.CategoryClick, OccurredAt: p.Start.Add(20 * time.Hour)},
	}
	backward := []model.Event{forward[1], forward[0]}

	a := BuildTimeSeries(forward, p)
	b := BuildTimeSeries(backward, p)

	if len(a) != len(b) {
		t.Fatalf("bucket counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("bucket %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestBuildTimeSeries_MonthSeedsDaysOfMonth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		year     int
		month    time.Month
		wantDays int
	}{
		{"march", 2025, time.March, 31},
		{"february", 2025, time.February, 28},
		{"leap february", 2024, time.February, 29},
		{"april", 2025, time.April, 30},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			start := time.Date(tt.year, tt.month, 1, 0, 0, 0, 0, time.UTC)
			p := model.Period{Start: start, End: start.AddDate(0, 1, 0), Granularity: model.GranularityMonth}

			series := BuildTimeSeries(nil, p)

			if len(series) != tt.wantDays {
				t.Errorf("got %d buckets, want %d", len(series), tt.wantDays)
			}
			if series[0].Key != "01" {
				t.Errorf("first key = %q, want 01", series[0].Key)
			}
		})
	}
}

func TestBuildTimeSeries_YearSeedsTwelveMonths(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p := model.Period{Start: start, End: start.AddDate(1, 0, 0), Granularity: model.GranularityYear}
	events := []model.Event{
		{Category: model.CategoryPageView, OccurredAt: time.Date(2025, 7, 4, 12, 0, 0, 0, time.UTC)},
	}

	series := BuildTimeSeries(events, p)

	if len(series) != 12 {
		t.Fatalf("got %d buckets, want 12", len(series))
	}
	if series[0].Label != "Jan" || series[11].Label != "Dec" {
		t.Errorf("month labels = %q..%q, want Jan..Dec", series[0].Label, series[11].Label)
	}
	if series[6].ViewCount != 1 {
		t.Errorf("July views = %d, want 1", series[6].ViewCount)
	}
}

func TestBuildTimeSeries_LifetimeOnDemand(t *testing.T) {
	t.Parallel()

	epoch := time.Unix(0, 0).UTC()
	p := model.Period{Start: epoch, End: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Granularity: model.GranularityLifetime}
	events := []model.Event{
		{Category: model.CategoryPageView, OccurredAt: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)},
		{Category: model.CategoryPageView, OccurredAt: time.Date(2024, 11, 2, 8, 0, 0, 0, time.UTC)},
		{Category: model.CategoryClick, OccurredAt: time.Date(2025, 3, 20, 8, 0, 0, 0, time.UTC)},
	}

	series := BuildTimeSeries(events, p)

	if len(series) != 2 {
		t.Fatalf("got %d buckets, want 2", len(series))
	}
	// Sorted by month timestamp, oldest first.
	if series[0].Key != "2024-11" || series[1].Key != "2025-03" {
		t.Errorf("keys = %q, %q; want 2024-11, 2025-03", series[0].Key, series[1].Key)
	}
	if series[1].ViewCount != 1 || series[1].InteractionCount != 1 {
		t.Errorf("2025-03 counts = %d views %d interactions, want 1 and 1",
			series[1].ViewCount, series[1].InteractionCount)
	}
}
