package analytics

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/storepulse/storepulse/internal/model"
)

func snapshotFixture() SnapshotInput {
	start := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	current := model.Period{Start: start, End: start.AddDate(0, 0, 1), Granularity: model.GranularityDate}
	comparison := model.Period{Start: start.AddDate(0, 0, -1), End: start, Granularity: model.GranularityDate}

	events := []model.Event{
		{ID: "e1", SessionID: "s1", VisitorID: "v1", Category: model.CategoryPageView, Label: "/home", URL: "https://shop.example.com/home", OccurredAt: start.Add(10 * time.Hour)},
		{ID: "e2", SessionID: "s1", VisitorID: "v1", Category: model.CategoryClick, Label: "Add to Cart", URL: "https://shop.example.com/products/mug?ref=home", OccurredAt: start.Add(10*time.Hour + 5*time.Minute)},
		{ID: "e3", SessionID: "s2", VisitorID: "v2", Category: model.CategoryProductView, Label: "Enamel Mug", URL: "https://shop.example.com/products/mug", OccurredAt: start.Add(11 * time.Hour)},
		{ID: "e4", SessionID: "s2", VisitorID: "v2", Category: model.CategoryLinkClick, Label: "Footer Contact", URL: "https://shop.example.com/", OccurredAt: start.Add(12 * time.Hour)},
	}
	orders := []model.Order{
		{ID: "o1", Status: model.OrderCompleted, TotalAmount: 25, CreatedAt: start.Add(11 * time.Hour)},
	}
	comparisonEvents := []model.Event{
		{ID: "p1", SessionID: "p1", Category: model.CategoryPageView, Label: "/home", OccurredAt: start.Add(-12 * time.Hour)},
		{ID: "p2", SessionID: "p2", Category: model.CategoryPageView, Label: "/home", OccurredAt: start.Add(-10 * time.Hour)},
	}

	return SnapshotInput{
		Current:          current,
		Comparison:       comparison,
		Events:           events,
		Orders:           orders,
		ComparisonEvents: comparisonEvents,
		GeneratedAt:      time.Date(2025, 3, 16, 8, 0, 0, 0, time.UTC),
	}
}

func TestBuildSnapshot_Composition(t *testing.T) {
	t.Parallel()

	snap := BuildSnapshot(snapshotFixture())

	if snap.Metrics.TotalVisits != 1 {
		t.Errorf("TotalVisits = %d, want 1", snap.Metrics.TotalVisits)
	}
	if len(snap.TimeSeries) != 24 {
		t.Errorf("TimeSeries length = %d, want 24", len(snap.TimeSeries))
	}
	if len(snap.TopPages) != 1 || snap.TopPages[0].Label != "/home" {
		t.Errorf("TopPages = %+v, want [/home]", snap.TopPages)
	}
	if len(snap.TopProducts) != 1 || snap.TopProducts[0].Label != "Enamel Mug" {
		t.Errorf("TopProducts = %+v, want [Enamel Mug]", snap.TopProducts)
	}
	// click + link_click labels
	if len(snap.TopElements) != 2 {
		t.Errorf("TopElements = %+v, want 2 entries", snap.TopElements)
	}
	if !snap.Trends.Available {
		t.Error("trend set should be available for a date period")
	}
	// 1 current page view vs 2 prior page views
	if snap.Trends.TotalVisits != "-50.0%" {
		t.Errorf("TotalVisits trend = %q, want -50.0%%", snap.Trends.TotalVisits)
	}
}

func TestBuildSnapshot_LiveFeed(t *testing.T) {
	t.Parallel()

	snap := BuildSnapshot(snapshotFixture())

	if len(snap.LiveFeed) != 2 {
		t.Fatalf("LiveFeed length = %d, want 2", len(snap.LiveFeed))
	}
	// Newest first: the 12:00 link_click precedes the 10:05 click.
	if snap.LiveFeed[0].Label != "Footer Contact" {
		t.Errorf("LiveFeed[0] = %q, want Footer Contact", snap.LiveFeed[0].Label)
	}
	if snap.LiveFeed[0].Time != "12:00" {
		t.Errorf("LiveFeed[0].Time = %q, want 12:00", snap.LiveFeed[0].Time)
	}
	// Host stripped, query preserved.
	if snap.LiveFeed[1].Path != "/products/mug?ref=home" {
		t.Errorf("LiveFeed[1].Path = %q, want /products/mug?ref=home", snap.LiveFeed[1].Path)
	}
}

func TestBuildSnapshot_LiveFeedCapped(t *testing.T) {
	t.Parallel()

	in := snapshotFixture()
	base := in.Current.Start.Add(6 * time.Hour)
	in.Events = nil
	for i := 0; i < 25; i++ {
		in.Events = append(in.Events, model.Event{
			SessionID:  "s",
			Category:   model.CategoryClick,
			Label:      "Button",
			OccurredAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	snap := BuildSnapshot(in)

	if len(snap.LiveFeed) != LiveFeedSize {
		t.Errorf("LiveFeed length = %d, want %d", len(snap.LiveFeed), LiveFeedSize)
	}
}

func TestBuildSnapshot_Idempotent(t *testing.T) {
	t.Parallel()

	in := snapshotFixture()

	a, err := json.Marshal(BuildSnapshot(in))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := json.Marshal(BuildSnapshot(in))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if !bytes.Equal(a, b) {
		t.Error("recomputing from identical input must yield identical snapshots")
	}
}

func TestBuildSnapshot_DegenerateComparison(t *testing.T) {
	t.Parallel()

	in := snapshotFixture()
	epoch := time.Unix(0, 0).UTC()
	in.Current.Granularity = model.GranularityLifetime
	in.Comparison = model.Period{Start: epoch, End: epoch, Granularity: model.GranularityLifetime}
	in.ComparisonEvents = nil

	snap := BuildSnapshot(in)

	if snap.Trends.Available {
		t.Error("lifetime snapshot must surface an explicit no-trend state")
	}
}

func TestStripHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"full url", "https://shop.example.com/products/mug", "/products/mug"},
		{"with query", "https://shop.example.com/search?q=mug", "/search?q=mug"},
		{"bare host", "https://shop.example.com", "/"},
		{"already a path", "/checkout", "/checkout"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := StripHost(tt.raw); got != tt.want {
				t.Errorf("StripHost(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
