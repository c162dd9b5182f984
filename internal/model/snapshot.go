package model

import "time"

// MetricSet holds the scalar dashboard metrics for one period.
type MetricSet struct {
	TotalVisits               int64   `json:"total_visits"`
	UniqueVisitors            int64   `json:"unique_visitors"`
	ConversionRate            float64 `json:"conversion_rate"`
	AvgSessionDurationSeconds float64 `json:"avg_session_duration_seconds"`

	// Funnel counters
	CartAdds          int64 `json:"cart_adds"`
	CheckoutStarts    int64 `json:"checkout_starts"`
	PurchaseCompletes int64 `json:"purchase_completes"`
	AbandonedCarts    int64 `json:"abandoned_carts"`

	InteractionCount int64   `json:"interaction_count"`
	OrderCount       int64   `json:"order_count"`
	Revenue          float64 `json:"revenue"`
}

// TrendSet holds period-over-period percent changes, pre-formatted for
// display. When the comparison period is degenerate (lifetime granularity)
// Available is false and the individual fields are empty; the UI shows a
// "no trend" state instead of a misleading zero.
type TrendSet struct {
	Available bool `json:"available"`

	TotalVisits               string `json:"total_visits,omitempty"`
	UniqueVisitors            string `json:"unique_visitors,omitempty"`
	ConversionRate            string `json:"conversion_rate,omitempty"`
	AvgSessionDurationSeconds string `json:"avg_session_duration_seconds,omitempty"`
	InteractionCount          string `json:"interaction_count,omitempty"`
	Revenue                   string `json:"revenue,omitempty"`
}

// Bucket is a display time slot accumulating event counts for the
// time-series chart. Key identifies the slot within its granularity
// ("00".."23" hours, "01".."31" days, "00".."11" months, or "YYYY-MM").
type Bucket struct {
	Key              string `json:"key"`
	Label            string `json:"label"`
	ViewCount        int64  `json:"view_count"`
	InteractionCount int64  `json:"interaction_count"`
	SortKey          int64  `json:"-"`
}

// RankedItem is one entry of a top-N ranking.
type RankedItem struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// FeedEntry is one row of the live activity feed.
type FeedEntry struct {
	Label    string   `json:"label"`
	Path     string   `json:"path"` // URL stripped of scheme and host
	Time     string   `json:"time"` // hour:minute
	Category Category `json:"category"`
}

// DashboardSnapshot is one immutable, fully-computed aggregation result for
// a period selection. Snapshots are produced fresh on every recomputation
// and never mutated in place.
type DashboardSnapshot struct {
	Period     Period `json:"period"`
	Comparison Period `json:"comparison_period"`

	Metrics MetricSet `json:"metrics"`
	Trends  TrendSet  `json:"trends"`

	TimeSeries  []Bucket     `json:"time_series"`
	TopPages    []RankedItem `json:"top_pages"`
	TopProducts []RankedItem `json:"top_products"`
	TopElements []RankedItem `json:"top_elements"`
	LiveFeed    []FeedEntry  `json:"live_feed"`

	GeneratedAt time.Time `json:"generated_at"`
}
