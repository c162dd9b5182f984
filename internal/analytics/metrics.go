package analytics

import (
	"fmt"

	"github.com/storepulse/storepulse/internal/model"
)

// Labels that feed the conversion funnel counters. The storefront emits
// both wordings for cart adds depending on the theme.
var cartAddLabels = map[string]bool{
	"Add to Cart": true,
	"Add to Bag":  true,
}

const checkoutStartLabel = "Checkout Start"

// ComputeMetrics calculates the scalar dashboard metrics for one period
// from its events and orders.
func ComputeMetrics(events []model.Event, orders []model.Order) model.MetricSet {
	var m model.MetricSet

	visitors := make(map[string]struct{})
	for i := range events {
		e := &events[i]

		visitors[e.Visitor()] = struct{}{}

		switch {
		case e.Category == model.CategoryPageView:
			m.TotalVisits++
		case e.Category.IsInteraction():
			m.InteractionCount++
		}

		if cartAddLabels[e.Label] {
			m.CartAdds++
		}
		if e.Label == checkoutStartLabel {
			m.CheckoutStarts++
		}
	}
	m.UniqueVisitors = int64(len(visitors))

	for i := range orders {
		o := &orders[i]
		if !o.Counted() {
			continue
		}
		m.OrderCount++
		m.Revenue += o.TotalAmount
		if o.Status == model.OrderCompleted {
			m.PurchaseCompletes++
		}
	}

	if m.UniqueVisitors > 0 {
		m.ConversionRate = float64(m.OrderCount) / float64(m.UniqueVisitors) * 100
	}

	// Never negative, even when completes outnumber recorded starts.
	if m.CheckoutStarts > m.PurchaseCompletes {
		m.AbandonedCarts = m.CheckoutStarts - m.PurchaseCompletes
	}

	m.AvgSessionDurationSeconds = AverageSessionDuration(ReconstructSessions(events))

	return m
}

// FormatTrend formats the percent change between a current and prior scalar.
// A zero prior value cannot form a ratio: any growth from zero reads
// "+100%" and no change reads "0%".
func FormatTrend(current, prior float64) string {
	if prior == 0 {
		if current > 0 {
			return "+100%"
		}
		return "0%"
	}
	change := (current - prior) / prior * 100
	return fmt.Sprintf("%+.1f%%", change)
}

// ComputeTrends derives the period-over-period trend set from the current
// and prior metric sets. When degenerate is true (lifetime granularity has
// no comparison period) the trend set is marked unavailable instead of
// reporting a fabricated 0%.
func ComputeTrends(current, prior model.MetricSet, degenerate bool) model.TrendSet {
	if degenerate {
		return model.TrendSet{Available: false}
	}

	return model.TrendSet{
		Available:                 true,
		TotalVisits:               FormatTrend(float64(current.TotalVisits), float64(prior.TotalVisits)),
		UniqueVisitors:            FormatTrend(float64(current.UniqueVisitors), float64(prior.UniqueVisitors)),
		ConversionRate:            FormatTrend(current.ConversionRate, prior.ConversionRate),
		AvgSessionDurationSeconds: FormatTrend(current.AvgSessionDurationSeconds, prior.AvgSessionDurationSeconds),
		InteractionCount:          FormatTrend(float64(current.InteractionCount), float64(prior.InteractionCount)),
		Revenue:                   FormatTrend(current.Revenue, prior.Revenue),
	}
}
