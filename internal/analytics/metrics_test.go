package analytics

import (
	"testing"
	"time"

	"github.com/storepulse/storepulse/internal/model"
)

func TestComputeMetrics_Basic(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	events := []model.Event{
		{SessionID: "s1", VisitorID: "v1", Category: model.CategoryPageView, OccurredAt: base},
		{SessionID: "s1", VisitorID: "v1", Category: model.CategoryClick, Label: "Add to Cart", OccurredAt: base.Add(time.Minute)},
		{SessionID: "s2", VisitorID: "v2", Category: model.CategoryPageView, OccurredAt: base.Add(2 * time.Minute)},
		{SessionID: "s2", VisitorID: "v2", Category: model.CategoryClick, Label: "Checkout Start", OccurredAt: base.Add(3 * time.Minute)},
		{SessionID: "s3", Category: model.CategoryProductView, OccurredAt: base.Add(4 * time.Minute)},
	}
	orders := []model.Order{
		{ID: "o1", Status: model.OrderCompleted, TotalAmount: 50, CreatedAt: base},
		{ID: "o2", Status: model.OrderPending, TotalAmount: 20, CreatedAt: base},
		{ID: "o3", Status: model.OrderCancelled, TotalAmount: 99, CreatedAt: base},
	}

	m := ComputeMetrics(events, orders)

	if m.TotalVisits != 2 {
		t.Errorf("TotalVisits = %d, want 2", m.TotalVisits)
	}
	// v1, v2 and the visitor-less s3 (falls back to session ID)
	if m.UniqueVisitors != 3 {
		t.Errorf("UniqueVisitors = %d, want 3", m.UniqueVisitors)
	}
	if m.CartAdds != 1 {
		t.Errorf("CartAdds = %d, want 1", m.CartAdds)
	}
	if m.CheckoutStarts != 1 {
		t.Errorf("CheckoutStarts = %d, want 1", m.CheckoutStarts)
	}
	if m.InteractionCount != 2 {
		t.Errorf("InteractionCount = %d, want 2", m.InteractionCount)
	}
	// Cancelled order excluded from both count and revenue.
	if m.OrderCount != 2 {
		t.Errorf("OrderCount = %d, want 2", m.OrderCount)
	}
	if m.Revenue != 70 {
		t.Errorf("Revenue = %v, want 70", m.Revenue)
	}
	if m.PurchaseCompletes != 1 {
		t.Errorf("PurchaseCompletes = %d, want 1", m.PurchaseCompletes)
	}
	// 2 counted orders / 3 unique visitors
	wantRate := float64(2) / 3 * 100
	if m.ConversionRate != wantRate {
		t.Errorf("ConversionRate = %v, want %v", m.ConversionRate, wantRate)
	}
}

func TestComputeMetrics_EmptyInput(t *testing.T) {
	t.Parallel()

	m := ComputeMetrics(nil, nil)

	if m.ConversionRate != 0 {
		t.Errorf("ConversionRate = %v, want 0", m.ConversionRate)
	}
	if m.AvgSessionDurationSeconds != 0 {
		t.Errorf("AvgSessionDurationSeconds = %v, want 0", m.AvgSessionDurationSeconds)
	}
	if m.AbandonedCarts != 0 {
		t.Errorf("AbandonedCarts = %v, want 0", m.AbandonedCarts)
	}
}

func TestComputeMetrics_AbandonedCartsNeverNegative(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	// No checkout-start events, yet two completed orders.
	orders := []model.Order{
		{ID: "o1", Status: model.OrderCompleted, CreatedAt: base},
		{ID: "o2", Status: model.OrderCompleted, CreatedAt: base},
	}

	m := ComputeMetrics(nil, orders)

	if m.AbandonedCarts != 0 {
		t.Errorf("AbandonedCarts = %d, want 0", m.AbandonedCarts)
	}
}

func TestComputeMetrics_AbandonedCarts(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	events := []model.Event{
		{SessionID: "s1", Category: model.CategoryClick, Label: "Checkout Start", OccurredAt: base},
		{SessionID: "s2", Category: model.CategoryClick, Label: "Checkout Start", OccurredAt: base},
		{SessionID: "s3", Category: model.CategoryClick, Label: "Checkout Start", OccurredAt: base},
	}
	orders := []model.Order{
		{ID: "o1", Status: model.OrderCompleted, CreatedAt: base},
	}

	m := ComputeMetrics(events, orders)

	if m.AbandonedCarts != 2 {
		t.Errorf("AbandonedCarts = %d, want 2", m.AbandonedCarts)
	}
}

func TestFormatTrend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current float64
		prior   float64
		want    string
	}{
		{"growth from zero", 5, 0, "+100%"},
		{"flat at zero", 0, 0, "0%"},
		{"halved", 50, 100, "-50.0%"},
		{"doubled", 200, 100, "+100.0%"},
		{"fractional", 112.5, 100, "+12.5%"},
		{"dropped to zero", 0, 40, "-100.0%"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatTrend(tt.current, tt.prior); got != tt.want {
				t.Errorf("FormatTrend(%v, %v) = %q, want %q", tt.current, tt.prior, got, tt.want)
			}
		})
	}
}

func TestComputeTrends_Degenerate(t *testing.T) {
	t.Parallel()

	trends := ComputeTrends(model.MetricSet{TotalVisits: 100}, model.MetricSet{}, true)

	if trends.Available {
		t.Error("degenerate comparison must yield an unavailable trend set")
	}
	if trends.TotalVisits != "" {
		t.Errorf("TotalVisits trend = %q, want empty", trends.TotalVisits)
	}
}

func TestComputeTrends_Regular(t *testing.T) {
	t.Parallel()

	current := model.MetricSet{TotalVisits: 50, UniqueVisitors: 10, Revenue: 300}
	prior := model.MetricSet{TotalVisits: 100, UniqueVisitors: 0, Revenue: 200}

	trends := ComputeTrends(current, prior, false)

	if !trends.Available {
		t.Fatal("trend set should be available")
	}
	if trends.TotalVisits != "-50.0%" {
		t.Errorf("TotalVisits trend = %q, want -50.0%%", trends.TotalVisits)
	}
	if trends.UniqueVisitors != "+100%" {
		t.Errorf("UniqueVisitors trend = %q, want +100%%", trends.UniqueVisitors)
	}
	if trends.Revenue != "+50.0%" {
		t.Errorf("Revenue trend = %q, want +50.0%%", trends.Revenue)
	}
}
