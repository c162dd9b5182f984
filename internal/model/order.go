package model

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

// Order statuses handled by the dashboard. The order lifecycle itself is
// managed elsewhere; the dashboard only needs to distinguish completed and
// cancelled orders from the rest.
const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
	OrderRefunded  OrderStatus = "refunded"
)

// Order is an order record consumed from the commerce backend.
type Order struct {
	ID          string      `json:"id"`
	CustomerID  string      `json:"customer_id"`
	TotalAmount float64     `json:"total_amount"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Counted reports whether the order contributes to spend and conversion
// totals. Cancelled orders are excluded.
func (o *Order) Counted() bool {
	return o.Status != OrderCancelled
}
