package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/storepulse/storepulse/internal/model"
)

// OrderRepository reads order records written by the commerce backend.
// The dashboard only consumes them; order lifecycle lives elsewhere.
type OrderRepository struct {
	repo *Repository
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(repo *Repository) *OrderRepository {
	return &OrderRepository{repo: repo}
}

// FetchOrders returns all orders created in [start, end), oldest first.
func (r *OrderRepository) FetchOrders(ctx context.Context, start, end time.Time) ([]model.Order, error) {
	query := `
		SELECT id, customer_id, total_amount, status, created_at
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at ASC
	`

	rows, err := r.repo.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var (
			o      model.Order
			status string
		)
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.TotalAmount, &status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Status = model.OrderStatus(status)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, nil
}
