package repository

import (
	"context"
	"time"

	"github.com/storepulse/storepulse/internal/model"
)

// Store bundles the event and order repositories behind the fetch surface
// the dashboard consumes.
type Store struct {
	events *EventRepository
	orders *OrderRepository
}

// NewStore creates a Store over one shared connection pool.
func NewStore(repo *Repository) *Store {
	return &Store{
		events: NewEventRepository(repo),
		orders: NewOrderRepository(repo),
	}
}

// Events exposes the underlying event repository.
func (s *Store) Events() *EventRepository {
	return s.events
}

// FetchEvents returns events with occurred_at in [start, end).
func (s *Store) FetchEvents(ctx context.Context, start, end time.Time) ([]model.Event, error) {
	return s.events.FetchEvents(ctx, start, end)
}

// FetchOrders returns orders created in [start, end).
func (s *Store) FetchOrders(ctx context.Context, start, end time.Time) ([]model.Order, error) {
	return s.orders.FetchOrders(ctx, start, end)
}
