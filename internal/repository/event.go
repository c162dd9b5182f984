package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/storepulse/storepulse/internal/model"
)

// EventRepository provides access to the append-only event log. Events are
// only ever inserted and range-queried; nothing updates them in place.
type EventRepository struct {
	repo *Repository
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(repo *Repository) *EventRepository {
	return &EventRepository{repo: repo}
}

// BulkInsertEvents inserts a batch of events with idempotency via
// ON CONFLICT DO NOTHING on the primary key.
func (r *EventRepository) BulkInsertEvents(ctx context.Context, events []*model.Event) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}

	query := `
		INSERT INTO events (
			id, session_id, visitor_id, category, label, url, occurred_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (id) DO NOTHING
	`

	for _, event := range events {
		batch.Queue(query,
			event.ID,
			event.SessionID,
			nullableString(event.VisitorID),
			string(event.Category),
			nullableString(event.Label),
			nullableString(event.URL),
			event.OccurredAt,
		)
	}

	results := r.repo.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range events {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}

	return nil
}

// FetchEvents returns all events with occurred_at in [start, end), oldest
// first. The half-open bound keeps adjacent periods disjoint.
func (r *EventRepository) FetchEvents(ctx context.Context, start, end time.Time) ([]model.Event, error) {
	query := `
		SELECT id, session_id, visitor_id, category, label, url, occurred_at, created_at
		FROM events
		WHERE occurred_at >= $1 AND occurred_at < $2
		ORDER BY occurred_at ASC
	`

	rows, err := r.repo.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// FetchEventsByCategory returns events in [start, end) restricted to the
// given categories.
func (r *EventRepository) FetchEventsByCategory(ctx context.Context, start, end time.Time, categories []model.Category) ([]model.Event, error) {
	raw := make([]string, len(categories))
	for i, c := range categories {
		raw[i] = string(c)
	}

	query := `
		SELECT id, session_id, visitor_id, category, label, url, occurred_at, created_at
		FROM events
		WHERE occurred_at >= $1 AND occurred_at < $2
		  AND category = ANY($3)
		ORDER BY occurred_at ASC
	`

	rows, err := r.repo.pool.Query(ctx, query, start, end, pq.Array(raw))
	if err != nil {
		return nil, fmt.Errorf("query events by category: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows pgx.Rows) ([]model.Event, error) {
	var events []model.Event
	for rows.Next() {
		var (
			e         model.Event
			category  string
			visitorID *string
			label     *string
			url       *string
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &visitorID, &category, &label, &url, &e.OccurredAt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Category = model.ParseCategory(category)
		e.VisitorID = derefString(visitorID)
		e.Label = derefString(label)
		e.URL = derefString(url)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// nullableString converts empty strings to NULL for storage.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
