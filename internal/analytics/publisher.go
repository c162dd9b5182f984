package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storepulse/storepulse/internal/metrics"
)

const (
	// StreamKey is the Redis stream for track events.
	StreamKey = "stream:track_events"

	// DeadLetterStreamKey is the Redis stream for poison messages.
	DeadLetterStreamKey = "stream:track_events:dlq"

	// NotifyChannel is the Redis pub/sub channel signalling appended events.
	NotifyChannel = "storepulse:events:appended"

	// MaxStreamLen is the approximate max length of the stream.
	MaxStreamLen = 100000

	// PublishTimeout is the max time to wait for Redis publish.
	PublishTimeout = 100 * time.Millisecond
)

// TrackEventPayload is the compressed event format for the Redis stream.
type TrackEventPayload struct {
	SessionID  string `json:"sid"`
	VisitorID  string `json:"vid,omitempty"`
	Category   string `json:"c"`
	Label      string `json:"l,omitempty"`
	URL        string `json:"u,omitempty"`
	OccurredAt int64  `json:"t"` // Unix milliseconds
}

// Publisher enqueues track events to the Redis stream.
type Publisher struct {
	redis   *redis.Client
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewPublisher creates a new track event publisher.
func NewPublisher(client *redis.Client, logger *slog.Logger, recorder metrics.Recorder) *Publisher {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Publisher{
		redis:   client,
		logger:  logger.With("component", "analytics.publisher"),
		metrics: recorder,
	}
}

// Publish adds a track event to the stream synchronously.
func (p *Publisher) Publish(ctx context.Context, event TrackEventPayload) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("marshal event: %w", err)
	}

	result, err := p.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		MaxLen: MaxStreamLen,
		Approx: true, // ~MAXLEN for performance
		ID:     "*",  // Auto-generate ID
		Values: map[string]interface{}{
			"payload": string(data),
		},
	}).Result()

	if err != nil {
		return "", fmt.Errorf("xadd: %w", err)
	}

	return result, nil
}

// PublishAsync publishes without blocking the caller.
// Errors are logged but not returned (fire-and-forget).
func (p *Publisher) PublishAsync(event TrackEventPayload) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), PublishTimeout)
		defer cancel()

		streamID, err := p.Publish(ctx, event)
		if err != nil {
			p.logger.Warn("failed to publish track event",
				"session_id", event.SessionID,
				"error", err,
			)
			p.metrics.IncTrackEventPublished("dropped")
			return
		}

		p.logger.Debug("track event published",
			"session_id", event.SessionID,
			"stream_id", streamID,
		)
		p.metrics.IncTrackEventPublished("success")
	}()
}
