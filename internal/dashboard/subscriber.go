package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/storepulse/storepulse/internal/analytics"
)

// Subscriber listens on the appended-event pub/sub channel and triggers a
// dashboard recomputation for each notification. It is the live-update
// hook between the ingest pipeline and the snapshot coordinator.
type Subscriber struct {
	redis  *redis.Client
	svc    *Service
	logger *slog.Logger

	started bool
	cancel  context.CancelFunc
	done    chan struct{}
	mu      sync.Mutex
}

// NewSubscriber creates a new appended-event subscriber.
func NewSubscriber(client *redis.Client, svc *Service, logger *slog.Logger) *Subscriber {
	return &Subscriber{
		redis:  client,
		svc:    svc,
		logger: logger.With("component", "dashboard.subscriber"),
	}
}

// Run blocks consuming notifications until the context is cancelled.
func (s *Subscriber) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return errors.New("subscriber already started")
	}
	s.started = true
	s.done = make(chan struct{})
	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	defer close(s.done)

	sub := s.redis.Subscribe(ctx, analytics.NotifyChannel)
	defer sub.Close()

	// Fail fast if the subscription could not be established.
	if _, err := sub.Receive(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	s.logger.Info("subscribed to append notifications", "channel", analytics.NotifyChannel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("subscriber stopping")
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			s.logger.Debug("append notification received", "payload", msg.Payload)
			s.svc.Notify()
		}
	}
}

// Shutdown stops the subscriber and waits for the consume loop to exit.
// It implements server.ShutdownFunc.
func (s *Subscriber) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	if done != nil {
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
