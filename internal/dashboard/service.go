// Package dashboard coordinates snapshot recomputation. Every trigger
// (initial load, an explicit filter change, or an appended-event
// notification) gets a monotonically increasing sequence number; a result
// is only published if no newer result beat it there, so the most recent
// snapshot always wins regardless of how overlapping recomputations
// interleave.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/storepulse/storepulse/internal/analytics"
	"github.com/storepulse/storepulse/internal/metrics"
	"github.com/storepulse/storepulse/internal/model"
	"github.com/storepulse/storepulse/internal/period"
)

// ErrFetchFailed marks a failed event/order fetch. The previous snapshot
// stays valid; callers should surface a retryable error state instead of
// discarding it.
var ErrFetchFailed = errors.New("dashboard data fetch failed")

// DefaultNotifyTimeout bounds a notification-triggered recomputation.
const DefaultNotifyTimeout = 30 * time.Second

// Store fetches events and orders from the append-only log for a half-open
// time range. Reads are snapshot-isolated by the backing store; no locking
// is needed on this side.
type Store interface {
	FetchEvents(ctx context.Context, start, end time.Time) ([]model.Event, error)
	FetchOrders(ctx context.Context, start, end time.Time) ([]model.Order, error)
}

// SnapshotCache optionally persists published snapshots so a restarted
// instance can serve the last good snapshot before its first recompute.
type SnapshotCache interface {
	StoreSnapshot(ctx context.Context, selection string, snap *model.DashboardSnapshot) error
	GetSnapshot(ctx context.Context, selection string) (*model.DashboardSnapshot, error)
}

// Selection is the immutable filter state a snapshot is computed for.
type Selection struct {
	Granularity   model.Granularity
	ReferenceDate string
}

// Key returns the cache key form of the selection.
func (s Selection) Key() string {
	if s.ReferenceDate == "" {
		return string(s.Granularity)
	}
	return string(s.Granularity) + ":" + s.ReferenceDate
}

// Service recomputes and publishes dashboard snapshots.
type Service struct {
	store   Store
	cache   SnapshotCache // may be nil
	logger  *slog.Logger
	metrics metrics.Recorder
	now     func() time.Time

	notifyTimeout time.Duration

	mu           sync.Mutex
	seq          uint64 // last issued sequence number
	publishedSeq uint64 // sequence of the published snapshot
	snapshot     *model.DashboardSnapshot
	selection    Selection
}

// New creates a dashboard service. cache may be nil to disable snapshot
// caching.
func New(store Store, cache SnapshotCache, logger *slog.Logger, recorder metrics.Recorder) *Service {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Service{
		store:         store,
		cache:         cache,
		logger:        logger.With("component", "dashboard.service"),
		metrics:       recorder,
		now:           time.Now,
		notifyTimeout: DefaultNotifyTimeout,
		selection: Selection{
			Granularity:   model.GranularityDate,
			ReferenceDate: time.Now().UTC().Format(period.DateLayout),
		},
	}
}

// SetClock overrides the time source. Intended for tests.
func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// SetNotifyTimeout overrides the notification recompute timeout.
func (s *Service) SetNotifyTimeout(timeout time.Duration) {
	if timeout > 0 {
		s.notifyTimeout = timeout
	}
}

// Refresh synchronously recomputes the snapshot for the given selection and
// publishes it if it is still the newest result. The returned snapshot is
// the freshly computed one even if a concurrent recomputation superseded it
// for publication.
func (s *Service) Refresh(ctx context.Context, granularity model.Granularity, referenceDate string) (*model.DashboardSnapshot, error) {
	sel := Selection{Granularity: granularity, ReferenceDate: referenceDate}
	seq := s.nextSeq(sel)

	snap, err := s.compute(ctx, sel)
	if err != nil {
		s.metrics.IncSnapshotRecompute("failed")
		return nil, err
	}

	s.publish(seq, sel, snap)
	return snap, nil
}

// Notify triggers an asynchronous recomputation of the current selection.
// Used by the ingest pipeline when new events land in the log. Failures
// only log: the previous snapshot stays published.
func (s *Service) Notify() {
	s.mu.Lock()
	sel := s.selection
	s.mu.Unlock()

	seq := s.nextSeq(sel)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()

		snap, err := s.compute(ctx, sel)
		if err != nil {
			s.metrics.IncSnapshotRecompute("failed")
			s.logger.Warn("notification-triggered recompute failed", "error", err)
			return
		}

		s.publish(seq, sel, snap)
	}()
}

// Current returns the last published snapshot. When the in-memory copy is
// empty (fresh process) it falls back to the snapshot cache.
func (s *Service) Current(ctx context.Context) (*model.DashboardSnapshot, bool) {
	s.mu.Lock()
	snap := s.snapshot
	sel := s.selection
	s.mu.Unlock()

	if snap != nil {
		return snap, true
	}

	if s.cache != nil {
		cached, err := s.cache.GetSnapshot(ctx, sel.Key())
		if err == nil && cached != nil {
			s.metrics.IncSnapshotCacheHit()
			return cached, true
		}
		s.metrics.IncSnapshotCacheMiss()
	}

	return nil, false
}

// Selection returns the selection of the last recomputation request.
func (s *Service) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// nextSeq issues the sequence number for a recomputation request and
// records the selection it was issued for.
func (s *Service) nextSeq(sel Selection) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.selection = sel
	return s.seq
}

// publish installs a computed snapshot unless a newer one already won.
func (s *Service) publish(seq uint64, sel Selection, snap *model.DashboardSnapshot) {
	s.mu.Lock()
	if seq <= s.publishedSeq {
		s.mu.Unlock()
		s.metrics.IncSnapshotRecompute("superseded")
		s.logger.Debug("discarding superseded snapshot", "seq", seq)
		return
	}
	s.publishedSeq = seq
	s.snapshot = snap
	s.mu.Unlock()

	s.metrics.IncSnapshotRecompute("success")

	if s.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.cache.StoreSnapshot(ctx, sel.Key(), snap); err != nil {
			s.logger.Warn("failed to cache snapshot", "error", err)
		}
	}
}

// compute resolves the periods, fetches both datasets and assembles the
// snapshot. Nothing is published here, so a failed compute never leaves a
// partial snapshot behind.
func (s *Service) compute(ctx context.Context, sel Selection) (*model.DashboardSnapshot, error) {
	now := s.now().UTC()

	current, comparison, err := period.Resolve(sel.Granularity, sel.ReferenceDate, now)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	events, err := s.store.FetchEvents(ctx, current.Start, current.End)
	if err != nil {
		return nil, fmt.Errorf("%w: events: %v", ErrFetchFailed, err)
	}
	orders, err := s.store.FetchOrders(ctx, current.Start, current.End)
	if err != nil {
		return nil, fmt.Errorf("%w: orders: %v", ErrFetchFailed, err)
	}

	var comparisonEvents []model.Event
	var comparisonOrders []model.Order
	if !comparison.IsDegenerate() {
		comparisonEvents, err = s.store.FetchEvents(ctx, comparison.Start, comparison.End)
		if err != nil {
			return nil, fmt.Errorf("%w: comparison events: %v", ErrFetchFailed, err)
		}
		comparisonOrders, err = s.store.FetchOrders(ctx, comparison.Start, comparison.End)
		if err != nil {
			return nil, fmt.Errorf("%w: comparison orders: %v", ErrFetchFailed, err)
		}
	}

	snap := analytics.BuildSnapshot(analytics.SnapshotInput{
		Current:          current,
		Comparison:       comparison,
		Events:           events,
		Orders:           orders,
		ComparisonEvents: comparisonEvents,
		ComparisonOrders: comparisonOrders,
		GeneratedAt:      now,
	})

	s.metrics.ObserveSnapshotBuildDuration(time.Since(start))

	s.logger.Debug("snapshot computed",
		"granularity", string(sel.Granularity),
		"reference_date", sel.ReferenceDate,
		"events", len(events),
		"orders", len(orders),
	)

	return snap, nil
}
