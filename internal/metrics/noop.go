package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncTrackEventPublished is a no-op.
func (n *NoopRecorder) IncTrackEventPublished(status string) {}

// IncTrackEventProcessed is a no-op.
func (n *NoopRecorder) IncTrackEventProcessed(status string) {}

// ObserveIngestBatchSize is a no-op.
func (n *NoopRecorder) ObserveIngestBatchSize(size int) {}

// ObserveIngestBatchDuration is a no-op.
func (n *NoopRecorder) ObserveIngestBatchDuration(duration time.Duration) {}

// SetIngestQueueDepth is a no-op.
func (n *NoopRecorder) SetIngestQueueDepth(depth int64) {}

// ObserveIngestLag is a no-op.
func (n *NoopRecorder) ObserveIngestLag(lag time.Duration) {}

// IncSnapshotRecompute is a no-op.
func (n *NoopRecorder) IncSnapshotRecompute(status string) {}

// ObserveSnapshotBuildDuration is a no-op.
func (n *NoopRecorder) ObserveSnapshotBuildDuration(duration time.Duration) {}

// IncSnapshotCacheHit is a no-op.
func (n *NoopRecorder) IncSnapshotCacheHit() {}

// IncSnapshotCacheMiss is a no-op.
func (n *NoopRecorder) IncSnapshotCacheMiss() {}
