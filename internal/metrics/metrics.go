// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Ingest pipeline metrics
	IncTrackEventPublished(status string) // status: "success" or "dropped"
	IncTrackEventProcessed(status string) // status: "success", "failed", "dead_lettered"
	ObserveIngestBatchSize(size int)
	ObserveIngestBatchDuration(duration time.Duration)
	SetIngestQueueDepth(depth int64)
	ObserveIngestLag(lag time.Duration)

	// Snapshot recomputation metrics
	IncSnapshotRecompute(status string) // status: "success", "failed", "superseded"
	ObserveSnapshotBuildDuration(duration time.Duration)
	IncSnapshotCacheHit()
	IncSnapshotCacheMiss()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
