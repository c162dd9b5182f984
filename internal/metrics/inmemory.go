package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	TrackEventsPublished        uint64
	TrackEventsDropped          uint64
	TrackEventsProcessed        uint64
	TrackEventsProcessedFailed  uint64
	TrackEventsDeadLettered     uint64
	IngestBatchCount            uint64
	IngestBatchDurationCount    uint64
	IngestBatchDurationTotalNs  int64
	IngestQueueDepth            int64
	IngestLagCount              uint64
	IngestLagTotalNs            int64
	SnapshotRecomputes          uint64
	SnapshotRecomputesFailed    uint64
	SnapshotRecomputesSuperseded uint64
	SnapshotBuildDurationCount  uint64
	SnapshotBuildDurationTotalNs int64
	SnapshotCacheHits           uint64
	SnapshotCacheMisses         uint64
}

// InMemoryRecorder stores metrics in memory for tests and the /metrics
// exposition endpoint.
type InMemoryRecorder struct {
	trackEventsPublished        uint64
	trackEventsDropped          uint64
	trackEventsProcessed        uint64
	trackEventsProcessedFailed  uint64
	trackEventsDeadLettered     uint64
	ingestBatchCount            uint64
	ingestBatchDurationCount    uint64
	ingestBatchDurationTotalNs  int64
	ingestQueueDepth            int64
	ingestLagCount              uint64
	ingestLagTotalNs            int64
	snapshotRecomputes          uint64
	snapshotRecomputesFailed    uint64
	snapshotRecomputesSuperseded uint64
	snapshotBuildDurationCount  uint64
	snapshotBuildDurationTotalNs int64
	snapshotCacheHits           uint64
	snapshotCacheMisses         uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		TrackEventsPublished:         atomic.LoadUint64(&m.trackEventsPublished),
		TrackEventsDropped:           atomic.LoadUint64(&m.trackEventsDropped),
		TrackEventsProcessed:         atomic.LoadUint64(&m.trackEventsProcessed),
		TrackEventsProcessedFailed:   atomic.LoadUint64(&m.trackEventsProcessedFailed),
		TrackEventsDeadLettered:      atomic.LoadUint64(&m.trackEventsDeadLettered),
		IngestBatchCount:             atomic.LoadUint64(&m.ingestBatchCount),
		IngestBatchDurationCount:     atomic.LoadUint64(&m.ingestBatchDurationCount),
		IngestBatchDurationTotalNs:   atomic.LoadInt64(&m.ingestBatchDurationTotalNs),
		IngestQueueDepth:             atomic.LoadInt64(&m.ingestQueueDepth),
		IngestLagCount:               atomic.LoadUint64(&m.ingestLagCount),
		IngestLagTotalNs:             atomic.LoadInt64(&m.ingestLagTotalNs),
		SnapshotRecomputes:           atomic.LoadUint64(&m.snapshotRecomputes),
		SnapshotRecomputesFailed:     atomic.LoadUint64(&m.snapshotRecomputesFailed),
		SnapshotRecomputesSuperseded: atomic.LoadUint64(&m.snapshotRecomputesSuperseded),
		SnapshotBuildDurationCount:   atomic.LoadUint64(&m.snapshotBuildDurationCount),
		SnapshotBuildDurationTotalNs: atomic.LoadInt64(&m.snapshotBuildDurationTotalNs),
		SnapshotCacheHits:            atomic.LoadUint64(&m.snapshotCacheHits),
		SnapshotCacheMisses:          atomic.LoadUint64(&m.snapshotCacheMisses),
	}
}

// IncTrackEventPublished increments the published counter for a status.
func (m *InMemoryRecorder) IncTrackEventPublished(status string) {
	switch status {
	case "success":
		atomic.AddUint64(&m.trackEventsPublished, 1)
	case "dropped":
		atomic.AddUint64(&m.trackEventsDropped, 1)
	}
}

// IncTrackEventProcessed increments the processed counter for a status.
func (m *InMemoryRecorder) IncTrackEventProcessed(status string) {
	switch status {
	case "success":
		atomic.AddUint64(&m.trackEventsProcessed, 1)
	case "failed":
		atomic.AddUint64(&m.trackEventsProcessedFailed, 1)
	case "dead_lettered":
		atomic.AddUint64(&m.trackEventsDeadLettered, 1)
	}
}

// ObserveIngestBatchSize records a processed batch.
func (m *InMemoryRecorder) ObserveIngestBatchSize(size int) {
	atomic.AddUint64(&m.ingestBatchCount, 1)
}

// ObserveIngestBatchDuration records batch processing time.
func (m *InMemoryRecorder) ObserveIngestBatchDuration(duration time.Duration) {
	atomic.AddUint64(&m.ingestBatchDurationCount, 1)
	atomic.AddInt64(&m.ingestBatchDurationTotalNs, duration.Nanoseconds())
}

// SetIngestQueueDepth sets the current stream backlog.
func (m *InMemoryRecorder) SetIngestQueueDepth(depth int64) {
	atomic.StoreInt64(&m.ingestQueueDepth, depth)
}

// ObserveIngestLag records end-to-end ingest latency for an event.
func (m *InMemoryRecorder) ObserveIngestLag(lag time.Duration) {
	atomic.AddUint64(&m.ingestLagCount, 1)
	atomic.AddInt64(&m.ingestLagTotalNs, lag.Nanoseconds())
}

// IncSnapshotRecompute increments the recompute counter for a status.
func (m *InMemoryRecorder) IncSnapshotRecompute(status string) {
	switch status {
	case "success":
		atomic.AddUint64(&m.snapshotRecomputes, 1)
	case "failed":
		atomic.AddUint64(&m.snapshotRecomputesFailed, 1)
	case "superseded":
		atomic.AddUint64(&m.snapshotRecomputesSuperseded, 1)
	}
}

// ObserveSnapshotBuildDuration records snapshot assembly time.
func (m *InMemoryRecorder) ObserveSnapshotBuildDuration(duration time.Duration) {
	atomic.AddUint64(&m.snapshotBuildDurationCount, 1)
	atomic.AddInt64(&m.snapshotBuildDurationTotalNs, duration.Nanoseconds())
}

// IncSnapshotCacheHit increments the snapshot cache hit counter.
func (m *InMemoryRecorder) IncSnapshotCacheHit() {
	atomic.AddUint64(&m.snapshotCacheHits, 1)
}

// IncSnapshotCacheMiss increments the snapshot cache miss counter.
func (m *InMemoryRecorder) IncSnapshotCacheMiss() {
	atomic.AddUint64(&m.snapshotCacheMisses, 1)
}
