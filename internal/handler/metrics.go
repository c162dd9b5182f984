package handler

import (
	"fmt"
	"net/http"

	"github.com/storepulse/storepulse/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "storepulse_track_events_published_total{status=\"success\"} %d\n", snap.TrackEventsPublished)
	writeMetric(w, "storepulse_track_events_published_total{status=\"dropped\"} %d\n", snap.TrackEventsDropped)

	writeMetric(w, "storepulse_track_events_processed_total{status=\"success\"} %d\n", snap.TrackEventsProcessed)
	writeMetric(w, "storepulse_track_events_processed_total{status=\"failed\"} %d\n", snap.TrackEventsProcessedFailed)
	writeMetric(w, "storepulse_track_events_processed_total{status=\"dead_lettered\"} %d\n", snap.TrackEventsDeadLettered)

	writeMetric(w, "storepulse_ingest_batches_total %d\n", snap.IngestBatchCount)
	writeMetric(w, "storepulse_ingest_queue_depth %d\n", snap.IngestQueueDepth)
	writeMetric(w, "storepulse_ingest_batch_duration_seconds_count %d\n", snap.IngestBatchDurationCount)
	writeMetric(w, "storepulse_ingest_batch_duration_seconds_sum %.6f\n", float64(snap.IngestBatchDurationTotalNs)/1e9)
	writeMetric(w, "storepulse_ingest_lag_seconds_count %d\n", snap.IngestLagCount)
	writeMetric(w, "storepulse_ingest_lag_seconds_sum %.6f\n", float64(snap.IngestLagTotalNs)/1e9)

	writeMetric(w, "storepulse_snapshot_recomputes_total{status=\"success\"} %d\n", snap.SnapshotRecomputes)
	writeMetric(w, "storepulse_snapshot_recomputes_total{status=\"failed\"} %d\n", snap.SnapshotRecomputesFailed)
	writeMetric(w, "storepulse_snapshot_recomputes_total{status=\"superseded\"} %d\n", snap.SnapshotRecomputesSuperseded)
	writeMetric(w, "storepulse_snapshot_build_duration_seconds_count %d\n", snap.SnapshotBuildDurationCount)
	writeMetric(w, "storepulse_snapshot_build_duration_seconds_sum %.6f\n", float64(snap.SnapshotBuildDurationTotalNs)/1e9)

	writeMetric(w, "storepulse_snapshot_cache_hits_total %d\n", snap.SnapshotCacheHits)
	writeMetric(w, "storepulse_snapshot_cache_misses_total %d\n", snap.SnapshotCacheMisses)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
