// Package analytics implements the dashboard aggregation engine: event
// ingestion, session reconstruction, metric and trend computation,
// time-series bucketing, top-N ranking and snapshot assembly.
package analytics

import (
	"github.com/storepulse/storepulse/internal/model"
)

// ReconstructSessions groups events by session ID and derives each session's
// bounds as the minimum and maximum event timestamp. A single pass over the
// input; no ordering is required. O(n) time, O(distinct sessions) space.
func ReconstructSessions(events []model.Event) map[string]model.Session {
	sessions := make(map[string]model.Session)

	for i := range events {
		e := &events[i]
		if e.SessionID == "" {
			continue
		}

		s, ok := sessions[e.SessionID]
		if !ok {
			sessions[e.SessionID] = model.Session{
				SessionID: e.SessionID,
				Start:     e.OccurredAt,
				End:       e.OccurredAt,
			}
			continue
		}

		if e.OccurredAt.Before(s.Start) {
			s.Start = e.OccurredAt
		}
		if e.OccurredAt.After(s.End) {
			s.End = e.OccurredAt
		}
		sessions[e.SessionID] = s
	}

	return sessions
}

// AverageSessionDuration returns the arithmetic mean of all session
// durations in seconds. Zero sessions yields 0, never NaN.
func AverageSessionDuration(sessions map[string]model.Session) float64 {
	if len(sessions) == 0 {
		return 0
	}

	var total float64
	for _, s := range sessions {
		total += s.Duration().Seconds()
	}
	return total / float64(len(sessions))
}
