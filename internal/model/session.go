package model

import "time"

// Session is a derived grouping of events sharing a session ID, bounded by
// the minimum and maximum event timestamps. Sessions are recomputed per
// period and never persisted. A session holding a single event has zero
// duration; that is expected, not an error.
type Session struct {
	SessionID string    `json:"session_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// Duration returns the session length.
func (s Session) Duration() time.Duration {
	return s.End.Sub(s.Start)
}
