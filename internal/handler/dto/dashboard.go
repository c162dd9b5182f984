// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"github.com/storepulse/storepulse/internal/model"
)

// TrackEventRequest represents the request body for recording a visit event.
type TrackEventRequest struct {
	SessionID  string `json:"session_id"`
	VisitorID  string `json:"visitor_id,omitempty"`
	Category   string `json:"category"`
	Label      string `json:"label,omitempty"`
	URL        string `json:"url,omitempty"`
	OccurredAt int64  `json:"occurred_at,omitempty"` // Unix milliseconds; defaults to receipt time
}

// TrackEventResponse acknowledges an accepted event.
type TrackEventResponse struct {
	Status string `json:"status"`
}

// DashboardResponse wraps a snapshot with serving metadata.
type DashboardResponse struct {
	*model.DashboardSnapshot

	// Stale is true when the snapshot could not be recomputed and a
	// previously published one is served instead.
	Stale bool `json:"stale,omitempty"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
