package analytics

import "fmt"

const (
	maxSessionIDLength = 100
	maxLabelLength     = 200
	maxURLLength       = 2048
)

// ValidateTrackEventPayload validates track event payload fields before the
// event enters the ingest stream.
func ValidateTrackEventPayload(payload TrackEventPayload) error {
	if payload.SessionID == "" {
		return fmt.Errorf("session_id is required")
	}
	if len(payload.SessionID) > maxSessionIDLength {
		return fmt.Errorf("session_id too long")
	}
	if len(payload.VisitorID) > maxSessionIDLength {
		return fmt.Errorf("visitor_id too long")
	}
	if payload.Category == "" {
		return fmt.Errorf("category is required")
	}
	if payload.OccurredAt <= 0 {
		return fmt.Errorf("occurred_at must be set")
	}
	if len(payload.Label) > maxLabelLength {
		return fmt.Errorf("label too long")
	}
	if len(payload.URL) > maxURLLength {
		return fmt.Errorf("url too long")
	}
	return nil
}
