package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/storepulse/storepulse/internal/analytics"
	"github.com/storepulse/storepulse/internal/handler/dto"
)

// TrackHandler accepts visit events from browser beacons and enqueues them
// for asynchronous ingestion.
type TrackHandler struct {
	publisher *analytics.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewTrackHandler creates a new TrackHandler.
func NewTrackHandler(publisher *analytics.Publisher, logger *slog.Logger) *TrackHandler {
	return &TrackHandler{
		publisher: publisher,
		logger:    logger.With("component", "handler.track"),
		now:       time.Now,
	}
}

// Track handles POST /track. The event is validated, queued, and the
// request acknowledged immediately; persistence happens off the hot path.
func (h *TrackHandler) Track(w http.ResponseWriter, r *http.Request) {
	var req dto.TrackEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	occurredAt := req.OccurredAt
	if occurredAt == 0 {
		occurredAt = h.now().UTC().UnixMilli()
	}

	payload := analytics.TrackEventPayload{
		SessionID:  req.SessionID,
		VisitorID:  req.VisitorID,
		Category:   req.Category,
		Label:      req.Label,
		URL:        req.URL,
		OccurredAt: occurredAt,
	}

	if err := analytics.ValidateTrackEventPayload(payload); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	h.publisher.PublishAsync(payload)

	writeJSON(w, http.StatusAccepted, dto.TrackEventResponse{Status: "accepted"})
}

func (h *TrackHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
