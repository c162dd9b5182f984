package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/storepulse/storepulse/internal/dashboard"
	"github.com/storepulse/storepulse/internal/handler/dto"
	"github.com/storepulse/storepulse/internal/model"
	"github.com/storepulse/storepulse/internal/period"
)

// DashboardHandler serves the aggregated dashboard API.
type DashboardHandler struct {
	svc    *dashboard.Service
	logger *slog.Logger

	defaultGranularity model.Granularity
	now                func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc *dashboard.Service, logger *slog.Logger, defaultGranularity model.Granularity) *DashboardHandler {
	if defaultGranularity == "" {
		defaultGranularity = model.GranularityDate
	}
	return &DashboardHandler{
		svc:                svc,
		logger:             logger.With("component", "handler.dashboard"),
		defaultGranularity: defaultGranularity,
		now:                time.Now,
	}
}

// Get recomputes and returns the dashboard snapshot for the requested
// period filter. When the event log is unreachable it falls back to the
// last published snapshot, marked stale.
//
// GET /api/v1/dashboard?granularity=month&date=2025-03-15
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	granularity := h.defaultGranularity
	if raw := r.URL.Query().Get("granularity"); raw != "" {
		parsed, err := period.ParseGranularity(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "Unknown granularity")
			return
		}
		granularity = parsed
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.now().UTC().Format(period.DateLayout)
	}

	snap, err := h.svc.Refresh(r.Context(), granularity, date)
	if err != nil {
		h.handleRefreshError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DashboardResponse{DashboardSnapshot: snap})
}

// Live returns the last published snapshot without recomputing.
//
// GET /api/v1/dashboard/live
func (h *DashboardHandler) Live(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.svc.Current(r.Context())
	if !ok {
		h.writeError(w, http.StatusNotFound, "NO_SNAPSHOT", "No snapshot has been published yet")
		return
	}

	writeJSON(w, http.StatusOK, dto.DashboardResponse{DashboardSnapshot: snap})
}

func (h *DashboardHandler) handleRefreshError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, period.ErrInvalidGranularity):
		h.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "Unknown granularity")
	case errors.Is(err, period.ErrInvalidDate):
		h.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "Date must be YYYY-MM-DD")
	case errors.Is(err, dashboard.ErrFetchFailed):
		// Serve the previous snapshot if one exists rather than a hard error.
		if snap, ok := h.svc.Current(r.Context()); ok {
			h.logger.Warn("serving stale snapshot", "error", err)
			writeJSON(w, http.StatusOK, dto.DashboardResponse{DashboardSnapshot: snap, Stale: true})
			return
		}
		h.writeError(w, http.StatusServiceUnavailable, "SNAPSHOT_UNAVAILABLE", "Dashboard data is temporarily unavailable")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *DashboardHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
