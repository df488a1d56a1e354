package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	defaultOperationDays = 30
	maxOperationDays     = 3650
)

// Handler handles dashboard HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new dashboard handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "dashboard").Logger(),
	}
}

// RegisterRoutes mounts the dashboard endpoints on the router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/dashboard", h.HandleDashboard)
	r.Post("/api/refresh", h.HandleRefresh)
	r.Get("/api/operations", h.HandleOperations)
}

// HandleDashboard returns the latest snapshot.
// GET /api/dashboard
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.service.Snapshot()
	if !ok {
		h.writeError(w, http.StatusServiceUnavailable, "No data yet, refresh in progress")
		return
	}
	h.writeJSON(w, http.StatusOK, snapshot)
}

// HandleRefresh rebuilds the snapshot on demand and returns it.
// POST /api/refresh
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Refresh(); err != nil {
		h.log.Error().Err(err).Msg("On-demand refresh failed")
		h.writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	snapshot, _ := h.service.Snapshot()
	h.writeJSON(w, http.StatusOK, snapshot)
}

// HandleOperations lists classified operations for the trailing window.
// GET /api/operations?days=30
func (h *Handler) HandleOperations(w http.ResponseWriter, r *http.Request) {
	days := defaultOperationDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxOperationDays {
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("days must be between 1 and %d", maxOperationDays))
			return
		}
		days = parsed
	}

	views, err := h.service.Operations(days)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list operations")
		h.writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"days":       days,
		"operations": views,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
