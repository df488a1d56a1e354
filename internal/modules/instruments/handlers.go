package instruments

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles instrument HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new instruments handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "instruments").Logger(),
	}
}

// RegisterRoutes mounts the instrument endpoints on the router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/instruments/{figi}/trend", h.HandleTrend)
}

// HandleTrend returns the SMA trend assessment for one instrument.
// GET /api/instruments/{figi}/trend
func (h *Handler) HandleTrend(w http.ResponseWriter, r *http.Request) {
	figi := chi.URLParam(r, "figi")
	if figi == "" {
		h.writeError(w, http.StatusBadRequest, "figi is required")
		return
	}

	report, err := h.service.Trend(figi)
	if err != nil {
		h.log.Error().Err(err).Str("figi", figi).Msg("Failed to compute trend")
		h.writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, report)
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
