package forecast

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const maxYears = 100

// Handler handles forecast HTTP requests
type Handler struct {
	log zerolog.Logger
}

// NewHandler creates a new forecast handler
func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{
		log: log.With().Str("handler", "forecast").Logger(),
	}
}

// RegisterRoutes mounts the forecast endpoints on the router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/forecast", h.HandleForecast)
}

// HandleForecast runs a compounding projection for the given parameters.
// GET /api/forecast?initial=100000&monthly=10000&years=30&rate=12
func (h *Handler) HandleForecast(w http.ResponseWriter, r *http.Request) {
	in := Input{}

	var err error
	if in.Initial, err = floatParam(r, "initial", 0); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.MonthlyTopUp, err = floatParam(r, "monthly", 0); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.AnnualRatePercent, err = floatParam(r, "rate", 0); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.Years, err = intParam(r, "years", 30); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if in.Years < 0 || in.Years > maxYears {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("years must be between 0 and %d", maxYears))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"input":  in,
		"points": Project(in),
	})
}

func floatParam(r *http.Request, name string, def float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
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
