package settings

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles settings HTTP requests
type Handler struct {
	repo     *Repository
	defaults Settings
	onToken  func(token string)
	log      zerolog.Logger
}

// NewHandler creates a new settings handler. onToken runs after a token
// change is persisted, so the caller can swap the API client and refresh.
func NewHandler(repo *Repository, defaults Settings, onToken func(token string), log zerolog.Logger) *Handler {
	return &Handler{
		repo:     repo,
		defaults: defaults,
		onToken:  onToken,
		log:      log.With().Str("handler", "settings").Logger(),
	}
}

// RegisterRoutes mounts the settings endpoints on the router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/settings", h.HandleGet)
	r.Put("/api/settings", h.HandleUpdate)
}

// HandleGet returns the current settings with the token masked.
// GET /api/settings
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	current, err := h.repo.Get(h.defaults)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	current.APIToken = maskToken(current.APIToken)
	h.writeJSON(w, http.StatusOK, current)
}

// HandleUpdate persists new settings. A changed token triggers a refresh.
// PUT /api/settings
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req Settings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.APIToken = strings.TrimSpace(req.APIToken)
	req.Language = strings.TrimSpace(req.Language)

	if req.APIToken == "" {
		h.writeError(w, http.StatusBadRequest, "API token is required")
		return
	}
	if !ValidLanguage(req.Language) {
		h.writeError(w, http.StatusBadRequest, "Language must be en or ru")
		return
	}

	previous, err := h.repo.Get(h.defaults)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.repo.Save(req); err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if req.APIToken != previous.APIToken && h.onToken != nil {
		h.log.Info().Msg("API token changed, triggering refresh")
		h.onToken(req.APIToken)
	}

	req.APIToken = maskToken(req.APIToken)
	h.writeJSON(w, http.StatusOK, req)
}

// maskToken keeps the first and last four characters of long tokens so
// the UI can show which token is active without exposing it.
func maskToken(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:4] + strings.Repeat("*", 8) + token[len(token)-4:]
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
