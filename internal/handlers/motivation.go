package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mariorenan/diario-api/internal/middleware"
	"github.com/mariorenan/diario-api/internal/services/motivation"
)

// MotivationHandler serves the daily motivational phrase and theme preference
type MotivationHandler struct {
	svc *motivation.Service
}

// NewMotivationHandler creates a new motivation handler
func NewMotivationHandler(svc *motivation.Service) *MotivationHandler {
	return &MotivationHandler{svc: svc}
}

// RegisterMotivationRoutes registers the phrase route on the given router
// The router should already have the /motivation prefix
func (h *MotivationHandler) RegisterMotivationRoutes(r *mux.Router) {
	r.HandleFunc("", h.GetDailyPhrase).Methods("GET")
}

// RegisterPreferenceRoutes registers preference routes on the given router
// The router should already have the /preferences prefix
func (h *MotivationHandler) RegisterPreferenceRoutes(r *mux.Router) {
	r.HandleFunc("/theme", h.GetTheme).Methods("GET")
	r.HandleFunc("/theme", h.SetTheme).Methods("PUT")
}

// themeValues are the recognized theme preference values
var themeValues = map[string]bool{
	"light": true,
	"dark":  true,
}

// SetThemeRequest represents a theme preference update
type SetThemeRequest struct {
	Theme string `json:"theme"`
}

// GetDailyPhrase returns the motivational phrase of the day. This endpoint
// never fails: cache or provider trouble degrades to the static fallback.
func (h *MotivationHandler) GetDailyPhrase(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	phrase := h.svc.DailyPhrase(r.Context(), user.ID)
	respondJSON(w, http.StatusOK, map[string]string{"phrase": phrase})
}

// GetTheme returns the user's theme preference
func (h *MotivationHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	theme, err := h.svc.Theme(r.Context(), user.ID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to get theme preference")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"theme": theme})
}

// SetTheme saves the user's theme preference
func (h *MotivationHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req SetThemeRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	if !themeValues[req.Theme] {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Theme must be 'light' or 'dark'")
		return
	}

	if err := h.svc.SetTheme(r.Context(), user.ID, req.Theme); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to save theme preference")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"theme": req.Theme})
}
