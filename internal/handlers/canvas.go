package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mariorenan/diario-api/internal/database"
	"github.com/mariorenan/diario-api/internal/middleware"
	"github.com/mariorenan/diario-api/internal/models"
	"github.com/mariorenan/diario-api/internal/validation"
)

// CanvasHandler handles career canvas requests
type CanvasHandler struct {
	canvasRepo *database.CanvasRepository
}

// NewCanvasHandler creates a new canvas handler
func NewCanvasHandler(canvasRepo *database.CanvasRepository) *CanvasHandler {
	return &CanvasHandler{canvasRepo: canvasRepo}
}

// RegisterRoutes registers canvas routes on the given router
// The router should already have the /canvas prefix
func (h *CanvasHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.GetCanvas).Methods("GET")
	r.HandleFunc("", h.SaveCanvas).Methods("PUT")
}

// SaveCanvasRequest represents a merge-save of the canvas. Only provided
// fields are changed; omitted fields keep their stored values.
type SaveCanvasRequest struct {
	PossibleAreas   *string `json:"possible_areas,omitempty"`
	DevelopedSkills *string `json:"developed_skills,omitempty"`
	SkillsToDevelop *string `json:"skills_to_develop,omitempty"`
	ActionPlan      *string `json:"action_plan,omitempty"`
	VisionOfSuccess *string `json:"vision_of_success,omitempty"`
}

// GetCanvas retrieves the user's canvas. A user who never saved one gets an
// empty document rather than a 404.
func (h *CanvasHandler) GetCanvas(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	ctx := r.Context()
	canvas, err := h.canvasRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		canvas = &models.CareerCanvas{UserID: user.ID}
	}

	respondJSON(w, http.StatusOK, canvas)
}

// SaveCanvas merges the provided fields into the user's canvas
func (h *CanvasHandler) SaveCanvas(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req SaveCanvasRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		// Check if error is due to request size limit
		if maxBytesErr, ok := err.(*http.MaxBytesError); ok {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	ctx := r.Context()
	canvas, err := h.canvasRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		canvas = &models.CareerCanvas{UserID: user.ID}
	}

	fields := []struct {
		src *string
		dst *string
	}{
		{req.PossibleAreas, &canvas.PossibleAreas},
		{req.DevelopedSkills, &canvas.DevelopedSkills},
		{req.SkillsToDevelop, &canvas.SkillsToDevelop},
		{req.ActionPlan, &canvas.ActionPlan},
		{req.VisionOfSuccess, &canvas.VisionOfSuccess},
	}
	for _, f := range fields {
		if f.src == nil {
			continue
		}
		sanitized := validation.SanitizeText(*f.src)
		if len(sanitized) > MaxEntryTextLength {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Text exceeds maximum length of %d characters", MaxEntryTextLength))
			return
		}
		*f.dst = sanitized
	}

	if err := h.canvasRepo.Upsert(ctx, canvas); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to save canvas")
		return
	}

	respondJSON(w, http.StatusOK, canvas)
}
