package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/mariorenan/diario-api/internal/middleware"
	"github.com/mariorenan/diario-api/internal/services/ai"
	"github.com/mariorenan/diario-api/internal/validation"
)

// AIHandler handles synchronous AI helper requests
type AIHandler struct {
	provider ai.AIProvider
}

// NewAIHandler creates a new AI handler. provider may be nil when no AI
// provider is configured; requests then get a 503.
func NewAIHandler(provider ai.AIProvider) *AIHandler {
	return &AIHandler{provider: provider}
}

// RegisterRoutes registers AI routes on the given router
// The router should already have the /ai prefix
func (h *AIHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/goal-steps", h.SuggestGoalSteps).Methods("POST")
}

// GoalStepsRequest represents a goal step suggestion request
type GoalStepsRequest struct {
	Goal string `json:"goal" validate:"required,min=1,max=10000"`
}

// GoalStepsResponse represents the suggested steps for a goal
type GoalStepsResponse struct {
	Goal  string `json:"goal"`
	Steps string `json:"steps"`
}

// SuggestGoalSteps asks the AI provider for five actionable steps toward a goal
func (h *AIHandler) SuggestGoalSteps(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req GoalStepsRequest
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

	// Validate request
	if err := validation.Validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldError := range validationErrors {
				respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Validation failed: %s", fieldError.Error()))
				return
			}
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Validation failed")
		return
	}

	goal := validation.SanitizeText(req.Goal)
	if goal == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Goal is required and cannot be empty after sanitization")
		return
	}

	if h.provider == nil {
		respondJSONError(w, http.StatusServiceUnavailable, "Service Unavailable", "AI suggestions are not available")
		return
	}

	steps, err := h.provider.GoalSteps(r.Context(), goal)
	if err != nil {
		respondJSONError(w, http.StatusServiceUnavailable, "Service Unavailable", "Failed to generate goal steps")
		return
	}

	respondJSON(w, http.StatusOK, GoalStepsResponse{Goal: goal, Steps: steps})
}
