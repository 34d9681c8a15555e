package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/mariorenan/diario-api/internal/database"
	"github.com/mariorenan/diario-api/internal/middleware"
	"github.com/mariorenan/diario-api/internal/models"
	"github.com/mariorenan/diario-api/internal/queue"
	"github.com/mariorenan/diario-api/internal/validation"
)

// PlanHandler handles daily plan requests
type PlanHandler struct {
	planRepo *database.PlanRepository
	jobQueue queue.JobQueue
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(planRepo *database.PlanRepository, jobQueue queue.JobQueue) *PlanHandler {
	return &PlanHandler{planRepo: planRepo, jobQueue: jobQueue}
}

// RegisterRoutes registers plan routes on the given router
// The router should already have the /plans prefix
func (h *PlanHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListPlans).Methods("GET")
	r.HandleFunc("", h.SavePlan).Methods("PUT")
	r.HandleFunc("/{date}", h.GetPlan).Methods("GET")
	r.HandleFunc("/{date}", h.DeletePlan).Methods("DELETE")
	r.HandleFunc("/{date}/insight", h.RequestPlanInsight).Methods("POST")
}

// SavePlanRequest represents a save (upsert) plan request. Saving the same
// date twice overwrites the plan fields but never its stored insight.
type SavePlanRequest struct {
	Date                  string   `json:"date" validate:"required,plan_date"`
	UrgentImportant       string   `json:"urgent_important,omitempty" validate:"max=10000"`
	NotUrgentImportant    string   `json:"not_urgent_important,omitempty" validate:"max=10000"`
	UrgentNotImportant    string   `json:"urgent_not_important,omitempty" validate:"max=10000"`
	NotUrgentNotImportant string   `json:"not_urgent_not_important,omitempty" validate:"max=10000"`
	DailySchedule         []string `json:"daily_schedule,omitempty" validate:"max=9,dive,max=10000"`
	Notes                 string   `json:"notes,omitempty" validate:"max=10000"`
	Tasks                 string   `json:"tasks,omitempty" validate:"max=10000"`
}

// ListPlans lists the user's plans, most recent date first
func (h *PlanHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	ctx := r.Context()
	plans, err := h.planRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve plans")
		return
	}

	respondJSON(w, http.StatusOK, plans)
}

// SavePlan creates or replaces the plan for the given date
func (h *PlanHandler) SavePlan(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req SavePlanRequest
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

	schedule := make([]string, len(req.DailySchedule))
	for i, slot := range req.DailySchedule {
		schedule[i] = validation.SanitizeText(slot)
	}

	ctx := r.Context()
	plan := &models.DailyPlan{
		UserID:                user.ID,
		Date:                  req.Date,
		UrgentImportant:       validation.SanitizeText(req.UrgentImportant),
		NotUrgentImportant:    validation.SanitizeText(req.NotUrgentImportant),
		UrgentNotImportant:    validation.SanitizeText(req.UrgentNotImportant),
		NotUrgentNotImportant: validation.SanitizeText(req.NotUrgentNotImportant),
		DailySchedule:         schedule,
		Notes:                 validation.SanitizeText(req.Notes),
		Tasks:                 validation.SanitizeText(req.Tasks),
	}

	if err := h.planRepo.Upsert(ctx, plan); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to save plan")
		return
	}

	respondJSON(w, http.StatusOK, plan)
}

// GetPlan retrieves the plan for a date
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	vars := mux.Vars(r)
	date := vars["date"]
	if err := validation.ValidatePlanDate(date); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	ctx := r.Context()
	plan, err := h.planRepo.GetByDate(ctx, user.ID, date)
	if err != nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Plan not found")
		return
	}

	respondJSON(w, http.StatusOK, plan)
}

// DeletePlan deletes the plan for a date
func (h *PlanHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	vars := mux.Vars(r)
	date := vars["date"]
	if err := validation.ValidatePlanDate(date); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	ctx := r.Context()
	if _, err := h.planRepo.GetByDate(ctx, user.ID, date); err != nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Plan not found")
		return
	}

	if err := h.planRepo.Delete(ctx, user.ID, date); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to delete plan")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RequestPlanInsight enqueues an insight generation job for the plan
func (h *PlanHandler) RequestPlanInsight(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	vars := mux.Vars(r)
	date := vars["date"]
	if err := validation.ValidatePlanDate(date); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	ctx := r.Context()
	if _, err := h.planRepo.GetByDate(ctx, user.ID, date); err != nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Plan not found")
		return
	}

	if h.jobQueue == nil {
		respondJSONError(w, http.StatusServiceUnavailable, "Service Unavailable", "Insight generation is not available")
		return
	}

	job := queue.NewPlanInsightJob(user.ID, date)
	if err := h.jobQueue.Enqueue(ctx, job); err != nil {
		respondJSONError(w, http.StatusServiceUnavailable, "Service Unavailable", "Failed to enqueue insight job")
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]any{
		"job_id":    job.ID,
		"plan_date": date,
		"status":    "queued",
	})
}
