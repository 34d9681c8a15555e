package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mariorenan/diario-api/internal/dashboard"
	"github.com/mariorenan/diario-api/internal/database"
	"github.com/mariorenan/diario-api/internal/middleware"
)

// DashboardHandler computes the dashboard aggregation over the user's entries
// and plans
type DashboardHandler struct {
	entryRepo    *database.EntryRepository
	planRepo     *database.PlanRepository
	activityRepo *database.UserActivityRepository
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(entryRepo *database.EntryRepository, planRepo *database.PlanRepository, activityRepo *database.UserActivityRepository) *DashboardHandler {
	return &DashboardHandler{entryRepo: entryRepo, planRepo: planRepo, activityRepo: activityRepo}
}

// RegisterRoutes registers dashboard routes on the given router
// The router should already have the /dashboard prefix
func (h *DashboardHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.GetDashboard).Methods("GET")
}

// GetDashboard returns the derived dashboard statistics
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	ctx := r.Context()

	entries, err := h.entryRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve entries")
		return
	}

	plans, err := h.planRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve plans")
		return
	}

	stats := dashboard.Aggregate(entries, plans)

	// Last activity is best-effort; a user without an activity row just gets null
	if h.activityRepo != nil {
		if activity, err := h.activityRepo.GetByUserID(ctx, user.ID); err == nil && activity != nil {
			stats.LastActivity = &activity.LastAPIInteraction
		}
	}

	respondJSON(w, http.StatusOK, stats)
}
