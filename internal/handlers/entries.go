package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/mariorenan/diario-api/internal/database"
	"github.com/mariorenan/diario-api/internal/middleware"
	"github.com/mariorenan/diario-api/internal/models"
	"github.com/mariorenan/diario-api/internal/queue"
	"github.com/mariorenan/diario-api/internal/validation"
)

// EntryHandler handles journal entry requests
type EntryHandler struct {
	entryRepo *database.EntryRepository
	jobQueue  queue.JobQueue
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(entryRepo *database.EntryRepository, jobQueue queue.JobQueue) *EntryHandler {
	return &EntryHandler{entryRepo: entryRepo, jobQueue: jobQueue}
}

// RegisterRoutes registers entry routes on the given router
// The router should already have the /entries prefix (e.g., from apiRouter.PathPrefix("/entries"))
func (h *EntryHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListEntries).Methods("GET")
	r.HandleFunc("", h.CreateEntry).Methods("POST")
	r.HandleFunc("/export", h.ExportEntries).Methods("GET")
	r.HandleFunc("/{id}", h.GetEntry).Methods("GET")
	r.HandleFunc("/{id}", h.UpdateEntry).Methods("PATCH")
	r.HandleFunc("/{id}", h.DeleteEntry).Methods("DELETE")
	r.HandleFunc("/{id}/insight", h.RequestEntryInsight).Methods("POST")
}

const (
	// MaxEntryTextLength is the maximum length for any free-text entry field
	MaxEntryTextLength = 10000
	// DefaultPageSize is the default page size for pagination
	DefaultPageSize = 100
	// MaxPageSize is the maximum page size for pagination
	MaxPageSize = 500
)

// CreateEntryRequest represents a create entry request
type CreateEntryRequest struct {
	SelectedCheckinEmotion string               `json:"selected_checkin_emotion" validate:"required,checkin_emotion"`
	CheckinDescription     string               `json:"checkin_description,omitempty" validate:"max=10000"`
	ChallengeDescription   string               `json:"challenge_description,omitempty" validate:"max=10000"`
	ChallengeFeelings      string               `json:"challenge_feelings,omitempty" validate:"max=10000"`
	ChallengeReaction      string               `json:"challenge_reaction,omitempty" validate:"max=10000"`
	ReactionAnalysis       string               `json:"reaction_analysis,omitempty" validate:"max=10000"`
	ReactionFactors        string               `json:"reaction_factors,omitempty" validate:"max=10000"`
	ReactionOutcome        string               `json:"reaction_outcome,omitempty" validate:"omitempty,reaction_outcome"`
	ReactionDifferent      string               `json:"reaction_different,omitempty" validate:"max=10000"`
	SelectedValues         []models.EntryValue  `json:"selected_values,omitempty" validate:"dive"`
	CustomValue            string               `json:"custom_value,omitempty" validate:"max=10000"`
	SuccessVision          string               `json:"success_vision,omitempty" validate:"max=10000"`
	SuccessGoals           []models.SuccessGoal `json:"success_goals,omitempty" validate:"dive"`
	CommitmentAction       string               `json:"commitment_action,omitempty" validate:"max=10000"`
	CommitmentAffirmation  string               `json:"commitment_affirmation,omitempty" validate:"max=10000"`
}

// UpdateEntryRequest represents a partial update to an entry. Only provided
// fields are changed.
type UpdateEntryRequest struct {
	SelectedCheckinEmotion *string               `json:"selected_checkin_emotion,omitempty"`
	CheckinDescription     *string               `json:"checkin_description,omitempty"`
	ChallengeDescription   *string               `json:"challenge_description,omitempty"`
	ChallengeFeelings      *string               `json:"challenge_feelings,omitempty"`
	ChallengeReaction      *string               `json:"challenge_reaction,omitempty"`
	ReactionAnalysis       *string               `json:"reaction_analysis,omitempty"`
	ReactionFactors        *string               `json:"reaction_factors,omitempty"`
	ReactionOutcome        *string               `json:"reaction_outcome,omitempty"`
	ReactionDifferent      *string               `json:"reaction_different,omitempty"`
	SelectedValues         *[]models.EntryValue  `json:"selected_values,omitempty"`
	CustomValue            *string               `json:"custom_value,omitempty"`
	SuccessVision          *string               `json:"success_vision,omitempty"`
	SuccessGoals           *[]models.SuccessGoal `json:"success_goals,omitempty"`
	CommitmentAction       *string               `json:"commitment_action,omitempty"`
	CommitmentAffirmation  *string               `json:"commitment_affirmation,omitempty"`
}

// ListEntriesResponse represents the paginated response for listing entries
type ListEntriesResponse struct {
	Entries    []*models.JournalEntry `json:"entries"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	Total      int                    `json:"total"`
	TotalPages int                    `json:"total_pages"`
}

// ListEntries lists journal entries for the authenticated user with pagination.
// Entries are returned oldest first, matching the order the dashboard consumes.
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	ctx := r.Context()

	// Parse pagination parameters
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	pageSize := DefaultPageSize
	if ps := r.URL.Query().Get("page_size"); ps != "" {
		if parsed, err := strconv.Atoi(ps); err == nil && parsed > 0 {
			if parsed > MaxPageSize {
				pageSize = MaxPageSize
			} else {
				pageSize = parsed
			}
		}
	}

	entries, total, err := h.entryRepo.GetByUserIDPaginated(ctx, user.ID, page, pageSize)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve entries")
		return
	}

	// Calculate total pages
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	response := ListEntriesResponse{
		Entries:    entries,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}

	respondJSON(w, http.StatusOK, response)
}

// CreateEntry creates a new journal entry
func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req CreateEntryRequest
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

	outcome := models.ReactionOutcome(req.ReactionOutcome)
	if outcome == "" {
		outcome = models.ReactionOutcomeNeutro
	}

	ctx := r.Context()
	entry := &models.JournalEntry{
		ID:                     uuid.New(),
		UserID:                 user.ID,
		SelectedCheckinEmotion: models.Emotion(req.SelectedCheckinEmotion),
		CheckinDescription:     validation.SanitizeText(req.CheckinDescription),
		ChallengeDescription:   validation.SanitizeText(req.ChallengeDescription),
		ChallengeFeelings:      validation.SanitizeText(req.ChallengeFeelings),
		ChallengeReaction:      validation.SanitizeText(req.ChallengeReaction),
		ReactionAnalysis:       validation.SanitizeText(req.ReactionAnalysis),
		ReactionFactors:        validation.SanitizeText(req.ReactionFactors),
		ReactionOutcome:        outcome,
		ReactionDifferent:      validation.SanitizeText(req.ReactionDifferent),
		SelectedValues:         sanitizeEntryValues(req.SelectedValues),
		CustomValue:            validation.SanitizeText(req.CustomValue),
		SuccessVision:          validation.SanitizeText(req.SuccessVision),
		SuccessGoals:           sanitizeSuccessGoals(req.SuccessGoals),
		CommitmentAction:       validation.SanitizeText(req.CommitmentAction),
		CommitmentAffirmation:  validation.SanitizeText(req.CommitmentAffirmation),
	}

	if err := h.entryRepo.Create(ctx, entry); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to create entry")
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// GetEntry retrieves a journal entry by ID
func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid entry ID")
		return
	}

	ctx := r.Context()
	entry, err := h.entryRepo.GetByID(ctx, id)
	if err != nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Entry not found")
		return
	}

	// Verify entry belongs to user
	if entry.UserID != user.ID {
		respondJSONError(w, http.StatusForbidden, "Forbidden", "Entry does not belong to user")
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

// UpdateEntry updates an existing journal entry
func (h *EntryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid entry ID")
		return
	}

	ctx := r.Context()
	entry, err := h.entryRepo.GetByID(ctx, id)
	if err != nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Entry not found")
		return
	}

	// Verify entry belongs to user
	if entry.UserID != user.ID {
		respondJSONError(w, http.StatusForbidden, "Forbidden", "Entry does not belong to user")
		return
	}

	var req UpdateEntryRequest
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

	// Update fields if provided with validation
	if req.SelectedCheckinEmotion != nil {
		if err := validation.ValidateEmotion(*req.SelectedCheckinEmotion); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		entry.SelectedCheckinEmotion = models.Emotion(*req.SelectedCheckinEmotion)
	}
	if req.ReactionOutcome != nil {
		if err := validation.ValidateReactionOutcome(*req.ReactionOutcome); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		entry.ReactionOutcome = models.ReactionOutcome(*req.ReactionOutcome)
	}

	textFields := []struct {
		src *string
		dst *string
	}{
		{req.CheckinDescription, &entry.CheckinDescription},
		{req.ChallengeDescription, &entry.ChallengeDescription},
		{req.ChallengeFeelings, &entry.ChallengeFeelings},
		{req.ChallengeReaction, &entry.ChallengeReaction},
		{req.ReactionAnalysis, &entry.ReactionAnalysis},
		{req.ReactionFactors, &entry.ReactionFactors},
		{req.ReactionDifferent, &entry.ReactionDifferent},
		{req.CustomValue, &entry.CustomValue},
		{req.SuccessVision, &entry.SuccessVision},
		{req.CommitmentAction, &entry.CommitmentAction},
		{req.CommitmentAffirmation, &entry.CommitmentAffirmation},
	}
	for _, f := range textFields {
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

	if req.SelectedValues != nil {
		entry.SelectedValues = sanitizeEntryValues(*req.SelectedValues)
	}
	if req.SuccessGoals != nil {
		entry.SuccessGoals = sanitizeSuccessGoals(*req.SuccessGoals)
	}

	if err := h.entryRepo.Update(ctx, entry); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update entry")
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

// DeleteEntry deletes a journal entry
func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid entry ID")
		return
	}

	ctx := r.Context()
	entry, err := h.entryRepo.GetByID(ctx, id)
	if err != nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Entry not found")
		return
	}

	// Verify entry belongs to user
	if entry.UserID != user.ID {
		respondJSONError(w, http.StatusForbidden, "Forbidden", "Entry does not belong to user")
		return
	}

	if err := h.entryRepo.Delete(ctx, id); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to delete entry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportEntries downloads every entry of the user as a JSON attachment, the
// same document the web client's export button produced.
func (h *EntryHandler) ExportEntries(w http.ResponseWriter, r *http.Request) {
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

	filename := fmt.Sprintf("diario_web_data_%s_%s.json", user.ID, time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(entries); err != nil {
		// Headers are already out; nothing useful left to do
		return
	}
}

// RequestEntryInsight enqueues an insight generation job for the entry
func (h *EntryHandler) RequestEntryInsight(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid entry ID")
		return
	}

	ctx := r.Context()
	entry, err := h.entryRepo.GetByID(ctx, id)
	if err != nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Entry not found")
		return
	}

	// Verify entry belongs to user
	if entry.UserID != user.ID {
		respondJSONError(w, http.StatusForbidden, "Forbidden", "Entry does not belong to user")
		return
	}

	if h.jobQueue == nil {
		respondJSONError(w, http.StatusServiceUnavailable, "Service Unavailable", "Insight generation is not available")
		return
	}

	job := queue.NewEntryInsightJob(user.ID, entry.ID)
	if err := h.jobQueue.Enqueue(ctx, job); err != nil {
		respondJSONError(w, http.StatusServiceUnavailable, "Service Unavailable", "Failed to enqueue insight job")
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   job.ID,
		"entry_id": entry.ID,
		"status":   "queued",
	})
}

// sanitizeEntryValues sanitizes value/example pairs and drops entries whose
// value is empty after sanitization
func sanitizeEntryValues(values []models.EntryValue) []models.EntryValue {
	out := make([]models.EntryValue, 0, len(values))
	for _, v := range values {
		v.Value = validation.SanitizeText(v.Value)
		v.Example = validation.SanitizeText(v.Example)
		if v.Value == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

// sanitizeSuccessGoals sanitizes goal/related-value pairs and drops goals that
// are empty after sanitization
func sanitizeSuccessGoals(goals []models.SuccessGoal) []models.SuccessGoal {
	out := make([]models.SuccessGoal, 0, len(goals))
	for _, g := range goals {
		g.Goal = validation.SanitizeText(g.Goal)
		g.RelatedValue = validation.SanitizeText(g.RelatedValue)
		if g.Goal == "" {
			continue
		}
		out = append(out, g)
	}
	return out
}
