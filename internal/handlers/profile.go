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

// ProfileHandler handles user profile requests
type ProfileHandler struct {
	profileRepo *database.ProfileRepository
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileRepo *database.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{profileRepo: profileRepo}
}

// RegisterRoutes registers profile routes on the given router
// The router should already have the /profile prefix
func (h *ProfileHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.GetProfile).Methods("GET")
	r.HandleFunc("", h.SaveProfile).Methods("PUT")
}

// SaveProfileRequest represents a merge-save of the profile. Only provided
// fields are changed; omitted fields keep their stored values.
type SaveProfileRequest struct {
	Name               *string `json:"name,omitempty"`
	Email              *string `json:"email,omitempty"`
	BirthDate          *string `json:"birth_date,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	CityState          *string `json:"city_state,omitempty"`
	Education          *string `json:"education,omitempty"`
	WhatDefinesYou     *string `json:"what_defines_you,omitempty"`
	FutureInspirations *string `json:"future_inspirations,omitempty"`
}

// defaultProfile builds the profile a user sees before ever saving one: name
// and email come from the identity provider.
func defaultProfile(user *models.User) *models.Profile {
	profile := &models.Profile{
		UserID: user.ID,
		Email:  user.Email,
	}
	if user.Name != nil {
		profile.Name = *user.Name
	}
	return profile
}

// GetProfile retrieves the user's profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	ctx := r.Context()
	profile, err := h.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		profile = defaultProfile(user)
	}

	respondJSON(w, http.StatusOK, profile)
}

// SaveProfile merges the provided fields into the user's profile
func (h *ProfileHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req SaveProfileRequest
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

	if req.BirthDate != nil {
		if err := validation.ValidateBirthDate(*req.BirthDate); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
	}

	ctx := r.Context()
	profile, err := h.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		profile = defaultProfile(user)
	}

	fields := []struct {
		src *string
		dst *string
	}{
		{req.Name, &profile.Name},
		{req.Email, &profile.Email},
		{req.BirthDate, &profile.BirthDate},
		{req.Phone, &profile.Phone},
		{req.CityState, &profile.CityState},
		{req.Education, &profile.Education},
		{req.WhatDefinesYou, &profile.WhatDefinesYou},
		{req.FutureInspirations, &profile.FutureInspirations},
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

	if err := h.profileRepo.Upsert(ctx, profile); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to save profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
