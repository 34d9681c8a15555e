package models

import (
	"time"

	"github.com/google/uuid"
)

// UserActivity tracks when a user last touched the API. The dashboard surfaces
// it and the insight worker skips users who paused AI processing.
type UserActivity struct {
	UserID             uuid.UUID `json:"user_id"`
	LastAPIInteraction time.Time `json:"last_api_interaction"`
	InsightsPaused     bool      `json:"insights_paused"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
