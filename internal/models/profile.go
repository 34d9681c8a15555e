package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the user's editable profile document. Email and name default to
// the identity-provider values on first read.
type Profile struct {
	UserID             uuid.UUID `json:"user_id"`
	Name               string    `json:"name,omitempty"`
	Email              string    `json:"email,omitempty"`
	BirthDate          string    `json:"birth_date,omitempty"` // YYYY-MM-DD
	Phone              string    `json:"phone,omitempty"`
	CityState          string    `json:"city_state,omitempty"`
	Education          string    `json:"education,omitempty"`
	WhatDefinesYou     string    `json:"what_defines_you,omitempty"`
	FutureInspirations string    `json:"future_inspirations,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
