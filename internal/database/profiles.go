package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mariorenan/diario-api/internal/models"
)

// ProfileRepository handles user profile database operations. One row per
// user; saves are merge-upserts performed by the handler over a prior read.
type ProfileRepository struct {
	db *DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByUserID retrieves a user's profile
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile := &models.Profile{}

	query := `
		SELECT user_id, name, email, birth_date, phone, city_state, education,
			what_defines_you, future_inspirations, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Name,
		&profile.Email,
		&profile.BirthDate,
		&profile.Phone,
		&profile.CityState,
		&profile.Education,
		&profile.WhatDefinesYou,
		&profile.FutureInspirations,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("profile not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

// Upsert inserts or replaces a user's profile
func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (user_id, name, email, birth_date, phone, city_state,
			education, what_defines_you, future_inspirations, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			birth_date = EXCLUDED.birth_date,
			phone = EXCLUDED.phone,
			city_state = EXCLUDED.city_state,
			education = EXCLUDED.education,
			what_defines_you = EXCLUDED.what_defines_you,
			future_inspirations = EXCLUDED.future_inspirations,
			updated_at = EXCLUDED.updated_at
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		profile.UserID,
		profile.Name,
		profile.Email,
		profile.BirthDate,
		profile.Phone,
		profile.CityState,
		profile.Education,
		profile.WhatDefinesYou,
		profile.FutureInspirations,
		time.Now(),
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}
