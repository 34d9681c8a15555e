package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mariorenan/diario-api/internal/models"
)

// CanvasRepository handles career canvas database operations. Each user has at
// most one canvas row; saves are merge-upserts performed by the handler over a
// prior read.
type CanvasRepository struct {
	db *DB
}

// NewCanvasRepository creates a new career canvas repository
func NewCanvasRepository(db *DB) *CanvasRepository {
	return &CanvasRepository{db: db}
}

// GetByUserID retrieves a user's career canvas
func (r *CanvasRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.CareerCanvas, error) {
	canvas := &models.CareerCanvas{}

	query := `
		SELECT user_id, possible_areas, developed_skills, skills_to_develop,
			action_plan, vision_of_success, created_at, updated_at
		FROM career_canvases
		WHERE user_id = $1
	`

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&canvas.UserID,
		&canvas.PossibleAreas,
		&canvas.DevelopedSkills,
		&canvas.SkillsToDevelop,
		&canvas.ActionPlan,
		&canvas.VisionOfSuccess,
		&canvas.CreatedAt,
		&canvas.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("canvas not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get canvas: %w", err)
	}

	return canvas, nil
}

// Upsert inserts or replaces a user's career canvas
func (r *CanvasRepository) Upsert(ctx context.Context, canvas *models.CareerCanvas) error {
	query := `
		INSERT INTO career_canvases (user_id, possible_areas, developed_skills,
			skills_to_develop, action_plan, vision_of_success, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			possible_areas = EXCLUDED.possible_areas,
			developed_skills = EXCLUDED.developed_skills,
			skills_to_develop = EXCLUDED.skills_to_develop,
			action_plan = EXCLUDED.action_plan,
			vision_of_success = EXCLUDED.vision_of_success,
			updated_at = EXCLUDED.updated_at
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		canvas.UserID,
		canvas.PossibleAreas,
		canvas.DevelopedSkills,
		canvas.SkillsToDevelop,
		canvas.ActionPlan,
		canvas.VisionOfSuccess,
		time.Now(),
	).Scan(&canvas.CreatedAt, &canvas.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert canvas: %w", err)
	}

	return nil
}
