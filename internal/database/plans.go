package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mariorenan/diario-api/internal/models"
)

// PlanRepository handles daily plan database operations. A plan is keyed by
// (user_id, id) where id is the date with separators stripped, so saving the
// same date twice is an upsert.
type PlanRepository struct {
	db *DB
}

// NewPlanRepository creates a new daily plan repository
func NewPlanRepository(db *DB) *PlanRepository {
	return &PlanRepository{db: db}
}

const planColumns = `id, user_id, date, urgent_important, not_urgent_important,
		urgent_not_important, not_urgent_not_important, daily_schedule,
		notes, tasks, insight, created_at, updated_at`

// Upsert inserts or updates the plan for the given user and date. The insight
// column is not touched on conflict so a re-save does not wipe AI output.
func (r *PlanRepository) Upsert(ctx context.Context, plan *models.DailyPlan) error {
	plan.ID = models.PlanIDFromDate(plan.Date)
	plan.DailySchedule = models.NormalizeSchedule(plan.DailySchedule)

	query := `
		INSERT INTO daily_plans (id, user_id, date, urgent_important, not_urgent_important,
			urgent_not_important, not_urgent_not_important, daily_schedule,
			notes, tasks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		ON CONFLICT (user_id, id) DO UPDATE SET
			urgent_important = EXCLUDED.urgent_important,
			not_urgent_important = EXCLUDED.not_urgent_important,
			urgent_not_important = EXCLUDED.urgent_not_important,
			not_urgent_not_important = EXCLUDED.not_urgent_not_important,
			daily_schedule = EXCLUDED.daily_schedule,
			notes = EXCLUDED.notes,
			tasks = EXCLUDED.tasks,
			updated_at = EXCLUDED.updated_at
		RETURNING created_at, updated_at
	`

	scheduleJSON, err := json.Marshal(plan.DailySchedule)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule: %w", err)
	}

	err = r.db.QueryRowContext(ctx, query,
		plan.ID,
		plan.UserID,
		plan.Date,
		plan.UrgentImportant,
		plan.NotUrgentImportant,
		plan.UrgentNotImportant,
		plan.NotUrgentNotImportant,
		scheduleJSON,
		plan.Notes,
		plan.Tasks,
		time.Now(),
	).Scan(&plan.CreatedAt, &plan.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert plan: %w", err)
	}

	return nil
}

func scanPlan(scan func(dest ...any) error) (*models.DailyPlan, error) {
	plan := &models.DailyPlan{}
	var scheduleJSON []byte
	var insight sql.NullString

	err := scan(
		&plan.ID,
		&plan.UserID,
		&plan.Date,
		&plan.UrgentImportant,
		&plan.NotUrgentImportant,
		&plan.UrgentNotImportant,
		&plan.NotUrgentNotImportant,
		&scheduleJSON,
		&plan.Notes,
		&plan.Tasks,
		&insight,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(scheduleJSON, &plan.DailySchedule); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schedule: %w", err)
	}
	plan.DailySchedule = models.NormalizeSchedule(plan.DailySchedule)
	if insight.Valid {
		plan.Insight = &insight.String
	}

	return plan, nil
}

// GetByDate retrieves a user's plan for a calendar date
func (r *PlanRepository) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*models.DailyPlan, error) {
	query := `SELECT ` + planColumns + ` FROM daily_plans WHERE user_id = $1 AND id = $2`

	row := r.db.QueryRowContext(ctx, query, userID, models.PlanIDFromDate(date))
	plan, err := scanPlan(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("plan not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return plan, nil
}

// GetByUserID retrieves all plans for a user, newest date first. The dashboard
// takes the first element as the most recent plan.
func (r *PlanRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.DailyPlan, error) {
	query := `SELECT ` + planColumns + ` FROM daily_plans WHERE user_id = $1 ORDER BY date DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	var plans []*models.DailyPlan
	for rows.Next() {
		plan, err := scanPlan(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plans: %w", err)
	}

	return plans, nil
}

// SetInsight stores the AI-generated insight text on a plan
func (r *PlanRepository) SetInsight(ctx context.Context, userID uuid.UUID, date, insight string) error {
	query := `UPDATE daily_plans SET insight = $3, updated_at = $4 WHERE user_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, models.PlanIDFromDate(date), insight, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set plan insight: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("plan not found")
	}

	return nil
}

// Delete deletes a user's plan for a calendar date
func (r *PlanRepository) Delete(ctx context.Context, userID uuid.UUID, date string) error {
	query := `DELETE FROM daily_plans WHERE user_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, models.PlanIDFromDate(date))
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("plan not found")
	}

	return nil
}
