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

// EntryRepository handles journal entry database operations
type EntryRepository struct {
	db *DB
}

// NewEntryRepository creates a new journal entry repository
func NewEntryRepository(db *DB) *EntryRepository {
	return &EntryRepository{db: db}
}

const entryColumns = `id, user_id, selected_checkin_emotion, checkin_description,
		challenge_description, challenge_feelings, challenge_reaction,
		reaction_analysis, reaction_factors, reaction_outcome, reaction_different,
		selected_values, custom_value, success_vision, success_goals,
		commitment_action, commitment_affirmation, insight, created_at, updated_at`

// Create creates a new journal entry
func (r *EntryRepository) Create(ctx context.Context, entry *models.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (id, user_id, selected_checkin_emotion, checkin_description,
			challenge_description, challenge_feelings, challenge_reaction,
			reaction_analysis, reaction_factors, reaction_outcome, reaction_different,
			selected_values, custom_value, success_vision, success_goals,
			commitment_action, commitment_affirmation, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING created_at, updated_at
	`

	valuesJSON, err := json.Marshal(entry.SelectedValues)
	if err != nil {
		return fmt.Errorf("failed to marshal selected values: %w", err)
	}
	goalsJSON, err := json.Marshal(entry.SuccessGoals)
	if err != nil {
		return fmt.Errorf("failed to marshal success goals: %w", err)
	}

	now := time.Now()
	err = r.db.QueryRowContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.SelectedCheckinEmotion,
		entry.CheckinDescription,
		entry.ChallengeDescription,
		entry.ChallengeFeelings,
		entry.ChallengeReaction,
		entry.ReactionAnalysis,
		entry.ReactionFactors,
		entry.ReactionOutcome,
		entry.ReactionDifferent,
		valuesJSON,
		entry.CustomValue,
		entry.SuccessVision,
		goalsJSON,
		entry.CommitmentAction,
		entry.CommitmentAffirmation,
		now,
		now,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}

	return nil
}

func scanEntry(scan func(dest ...any) error) (*models.JournalEntry, error) {
	entry := &models.JournalEntry{}
	var valuesJSON, goalsJSON []byte
	var insight sql.NullString

	err := scan(
		&entry.ID,
		&entry.UserID,
		&entry.SelectedCheckinEmotion,
		&entry.CheckinDescription,
		&entry.ChallengeDescription,
		&entry.ChallengeFeelings,
		&entry.ChallengeReaction,
		&entry.ReactionAnalysis,
		&entry.ReactionFactors,
		&entry.ReactionOutcome,
		&entry.ReactionDifferent,
		&valuesJSON,
		&entry.CustomValue,
		&entry.SuccessVision,
		&goalsJSON,
		&entry.CommitmentAction,
		&entry.CommitmentAffirmation,
		&insight,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(valuesJSON, &entry.SelectedValues); err != nil {
		return nil, fmt.Errorf("failed to unmarshal selected values: %w", err)
	}
	if err := json.Unmarshal(goalsJSON, &entry.SuccessGoals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal success goals: %w", err)
	}
	if entry.SelectedValues == nil {
		entry.SelectedValues = []models.EntryValue{}
	}
	if entry.SuccessGoals == nil {
		entry.SuccessGoals = []models.SuccessGoal{}
	}
	if insight.Valid {
		entry.Insight = &insight.String
	}

	return entry, nil
}

// GetByID retrieves a journal entry by ID
func (r *EntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	entry, err := scanEntry(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("entry not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	return entry, nil
}

// GetByUserID retrieves all journal entries for a user, oldest first. The
// ascending order matters: the dashboard aggregation windows commitments over
// the first entries.
func (r *EntryRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.JournalEntry
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}

	return entries, nil
}

// GetByUserIDPaginated retrieves a page of journal entries for a user, oldest
// first, along with the total count
func (r *EntryRepository) GetByUserIDPaginated(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*models.JournalEntry, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM journal_entries WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count entries: %w", err)
	}

	query := `SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3`

	offset := (page - 1) * pageSize
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.JournalEntry
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating entries: %w", err)
	}

	return entries, total, nil
}

// Update updates an existing journal entry
func (r *EntryRepository) Update(ctx context.Context, entry *models.JournalEntry) error {
	query := `
		UPDATE journal_entries
		SET selected_checkin_emotion = $2, checkin_description = $3,
			challenge_description = $4, challenge_feelings = $5, challenge_reaction = $6,
			reaction_analysis = $7, reaction_factors = $8, reaction_outcome = $9,
			reaction_different = $10, selected_values = $11, custom_value = $12,
			success_vision = $13, success_goals = $14, commitment_action = $15,
			commitment_affirmation = $16, insight = $17, updated_at = $18
		WHERE id = $1
		RETURNING updated_at
	`

	valuesJSON, err := json.Marshal(entry.SelectedValues)
	if err != nil {
		return fmt.Errorf("failed to marshal selected values: %w", err)
	}
	goalsJSON, err := json.Marshal(entry.SuccessGoals)
	if err != nil {
		return fmt.Errorf("failed to marshal success goals: %w", err)
	}

	var insight sql.NullString
	if entry.Insight != nil {
		insight = sql.NullString{String: *entry.Insight, Valid: true}
	}

	now := time.Now()
	err = r.db.QueryRowContext(ctx, query,
		entry.ID,
		entry.SelectedCheckinEmotion,
		entry.CheckinDescription,
		entry.ChallengeDescription,
		entry.ChallengeFeelings,
		entry.ChallengeReaction,
		entry.ReactionAnalysis,
		entry.ReactionFactors,
		entry.ReactionOutcome,
		entry.ReactionDifferent,
		valuesJSON,
		entry.CustomValue,
		entry.SuccessVision,
		goalsJSON,
		entry.CommitmentAction,
		entry.CommitmentAffirmation,
		insight,
		now,
	).Scan(&entry.UpdatedAt)

	if err == sql.ErrNoRows {
		return fmt.Errorf("entry not found")
	}
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}

	return nil
}

// SetInsight stores the AI-generated insight text on an entry
func (r *EntryRepository) SetInsight(ctx context.Context, id uuid.UUID, insight string) error {
	query := `UPDATE journal_entries SET insight = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, insight, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set entry insight: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("entry not found")
	}

	return nil
}

// Delete deletes a journal entry by ID
func (r *EntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM journal_entries WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("entry not found")
	}

	return nil
}
