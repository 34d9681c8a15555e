package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/mariorenan/diario-api/internal/models"
)

// EntryRepositoryInterface defines the interface for journal entry repository operations
// This interface enables better testability by allowing mock implementations
type EntryRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.JournalEntry, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.JournalEntry, error)
	SetInsight(ctx context.Context, id uuid.UUID, insight string) error
}

// PlanRepositoryInterface defines the interface for daily plan repository operations
type PlanRepositoryInterface interface {
	GetByDate(ctx context.Context, userID uuid.UUID, date string) (*models.DailyPlan, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.DailyPlan, error)
	SetInsight(ctx context.Context, userID uuid.UUID, date, insight string) error
}

// UserActivityRepositoryInterface defines the interface for user activity repository operations
type UserActivityRepositoryInterface interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserActivity, error)
	GetUsersNeedingInsightsPause(ctx context.Context) ([]uuid.UUID, error)
	SetInsightsPaused(ctx context.Context, userID uuid.UUID, paused bool) error
}

// Ensure concrete types implement the interfaces
var (
	_ EntryRepositoryInterface        = (*EntryRepository)(nil)
	_ PlanRepositoryInterface         = (*PlanRepository)(nil)
	_ UserActivityRepositoryInterface = (*UserActivityRepository)(nil)
)
