package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mariorenan/diario-api/internal/models"
	"github.com/mariorenan/diario-api/internal/queue"
	"github.com/mariorenan/diario-api/internal/services/ai"
)

// mockAIProvider is a mock implementation of AIProvider
type mockAIProvider struct {
	entryInsightFunc func(ctx context.Context, entry *models.JournalEntry) (string, error)
	planInsightFunc  func(ctx context.Context, plan *models.DailyPlan) (string, error)
}

func (m *mockAIProvider) EntryInsight(ctx context.Context, entry *models.JournalEntry) (string, error) {
	if m.entryInsightFunc != nil {
		return m.entryInsightFunc(ctx, entry)
	}
	return "um insight sobre a entrada", nil
}

func (m *mockAIProvider) PlanInsight(ctx context.Context, plan *models.DailyPlan) (string, error) {
	if m.planInsightFunc != nil {
		return m.planInsightFunc(ctx, plan)
	}
	return "um insight sobre o plano", nil
}

func (m *mockAIProvider) DailyMotivation(ctx context.Context) (string, error) {
	return "", errors.New("not implemented")
}

func (m *mockAIProvider) GoalSteps(ctx context.Context, goal string) (string, error) {
	return "", errors.New("not implemented")
}

var _ ai.AIProvider = (*mockAIProvider)(nil)

// mockEntryRepo is a mock implementation of EntryRepositoryInterface
type mockEntryRepo struct {
	getByIDFunc     func(ctx context.Context, id uuid.UUID) (*models.JournalEntry, error)
	getByUserIDFunc func(ctx context.Context, userID uuid.UUID) ([]*models.JournalEntry, error)
	setInsightFunc  func(ctx context.Context, id uuid.UUID, insight string) error
}

func (m *mockEntryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.JournalEntry, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &models.JournalEntry{ID: id, UserID: uuid.New()}, nil
}

func (m *mockEntryRepo) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.JournalEntry, error) {
	if m.getByUserIDFunc != nil {
		return m.getByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockEntryRepo) SetInsight(ctx context.Context, id uuid.UUID, insight string) error {
	if m.setInsightFunc != nil {
		return m.setInsightFunc(ctx, id, insight)
	}
	return nil
}

// mockPlanRepo is a mock implementation of PlanRepositoryInterface
type mockPlanRepo struct {
	getByDateFunc  func(ctx context.Context, userID uuid.UUID, date string) (*models.DailyPlan, error)
	setInsightFunc func(ctx context.Context, userID uuid.UUID, date, insight string) error
}

func (m *mockPlanRepo) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*models.DailyPlan, error) {
	if m.getByDateFunc != nil {
		return m.getByDateFunc(ctx, userID, date)
	}
	return &models.DailyPlan{ID: models.PlanIDFromDate(date), UserID: userID, Date: date}, nil
}

func (m *mockPlanRepo) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.DailyPlan, error) {
	return nil, nil
}

func (m *mockPlanRepo) SetInsight(ctx context.Context, userID uuid.UUID, date, insight string) error {
	if m.setInsightFunc != nil {
		return m.setInsightFunc(ctx, userID, date, insight)
	}
	return nil
}

// mockActivityRepo is a mock implementation of UserActivityRepositoryInterface
type mockActivityRepo struct {
	getByUserIDFunc func(ctx context.Context, userID uuid.UUID) (*models.UserActivity, error)
}

func (m *mockActivityRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserActivity, error) {
	if m.getByUserIDFunc != nil {
		return m.getByUserIDFunc(ctx, userID)
	}
	return nil, errors.New("no activity")
}

func (m *mockActivityRepo) GetUsersNeedingInsightsPause(ctx context.Context) ([]uuid.UUID, error) {
	return nil, nil
}

func (m *mockActivityRepo) SetInsightsPaused(ctx context.Context, userID uuid.UUID, paused bool) error {
	return nil
}

func TestProcessEntryInsightJob(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	entryID := uuid.New()

	var stored string
	entryRepo := &mockEntryRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.JournalEntry, error) {
			return &models.JournalEntry{ID: id, UserID: userID, SelectedCheckinEmotion: models.EmotionFeliz}, nil
		},
		setInsightFunc: func(ctx context.Context, id uuid.UUID, insight string) error {
			stored = insight
			return nil
		},
	}

	generator := NewInsightGenerator(&mockAIProvider{}, entryRepo, &mockPlanRepo{}, &mockActivityRepo{}, nil)

	job := queue.NewEntryInsightJob(userID, entryID)
	if err := generator.ProcessEntryInsightJob(context.Background(), job); err != nil {
		t.Fatalf("ProcessEntryInsightJob() error = %v", err)
	}
	if stored != "um insight sobre a entrada" {
		t.Errorf("stored insight = %q", stored)
	}
}

func TestProcessEntryInsightJobRequiresEntryID(t *testing.T) {
	t.Parallel()

	generator := NewInsightGenerator(&mockAIProvider{}, &mockEntryRepo{}, &mockPlanRepo{}, &mockActivityRepo{}, nil)

	job := &queue.Job{ID: uuid.New(), Type: queue.JobTypeEntryInsight, UserID: uuid.New()}
	if err := generator.ProcessEntryInsightJob(context.Background(), job); err == nil {
		t.Error("expected error for missing entry_id")
	}
}

func TestProcessEntryInsightJobWrongUser(t *testing.T) {
	t.Parallel()

	entryRepo := &mockEntryRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.JournalEntry, error) {
			return &models.JournalEntry{ID: id, UserID: uuid.New()}, nil
		},
	}
	generator := NewInsightGenerator(&mockAIProvider{}, entryRepo, &mockPlanRepo{}, &mockActivityRepo{}, nil)

	job := queue.NewEntryInsightJob(uuid.New(), uuid.New())
	if err := generator.ProcessEntryInsightJob(context.Background(), job); err == nil {
		t.Error("expected error when entry belongs to another user")
	}
}

func TestProcessEntryInsightJobSkipsPausedUser(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	entryID := uuid.New()

	provider := &mockAIProvider{
		entryInsightFunc: func(ctx context.Context, entry *models.JournalEntry) (string, error) {
			t.Error("provider should not be called for paused user")
			return "", nil
		},
	}
	entryRepo := &mockEntryRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.JournalEntry, error) {
			return &models.JournalEntry{ID: id, UserID: userID}, nil
		},
	}
	activityRepo := &mockActivityRepo{
		getByUserIDFunc: func(ctx context.Context, id uuid.UUID) (*models.UserActivity, error) {
			return &models.UserActivity{UserID: id, InsightsPaused: true, LastAPIInteraction: time.Now()}, nil
		},
	}

	generator := NewInsightGenerator(provider, entryRepo, &mockPlanRepo{}, activityRepo, nil)

	job := queue.NewEntryInsightJob(userID, entryID)
	if err := generator.ProcessEntryInsightJob(context.Background(), job); err != nil {
		t.Fatalf("ProcessEntryInsightJob() error = %v", err)
	}
}

func TestProcessPlanInsightJob(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	var storedDate, storedInsight string
	planRepo := &mockPlanRepo{
		setInsightFunc: func(ctx context.Context, id uuid.UUID, date, insight string) error {
			storedDate = date
			storedInsight = insight
			return nil
		},
	}

	generator := NewInsightGenerator(&mockAIProvider{}, &mockEntryRepo{}, planRepo, &mockActivityRepo{}, nil)

	job := queue.NewPlanInsightJob(userID, "2024-01-02")
	if err := generator.ProcessPlanInsightJob(context.Background(), job); err != nil {
		t.Fatalf("ProcessPlanInsightJob() error = %v", err)
	}
	if storedDate != "2024-01-02" || storedInsight != "um insight sobre o plano" {
		t.Errorf("stored = (%q, %q)", storedDate, storedInsight)
	}
}

func TestProcessPlanInsightJobRequiresDate(t *testing.T) {
	t.Parallel()

	generator := NewInsightGenerator(&mockAIProvider{}, &mockEntryRepo{}, &mockPlanRepo{}, &mockActivityRepo{}, nil)

	job := &queue.Job{ID: uuid.New(), Type: queue.JobTypePlanInsight, UserID: uuid.New()}
	if err := generator.ProcessPlanInsightJob(context.Background(), job); err == nil {
		t.Error("expected error for missing plan_date")
	}
}
