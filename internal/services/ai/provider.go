package ai

import (
	"context"

	"github.com/mariorenan/diario-api/internal/models"
)

// AIProvider is the interface for AI providers
type AIProvider interface {
	// EntryInsight generates a short insight text for a journal entry
	EntryInsight(ctx context.Context, entry *models.JournalEntry) (string, error)

	// PlanInsight generates a short insight text for a daily plan
	PlanInsight(ctx context.Context, plan *models.DailyPlan) (string, error)

	// DailyMotivation generates the short motivational phrase of the day
	DailyMotivation(ctx context.Context) (string, error)

	// GoalSteps suggests actionable steps for a goal as a numbered list
	GoalSteps(ctx context.Context, goal string) (string, error)
}

// ProviderFactory creates an AI provider based on the provider type
type ProviderFactory func(config map[string]string) (AIProvider, error)

// ProviderRegistry stores available AI providers
type ProviderRegistry struct {
	providers map[string]ProviderFactory
}

// NewProviderRegistry creates a new provider registry
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]ProviderFactory),
	}
}

// Register registers a provider factory
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.providers[name] = factory
}

// GetProvider gets a provider by name
func (r *ProviderRegistry) GetProvider(name string, config map[string]string) (AIProvider, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, &ErrProviderNotFound{Name: name}
	}

	return factory(config)
}

// ErrProviderNotFound is returned when a provider is not found
type ErrProviderNotFound struct {
	Name string
}

func (e *ErrProviderNotFound) Error() string {
	return "AI provider not found: " + e.Name
}
