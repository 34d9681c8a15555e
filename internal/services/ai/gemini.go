package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/mariorenan/diario-api/internal/models"
)

const (
	// DefaultGeminiModel is the default Gemini model to use
	DefaultGeminiModel = "gemini-2.0-flash"
)

// GeminiProvider implements the AIProvider interface using Google's Gemini API
type GeminiProvider struct {
	client    *genai.Client
	model     string
	logger    *zap.Logger
	debugMode bool
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(apiKey string, model string) (*GeminiProvider, error) {
	return NewGeminiProviderWithLogger(apiKey, model, nil, false)
}

// NewGeminiProviderWithLogger creates a new Gemini provider with logger support
func NewGeminiProviderWithLogger(apiKey string, model string, logger *zap.Logger, debugMode bool) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api_key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiProvider{
		client:    client,
		model:     model,
		logger:    logger,
		debugMode: debugMode,
	}, nil
}

// generate sends a single-turn prompt and returns the trimmed response text
func (p *GeminiProvider) generate(ctx context.Context, operation, prompt string) (string, error) {
	requestID := ExtractRequestID(ctx)
	userIDStr := ExtractUserID(ctx)

	if p.logger != nil && p.debugMode {
		p.logger.Debug("llm_api_request",
			zap.String("operation", operation),
			zap.String("model", p.model),
			zap.Int("prompt_length", len(prompt)),
			zap.String("prompt_preview", SanitizePrompt(prompt, true)),
			zap.String("user_id", userIDStr),
			zap.String("request_id", requestID),
		)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	start := time.Now()
	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, nil)
	latency := time.Since(start)

	if err != nil {
		if p.logger != nil && p.debugMode {
			p.logger.Debug("llm_api_error",
				zap.String("operation", operation),
				zap.String("model", p.model),
				zap.Error(err),
				zap.String("user_id", userIDStr),
				zap.String("request_id", requestID),
				zap.Int64("latency_ms", latency.Milliseconds()),
			)
		}
		if apiErr := ExtractAPIError(err); apiErr != nil {
			return "", fmt.Errorf("failed to generate content: %w", apiErr)
		}
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("no candidates in response")
	}

	if p.logger != nil && p.debugMode {
		p.logger.Debug("llm_api_response",
			zap.String("operation", operation),
			zap.String("model", p.model),
			zap.Int("response_length", len(text)),
			zap.String("response_preview", SanitizeResponse(text, true)),
			zap.String("user_id", userIDStr),
			zap.String("request_id", requestID),
			zap.Int64("latency_ms", latency.Milliseconds()),
		)
	}

	return text, nil
}

// EntryInsight generates a short insight text for a journal entry
func (p *GeminiProvider) EntryInsight(ctx context.Context, entry *models.JournalEntry) (string, error) {
	return p.generate(ctx, "entry_insight", EntryInsightPrompt(entry))
}

// PlanInsight generates a short insight text for a daily plan
func (p *GeminiProvider) PlanInsight(ctx context.Context, plan *models.DailyPlan) (string, error) {
	return p.generate(ctx, "plan_insight", PlanInsightPrompt(plan))
}

// DailyMotivation generates the short motivational phrase of the day
func (p *GeminiProvider) DailyMotivation(ctx context.Context) (string, error) {
	return p.generate(ctx, "daily_motivation", MotivationPrompt)
}

// GoalSteps suggests actionable steps for a goal as a numbered list
func (p *GeminiProvider) GoalSteps(ctx context.Context, goal string) (string, error) {
	return p.generate(ctx, "goal_steps", GoalStepsPrompt(goal))
}

// RegisterGemini registers the Gemini provider with the registry
func RegisterGemini(registry *ProviderRegistry) {
	registry.Register("gemini", func(config map[string]string) (AIProvider, error) {
		apiKey, ok := config["api_key"]
		if !ok || apiKey == "" {
			return nil, fmt.Errorf("gemini api_key is required")
		}

		return NewGeminiProvider(apiKey, config["model"])
	})
}
