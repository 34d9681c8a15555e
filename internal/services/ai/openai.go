package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"

	"github.com/mariorenan/diario-api/internal/models"
)

const (
	// DefaultOpenAIModel is the default model to use
	DefaultOpenAIModel = "gpt-4o-mini"
	// DefaultOpenAIBaseURL is the default OpenAI API base URL
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	// DefaultTimeout is the default timeout for API calls
	DefaultTimeout = 30 * time.Second

	// ErrNoChoicesInResponse is returned when the API response has no choices
	ErrNoChoicesInResponse = "no choices in response"

	// openAISystemMessage keeps the completions on-task and in Portuguese
	openAISystemMessage = "Você é um assistente de um diário pessoal. Responda sempre em português, de forma concisa e encorajadora."
)

// OpenAIProvider implements the AIProvider interface using OpenAI's API
type OpenAIProvider struct {
	client    openai.Client
	model     string
	logger    *zap.Logger
	debugMode bool
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(apiKey string, model string) *OpenAIProvider {
	return NewOpenAIProviderWithLogger(apiKey, DefaultOpenAIBaseURL, model, nil, false)
}

// NewOpenAIProviderWithLogger creates a new OpenAI provider with logger support
func NewOpenAIProviderWithLogger(apiKey string, baseURL string, model string, logger *zap.Logger, debugMode bool) *OpenAIProvider {
	if model == "" {
		model = DefaultOpenAIModel
	}
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}

	httpClient := &http.Client{
		Timeout: DefaultTimeout,
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(httpClient),
	)

	return &OpenAIProvider{
		client:    client,
		model:     model,
		logger:    logger,
		debugMode: debugMode,
	}
}

// complete sends a single-turn prompt and returns the trimmed response content
func (p *OpenAIProvider) complete(ctx context.Context, operation, prompt string) (string, error) {
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

	req := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(openAISystemMessage),
			openai.UserMessage(prompt),
		},
	}

	start := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, req)
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

	if len(resp.Choices) == 0 {
		return "", errors.New(ErrNoChoicesInResponse)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)

	if p.logger != nil && p.debugMode {
		p.logger.Debug("llm_api_response",
			zap.String("operation", operation),
			zap.String("model", p.model),
			zap.Int("response_length", len(content)),
			zap.String("response_preview", SanitizeResponse(content, true)),
			zap.String("user_id", userIDStr),
			zap.String("request_id", requestID),
			zap.Int64("latency_ms", latency.Milliseconds()),
		)
	}

	return content, nil
}

// EntryInsight generates a short insight text for a journal entry
func (p *OpenAIProvider) EntryInsight(ctx context.Context, entry *models.JournalEntry) (string, error) {
	return p.complete(ctx, "entry_insight", EntryInsightPrompt(entry))
}

// PlanInsight generates a short insight text for a daily plan
func (p *OpenAIProvider) PlanInsight(ctx context.Context, plan *models.DailyPlan) (string, error) {
	return p.complete(ctx, "plan_insight", PlanInsightPrompt(plan))
}

// DailyMotivation generates the short motivational phrase of the day
func (p *OpenAIProvider) DailyMotivation(ctx context.Context) (string, error) {
	return p.complete(ctx, "daily_motivation", MotivationPrompt)
}

// GoalSteps suggests actionable steps for a goal as a numbered list
func (p *OpenAIProvider) GoalSteps(ctx context.Context, goal string) (string, error) {
	return p.complete(ctx, "goal_steps", GoalStepsPrompt(goal))
}

// RegisterOpenAI registers the OpenAI provider with the registry
func RegisterOpenAI(registry *ProviderRegistry) {
	registry.Register("openai", func(config map[string]string) (AIProvider, error) {
		apiKey, ok := config["api_key"]
		if !ok || apiKey == "" {
			return nil, fmt.Errorf("openai api_key is required")
		}

		return NewOpenAIProviderWithLogger(apiKey, config["base_url"], config["model"], nil, false), nil
	})
}
