// Package motivation serves the daily motivational phrase and small per-user
// display preferences. Phrases are cached in Redis for the rest of the day so
// each user gets one AI call per date at most.
package motivation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mariorenan/diario-api/internal/services/ai"
)

const (
	phraseKeyPrefix = "daily_motivation"
	themeKeyPrefix  = "theme_preference"

	// phraseDateFormat keys the cache per calendar day (pt-BR display date)
	phraseDateFormat = "02/01/2006"
)

// DefaultTheme is returned when a user never saved a theme preference.
const DefaultTheme = "light"

// Service resolves the phrase of the day and theme preferences
type Service struct {
	redis    *redis.Client
	provider ai.AIProvider
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a motivation service. provider may be nil, in which case
// the static fallback phrase is always served.
func NewService(redisClient *redis.Client, provider ai.AIProvider, logger *zap.Logger) *Service {
	return &Service{
		redis:    redisClient,
		provider: provider,
		logger:   logger,
		now:      time.Now,
	}
}

func phraseKey(userID uuid.UUID, date string) string {
	return fmt.Sprintf("%s:%s:%s", phraseKeyPrefix, userID, date)
}

func themeKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", themeKeyPrefix, userID)
}

// untilMidnight returns the TTL that expires the phrase at the date rollover
func (s *Service) untilMidnight() time.Duration {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return midnight.Sub(now)
}

// DailyPhrase returns the motivational phrase for today. The feature degrades
// instead of failing: Redis or provider errors yield the fallback phrase.
func (s *Service) DailyPhrase(ctx context.Context, userID uuid.UUID) string {
	date := s.now().Format(phraseDateFormat)
	key := phraseKey(userID, date)

	cached, err := s.redis.Get(ctx, key).Result()
	if err == nil && cached != "" {
		return cached
	}
	if err != nil && err != redis.Nil {
		s.logger.Warn("motivation_cache_read_failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}

	if s.provider == nil {
		return ai.FallbackMotivation
	}

	phrase, err := s.provider.DailyMotivation(ctx)
	if err != nil {
		s.logger.Warn("motivation_generation_failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return ai.FallbackMotivation
	}

	if err := s.redis.Set(ctx, key, phrase, s.untilMidnight()).Err(); err != nil {
		s.logger.Warn("motivation_cache_write_failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}

	return phrase
}

// Theme returns the user's saved theme preference, or DefaultTheme
func (s *Service) Theme(ctx context.Context, userID uuid.UUID) (string, error) {
	theme, err := s.redis.Get(ctx, themeKey(userID)).Result()
	if err == redis.Nil {
		return DefaultTheme, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get theme preference: %w", err)
	}
	return theme, nil
}

// SetTheme saves the user's theme preference
func (s *Service) SetTheme(ctx context.Context, userID uuid.UUID, theme string) error {
	if err := s.redis.Set(ctx, themeKey(userID), theme, 0).Err(); err != nil {
		return fmt.Errorf("failed to set theme preference: %w", err)
	}
	return nil
}
