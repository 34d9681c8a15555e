package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/mariorenan/diario-api/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Register custom validators for enums
	// These should never fail in normal operation, but log if they do
	if err := Validate.RegisterValidation("checkin_emotion", validateEmotion); err != nil {
		panic(fmt.Sprintf("failed to register checkin_emotion validator: %v", err))
	}
	if err := Validate.RegisterValidation("reaction_outcome", validateReactionOutcome); err != nil {
		panic(fmt.Sprintf("failed to register reaction_outcome validator: %v", err))
	}
	if err := Validate.RegisterValidation("plan_date", validatePlanDate); err != nil {
		panic(fmt.Sprintf("failed to register plan_date validator: %v", err))
	}
}

// validateEmotion validates that a string is a recognized check-in emotion
func validateEmotion(fl validator.FieldLevel) bool {
	return ValidateEmotion(fl.Field().String()) == nil
}

// validateReactionOutcome validates that a string is a valid ReactionOutcome enum value
func validateReactionOutcome(fl validator.FieldLevel) bool {
	return ValidateReactionOutcome(fl.Field().String()) == nil
}

// validatePlanDate validates a YYYY-MM-DD plan date
func validatePlanDate(fl validator.FieldLevel) bool {
	return ValidatePlanDate(fl.Field().String()) == nil
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	// Trim whitespace
	text = strings.TrimSpace(text)

	// Remove control characters except newline and tab
	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// ValidateEmotion validates a check-in emotion string value
func ValidateEmotion(value string) error {
	emotion := models.Emotion(value)
	for _, known := range models.Emotions {
		if emotion == known {
			return nil
		}
	}
	return fmt.Errorf("invalid emotion: %s", value)
}

// ValidateReactionOutcome validates a ReactionOutcome string value
func ValidateReactionOutcome(value string) error {
	switch models.ReactionOutcome(value) {
	case models.ReactionOutcomeAjudou, models.ReactionOutcomeDificultou, models.ReactionOutcomeNeutro:
		return nil
	default:
		return fmt.Errorf("invalid reaction_outcome: %s (must be 'Ajudou', 'Dificultou', or 'Neutro')", value)
	}
}

// ValidatePlanDate validates a plan date string in YYYY-MM-DD form
func ValidatePlanDate(value string) error {
	if _, err := time.Parse(models.PlanDateFormat, value); err != nil {
		return fmt.Errorf("invalid date: %s (must be YYYY-MM-DD)", value)
	}
	return nil
}

// ValidateBirthDate validates an optional profile birth date. It must parse as
// YYYY-MM-DD and not lie in the future.
func ValidateBirthDate(value string) error {
	if value == "" {
		return nil
	}
	t, err := time.Parse(models.PlanDateFormat, value)
	if err != nil {
		return fmt.Errorf("invalid birth_date: %s (must be YYYY-MM-DD)", value)
	}
	if t.After(time.Now()) {
		return fmt.Errorf("invalid birth_date: %s is in the future", value)
	}
	return nil
}
