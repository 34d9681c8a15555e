// Package sentiment scores a journal check-in. The selected emotion label wins;
// free text is only scanned when the label is absent or unrecognized.
package sentiment

import (
	"strings"

	"github.com/mariorenan/diario-api/internal/models"
)

// emotionWeights maps each recognized check-in emotion to its fixed score.
var emotionWeights = map[models.Emotion]int{
	models.EmotionMuitoFeliz:  3,
	models.EmotionFeliz:       2,
	models.EmotionNeutro:      0,
	models.EmotionTriste:      -2,
	models.EmotionMuitoTriste: -3,
	models.EmotionAnsioso:     -1,
	models.EmotionMotivado:    2,
	models.EmotionCansado:     -1,
}

type keywordWeight struct {
	word   string
	weight int
}

// Keyword tables for the free-text fallback. Matching is case-insensitive
// substring containment: "triste" inside a longer word still counts, and every
// hit accumulates into the total.
var (
	positiveKeywords = []keywordWeight{
		{"feliz", 2},
		{"alegre", 2},
		{"ótimo", 2},
		{"grato", 2},
		{"animado", 2},
		{"entusiasmado", 2},
		{"satisfeito", 1},
		{"bem", 1},
		{"calmo", 1},
		{"positivo", 1},
	}
	negativeKeywords = []keywordWeight{
		{"triste", -2},
		{"bravo", -2},
		{"irritado", -2},
		{"chateado", -2},
		{"frustrado", -2},
		{"cansado", -1},
		{"mal", -1},
		{"preocupado", -1},
		{"ansioso", -1},
		{"estressado", -1},
	}
	neutralKeywords = []keywordWeight{
		{"normal", 0},
		{"ok", 0},
		{"neutro", 0},
		{"indiferente", 0},
	}
)

// Score returns the sentiment score for a check-in. A recognized emotion label
// takes precedence over the description; otherwise the description is scanned
// against the keyword tables. Empty inputs score 0.
func Score(emotion models.Emotion, description string) int {
	if weight, ok := emotionWeights[emotion]; ok {
		return weight
	}
	if description == "" {
		return 0
	}

	lower := strings.ToLower(description)
	score := 0
	for _, kw := range positiveKeywords {
		if strings.Contains(lower, kw.word) {
			score += kw.weight
		}
	}
	for _, kw := range negativeKeywords {
		if strings.Contains(lower, kw.word) {
			score += kw.weight
		}
	}
	for _, kw := range neutralKeywords {
		if strings.Contains(lower, kw.word) {
			score += kw.weight
		}
	}
	return score
}
