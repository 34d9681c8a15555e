package models

import (
	"time"

	"github.com/google/uuid"
)

// Emotion is the check-in emotion selected on a journal entry. Labels are the
// Portuguese UI labels and are stored as-is.
type Emotion string

const (
	EmotionMuitoFeliz  Emotion = "Muito Feliz"
	EmotionFeliz       Emotion = "Feliz"
	EmotionNeutro      Emotion = "Neutro"
	EmotionTriste      Emotion = "Triste"
	EmotionMuitoTriste Emotion = "Muito Triste"
	EmotionAnsioso     Emotion = "Ansioso"
	EmotionMotivado    Emotion = "Motivado"
	EmotionCansado     Emotion = "Cansado"
)

// Emotions lists every recognized check-in emotion.
var Emotions = []Emotion{
	EmotionMuitoFeliz,
	EmotionFeliz,
	EmotionNeutro,
	EmotionTriste,
	EmotionMuitoTriste,
	EmotionAnsioso,
	EmotionMotivado,
	EmotionCansado,
}

// ReactionOutcome says whether the user's reaction to the day's challenge helped.
type ReactionOutcome string

const (
	ReactionOutcomeAjudou     ReactionOutcome = "Ajudou"
	ReactionOutcomeDificultou ReactionOutcome = "Dificultou"
	ReactionOutcomeNeutro     ReactionOutcome = "Neutro"
)

// EntryValue is a personal value attached to an entry, optionally with a
// concrete example of how it showed up that day.
type EntryValue struct {
	Value   string `json:"value"`
	Example string `json:"example,omitempty"`
}

// SuccessGoal is a future goal linked to one of the entry's values.
type SuccessGoal struct {
	Goal         string `json:"goal"`
	RelatedValue string `json:"related_value,omitempty"`
}

// JournalEntry is one journal submission: emotional check-in, challenge
// narrative, values, success vision/goals and a commitment.
type JournalEntry struct {
	ID                     uuid.UUID       `json:"id"`
	UserID                 uuid.UUID       `json:"user_id"`
	SelectedCheckinEmotion Emotion         `json:"selected_checkin_emotion"`
	CheckinDescription     string          `json:"checkin_description,omitempty"`
	ChallengeDescription   string          `json:"challenge_description,omitempty"`
	ChallengeFeelings      string          `json:"challenge_feelings,omitempty"`
	ChallengeReaction      string          `json:"challenge_reaction,omitempty"`
	ReactionAnalysis       string          `json:"reaction_analysis,omitempty"`
	ReactionFactors        string          `json:"reaction_factors,omitempty"`
	ReactionOutcome        ReactionOutcome `json:"reaction_outcome"`
	ReactionDifferent      string          `json:"reaction_different,omitempty"`
	SelectedValues         []EntryValue    `json:"selected_values"`
	CustomValue            string          `json:"custom_value,omitempty"`
	SuccessVision          string          `json:"success_vision,omitempty"`
	SuccessGoals           []SuccessGoal   `json:"success_goals"`
	CommitmentAction       string          `json:"commitment_action,omitempty"`
	CommitmentAffirmation  string          `json:"commitment_affirmation,omitempty"`
	Insight                *string         `json:"insight,omitempty"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}
