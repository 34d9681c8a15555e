package ai

import (
	"fmt"
	"strings"

	"github.com/mariorenan/diario-api/internal/models"
)

// Prompts are Portuguese because the product is. Keep the wording stable:
// users see the generated texts verbatim.

// MotivationPrompt asks for the short motivational phrase of the day.
const MotivationPrompt = "Gere uma única frase motivacional curta (máximo 15 palavras) para o dia de hoje, " +
	"focando em autoconfiança, capacidade e superação de desafios para um usuário de um diário pessoal. Seja inspirador."

// FallbackMotivation is returned when no provider is configured or the call fails.
const FallbackMotivation = "Sua jornada diária começa com um passo de autoconfiança."

// GoalStepsPrompt asks for actionable steps toward a goal.
func GoalStepsPrompt(goal string) string {
	return fmt.Sprintf("Sugira 5 passos acionáveis e concretos para a seguinte meta: %q. "+
		"Formate a resposta como uma lista numerada.", goal)
}

// EntryInsightPrompt builds the insight prompt for a journal entry.
func EntryInsightPrompt(entry *models.JournalEntry) string {
	values := make([]string, 0, len(entry.SelectedValues))
	for _, v := range entry.SelectedValues {
		if v.Example != "" {
			values = append(values, fmt.Sprintf("%s (%s)", v.Value, v.Example))
			continue
		}
		values = append(values, v.Value)
	}

	goals := make([]string, 0, len(entry.SuccessGoals))
	for _, g := range entry.SuccessGoals {
		if g.RelatedValue != "" {
			goals = append(goals, fmt.Sprintf("%s (Valor: %s)", g.Goal, g.RelatedValue))
			continue
		}
		goals = append(goals, g.Goal)
	}

	var b strings.Builder
	b.WriteString("Analise a seguinte entrada de diário e forneça um breve insight ou resumo sobre o estado emocional, desafios ou aprendizados. Seja conciso e direto.\n\n")
	fmt.Fprintf(&b, "Check-in: %s - %s\n", entry.SelectedCheckinEmotion, entry.CheckinDescription)
	fmt.Fprintf(&b, "Desafio: %s\n", entry.ChallengeDescription)
	fmt.Fprintf(&b, "Sentimentos no desafio: %s\n", entry.ChallengeFeelings)
	fmt.Fprintf(&b, "Reação: %s\n", entry.ChallengeReaction)
	fmt.Fprintf(&b, "Análise da reação: %s\n", entry.ReactionAnalysis)
	fmt.Fprintf(&b, "Fatores da reação: %s\n", entry.ReactionFactors)
	fmt.Fprintf(&b, "Resultado da reação: %s\n", entry.ReactionOutcome)
	fmt.Fprintf(&b, "Valores: %s\n", strings.Join(values, ", "))
	fmt.Fprintf(&b, "Visão de sucesso: %s\n", entry.SuccessVision)
	fmt.Fprintf(&b, "Metas: %s\n", strings.Join(goals, ", "))
	fmt.Fprintf(&b, "Compromisso: %s - %s\n", entry.CommitmentAction, entry.CommitmentAffirmation)
	return b.String()
}

// PlanInsightPrompt builds the insight prompt for a daily plan.
func PlanInsightPrompt(plan *models.DailyPlan) string {
	var slots []string
	for _, s := range plan.DailySchedule {
		if s != "" {
			slots = append(slots, s)
		}
	}

	var b strings.Builder
	b.WriteString("Analise o seguinte planejamento diário e gere um insight conciso (máximo 3 frases) sobre como o usuário pode ter se saído, o que priorizou, ou um conselho rápido para o próximo dia baseado neste plano. Foco em autoconfiança e capacidade.\n\n")
	fmt.Fprintf(&b, "Planejamento do dia %s:\n", plan.Date)
	fmt.Fprintf(&b, "Urgente e Importante: %s\n", plan.UrgentImportant)
	fmt.Fprintf(&b, "Não Urgente e Importante: %s\n", plan.NotUrgentImportant)
	fmt.Fprintf(&b, "Urgente e Não Importante: %s\n", plan.UrgentNotImportant)
	fmt.Fprintf(&b, "Não Urgente e Não Importante: %s\n", plan.NotUrgentNotImportant)
	fmt.Fprintf(&b, "Programação: %s\n", strings.Join(slots, ", "))
	fmt.Fprintf(&b, "Anotações: %s\n", plan.Notes)
	fmt.Fprintf(&b, "Tarefas: %s\n", plan.Tasks)
	return b.String()
}
