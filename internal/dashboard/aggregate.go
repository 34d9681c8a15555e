// Package dashboard derives display statistics from a user's journal entries
// and daily plans. Aggregation is pure and recomputed from scratch on every
// call; datasets are user-lifetime-journal scale, so there is no incremental
// state to maintain.
package dashboard

import (
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/mariorenan/diario-api/internal/models"
	"github.com/mariorenan/diario-api/internal/sentiment"
)

// TrendDateFormat is the display format for per-date sentiment points (pt-BR).
const TrendDateFormat = "02/01/2006"

// topValueCount caps the frequency-ranked values list.
const topValueCount = 5

// recentCommitmentCount caps how many commitments the summary shows. Entries
// arrive oldest-first and the window is the literal first five.
const recentCommitmentCount = 5

// SuggestedNextSteps is the fixed guidance list shown alongside the stats.
var SuggestedNextSteps = []string{
	"Revise seus valores mais frequentes e escolha um para praticar esta semana.",
	"Transforme uma meta de sucesso em um compromisso concreto para amanhã.",
	"Preencha o planejamento diário antes de começar o dia.",
	"Releia uma entrada antiga e observe como sua reação mudou.",
}

// TrendPoint is one date's average sentiment score.
type TrendPoint struct {
	Date      string  `json:"date"`
	Sentiment float64 `json:"sentiment"`
}

// ValueCount is a personal value and how often it appears across entries.
type ValueCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats is the derived dashboard payload. Slice fields are never nil so the
// JSON shape is stable even for brand-new users.
type Stats struct {
	TotalEntries       int               `json:"total_entries"`
	SentimentTrend     []TrendPoint      `json:"sentiment_trend"`
	AverageSentiment   string            `json:"average_sentiment"`
	CommonValues       []ValueCount      `json:"common_values"`
	FutureGoals        []string          `json:"future_goals"`
	RecentCommitments  []string          `json:"recent_commitments"`
	MostRecentPlan     *models.DailyPlan `json:"most_recent_plan,omitempty"`
	SuggestedNextSteps []string          `json:"suggested_next_steps"`
	LastActivity       *time.Time        `json:"last_activity,omitempty"`
}

// Aggregate computes dashboard statistics. Entries must be ordered oldest-first
// and plans newest-first; the caller's repository reads guarantee both.
func Aggregate(entries []*models.JournalEntry, plans []*models.DailyPlan) *Stats {
	stats := &Stats{
		TotalEntries:       len(entries),
		SentimentTrend:     []TrendPoint{},
		AverageSentiment:   "N/A",
		CommonValues:       []ValueCount{},
		FutureGoals:        []string{},
		RecentCommitments:  []string{},
		SuggestedNextSteps: SuggestedNextSteps,
	}
	if len(plans) > 0 {
		stats.MostRecentPlan = plans[0]
	}
	if len(entries) == 0 {
		return stats
	}

	stats.SentimentTrend = sentimentTrend(entries)
	stats.AverageSentiment = averageSentiment(stats.SentimentTrend)
	stats.CommonValues = commonValues(entries)

	for _, entry := range entries {
		for _, goal := range entry.SuccessGoals {
			if goal.Goal != "" {
				stats.FutureGoals = append(stats.FutureGoals, goal.Goal)
			}
		}
	}

	window := entries
	if len(window) > recentCommitmentCount {
		window = window[:recentCommitmentCount]
	}
	for _, entry := range window {
		if entry.CommitmentAction != "" {
			stats.RecentCommitments = append(stats.RecentCommitments, entry.CommitmentAction)
		}
	}

	return stats
}

// sentimentTrend groups entries by creation date and averages the sentiment
// score within each day, sorted by calendar date ascending.
func sentimentTrend(entries []*models.JournalEntry) []TrendPoint {
	type bucket struct {
		day   time.Time
		total int
		count int
	}
	byDate := make(map[string]*bucket)
	for _, entry := range entries {
		y, m, d := entry.CreatedAt.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		key := entry.CreatedAt.Format(TrendDateFormat)
		b, ok := byDate[key]
		if !ok {
			b = &bucket{day: day}
			byDate[key] = b
		}
		b.total += sentiment.Score(entry.SelectedCheckinEmotion, entry.CheckinDescription)
		b.count++
	}

	keys := make([]string, 0, len(byDate))
	for key := range byDate {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return byDate[keys[i]].day.Before(byDate[keys[j]].day)
	})

	trend := make([]TrendPoint, 0, len(keys))
	for _, key := range keys {
		b := byDate[key]
		trend = append(trend, TrendPoint{
			Date:      key,
			Sentiment: float64(b.total) / float64(b.count),
		})
	}
	return trend
}

// averageSentiment is the mean of the per-date averages, not a weighted mean
// over all entries. The original behaves this way and the difference is
// visible to users, so it stays.
func averageSentiment(trend []TrendPoint) string {
	if len(trend) == 0 {
		return "N/A"
	}
	sum := 0.0
	for _, point := range trend {
		sum += point.Sentiment
	}
	return strconv.FormatFloat(sum/float64(len(trend)), 'f', 2, 64)
}

// commonValues counts normalized value tags across all entries and returns the
// top five by count, ties broken by first appearance.
func commonValues(entries []*models.JournalEntry) []ValueCount {
	counts := make(map[string]int)
	var order []string
	for _, entry := range entries {
		for _, v := range entry.SelectedValues {
			name := strings.ToLower(strings.TrimSpace(v.Value))
			if name == "" {
				continue
			}
			if _, seen := counts[name]; !seen {
				order = append(order, name)
			}
			counts[name]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > topValueCount {
		order = order[:topValueCount]
	}

	values := make([]ValueCount, 0, len(order))
	for _, name := range order {
		values = append(values, ValueCount{Name: capitalize(name), Count: counts[name]})
	}
	return values
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
