package dashboard

import (
	"reflect"
	"testing"
	"time"

	"github.com/mariorenan/diario-api/internal/models"
)

func entryAt(day time.Time, emotion models.Emotion) *models.JournalEntry {
	return &models.JournalEntry{
		SelectedCheckinEmotion: emotion,
		CreatedAt:              day,
	}
}

func TestAggregateEmpty(t *testing.T) {
	t.Parallel()

	stats := Aggregate(nil, nil)

	if stats.TotalEntries != 0 {
		t.Errorf("TotalEntries = %d, want 0", stats.TotalEntries)
	}
	if stats.AverageSentiment != "N/A" {
		t.Errorf("AverageSentiment = %q, want \"N/A\"", stats.AverageSentiment)
	}
	if stats.MostRecentPlan != nil {
		t.Error("MostRecentPlan should be nil")
	}
	// Slice fields must be non-nil so the JSON shape stays stable.
	if stats.SentimentTrend == nil || stats.CommonValues == nil ||
		stats.FutureGoals == nil || stats.RecentCommitments == nil {
		t.Error("slice fields must not be nil on empty input")
	}
	if len(stats.SuggestedNextSteps) == 0 {
		t.Error("SuggestedNextSteps should never be empty")
	}
}

func TestAggregateTrendAveragesWithinDay(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	entries := []*models.JournalEntry{
		entryAt(day, models.EmotionFeliz),                 // +2
		entryAt(day.Add(time.Hour), models.EmotionTriste), // -2
	}

	stats := Aggregate(entries, nil)

	want := []TrendPoint{{Date: "01/01/2024", Sentiment: 0}}
	if !reflect.DeepEqual(stats.SentimentTrend, want) {
		t.Errorf("SentimentTrend = %+v, want %+v", stats.SentimentTrend, want)
	}
	if stats.AverageSentiment != "0.00" {
		t.Errorf("AverageSentiment = %q, want \"0.00\"", stats.AverageSentiment)
	}
}

func TestAggregateTrendSortedByCalendarDate(t *testing.T) {
	t.Parallel()

	// Insertion order deliberately scrambled; dd/mm strings would also sort
	// wrong lexically (02/01 vs 31/12).
	entries := []*models.JournalEntry{
		entryAt(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), models.EmotionFeliz),
		entryAt(time.Date(2023, 12, 31, 9, 0, 0, 0, time.UTC), models.EmotionNeutro),
		entryAt(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), models.EmotionTriste),
	}

	stats := Aggregate(entries, nil)

	var dates []string
	for _, point := range stats.SentimentTrend {
		dates = append(dates, point.Date)
	}
	want := []string{"31/12/2023", "01/01/2024", "02/01/2024"}
	if !reflect.DeepEqual(dates, want) {
		t.Errorf("trend dates = %v, want %v", dates, want)
	}
}

func TestAggregateAverageOfDailyAverages(t *testing.T) {
	t.Parallel()

	day1 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	// Day 1 has two +3 entries (avg 3), day 2 one 0 entry (avg 0). The overall
	// average is the mean of the daily averages (1.50), not of all entries (2.00).
	entries := []*models.JournalEntry{
		entryAt(day1, models.EmotionMuitoFeliz),
		entryAt(day1.Add(time.Hour), models.EmotionMuitoFeliz),
		entryAt(day2, models.EmotionNeutro),
	}

	stats := Aggregate(entries, nil)

	if stats.AverageSentiment != "1.50" {
		t.Errorf("AverageSentiment = %q, want \"1.50\"", stats.AverageSentiment)
	}
}

func TestAggregateCommonValues(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	entries := []*models.JournalEntry{
		{
			CreatedAt: day,
			SelectedValues: []models.EntryValue{
				{Value: " Coragem "},
				{Value: "respeito"},
				{Value: ""},
			},
		},
		{
			CreatedAt: day,
			SelectedValues: []models.EntryValue{
				{Value: "coragem"},
				{Value: "empatia"},
			},
		},
	}

	stats := Aggregate(entries, nil)

	want := []ValueCount{
		{Name: "Coragem", Count: 2},
		{Name: "Respeito", Count: 1},
		{Name: "Empatia", Count: 1},
	}
	if !reflect.DeepEqual(stats.CommonValues, want) {
		t.Errorf("CommonValues = %+v, want %+v", stats.CommonValues, want)
	}
}

func TestAggregateCommonValuesTopFive(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	entry := &models.JournalEntry{
		CreatedAt: day,
		SelectedValues: []models.EntryValue{
			{Value: "a"}, {Value: "b"}, {Value: "c"},
			{Value: "d"}, {Value: "e"}, {Value: "f"},
		},
	}

	stats := Aggregate([]*models.JournalEntry{entry}, nil)

	if len(stats.CommonValues) != 5 {
		t.Fatalf("len(CommonValues) = %d, want 5", len(stats.CommonValues))
	}
	// All counts tie at 1, so first-seen order decides.
	if stats.CommonValues[0].Name != "A" || stats.CommonValues[4].Name != "E" {
		t.Errorf("CommonValues = %+v, want first-seen order a..e", stats.CommonValues)
	}
}

func TestAggregateGoalsAndCommitments(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	var entries []*models.JournalEntry
	for i := 0; i < 7; i++ {
		entries = append(entries, &models.JournalEntry{
			CreatedAt:        day.Add(time.Duration(i) * time.Hour),
			CommitmentAction: string(rune('a' + i)),
			SuccessGoals: []models.SuccessGoal{
				{Goal: string(rune('A' + i))},
				{Goal: ""},
			},
		})
	}

	stats := Aggregate(entries, nil)

	if got, want := stats.FutureGoals, []string{"A", "B", "C", "D", "E", "F", "G"}; !reflect.DeepEqual(got, want) {
		t.Errorf("FutureGoals = %v, want %v", got, want)
	}
	// Only the first five entries contribute commitments.
	if got, want := stats.RecentCommitments, []string{"a", "b", "c", "d", "e"}; !reflect.DeepEqual(got, want) {
		t.Errorf("RecentCommitments = %v, want %v", got, want)
	}
}

func TestAggregateMostRecentPlan(t *testing.T) {
	t.Parallel()

	plans := []*models.DailyPlan{
		{ID: "20240102", Date: "2024-01-02"},
		{ID: "20240101", Date: "2024-01-01"},
	}

	stats := Aggregate(nil, plans)

	if stats.MostRecentPlan == nil || stats.MostRecentPlan.Date != "2024-01-02" {
		t.Errorf("MostRecentPlan = %+v, want date 2024-01-02", stats.MostRecentPlan)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	entries := []*models.JournalEntry{
		entryAt(day, models.EmotionFeliz),
		entryAt(day.AddDate(0, 0, 1), models.EmotionAnsioso),
	}
	plans := []*models.DailyPlan{{ID: "20240101", Date: "2024-01-01"}}

	first := Aggregate(entries, plans)
	second := Aggregate(entries, plans)

	if !reflect.DeepEqual(first, second) {
		t.Error("Aggregate is not deterministic over identical inputs")
	}
}
