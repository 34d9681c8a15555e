package motivation

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestUntilMidnight(t *testing.T) {
	t.Parallel()

	svc := &Service{
		now: func() time.Time {
			return time.Date(2024, 3, 15, 21, 30, 0, 0, time.UTC)
		},
	}

	if got, want := svc.untilMidnight(), 2*time.Hour+30*time.Minute; got != want {
		t.Errorf("untilMidnight() = %v, want %v", got, want)
	}
}

func TestPhraseKeyUsesDisplayDate(t *testing.T) {
	t.Parallel()

	userID := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	got := phraseKey(userID, "15/03/2024")
	want := "daily_motivation:11111111-2222-3333-4444-555555555555:15/03/2024"
	if got != want {
		t.Errorf("phraseKey = %q, want %q", got, want)
	}
}

func TestThemeKey(t *testing.T) {
	t.Parallel()

	userID := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	got := themeKey(userID)
	want := "theme_preference:11111111-2222-3333-4444-555555555555"
	if got != want {
		t.Errorf("themeKey = %q, want %q", got, want)
	}
}
