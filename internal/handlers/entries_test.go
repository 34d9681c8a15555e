package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mariorenan/diario-api/internal/models"
	"github.com/mariorenan/diario-api/internal/validation"
)

func TestSanitizeEntryValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []models.EntryValue
		want   []models.EntryValue
	}{
		{
			name:   "trims whitespace",
			values: []models.EntryValue{{Value: "  Coragem  ", Example: " ajudei um colega "}},
			want:   []models.EntryValue{{Value: "Coragem", Example: "ajudei um colega"}},
		},
		{
			name:   "drops values empty after sanitization",
			values: []models.EntryValue{{Value: "   "}, {Value: "Empatia"}},
			want:   []models.EntryValue{{Value: "Empatia"}},
		},
		{
			name:   "empty input yields empty non-nil slice",
			values: nil,
			want:   []models.EntryValue{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := sanitizeEntryValues(tt.values)
			if got == nil {
				t.Fatal("Expected non-nil slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d values, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("values[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSanitizeSuccessGoals(t *testing.T) {
	t.Parallel()

	goals := []models.SuccessGoal{
		{Goal: " aprender programação ", RelatedValue: "Disciplina"},
		{Goal: "\t"},
	}

	got := sanitizeSuccessGoals(goals)
	if len(got) != 1 {
		t.Fatalf("Expected 1 goal, got %d", len(got))
	}
	if got[0].Goal != "aprender programação" {
		t.Errorf("Goal = %q", got[0].Goal)
	}
	if got[0].RelatedValue != "Disciplina" {
		t.Errorf("RelatedValue = %q", got[0].RelatedValue)
	}
}

// Handlers must reject requests that carry no authenticated user before
// touching any dependency.
func TestEntryHandlersRequireUser(t *testing.T) {
	t.Parallel()

	h := NewEntryHandler(nil, nil)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		method  string
		path    string
	}{
		{"list", h.ListEntries, "GET", "/api/v1/entries"},
		{"create", h.CreateEntry, "POST", "/api/v1/entries"},
		{"get", h.GetEntry, "GET", "/api/v1/entries/123"},
		{"update", h.UpdateEntry, "PATCH", "/api/v1/entries/123"},
		{"delete", h.DeleteEntry, "DELETE", "/api/v1/entries/123"},
		{"export", h.ExportEntries, "GET", "/api/v1/entries/export"},
		{"insight", h.RequestEntryInsight, "POST", "/api/v1/entries/123/insight"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			tt.handler(w, req)

			resp := w.Result()
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("Expected status 401, got %d", resp.StatusCode)
			}

			var body map[string]any
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if success, ok := body["success"].(bool); !ok || success {
				t.Error("Expected success to be false")
			}
		})
	}
}

func TestCreateEntryRequestValidationTags(t *testing.T) {
	t.Parallel()

	// The emotion enum validator backs the required selected_checkin_emotion
	// field; exercise the request struct the way the handler does.
	tests := []struct {
		name    string
		emotion string
		outcome string
		wantErr bool
	}{
		{"valid emotion", "Feliz", "", false},
		{"valid emotion and outcome", "Muito Triste", "Ajudou", false},
		{"missing emotion", "", "", true},
		{"unknown emotion", "Eufórico", "", true},
		{"unknown outcome", "Feliz", "Talvez", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := CreateEntryRequest{
				SelectedCheckinEmotion: tt.emotion,
				ReactionOutcome:        tt.outcome,
			}

			err := validation.Validate.Struct(req)
			if tt.wantErr && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected validation error: %v", err)
			}
		})
	}
}
