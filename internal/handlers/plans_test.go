package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mariorenan/diario-api/internal/validation"
)

func TestSavePlanRequestValidationTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		date     string
		schedule []string
		wantErr  bool
	}{
		{"valid date", "2024-01-02", nil, false},
		{"valid date with schedule", "2024-01-02", []string{"reunião", "", "estudo"}, false},
		{"missing date", "", nil, true},
		{"malformed date", "02/01/2024", nil, true},
		{"too many schedule slots", "2024-01-02", make([]string, 10), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := SavePlanRequest{
				Date:          tt.date,
				DailySchedule: tt.schedule,
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

func TestPlanHandlersRequireUser(t *testing.T) {
	t.Parallel()

	h := NewPlanHandler(nil, nil)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		method  string
		path    string
	}{
		{"list", h.ListPlans, "GET", "/api/v1/plans"},
		{"save", h.SavePlan, "PUT", "/api/v1/plans"},
		{"get", h.GetPlan, "GET", "/api/v1/plans/2024-01-02"},
		{"delete", h.DeletePlan, "DELETE", "/api/v1/plans/2024-01-02"},
		{"insight", h.RequestPlanInsight, "POST", "/api/v1/plans/2024-01-02/insight"},
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
		})
	}
}
