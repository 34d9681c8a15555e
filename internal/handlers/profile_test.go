package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/mariorenan/diario-api/internal/middleware"
	"github.com/mariorenan/diario-api/internal/models"
)

func TestDefaultProfile(t *testing.T) {
	t.Parallel()

	name := "Maria Clara"
	user := &models.User{
		ID:    uuid.New(),
		Email: "maria@example.com",
		Name:  &name,
	}

	profile := defaultProfile(user)

	if profile.UserID != user.ID {
		t.Errorf("UserID = %s, want %s", profile.UserID, user.ID)
	}
	if profile.Email != "maria@example.com" {
		t.Errorf("Email = %q", profile.Email)
	}
	if profile.Name != "Maria Clara" {
		t.Errorf("Name = %q", profile.Name)
	}
}

func TestDefaultProfileWithoutName(t *testing.T) {
	t.Parallel()

	user := &models.User{ID: uuid.New(), Email: "anon@example.com"}

	profile := defaultProfile(user)

	if profile.Name != "" {
		t.Errorf("Expected empty name, got %q", profile.Name)
	}
	if profile.Email != "anon@example.com" {
		t.Errorf("Email = %q", profile.Email)
	}
}

// A birth date in the future must be rejected before the repository is touched.
func TestSaveProfileRejectsFutureBirthDate(t *testing.T) {
	t.Parallel()

	h := NewProfileHandler(nil)

	body, _ := json.Marshal(map[string]string{"birth_date": "2999-01-01"})
	req := httptest.NewRequest("PUT", "/api/v1/profile", bytes.NewReader(body))
	req = req.WithContext(middleware.SetUserInContext(req.Context(), &models.User{ID: uuid.New()}))
	w := httptest.NewRecorder()

	h.SaveProfile(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}

func TestProfileHandlersRequireUser(t *testing.T) {
	t.Parallel()

	h := NewProfileHandler(nil)
	c := NewCanvasHandler(nil)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		method  string
		path    string
	}{
		{"get profile", h.GetProfile, "GET", "/api/v1/profile"},
		{"save profile", h.SaveProfile, "PUT", "/api/v1/profile"},
		{"get canvas", c.GetCanvas, "GET", "/api/v1/canvas"},
		{"save canvas", c.SaveCanvas, "PUT", "/api/v1/canvas"},
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
