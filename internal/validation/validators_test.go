package validation

import "testing"

func TestValidateEmotion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"muito feliz", "Muito Feliz", false},
		{"feliz", "Feliz", false},
		{"neutro", "Neutro", false},
		{"triste", "Triste", false},
		{"muito triste", "Muito Triste", false},
		{"ansioso", "Ansioso", false},
		{"motivado", "Motivado", false},
		{"cansado", "Cansado", false},
		{"empty", "", true},
		{"lowercase not accepted", "feliz", true},
		{"unknown label", "Eufórico", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateEmotion(tt.value)
			if tt.wantErr && err == nil {
				t.Errorf("ValidateEmotion(%q) = nil, want error", tt.value)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateEmotion(%q) = %v, want nil", tt.value, err)
			}
		})
	}
}

func TestValidateReactionOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"ajudou", "Ajudou", false},
		{"dificultou", "Dificultou", false},
		{"neutro", "Neutro", false},
		{"empty", "", true},
		{"unknown", "Talvez", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateReactionOutcome(tt.value)
			if tt.wantErr && err == nil {
				t.Errorf("ValidateReactionOutcome(%q) = nil, want error", tt.value)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateReactionOutcome(%q) = %v, want nil", tt.value, err)
			}
		})
	}
}

func TestValidatePlanDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid date", "2024-01-02", false},
		{"leap day", "2024-02-29", false},
		{"empty", "", true},
		{"wrong format", "02/01/2024", true},
		{"impossible date", "2024-13-40", true},
		{"missing day", "2024-01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidatePlanDate(tt.value)
			if tt.wantErr && err == nil {
				t.Errorf("ValidatePlanDate(%q) = nil, want error", tt.value)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidatePlanDate(%q) = %v, want nil", tt.value, err)
			}
		})
	}
}

func TestValidateBirthDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"empty is allowed", "", false},
		{"past date", "1990-05-20", false},
		{"future date", "2999-01-01", true},
		{"wrong format", "20/05/1990", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateBirthDate(tt.value)
			if tt.wantErr && err == nil {
				t.Errorf("ValidateBirthDate(%q) = nil, want error", tt.value)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateBirthDate(%q) = %v, want nil", tt.value, err)
			}
		})
	}
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  olá  ", "olá"},
		{"strips control characters", "abc\x00def", "abcdef"},
		{"keeps newlines and tabs", "linha 1\n\tlinha 2", "linha 1\n\tlinha 2"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SanitizeText(tt.input); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
