package models

import "testing"

func TestPlanIDFromDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		date string
		want string
	}{
		{"typical date", "2024-01-02", "20240102"},
		{"end of year", "2023-12-31", "20231231"},
		{"no dashes passes through", "20240102", "20240102"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := PlanIDFromDate(tt.date); got != tt.want {
				t.Errorf("PlanIDFromDate(%q) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}

func TestNormalizeSchedule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		slots []string
		want  []string
	}{
		{
			name:  "pads short schedule",
			slots: []string{"reunião", "estudo"},
			want:  []string{"reunião", "estudo", "", "", "", "", "", "", ""},
		},
		{
			name:  "truncates long schedule",
			slots: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"},
			want:  []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"},
		},
		{
			name:  "nil becomes empty slots",
			slots: nil,
			want:  []string{"", "", "", "", "", "", "", "", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NormalizeSchedule(tt.slots)
			if len(got) != ScheduleSlots {
				t.Fatalf("Expected %d slots, got %d", ScheduleSlots, len(got))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("slot[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
