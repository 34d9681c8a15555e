package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ScheduleSlots is the number of hourly slots on a daily plan (9:00 through 17:00).
const ScheduleSlots = 9

// PlanDateFormat is the wire format for plan dates.
const PlanDateFormat = "2006-01-02"

// DailyPlan is one day's Eisenhower-matrix priority breakdown plus an hourly
// schedule. A user has at most one plan per date; the document ID is derived
// from the date so saving the same day twice is an upsert.
type DailyPlan struct {
	ID                    string    `json:"id"`
	UserID                uuid.UUID `json:"user_id"`
	Date                  string    `json:"date"`
	UrgentImportant       string    `json:"urgent_important,omitempty"`
	NotUrgentImportant    string    `json:"not_urgent_important,omitempty"`
	UrgentNotImportant    string    `json:"urgent_not_important,omitempty"`
	NotUrgentNotImportant string    `json:"not_urgent_not_important,omitempty"`
	DailySchedule         []string  `json:"daily_schedule"`
	Notes                 string    `json:"notes,omitempty"`
	Tasks                 string    `json:"tasks,omitempty"`
	Insight               *string   `json:"insight,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// PlanIDFromDate derives the plan document ID from its date: the date with
// separators stripped ("2024-01-02" -> "20240102").
func PlanIDFromDate(date string) string {
	return strings.ReplaceAll(date, "-", "")
}

// NormalizeSchedule pads or truncates a schedule to exactly ScheduleSlots entries.
func NormalizeSchedule(slots []string) []string {
	out := make([]string, ScheduleSlots)
	copy(out, slots)
	return out
}
