package queue

import (
	"time"

	"github.com/google/uuid"
)

// JobType represents the type of job
type JobType string

const (
	// JobTypeEntryInsight is a job for generating an insight on a journal entry
	JobTypeEntryInsight JobType = "entry_insight"
	// JobTypePlanInsight is a job for generating an insight on a daily plan
	JobTypePlanInsight JobType = "plan_insight"
)

// Job represents a job in the queue
type Job struct {
	ID         uuid.UUID      `json:"id"`
	Type       JobType        `json:"type"`
	UserID     uuid.UUID      `json:"user_id"`
	EntryID    *uuid.UUID     `json:"entry_id,omitempty"`   // Set for entry insight jobs
	PlanDate   string         `json:"plan_date,omitempty"`  // Set for plan insight jobs (YYYY-MM-DD)
	NotBefore  *time.Time     `json:"not_before,omitempty"` // Earliest time to process job (nil = immediate)
	NotAfter   *time.Time     `json:"not_after,omitempty"`  // Latest time to process job (nil = no expiration)
	Metadata   map[string]any `json:"metadata,omitempty"`   // Job-specific data
	CreatedAt  time.Time      `json:"created_at"`
	RetryCount int            `json:"retry_count"`
	MaxRetries int            `json:"max_retries"`
}

// NewEntryInsightJob creates a job that generates an insight for a journal entry
func NewEntryInsightJob(userID, entryID uuid.UUID) *Job {
	return &Job{
		ID:         uuid.New(),
		Type:       JobTypeEntryInsight,
		UserID:     userID,
		EntryID:    &entryID,
		Metadata:   make(map[string]any),
		CreatedAt:  time.Now(),
		RetryCount: 0,
		MaxRetries: 3,
	}
}

// NewPlanInsightJob creates a job that generates an insight for a daily plan
func NewPlanInsightJob(userID uuid.UUID, planDate string) *Job {
	return &Job{
		ID:         uuid.New(),
		Type:       JobTypePlanInsight,
		UserID:     userID,
		PlanDate:   planDate,
		Metadata:   make(map[string]any),
		CreatedAt:  time.Now(),
		RetryCount: 0,
		MaxRetries: 3,
	}
}

// ShouldProcess checks if the job should be processed now
func (j *Job) ShouldProcess() bool {
	now := time.Now()

	// Check NotBefore
	if j.NotBefore != nil && now.Before(*j.NotBefore) {
		return false
	}

	// Check NotAfter
	if j.NotAfter != nil && now.After(*j.NotAfter) {
		return false
	}

	return true
}

// IsExpired checks if the job has expired
func (j *Job) IsExpired() bool {
	if j.NotAfter == nil {
		return false
	}

	return time.Now().After(*j.NotAfter)
}

// CanRetry checks if the job can be retried
func (j *Job) CanRetry() bool {
	return j.RetryCount < j.MaxRetries
}

// IncrementRetry increments the retry count
func (j *Job) IncrementRetry() {
	j.RetryCount++
}
