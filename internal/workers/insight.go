package workers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mariorenan/diario-api/internal/database"
	"github.com/mariorenan/diario-api/internal/queue"
	"github.com/mariorenan/diario-api/internal/services/ai"
)

// InsightGenerator processes insight generation jobs for journal entries and
// daily plans
type InsightGenerator struct {
	aiProvider   ai.AIProvider
	entryRepo    database.EntryRepositoryInterface
	planRepo     database.PlanRepositoryInterface
	activityRepo database.UserActivityRepositoryInterface
	jobQueue     queue.JobQueue // For re-enqueueing jobs with delays
}

// NewInsightGenerator creates a new insight generator
func NewInsightGenerator(
	aiProvider ai.AIProvider,
	entryRepo database.EntryRepositoryInterface,
	planRepo database.PlanRepositoryInterface,
	activityRepo database.UserActivityRepositoryInterface,
	jobQueue queue.JobQueue,
) *InsightGenerator {
	return &InsightGenerator{
		aiProvider:   aiProvider,
		entryRepo:    entryRepo,
		planRepo:     planRepo,
		activityRepo: activityRepo,
		jobQueue:     jobQueue,
	}
}

// insightsPaused reports whether the user has insight generation paused
func (g *InsightGenerator) insightsPaused(ctx context.Context, job *queue.Job) bool {
	activity, err := g.activityRepo.GetByUserID(ctx, job.UserID)
	return err == nil && activity != nil && activity.InsightsPaused
}

// ProcessEntryInsightJob generates and stores the insight for a journal entry
func (g *InsightGenerator) ProcessEntryInsightJob(ctx context.Context, job *queue.Job) error {
	if job.EntryID == nil {
		return fmt.Errorf("entry_id is required for entry insight job")
	}

	entry, err := g.entryRepo.GetByID(ctx, *job.EntryID)
	if err != nil {
		return fmt.Errorf("failed to get entry: %w", err)
	}

	// Verify entry belongs to user
	if entry.UserID != job.UserID {
		return fmt.Errorf("entry does not belong to user")
	}

	if g.insightsPaused(ctx, job) {
		log.Printf("Skipping insight for user %s (insights paused)", job.UserID)
		return nil
	}

	insight, err := g.aiProvider.EntryInsight(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to generate entry insight: %w", err)
	}

	if err := g.entryRepo.SetInsight(ctx, entry.ID, insight); err != nil {
		return fmt.Errorf("failed to store entry insight: %w", err)
	}

	log.Printf("Generated insight for entry %s (%d chars)", entry.ID, len(insight))
	return nil
}

// ProcessPlanInsightJob generates and stores the insight for a daily plan
func (g *InsightGenerator) ProcessPlanInsightJob(ctx context.Context, job *queue.Job) error {
	if job.PlanDate == "" {
		return fmt.Errorf("plan_date is required for plan insight job")
	}

	plan, err := g.planRepo.GetByDate(ctx, job.UserID, job.PlanDate)
	if err != nil {
		return fmt.Errorf("failed to get plan: %w", err)
	}

	if g.insightsPaused(ctx, job) {
		log.Printf("Skipping insight for user %s (insights paused)", job.UserID)
		return nil
	}

	insight, err := g.aiProvider.PlanInsight(ctx, plan)
	if err != nil {
		return fmt.Errorf("failed to generate plan insight: %w", err)
	}

	if err := g.planRepo.SetInsight(ctx, job.UserID, job.PlanDate, insight); err != nil {
		return fmt.Errorf("failed to store plan insight: %w", err)
	}

	log.Printf("Generated insight for plan %s of user %s (%d chars)", job.PlanDate, job.UserID, len(insight))
	return nil
}

// ProcessJob processes a job based on its type
func (g *InsightGenerator) ProcessJob(ctx context.Context, msg *queue.Message) error {
	job := msg.Job

	// Check if job should be processed now (respect NotBefore)
	if !job.ShouldProcess() {
		log.Printf("Job %s not ready yet (NotBefore: %v), skipping", job.ID, job.NotBefore)
		// Re-ack to return to queue and wait
		if ackErr := msg.Ack(); ackErr != nil {
			log.Printf("Failed to ack job for later processing: %v", ackErr)
		}
		return nil
	}

	switch job.Type {
	case queue.JobTypeEntryInsight:
		if err := g.ProcessEntryInsightJob(ctx, job); err != nil {
			return g.handleJobError(ctx, msg, job, err, "entry insight")
		}
		if ackErr := msg.Ack(); ackErr != nil {
			return fmt.Errorf("failed to ack job: %w", ackErr)
		}
		return nil

	case queue.JobTypePlanInsight:
		if err := g.ProcessPlanInsightJob(ctx, job); err != nil {
			return g.handleJobError(ctx, msg, job, err, "plan insight")
		}
		if ackErr := msg.Ack(); ackErr != nil {
			return fmt.Errorf("failed to ack job: %w", ackErr)
		}
		return nil

	default:
		if nackErr := msg.Nack(false); nackErr != nil { // Unknown job type, send to DLQ
			log.Printf("Failed to nack unknown job type: %v", nackErr)
		}
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

// delayedRetry returns a copy of job scheduled for notBefore with the retry count bumped
func delayedRetry(job *queue.Job, notBefore time.Time) *queue.Job {
	return &queue.Job{
		ID:         job.ID,
		Type:       job.Type,
		UserID:     job.UserID,
		EntryID:    job.EntryID,
		PlanDate:   job.PlanDate,
		NotBefore:  &notBefore,
		NotAfter:   job.NotAfter,
		Metadata:   job.Metadata,
		CreatedAt:  job.CreatedAt,
		RetryCount: job.RetryCount + 1,
		MaxRetries: job.MaxRetries,
	}
}

// handleJobError handles errors from job processing with intelligent retry logic
func (g *InsightGenerator) handleJobError(ctx context.Context, msg *queue.Message, job *queue.Job, err error, jobType string) error {
	// Check if it's a quota error (should not retry immediately)
	if ai.IsQuotaError(err) {
		log.Printf("Quota exceeded for %s job %s: %v", jobType, job.ID, err)

		// For quota errors, re-enqueue with long delay (1 hour minimum)
		retryDelay := ai.GetRetryDelay(err, job.RetryCount)
		notBefore := time.Now().Add(retryDelay)

		log.Printf("Re-enqueueing %s job %s with NotBefore=%v (quota exhausted, retry in %v)",
			jobType, job.ID, notBefore, retryDelay)

		// Ack the current message
		if ackErr := msg.Ack(); ackErr != nil {
			log.Printf("Failed to ack job before re-enqueue: %v", ackErr)
		}

		// Re-enqueue with delay using NotBefore (RabbitMQ delayed exchange will handle this)
		if g.jobQueue != nil {
			if enqueueErr := g.jobQueue.Enqueue(ctx, delayedRetry(job, notBefore)); enqueueErr != nil {
				log.Printf("Failed to re-enqueue job %s with delay: %v", job.ID, enqueueErr)
				// If re-enqueue fails, send to DLQ
				return fmt.Errorf("quota exhausted, failed to re-enqueue: %w", enqueueErr)
			}
			log.Printf("Successfully re-enqueued %s job %s for retry at %v", jobType, job.ID, notBefore)
			return nil // Successfully handled
		}

		// If no queue access, nack without requeue to prevent spam
		log.Printf("Warning: No queue access, cannot re-enqueue job with delay. Sending to DLQ.")
		if nackErr := msg.Nack(false); nackErr != nil {
			log.Printf("Failed to nack quota error job: %v", nackErr)
		}

		return fmt.Errorf("quota exhausted (job %s): %w", job.ID, err)
	}

	// Check if it's a rate limit error (should retry with backoff)
	if ai.IsRateLimitError(err) {
		log.Printf("Rate limited for %s job %s: %v", jobType, job.ID, err)

		retryDelay := ai.GetRetryDelay(err, job.RetryCount)

		// For rate limits, re-enqueue with delay using NotBefore
		if job.CanRetry() && g.jobQueue != nil {
			notBefore := time.Now().Add(retryDelay)

			// Ack the current message
			if ackErr := msg.Ack(); ackErr != nil {
				log.Printf("Failed to ack rate limited job: %v", ackErr)
			}

			// Re-enqueue with delay
			if enqueueErr := g.jobQueue.Enqueue(ctx, delayedRetry(job, notBefore)); enqueueErr != nil {
				log.Printf("Failed to re-enqueue rate limited job %s: %v", job.ID, enqueueErr)
				// Fall back to nack with requeue
				if nackErr := msg.Nack(true); nackErr != nil {
					log.Printf("Failed to nack rate limited job: %v", nackErr)
				}
				return fmt.Errorf("rate limited, failed to re-enqueue: %w", enqueueErr)
			}

			log.Printf("Rate limited: re-enqueued %s job %s for retry at %v (delay: %v)",
				jobType, job.ID, notBefore, retryDelay)
			return nil // Successfully handled
		}

		// Fallback: nack with requeue (immediate retry)
		if job.CanRetry() {
			job.IncrementRetry()
			log.Printf("Rate limit: will retry job %s immediately (attempt %d/%d)",
				job.ID, job.RetryCount, job.MaxRetries)
			if nackErr := msg.Nack(true); nackErr != nil {
				log.Printf("Failed to nack rate limited job: %v", nackErr)
			}
			// Return error to signal worker to wait before processing next job
			return fmt.Errorf("rate limited (will retry): %w", err)
		}
	}

	// For other errors, use standard retry logic
	if job.CanRetry() {
		job.IncrementRetry()
		log.Printf("%s job %s failed (attempt %d/%d): %v, will retry", jobType, job.ID, job.RetryCount, job.MaxRetries, err)
		if nackErr := msg.Nack(true); nackErr != nil {
			log.Printf("Failed to nack job: %v", nackErr)
		}
		return fmt.Errorf("job failed (will retry): %w", err)
	}

	// Max retries exceeded, send to DLQ
	log.Printf("%s job %s failed after %d retries: %v, sending to DLQ", jobType, job.ID, job.MaxRetries, err)
	if nackErr := msg.Nack(false); nackErr != nil {
		log.Printf("Failed to nack job to DLQ: %v", nackErr)
	}
	return fmt.Errorf("job failed (max retries): %w", err)
}
