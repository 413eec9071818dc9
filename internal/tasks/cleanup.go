package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// Queue names of the retention tasks.
const (
	CleanupAuditQueueName = "cleanup_audit_events"
	CleanupRunsQueueName  = "cleanup_import_runs"
)

// AuditEventCleaner provides the ability to delete old audit events.
type AuditEventCleaner interface {
	DeleteOldEvents(retention time.Duration) (int64, error)
}

// ImportRunCleaner deletes finished import runs started before a cutoff.
type ImportRunCleaner interface {
	DeleteOlderThan(olderThan time.Time) (int64, error)
}

// CleanupAuditor records the outcome of a retention sweep. Optional.
type CleanupAuditor interface {
	LogCleanup(target string, deleted int64, err error)
}

func retentionConfig(name string) backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        name,
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

func retention(days, fallback int) (int, time.Duration) {
	if days <= 0 {
		days = fallback
	}
	return days, time.Duration(days) * 24 * time.Hour
}

// CleanupAuditEventsTask removes audit events older than the configured retention period.
type CleanupAuditEventsTask struct {
	RetentionDays int `json:"retention_days"`
}

func (t CleanupAuditEventsTask) Config() backlite.QueueConfig {
	return retentionConfig(CleanupAuditQueueName)
}

// CleanupAuditEventsProcessor creates a processor function for CleanupAuditEventsTask.
func CleanupAuditEventsProcessor(cleaner AuditEventCleaner, auditor CleanupAuditor) backlite.QueueProcessor[CleanupAuditEventsTask] {
	return func(ctx context.Context, task CleanupAuditEventsTask) error {
		if cleaner == nil {
			return fmt.Errorf("audit event cleaner not configured")
		}

		days, keep := retention(task.RetentionDays, 30)
		deleted, err := cleaner.DeleteOldEvents(keep)
		if auditor != nil {
			auditor.LogCleanup("audit_events", deleted, err)
		}
		if err != nil {
			return fmt.Errorf("cleanup audit events: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d audit events older than %d days", deleted, days)
		return nil
	}
}

// NewCleanupAuditEventsQueue creates a backlite queue for audit cleanup tasks.
func NewCleanupAuditEventsQueue(cleaner AuditEventCleaner, auditor CleanupAuditor) backlite.Queue {
	return backlite.NewQueue(CleanupAuditEventsProcessor(cleaner, auditor))
}

// CleanupImportRunsTask removes finished import runs older than the retention period.
type CleanupImportRunsTask struct {
	RetentionDays int `json:"retention_days"`
}

func (t CleanupImportRunsTask) Config() backlite.QueueConfig {
	return retentionConfig(CleanupRunsQueueName)
}

// CleanupImportRunsProcessor creates a processor function for CleanupImportRunsTask.
func CleanupImportRunsProcessor(cleaner ImportRunCleaner, auditor CleanupAuditor) backlite.QueueProcessor[CleanupImportRunsTask] {
	return func(ctx context.Context, task CleanupImportRunsTask) error {
		if cleaner == nil {
			return fmt.Errorf("import run cleaner not configured")
		}

		days, keep := retention(task.RetentionDays, 90)
		deleted, err := cleaner.DeleteOlderThan(time.Now().Add(-keep))
		if auditor != nil {
			auditor.LogCleanup("import_runs", deleted, err)
		}
		if err != nil {
			return fmt.Errorf("cleanup import runs: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d import runs older than %d days", deleted, days)
		return nil
	}
}

// NewCleanupImportRunsQueue creates a backlite queue for import run cleanup tasks.
func NewCleanupImportRunsQueue(cleaner ImportRunCleaner, auditor CleanupAuditor) backlite.Queue {
	return backlite.NewQueue(CleanupImportRunsProcessor(cleaner, auditor))
}
