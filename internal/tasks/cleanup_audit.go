package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// DefaultAuditRetentionDays applies when a task carries no retention.
const DefaultAuditRetentionDays = 30

// AuditEventCleaner deletes audit events older than retention.
type AuditEventCleaner interface {
	DeleteOldEvents(retention time.Duration) (int64, error)
}

// MaintenanceRecorder leaves a trace of a cleanup run in the audit log.
type MaintenanceRecorder interface {
	LogMaintenance(action, description string, err error)
}

// CleanupAuditEventsTask trims the audit log to RetentionDays.
// The maintenance scheduler enqueues one per scheduled run.
type CleanupAuditEventsTask struct {
	RetentionDays int `json:"retention_days"`
}

// Retention is the task's cutoff age, falling back to DefaultAuditRetentionDays.
func (t CleanupAuditEventsTask) Retention() (int, time.Duration) {
	days := t.RetentionDays
	if days <= 0 {
		days = DefaultAuditRetentionDays
	}
	return days, time.Duration(days) * 24 * time.Hour
}

func (t CleanupAuditEventsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_audit_events",
		MaxAttempts: 3,
		Backoff:     10 * time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   7 * 24 * time.Hour,
			OnlyFailed: true,
		},
	}
}

// CleanupAuditEventsProcessor deletes expired audit events. recorder may be
// nil; when set, runs that delete something or fail are recorded.
func CleanupAuditEventsProcessor(cleaner AuditEventCleaner, recorder MaintenanceRecorder) backlite.QueueProcessor[CleanupAuditEventsTask] {
	return func(ctx context.Context, task CleanupAuditEventsTask) error {
		if cleaner == nil {
			return errors.New("audit cleanup: no cleaner configured")
		}

		days, retention := task.Retention()
		deleted, err := cleaner.DeleteOldEvents(retention)
		if err != nil {
			if recorder != nil {
				recorder.LogMaintenance("audit_cleanup", "Queued audit cleanup failed", err)
			}
			return fmt.Errorf("audit cleanup: %w", err)
		}

		log.Printf("[TASK] Audit cleanup removed %d events older than %d days", deleted, days)
		if deleted > 0 && recorder != nil {
			recorder.LogMaintenance("audit_cleanup", fmt.Sprintf("Removed %d audit events older than %d days", deleted, days), nil)
		}
		return nil
	}
}

func NewCleanupAuditEventsQueue(cleaner AuditEventCleaner, recorder MaintenanceRecorder) backlite.Queue {
	return backlite.NewQueue(CleanupAuditEventsProcessor(cleaner, recorder))
}
