// Package scheduler runs periodic housekeeping: audit retention and the
// removal of abandoned import wizard sessions.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// AuditCleanupEnqueuer hands audit retention to the task queue.
type AuditCleanupEnqueuer interface {
	EnqueueAuditCleanup(ctx context.Context, retentionDays int) (string, error)
}

// AuditCleaner deletes old audit events inline when no task queue is running.
type AuditCleaner interface {
	DeleteOldEvents(retention time.Duration) (int64, error)
}

// SessionSweeper discards import sessions idle for longer than maxIdle.
type SessionSweeper interface {
	Sweep(maxIdle time.Duration) int
}

// MaintenanceLogger records housekeeping runs in the audit log.
type MaintenanceLogger interface {
	LogMaintenance(action, description string, err error)
}

// Config holds the schedules. An empty schedule disables its job.
type Config struct {
	AuditCleanupSchedule string
	AuditRetentionDays   int
	SessionSweepSchedule string
	SessionTTL           time.Duration
}

// Dependencies are the collaborators of the maintenance jobs. Any of them may be nil.
type Dependencies struct {
	Enqueuer AuditCleanupEnqueuer
	Cleaner  AuditCleaner
	Sessions SessionSweeper
	Logger   MaintenanceLogger
}

// MaintenanceScheduler manages the periodic housekeeping jobs.
type MaintenanceScheduler struct {
	cfg  Config
	deps Dependencies

	cron      *cron.Cron
	entries   map[string]cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a standard five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// NewMaintenanceScheduler creates a new scheduler instance.
func NewMaintenanceScheduler(cfg Config, deps Dependencies) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		cfg:     cfg,
		deps:    deps,
		cron:    cron.New(cron.WithParser(cronParser)),
		entries: make(map[string]cron.EntryID),
	}
}

// Start registers the configured jobs and starts the cron loop. The
// scheduler stops when ctx is cancelled.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.cfg.AuditCleanupSchedule != "" && (s.deps.Enqueuer != nil || s.deps.Cleaner != nil) {
		if err := s.add("audit_cleanup", s.cfg.AuditCleanupSchedule, func() { s.RunAuditCleanup(ctx) }); err != nil {
			return err
		}
	}
	if s.cfg.SessionSweepSchedule != "" && s.deps.Sessions != nil {
		if err := s.add("session_sweep", s.cfg.SessionSweepSchedule, s.RunSessionSweep); err != nil {
			return err
		}
	}

	if len(s.entries) == 0 {
		log.Printf("[SCHEDULER] No maintenance jobs configured")
		return nil
	}

	s.cron.Start()
	s.isRunning = true

	for name, id := range s.entries {
		log.Printf("[SCHEDULER] %s scheduled, next run: %v", name, s.cron.Entry(id).Next)
	}

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *MaintenanceScheduler) add(name, schedule string, job func()) error {
	if err := ValidateCronSchedule(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s' for %s: %w", schedule, name, err)
	}
	id, err := s.cron.AddFunc(schedule, job)
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	s.entries[name] = id
	return nil
}

// Stop waits for running jobs and stops the scheduler.
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false

	log.Printf("[SCHEDULER] Stopped")
}

// IsRunning returns whether the scheduler is active.
func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the named job runs next, or nil if it is not scheduled.
func (s *MaintenanceScheduler) NextRun(job string) *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.entries[job]
	if !ok || !s.isRunning {
		return nil
	}
	next := s.cron.Entry(id).Next
	return &next
}

// RunAuditCleanup enqueues audit retention, or runs it inline without a queue.
func (s *MaintenanceScheduler) RunAuditCleanup(ctx context.Context) {
	days := s.cfg.AuditRetentionDays
	if days <= 0 {
		days = 30
	}

	if s.deps.Enqueuer != nil {
		taskID, err := s.deps.Enqueuer.EnqueueAuditCleanup(ctx, days)
		if err != nil {
			log.Printf("[SCHEDULER] Audit cleanup: %v", err)
			s.logMaintenance("audit_cleanup", "Failed to enqueue audit cleanup", err)
			return
		}
		log.Printf("[SCHEDULER] Audit cleanup enqueued as task %s", taskID)
		return
	}

	if s.deps.Cleaner == nil {
		return
	}
	deleted, err := s.deps.Cleaner.DeleteOldEvents(time.Duration(days) * 24 * time.Hour)
	if err != nil {
		log.Printf("[SCHEDULER] Audit cleanup failed: %v", err)
		s.logMaintenance("audit_cleanup", "Audit cleanup failed", err)
		return
	}
	log.Printf("[SCHEDULER] Audit cleanup removed %d events older than %d days", deleted, days)
	if deleted > 0 {
		s.logMaintenance("audit_cleanup", fmt.Sprintf("Removed %d audit events older than %d days", deleted, days), nil)
	}
}

// RunSessionSweep discards abandoned import sessions.
func (s *MaintenanceScheduler) RunSessionSweep() {
	if s.deps.Sessions == nil {
		return
	}
	ttl := s.cfg.SessionTTL
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}

	removed := s.deps.Sessions.Sweep(ttl)
	if removed == 0 {
		return
	}
	msg := fmt.Sprintf("Discarded %d import sessions idle for more than %v", removed, ttl)
	log.Printf("[SCHEDULER] %s", msg)
	s.logMaintenance("import_session_sweep", msg, nil)
}

func (s *MaintenanceScheduler) logMaintenance(action, description string, err error) {
	if s.deps.Logger == nil {
		return
	}
	s.deps.Logger.LogMaintenance(action, description, err)
}
