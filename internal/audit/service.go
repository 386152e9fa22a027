package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mrlokans/recruiter/internal/database/audit"
	"github.com/mrlokans/recruiter/internal/entities"
	"github.com/mrlokans/recruiter/internal/importers"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo    *audit.Repository
	pending sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Wait blocks until every event handed to LogAsync has been written.
// Commands that exit right after logging call it before closing the database.
func (s *Service) Wait() {
	s.pending.Wait()
}

// ImportSummary is the audit payload of one committed import.
type ImportSummary struct {
	BatchID    uint
	SourceFile string
	ImportTag  string
	Policy     importers.Policy
	Rejected   int
	Outcome    importers.Outcome
}

// LogImport records a committed (or failed) import batch.
func (s *Service) LogImport(summary ImportSummary, err error) {
	event := &entities.AuditEvent{
		EventType: entities.AuditEventImport,
		Action:    "csv_import",
		Description: fmt.Sprintf("Imported %s: %d created, %d updated, %d skipped, %d rejected",
			summary.SourceFile, summary.Outcome.Created, summary.Outcome.Updated, summary.Outcome.Skipped, summary.Rejected),
		EntityType: "import_batch",
		Status:     entities.AuditStatusSuccess,
	}
	if summary.BatchID > 0 {
		id := summary.BatchID
		event.EntityID = &id
	}

	metadata := map[string]any{
		"import_tag": summary.ImportTag,
		"policy":     summary.Policy,
		"created":    summary.Outcome.Created,
		"updated":    summary.Outcome.Updated,
		"skipped":    summary.Outcome.Skipped,
		"rejected":   summary.Rejected,
	}
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.Description = "Import of " + summary.SourceFile + " failed"
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogApplication records a candidate created through the public form.
func (s *Service) LogApplication(candidateID uint, name, ipAddr string) {
	s.LogAsync(&entities.AuditEvent{
		EventType:   entities.AuditEventApplication,
		Action:      "candidate_apply",
		Description: "New application: " + truncate(name, 200),
		EntityType:  "candidate",
		EntityID:    &candidateID,
		IPAddress:   ipAddr,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogUpdate records an edit of a candidate profile.
func (s *Service) LogUpdate(candidateID uint, name string, fields []string) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventUpdate,
		Action:      "candidate_update",
		Description: "Updated candidate: " + truncate(name, 200),
		EntityType:  "candidate",
		EntityID:    &candidateID,
		Status:      entities.AuditStatusSuccess,
	}
	if mdBytes, e := json.Marshal(map[string]any{"fields": fields}); e == nil {
		event.Metadata = string(mdBytes)
	}

	s.LogAsync(event)
}

// LogDelete records a deletion event.
func (s *Service) LogDelete(entityType string, entityID uint, entityName string) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventDelete,
		Action:      entityType + "_delete",
		Description: "Deleted " + entityType + ": " + entityName,
		EntityType:  entityType,
		EntityID:    &entityID,
		Status:      entities.AuditStatusSuccess,
	}

	s.LogAsync(event)
}

// LogMaintenance records a scheduled housekeeping run.
func (s *Service) LogMaintenance(action, description string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventMaintenance,
		Action:      action,
		Description: description,
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(filter audit.EventFilter, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(filter, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
