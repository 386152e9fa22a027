package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	auditRepo "github.com/mrlokans/recruiter/internal/database/audit"
	"github.com/mrlokans/recruiter/internal/database/candidates"
	"github.com/mrlokans/recruiter/internal/entities"
	"github.com/mrlokans/recruiter/internal/importers"
)

// This file consolidates the store interfaces used by HTTP controllers.
// Each controller depends only on the methods it calls.

// CandidateStore provides candidate CRUD for review and the application form.
type CandidateStore interface {
	Create(c *entities.Candidate) error
	GetByID(id uint) (*entities.Candidate, error)
	List(filter candidates.ListFilter) ([]entities.Candidate, int64, error)
	Update(c *entities.Candidate) error
	Delete(id uint) error
}

// ImportCommitter records and applies reconciled imports.
type ImportCommitter interface {
	Record(result *importers.Result, sourceFile string, table *importers.Table) (*entities.ImportBatch, error)
	AttachTask(batchID uint, taskID string) error
	Commit(result *importers.Result, sourceFile string, table *importers.Table) (*entities.ImportBatch, importers.Outcome, error)
	ApplyBatch(batchID uint, sourceFile string, result *importers.Result) (importers.Outcome, error)
}

// ImportHistory lists committed import batches.
type ImportHistory interface {
	List(limit, offset int) ([]entities.ImportBatch, int64, error)
	GetByID(id uint) (*entities.ImportBatch, error)
}

// ImportEnqueuer hands large commits to the task queue.
type ImportEnqueuer interface {
	EnqueueImport(ctx context.Context, batchID uint, sourceFile string, result *importers.Result) (string, error)
}

// TaskStatusReader looks up queued task state.
type TaskStatusReader interface {
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// CandidateAuditor records candidate changes.
type CandidateAuditor interface {
	LogApplication(candidateID uint, name, ipAddr string)
	LogUpdate(candidateID uint, name string, fields []string)
	LogDelete(entityType string, entityID uint, entityName string)
}

// AuditReader lists audit events.
type AuditReader interface {
	GetEvents(filter auditRepo.EventFilter, limit, offset int) ([]entities.AuditEvent, int64, error)
}
